package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/hooks"
)

// tracer writes every compaction event to a file as a stream of YAML
// documents. Events are encoded on a separate goroutine fed by a
// [hooks.Stream].
type tracer struct {
	stream *hooks.Stream
	file   *os.File
	done   chan error
}

func startTrace(path string) (*tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}

	t := &tracer{
		stream: hooks.NewStream(),
		file:   f,
		done:   make(chan error, 1),
	}
	go t.write()
	return t, nil
}

func (t *tracer) write() {
	enc := yaml.NewEncoder(t.file)
	var err error
	for event := range t.stream.Events() {
		// Keep draining after a failure so the stream can shut down.
		if err != nil {
			continue
		}
		if encErr := enc.Encode(traceRecord(event)); encErr != nil {
			err = fmt.Errorf("write trace: %w", encErr)
		}
	}
	if closeErr := enc.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("write trace: %w", closeErr)
	}
	t.done <- err
}

// Close flushes the remaining events and closes the file.
func (t *tracer) Close() error {
	t.stream.Close()
	err := <-t.done
	return errors.Join(err, t.file.Close())
}

func traceRecord(event diskpack.HookEvent) map[string]any {
	switch e := event.(type) {
	case diskpack.BeforeCompactionEvent:
		return map[string]any{
			"event":    "before_compaction",
			"strategy": e.Strategy,
			"blocks":   e.Blocks,
		}
	case diskpack.MoveEvent:
		return map[string]any{
			"event":  "move",
			"id":     e.ID,
			"from":   e.From,
			"to":     e.To,
			"length": e.Length,
		}
	case diskpack.SkipEvent:
		return map[string]any{
			"event":  "skip",
			"id":     e.ID,
			"start":  e.Start,
			"length": e.Length,
		}
	case diskpack.AfterCompactionEvent:
		record := map[string]any{
			"event":    "after_compaction",
			"strategy": e.Strategy,
			"checksum": e.Checksum,
			"duration": e.Duration.String(),
		}
		if e.Err != nil {
			record["error"] = e.Err.Error()
		}
		return record
	default:
		return map[string]any{"event": fmt.Sprintf("%T", event)}
	}
}
