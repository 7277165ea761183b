package hooks

import (
	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/internal/buffer"
)

// Stream is a hook that forwards every lifecycle event to a channel.
// Forwarding never blocks the compaction, so a slow consumer (writing a
// trace file, for example) does not slow the run down; events queue in
// memory instead.
//
//	stream := hooks.NewStream()
//	go func() {
//	    for event := range stream.Events() {
//	        record(event)
//	    }
//	}()
//	exec := executor.New(compaction.NewRegion()).RegisterHook(stream)
//	// ... runs ...
//	stream.Close()
type Stream struct {
	queue *buffer.Queue[diskpack.HookEvent]
}

// NewStream creates an open Stream.
func NewStream() *Stream {
	return &Stream{queue: buffer.NewQueue[diskpack.HookEvent]()}
}

// Events returns the event channel. It is closed after Close once every
// queued event has been received.
func (s *Stream) Events() <-chan diskpack.HookEvent {
	return s.queue.Out()
}

// Close stops forwarding. Events fired afterwards are dropped.
func (s *Stream) Close() {
	s.queue.Close()
}

func (s *Stream) OnBeforeCompaction(
	_ *diskpack.CompactionContext,
	event diskpack.BeforeCompactionEvent,
) {
	s.queue.Push(event)
}

func (s *Stream) OnAfterCompaction(
	_ *diskpack.CompactionContext,
	event diskpack.AfterCompactionEvent,
) {
	s.queue.Push(event)
}

func (s *Stream) OnMove(
	_ *diskpack.CompactionContext,
	event diskpack.MoveEvent,
) {
	s.queue.Push(event)
}

func (s *Stream) OnSkip(
	_ *diskpack.CompactionContext,
	event diskpack.SkipEvent,
) {
	s.queue.Push(event)
}

// Compile-time checks.
var (
	_ diskpack.BeforeCompactionHook = (*Stream)(nil)
	_ diskpack.AfterCompactionHook  = (*Stream)(nil)
	_ diskpack.MoveHook             = (*Stream)(nil)
	_ diskpack.SkipHook             = (*Stream)(nil)
)
