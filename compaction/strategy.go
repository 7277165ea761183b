package compaction

import (
	"errors"
	"fmt"

	"github.com/rickchristie/diskpack"
)

// ErrUnknownStrategy is returned by ByName for an unregistered name.
var ErrUnknownStrategy = errors.New("compaction: unknown strategy")

// Names lists the registered strategy names.
func Names() []string {
	return []string{BlockSwapName, RegionName}
}

// ByName returns a new strategy for name ("block-swap" or "region").
func ByName(name string) (diskpack.CompactionStrategy, error) {
	switch name {
	case BlockSwapName:
		return NewBlockSwap(), nil
	case RegionName:
		return NewRegion(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
