package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/internal/tt"
)

type moveOnlyHook struct {
	moves []diskpack.MoveEvent
}

func (h *moveOnlyHook) OnMove(_ *diskpack.CompactionContext, e diskpack.MoveEvent) {
	h.moves = append(h.moves, e)
}

func TestRegistry_DispatchesByInterface(t *testing.T) {
	recording := tt.NewRecordingHook()
	moveOnly := &moveOnlyHook{}
	registry := NewRegistry().
		Register(recording).
		Register(moveOnly).
		Register("not a hook")

	cc := diskpack.NewCompactionContext("test", tt.Layout(t, "0..1"))
	cc.SetHookFirer(registry)

	cc.FireBeforeCompaction(diskpack.BeforeCompactionEvent{Strategy: "s", Blocks: 4})
	cc.PublishMove(diskpack.MoveEvent{ID: 1, From: 3, To: 1, Length: 1})
	cc.PublishSkip(diskpack.SkipEvent{ID: 0, Start: 0, Length: 1})
	cc.FireAfterCompaction(diskpack.AfterCompactionEvent{Strategy: "s", Checksum: 1})

	assert.Equal(t, 3, registry.Len())
	assert.Equal(t, []diskpack.HookEvent{
		diskpack.BeforeCompactionEvent{Strategy: "s", Blocks: 4},
		diskpack.MoveEvent{ID: 1, From: 3, To: 1, Length: 1},
		diskpack.SkipEvent{ID: 0, Start: 0, Length: 1},
		diskpack.AfterCompactionEvent{Strategy: "s", Checksum: 1},
	}, recording.Order)
	assert.Equal(t, []diskpack.MoveEvent{{ID: 1, From: 3, To: 1, Length: 1}}, moveOnly.moves)
}

func TestRegistry_CallsHooksInRegistrationOrder(t *testing.T) {
	var order []string
	first := &orderHook{name: "first", order: &order}
	second := &orderHook{name: "second", order: &order}
	registry := NewRegistry().Register(first).Register(second)

	cc := diskpack.NewCompactionContext("test", tt.Layout(t, "0."))
	registry.FireMove(cc, diskpack.MoveEvent{})
	registry.FireSkip(cc, diskpack.SkipEvent{})

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}

func TestRegistry_Empty(t *testing.T) {
	registry := NewRegistry()
	cc := diskpack.NewCompactionContext("test", tt.Layout(t, ""))

	assert.NotPanics(t, func() {
		registry.FireBeforeCompaction(cc, diskpack.BeforeCompactionEvent{})
		registry.FireMove(cc, diskpack.MoveEvent{})
		registry.FireSkip(cc, diskpack.SkipEvent{})
		registry.FireAfterCompaction(cc, diskpack.AfterCompactionEvent{})
	})
	assert.Equal(t, 0, registry.Len())
}

type orderHook struct {
	name  string
	order *[]string
}

func (h *orderHook) OnMove(*diskpack.CompactionContext, diskpack.MoveEvent) {
	*h.order = append(*h.order, h.name)
}

func (h *orderHook) OnSkip(*diskpack.CompactionContext, diskpack.SkipEvent) {
	*h.order = append(*h.order, h.name)
}
