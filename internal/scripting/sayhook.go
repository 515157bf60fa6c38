package scripting

import (
	"context"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// SayHook adapts a Manager to the dispatcher's fallback for unmatched speech.
type SayHook struct {
	Manager *Manager
}

// OnSay runs the say hook against st.
func (h SayHook) OnSay(ctx context.Context, st *world.State, phrase string) (string, bool) {
	return h.Manager.OnSay(ctx, stateWorld{st}, phrase)
}

// stateWorld exposes a world.State to scripts.
type stateWorld struct {
	st *world.State
}

func (w stateWorld) CurrentRoom() string        { return w.st.CurrentRoom() }
func (w stateWorld) Flag(name string) bool      { return w.st.Flag(name) }
func (w stateWorld) SetFlag(name string)        { w.st.SetFlag(name) }
func (w stateWorld) UnlockDoor(id string) error { return w.st.UnlockDoor(id) }

func (w stateWorld) Carrying(id string) bool {
	it, ok := w.st.Item(id)
	return ok && it.Carried()
}

func (w stateWorld) RevealItem(id string) (bool, error) {
	return w.st.Reveal(id, world.Location(w.st.CurrentRoom()))
}
