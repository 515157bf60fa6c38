package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/dice"
)

// globalScope is the reserved key for scripts at the root of the script
// directory. CallHook falls back to it when a room has no VM of its own.
const globalScope = "__global__"

// HookSay is called with (room, phrase) when spoken words match no phrase.
// A string return value is shown to the player.
const HookSay = "on_say"

// World is the game state a hook may read and change.
type World interface {
	CurrentRoom() string
	Flag(name string) bool
	SetFlag(name string)
	Carrying(item string) bool
	// RevealItem brings a hidden item into the current room.
	RevealItem(item string) (bool, error)
	UnlockDoor(door string) error
}

// vm is one sandboxed LState. An LState is single-threaded, so every call
// holds mu, and world is only set while it is held.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
	world World
}

// Manager owns one sandboxed LState per scope and exposes hook dispatch.
// Manager is safe for concurrent CallHook after all loads complete.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	picker *dice.Picker
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: picker and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scopes loaded.
func NewManager(picker *dice.Picker, logger *zap.Logger) *Manager {
	if picker == nil {
		panic("scripting: NewManager requires a non-nil picker")
	}
	if logger == nil {
		panic("scripting: NewManager requires a non-nil logger")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		picker: picker,
		logger: logger,
	}
}

// LoadDir loads every *.lua file at the root of dir into the global scope,
// and each subdirectory into a scope named after it, which is the room id
// whose hooks it overrides.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the first load error; scopes loaded before it stay.
func (m *Manager) LoadDir(dir string, instLimit int) error {
	if err := m.LoadGlobal(dir, instLimit); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := m.LoadScope(e.Name(), filepath.Join(dir, e.Name()), instLimit); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadScope creates a sandboxed VM for scope, registers the engine modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scope must be non-empty; scriptDir must be a readable directory.
// Postcondition: The scope VM is registered; returns error on Lua load failure.
func (m *Manager) LoadScope(scope, scriptDir string, instLimit int) error {
	return m.loadInto(scope, scriptDir, instLimit)
}

// LoadGlobal creates the global VM used as the CallHook fallback.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: The global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalScope, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	v := &vm{L: L, limit: instLimit}
	m.RegisterModules(v)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}
	cancel()
	L.RemoveContext()

	m.mu.Lock()
	if old, ok := m.vms[key]; ok {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.vms[key] = v
	m.mu.Unlock()

	m.logger.Info("scripts loaded", zap.String("scope", key), zap.Int("files", len(luaFiles)))
	return nil
}

// Scopes returns the loaded scope names, sorted.
func (m *Manager) Scopes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vms))
	for k := range m.vms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.vms, k)
	}
}

// CallHook calls the named Lua global function in scope's VM with w bound
// for engine.game calls. If the scope has no VM, or its VM does not define
// the hook, the global VM is tried. Returns (LNil, nil) if the hook is not
// defined anywhere. Lua runtime errors, including an exhausted instruction
// budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(ctx context.Context, scope string, w World, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	candidates := make([]*vm, 0, 2)
	if v, ok := m.vms[scope]; ok {
		candidates = append(candidates, v)
	}
	if v, ok := m.vms[globalScope]; ok && scope != globalScope {
		candidates = append(candidates, v)
	}
	m.mu.RUnlock()

	if len(candidates) == 0 {
		m.logger.Debug("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	for _, v := range candidates {
		if ret, found := m.call(ctx, v, scope, w, hook, args); found {
			return ret, nil
		}
	}
	return lua.LNil, nil
}

// call runs hook in v. found is false when v does not define the hook.
func (m *Manager) call(ctx context.Context, v *vm, scope string, w World, hook string, args []lua.LValue) (ret lua.LValue, found bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, false
	}

	v.world = w
	restore := withBudget(ctx, v.L, v.limit)
	defer func() {
		restore()
		v.world = nil
	}()

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, true
	}

	ret = v.L.Get(-1)
	v.L.Pop(1)
	return ret, true
}

// OnSay calls the say hook for the world's current room.
//
// Postcondition: Returns the hook's string result and true, or "" and false
// when no hook answered with a string.
func (m *Manager) OnSay(ctx context.Context, w World, phrase string) (string, bool) {
	room := w.CurrentRoom()
	ret, err := m.CallHook(ctx, room, w, HookSay, lua.LString(room), lua.LString(phrase))
	if err != nil {
		return "", false
	}
	if s, ok := ret.(lua.LString); ok && s != "" {
		return string(s), true
	}
	return "", false
}
