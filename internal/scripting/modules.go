package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua tables into v's state:
//   - engine.log.debug/info/warn/error(msg)
//   - engine.game.room(), flag(name), set_flag(name), carrying(item),
//     reveal(item), unlock(door)
//   - engine.dice.pick(list)
//
// engine.game functions are no-ops returning nil outside a hook call.
//
// Precondition: v.L must be from NewSandboxedState.
// Postcondition: engine global is defined in v.L.
func (m *Manager) RegisterModules(v *vm) {
	L := v.L
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	logTbl := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		fn := fn
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			fn("lua: "+L.CheckString(1), zap.String("source", "script"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	game := L.NewTable()
	L.SetFuncs(game, map[string]lua.LGFunction{
		"room": func(L *lua.LState) int {
			if v.world == nil {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LString(v.world.CurrentRoom()))
			return 1
		},
		"flag": func(L *lua.LState) int {
			name := L.CheckString(1)
			L.Push(lua.LBool(v.world != nil && v.world.Flag(name)))
			return 1
		},
		"set_flag": func(L *lua.LState) int {
			name := L.CheckString(1)
			if v.world != nil {
				v.world.SetFlag(name)
			}
			return 0
		},
		"carrying": func(L *lua.LState) int {
			item := L.CheckString(1)
			L.Push(lua.LBool(v.world != nil && v.world.Carrying(item)))
			return 1
		},
		"reveal": func(L *lua.LState) int {
			item := L.CheckString(1)
			if v.world == nil {
				L.Push(lua.LFalse)
				return 1
			}
			moved, err := v.world.RevealItem(item)
			if err != nil {
				L.RaiseError("reveal %q: %s", item, err.Error())
				return 0
			}
			L.Push(lua.LBool(moved))
			return 1
		},
		"unlock": func(L *lua.LState) int {
			door := L.CheckString(1)
			if v.world == nil {
				L.Push(lua.LFalse)
				return 1
			}
			if err := v.world.UnlockDoor(door); err != nil {
				L.RaiseError("unlock %q: %s", door, err.Error())
				return 0
			}
			L.Push(lua.LTrue)
			return 1
		},
	})
	L.SetField(engine, "game", game)

	diceTbl := L.NewTable()
	L.SetField(diceTbl, "pick", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		var choices []string
		tbl.ForEach(func(_, val lua.LValue) {
			choices = append(choices, val.String())
		})
		if len(choices) == 0 {
			L.Push(lua.LNil)
			return 1
		}
		choice, _ := m.picker.Pick("lua", choices)
		L.Push(lua.LString(choice))
		return 1
	}))
	L.SetField(engine, "dice", diceTbl)
}
