package scripting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/scripting"
)

func runScript(t *testing.T, mgr *scripting.Manager, w scripting.World, luaSrc, hook string, args ...lua.LValue) lua.LValue {
	t.Helper()
	dir := writeTempLua(t, "test.lua", luaSrc)
	scope := "modtest_" + t.Name()
	require.NoError(t, mgr.LoadScope(scope, dir, 0))
	ret, err := mgr.CallHook(context.Background(), scope, w, hook, args...)
	require.NoError(t, err)
	return ret
}

func TestEngineLog_AllLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(dice.NewPicker(dice.NewCryptoSource(), logger), logger)

	runScript(t, mgr, nil, `
		function do_all_logs()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`, "do_all_logs")

	for _, msg := range []string{"lua: d", "lua: i", "lua: w", "lua: e"} {
		assert.Equal(t, 1, logs.FilterMessage(msg).Len(), "expected log %q", msg)
	}
}

func TestEngineGame_ReadsAndWritesWorld(t *testing.T) {
	mgr, _ := newTestManager(t)
	w := newFakeWorld("crypt")
	w.carrying["candle"] = true

	ret := runScript(t, mgr, w, `
		function act()
			if engine.game.room() ~= "crypt" then error("wrong room") end
			if not engine.game.carrying("candle") then error("no candle") end
			engine.game.set_flag("lit")
			engine.game.reveal("skull")
			engine.game.unlock("crypt_gate")
			return engine.game.flag("lit")
		end
	`, "act")

	assert.Equal(t, lua.LTrue, ret)
	assert.True(t, w.flags["lit"])
	assert.Equal(t, []string{"skull"}, w.revealed)
	assert.Equal(t, []string{"crypt_gate"}, w.unlocked)
}

func TestEngineGame_NoWorldIsNoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret := runScript(t, mgr, nil, `
		function act()
			engine.game.set_flag("x")
			return engine.game.room()
		end
	`, "act")
	assert.Equal(t, lua.LNil, ret)
}

func TestEngineGame_RevealErrorIsContained(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret := runScript(t, mgr, newFakeWorld("crypt"), `
		function act()
			engine.game.reveal("missing")
			return "unreachable"
		end
	`, "act")
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestEngineDice_PickUsesInjectedSource(t *testing.T) {
	src := dice.Sequence{2}
	logger := zap.NewNop()
	mgr := scripting.NewManager(dice.NewPicker(&src, logger), logger)
	ret := runScript(t, mgr, nil, `
		function pick() return engine.dice.pick({"a", "b", "c"}) end
	`, "pick")
	assert.Equal(t, lua.LString("c"), ret)
}

func TestSayHook_BindsWorldState(t *testing.T) {
	content, err := world.Load(world.Sources{
		Game:  []byte("startup: {room: crypt}"),
		Rooms: []byte("rooms:\n  crypt:\n    name: Crypt\n    enterText: {first: Cold.}\n"),
		Items: []byte("items:\n  skull:\n    typedNames: [skull]\n    location: HIDDEN\n    visible: false\n"),
	})
	require.NoError(t, err)
	st := world.NewState(content)

	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "say.lua", `
		function on_say(room, phrase)
			if phrase == "rattle" then
				engine.game.reveal("skull")
				engine.game.set_flag("rattled")
				return "Something rolls out of the shadows."
			end
		end
	`)
	require.NoError(t, mgr.LoadGlobal(dir, 0))

	hook := scripting.SayHook{Manager: mgr}
	text, ok := hook.OnSay(context.Background(), st, "rattle")
	require.True(t, ok)
	assert.Equal(t, "Something rolls out of the shadows.", text)
	assert.True(t, st.Flag("rattled"))
	skull, _ := st.Item("skull")
	assert.Equal(t, world.Location("crypt"), skull.Location)
	assert.True(t, skull.Visible)
}
