package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/dice"
)

func TestCryptoSource_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(rt, "n")
		v := dice.NewCryptoSource().Intn(n)
		if v < 0 || v >= n {
			rt.Fatalf("Intn(%d) = %d out of range", n, v)
		}
	})
}

func TestCryptoSource_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSequence_ReplaysAndWraps(t *testing.T) {
	seq := dice.Sequence{1, 5, -2}
	assert.Equal(t, 1, seq.Intn(3))
	assert.Equal(t, 2, seq.Intn(3))
	assert.Equal(t, 2, seq.Intn(3))
	assert.Equal(t, 1, seq.Intn(3), "wraps to the start")

	var empty dice.Sequence
	assert.Equal(t, 0, empty.Intn(4))
}

func TestPicker_LogsEachPick(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	seq := dice.Sequence{2}
	p := dice.NewPicker(&seq, zap.New(core))

	got, idx := p.Pick("throw", []string{"a", "b", "c"})
	assert.Equal(t, "c", got)
	assert.Equal(t, 2, idx)

	entries := logs.FilterMessage("random pick").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "throw", entries[0].ContextMap()["label"])
	}
}
