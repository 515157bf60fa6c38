package output

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEcho(t *testing.T) {
	got := Echo("north")
	require.Len(t, got, 3)
	assert.Equal(t, Blank(), got[0])
	assert.Equal(t, Entry{Text: "> north", Type: Prompt}, got[1])
	assert.Equal(t, Blank(), got[2])
}

func TestBuffer_SinceReturnsCopy(t *testing.T) {
	b := NewBuffer()
	b.Append(Line(Flavor, "a"), Line(Error, "b"))

	tail := b.Since(1)
	require.Len(t, tail, 1)
	tail[0].Text = "mutated"

	assert.Equal(t, "b", b.Entries()[1].Text)
	assert.Empty(t, b.Since(5))
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Append(Line(Notes, "x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, b.Len())
}

func TestProperty_BufferIsAppendOnly(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := NewBuffer()
		var want []Entry
		batches := rapid.SliceOfN(rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,8}`), 0, 4), 0, 6).Draw(rt, "batches")
		for _, batch := range batches {
			before := b.Entries()
			var add []Entry
			for _, s := range batch {
				add = append(add, Line(Flavor, s))
			}
			b.Append(add...)
			want = append(want, add...)
			after := b.Entries()
			if len(after) != len(before)+len(add) {
				rt.Fatalf("length %d after appending %d to %d", len(after), len(add), len(before))
			}
			for i := range before {
				if after[i] != before[i] {
					rt.Fatalf("entry %d changed", i)
				}
			}
		}
		if len(want) != b.Len() {
			rt.Fatalf("want %d entries, got %d", len(want), b.Len())
		}
	})
}
