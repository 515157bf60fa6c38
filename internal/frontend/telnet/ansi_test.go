package telnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/output"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", Colorize(Red, "danger"))
}

func TestColorize_EmptyPassesThrough(t *testing.T) {
	assert.Equal(t, "plain", Colorize("", "plain"))
	assert.Equal(t, "", Colorize(Red, ""))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", StripANSI(input))
}

func TestStripANSI_NoEscapes(t *testing.T) {
	assert.Equal(t, "plain text", StripANSI("plain text"))
}

func TestStripANSI_Unterminated(t *testing.T) {
	assert.Equal(t, "a\033[31", StripANSI("a\033[31"))
}

func TestRenderEntry_StylesByType(t *testing.T) {
	cases := map[output.Type]string{
		output.Flavor:     "You see a lamp.",
		output.Error:      Red + "You see a lamp." + Reset,
		output.Command:    Cyan + "You see a lamp." + Reset,
		output.Notes:      BrightBlack + "You see a lamp." + Reset,
		output.Prompt:     Bold + BrightYellow + "You see a lamp." + Reset,
		output.Underlined: Bold + Underline + BrightWhite + "You see a lamp." + Reset,
	}
	for typ, want := range cases {
		got := RenderEntry(output.Line(typ, "You see a lamp."), 80)
		assert.Equal(t, []string{want}, got, "type %s", typ)
	}
}

func TestRenderEntry_Blank(t *testing.T) {
	assert.Equal(t, []string{""}, RenderEntry(output.Blank(), 80))
}

func TestRenderEntry_Wraps(t *testing.T) {
	lines := RenderEntry(output.Line(output.Flavor, "the quick brown fox jumps over the lazy dog"), 16)
	assert.Equal(t, []string{"the quick brown", "fox jumps over", "the lazy dog"}, lines)
}

func TestRenderEntry_NoWrapWhenWidthZero(t *testing.T) {
	long := strings.Repeat("word ", 40)
	lines := RenderEntry(output.Line(output.Flavor, long), 0)
	assert.Len(t, lines, 1)
}

// Property: stripping a rendered entry and rejoining its words yields the
// original words, whatever the width.
func TestPropertyRenderEntryKeepsWords(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,10}`), 1, 30).Draw(t, "words")
		width := rapid.IntRange(12, 100).Draw(t, "width")
		typ := rapid.SampledFrom([]output.Type{output.Flavor, output.Error, output.Notes}).Draw(t, "type")
		lines := RenderEntry(output.Line(typ, strings.Join(words, " ")), width)

		var got []string
		for _, l := range lines {
			plain := StripANSI(l)
			if len(plain) > width {
				t.Fatalf("line %q exceeds width %d", plain, width)
			}
			got = append(got, strings.Fields(plain)...)
		}
		assert.Equal(t, words, got)
	})
}

// Property: StripANSI(Colorize(color, text)) == text for any ASCII text.
func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{Red, Green, Yellow, Cyan, Bold, BrightBlack}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		color := rapid.SampledFrom(colors).Draw(t, "color")
		assert.Equal(t, text, StripANSI(Colorize(color, text)))
	})
}

// Property: StripANSI output length <= input length.
func TestPropertyStripANSIOutputShorterOrEqual(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		assert.LessOrEqual(t, len(StripANSI(text)), len(text))
	})
}
