package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chepyshell/internal/catalog"
	"chepyshell/internal/session"
)

func testCatalog() catalog.Loader {
	return catalog.Static{C: catalog.New(
		catalog.MethodSpec{
			Name:             "convert",
			Params:           []catalog.ParamSpec{{Flag: "base", Description: "numeric base"}},
			ShortDescription: "Convert the state",
			ReturnTypeName:   "Chepy",
		},
		catalog.MethodSpec{
			Name:             "length",
			ShortDescription: "Length of the state",
			ReturnTypeName:   "int",
		},
		catalog.MethodSpec{
			Name:             "reverse",
			ShortDescription: "Reverse the state",
		},
	)}
}

func texts(completions []Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Text
	}
	return out
}

func TestDocument_WordBeforeCursor(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{name: "empty", doc: NewDocument(""), want: ""},
		{name: "single word", doc: NewDocument("conv"), want: "conv"},
		{name: "trailing space", doc: NewDocument("convert "), want: ""},
		{name: "flag", doc: NewDocument("convert --ba"), want: "--ba"},
		{name: "cursor mid line", doc: Document{Text: "to_hex length", CursorPosition: 4}, want: "to_h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.WordBeforeCursor())
		})
	}
}

func TestProvider_FlagsBeforeMethodsAfterRecognizedMethod(t *testing.T) {
	state := session.New()
	p := NewProvider(testCatalog(), state, "Chepy")

	got := p.Complete(NewDocument("convert "))
	require.Equal(t, []string{"--base", "convert", "length", "reverse"}, texts(got))

	assert.Equal(t, "numeric base", got[0].DisplayMeta)
	assert.Equal(t, StyleNone, got[0].Style)
	assert.Equal(t, 0, got[0].StartPosition)
	assert.Equal(t, "Convert the state", got[1].DisplayMeta)
	assert.Equal(t, StyleNone, got[1].Style)
	assert.Equal(t, StyleChainBreak, got[2].Style)
	assert.Equal(t, StyleNone, got[3].Style, "undocumented return type is not styled")

	assert.Equal(t, []session.FlagOption{{Name: "--base", Description: "numeric base"}}, state.PendingFlagOptions)
}

func TestProvider_PrefixFilter(t *testing.T) {
	p := NewProvider(testCatalog(), session.New(), "Chepy")

	got := p.Complete(NewDocument("conver"))
	require.Equal(t, []string{"convert"}, texts(got))
	assert.Equal(t, -6, got[0].StartPosition)

	assert.Empty(t, p.Complete(NewDocument("Conv")), "matching is case-sensitive")
	assert.Equal(t, []string{"convert", "length", "reverse"}, texts(p.Complete(NewDocument(""))))
}

func TestProvider_FlagRegionUsesPendingFlags(t *testing.T) {
	state := session.New()
	p := NewProvider(testCatalog(), state, "Chepy")

	assert.Empty(t, p.Complete(NewDocument("convert --")), "no method recognized yet")

	p.Complete(NewDocument("convert "))

	got := p.Complete(NewDocument("convert --b"))
	require.Equal(t, []string{"--base"}, texts(got))
	assert.Equal(t, -3, got[0].StartPosition)

	assert.Equal(t, []string{"--base"}, texts(p.Complete(NewDocument("length --base 2 --"))),
		"pending flags persist until another method is recognized")
}

func TestProvider_MethodWithoutFlagsResetsPending(t *testing.T) {
	state := session.New()
	p := NewProvider(testCatalog(), state, "Chepy")

	p.Complete(NewDocument("convert "))
	p.Complete(NewDocument("convert length "))
	assert.Empty(t, state.PendingFlagOptions)
}

func TestMerge(t *testing.T) {
	a := CompleterFunc(func(Document) []Completion { return []Completion{{Text: "a"}} })
	b := CompleterFunc(func(Document) []Completion { return []Completion{{Text: "b"}, {Text: "c"}} })

	assert.Equal(t, []string{"a", "b", "c"}, texts(Merge(a, b).Complete(NewDocument(""))))
}

func TestFuzzy(t *testing.T) {
	state := session.New()
	f := Fuzzy(NewProvider(testCatalog(), state, "Chepy"))

	got := f.Complete(NewDocument("cnvrt"))
	require.NotEmpty(t, got)
	assert.Equal(t, "convert", got[0].Text)
	assert.Equal(t, -5, got[0].StartPosition)

	assert.Equal(t, []string{"convert", "length", "reverse"}, texts(f.Complete(NewDocument(""))))

	f.Complete(NewDocument("convert "))
	got = f.Complete(NewDocument("convert --bs"))
	require.Equal(t, []string{"--base"}, texts(got))
	assert.Equal(t, -4, got[0].StartPosition)

	assert.Empty(t, f.Complete(NewDocument("zzz")))
}

func TestReadlineAdapter_Do(t *testing.T) {
	a := NewReadlineAdapter(NewProvider(testCatalog(), session.New(), "Chepy"), nil)

	candidates, length := a.Do([]rune("conv"), 4)
	assert.Equal(t, [][]rune{[]rune("ert")}, candidates)
	assert.Equal(t, 4, length)

	candidates, length = a.Do([]rune("convert "), 8)
	assert.Len(t, candidates, 4)
	assert.Equal(t, 0, length)
}

func TestReadlineAdapter_TabReplacesFuzzyMatch(t *testing.T) {
	a := NewReadlineAdapter(Fuzzy(NewProvider(testCatalog(), session.New(), "Chepy")), nil)

	line := []rune("cnvrt")
	newLine, pos, ok := a.OnChange(line, len(line), '\t')
	require.True(t, ok)
	assert.Equal(t, "convert", string(newLine))
	assert.Equal(t, 7, pos)

	line = []rune("conv")
	_, _, ok = a.OnChange(line, len(line), '\t')
	assert.False(t, ok, "prefix matches are left to readline")
}

func TestReadlineAdapter_Hints(t *testing.T) {
	var hinted []Completion
	a := NewReadlineAdapter(NewProvider(testCatalog(), session.New(), "Chepy"), func(_ Document, c []Completion) {
		hinted = c
	})

	line := []rune("len")
	_, _, ok := a.OnChange(line, len(line), 'n')
	assert.False(t, ok)
	assert.Equal(t, []string{"length"}, texts(hinted))

	hinted = nil
	_, _, _ = a.OnChange(line, len(line), '\r')
	assert.Nil(t, hinted, "no hint once the line is accepted")
}

func TestReadlineAdapter_FlagsWithoutHints(t *testing.T) {
	state := session.New()
	a := NewReadlineAdapter(Fuzzy(Merge(NewProvider(testCatalog(), state, "Chepy"))), nil)

	var line []rune
	for _, key := range "convert --" {
		line = append(line, key)
		_, _, ok := a.OnChange(line, len(line), key)
		assert.False(t, ok)
	}
	require.NotEmpty(t, state.PendingFlagOptions)

	candidates, length := a.Do(line, len(line))
	assert.Equal(t, [][]rune{[]rune("base")}, candidates)
	assert.Equal(t, 2, length)
}
