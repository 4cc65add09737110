package main

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, kind ChartKind) model {
	t.Helper()
	config := defaultConfig()
	config.Chart = kind
	config.SaveDirectory = t.TempDir()
	m := initialModel(config, "")
	m.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(key)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m, cmd
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, runeKey(string(r)))
	}
	return m
}

func TestInitialState(t *testing.T) {
	m := newTestModel(t, ChartLine)
	assert.Equal(t, ModeNormal, m.state.Mode)
	assert.True(t, m.state.Running)
	assert.Empty(t, m.state.PathBuffer)
	assert.Nil(t, m.state.Series)
	assert.Empty(t, m.state.LastError)
}

func TestNormalModeKeys(t *testing.T) {
	m := newTestModel(t, ChartLine)

	m, cmd := press(t, m, runeKey("x"))
	assert.Equal(t, ModeNormal, m.state.Mode)
	assert.Nil(t, cmd)
	assert.Empty(t, m.state.PathBuffer, "typing in normal mode does not edit")

	m, _ = press(t, m, runeKey("e"))
	assert.Equal(t, ModeEditing, m.state.Mode)
}

func TestQuitStopsLoop(t *testing.T) {
	m := newTestModel(t, ChartLine)

	m, cmd := press(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.state.Running)
	assert.Empty(t, m.View(), "nothing is drawn after quitting")

	// Later events are ignored.
	m, cmd = press(t, m, runeKey("e"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.state.Mode)
}

func TestQInEditingModeIsText(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), runeKey("q"))
	assert.True(t, m.state.Running)
	assert.Equal(t, "q", m.state.PathBuffer)
}

func TestCtrlCQuitsFromEitherMode(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeEditing} {
		m := newTestModel(t, ChartLine)
		m.state.Mode = mode
		m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.False(t, m.state.Running)
	}
}

func TestEditingBuffer(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, "data")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, runeKey("1.csv"))
	assert.Equal(t, "data 1.csv", m.state.PathBuffer)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "data 1.cs", m.state.PathBuffer)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.state.Mode)
	assert.Equal(t, "data 1.cs", m.state.PathBuffer, "escape keeps the buffer")

	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, m.state.PathBuffer)
}

func TestBackspaceOnEmptyBuffer(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, m.state.PathBuffer)
	assert.Equal(t, ModeEditing, m.state.Mode)
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), runeKey("dätä"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "dät", m.state.PathBuffer)
}

func TestBufferLengthMatchesEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))

	want := 0
	for i := 0; i < 500; i++ {
		if rng.Intn(3) == 0 {
			m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
			if want > 0 {
				want--
			}
		} else {
			m, _ = press(t, m, runeKey(string(rune('a'+rng.Intn(26)))))
			want++
		}
		require.Equal(t, want, utf8.RuneCountInString(m.state.PathBuffer))
	}
}

func TestModeStaysInKnownSet(t *testing.T) {
	keys := []tea.KeyMsg{
		runeKey("e"), runeKey("q"), runeKey("x"), runeKey("s"),
		{Type: tea.KeyEnter}, {Type: tea.KeyEsc}, {Type: tea.KeyBackspace},
		{Type: tea.KeyTab}, {Type: tea.KeyUp}, {Type: tea.KeySpace},
	}
	rng := rand.New(rand.NewSource(3))
	m := newTestModel(t, ChartLine)
	for i := 0; i < 1000 && m.state.Running; i++ {
		m, _ = press(t, m, keys[rng.Intn(len(keys))])
		require.Contains(t, []Mode{ModeNormal, ModeEditing}, m.state.Mode)
	}
}

func TestNonKeyMessagesIgnored(t *testing.T) {
	m := newTestModel(t, ChartLine)
	before := m.state

	next, cmd := m.Update(tea.MouseMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, before, next.(model).state)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	resized := next.(model)
	assert.Equal(t, 120, resized.width)
	assert.Equal(t, 40, resized.height)
	assert.Equal(t, before, resized.state)
}

func TestSubmitLoadsFile(t *testing.T) {
	path := writeCSV(t, "a.csv", "1,2\n3,4\ninvalid,9\n5,6")

	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeNormal, m.state.Mode)
	assert.Empty(t, m.state.LastError)
	require.NotNil(t, m.state.Series)

	line := m.state.Series.(*LineSeries)
	assert.Equal(t, []Point{{1, 2}, {3, 4}, {5, 6}}, line.Points())
	assert.Equal(t, AxisBounds{XMin: 1, XMax: 5, YMin: 2, YMax: 6}, line.Bounds())
	assert.Equal(t, path, m.state.Source)
}

func TestSubmitFailureKeepsEditingAndSeries(t *testing.T) {
	good := writeCSV(t, "a.csv", "1,2\n3,4\n")
	bad := writeCSV(t, "b.csv", "x,y,z\n")

	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, good)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.state.Series)
	loaded := m.state.Series

	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyCtrlU})
	m = typeText(t, m, bad)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeEditing, m.state.Mode)
	assert.Contains(t, m.state.LastError, "no valid data")
	assert.Same(t, loaded, m.state.Series, "previous series kept")

	// Correcting the path clears the error.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = typeText(t, m, good)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.state.LastError)
	assert.Equal(t, ModeNormal, m.state.Mode)
}

func TestSubmitMissingFileAndEmptyPath(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.csv")} {
		m := newTestModel(t, ChartLine)
		m, _ = press(t, m, runeKey("e"))
		m = typeText(t, m, path)
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, m.state.Running)
		assert.Equal(t, ModeEditing, m.state.Mode)
		assert.NotEmpty(t, m.state.LastError)
		assert.Nil(t, m.state.Series)
	}
}

func TestReloadReplacesSeries(t *testing.T) {
	path := writeCSV(t, "a.csv", "1,2\n3,4\n")

	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.state.Series.(*LineSeries).Points()

	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyEnter})
	second := m.state.Series.(*LineSeries).Points()
	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestCategoryLoad(t *testing.T) {
	path := writeCSV(t, "cat.csv", "\"a\",3\n\"b\",7\n\"c\",1\n")

	m := newTestModel(t, ChartBar)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.state.Series)
	bars := m.state.Series.(*CategorySeries).Bars()
	require.Len(t, bars, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{bars[0].Color, bars[1].Color, bars[2].Color})
}

func TestPasteFromClipboard(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m.readClipboard = func() (string, error) { return "/tmp/some\tfile.csv\nsecond line", nil }

	m, _ = press(t, m, runeKey("e"), runeKey("x"), tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Equal(t, "x/tmp/somefile.csv", m.state.PathBuffer)
}

func TestPasteFailureShowsNotice(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Empty(t, m.state.PathBuffer)
	assert.Equal(t, "Clipboard unavailable", m.state.Notice)
	assert.Empty(t, m.state.LastError)

	m, _ = press(t, m, runeKey("a"))
	assert.Empty(t, m.state.Notice, "notices last one key press")
}

func TestMultiRuneKeyMessage(t *testing.T) {
	// Terminals deliver a pasted path as one message carrying every rune.
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dir/file.csv\n")})
	assert.Equal(t, "dir/file.csv", m.state.PathBuffer)
}

func TestAltRunesIgnored(t *testing.T) {
	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true})
	assert.Empty(t, m.state.PathBuffer)
}

func TestExportChart(t *testing.T) {
	path := writeCSV(t, "sales.csv", "1,2\n3,4\n")

	m := newTestModel(t, ChartLine)
	var exported ChartPanel
	var exportedTo string
	m.exportPNG = func(panel ChartPanel, filename string) error {
		exported, exportedTo = panel, filename
		return nil
	}

	m, _ = press(t, m, runeKey("s"))
	assert.Contains(t, m.state.Notice, "Nothing to export")
	assert.Empty(t, exportedTo)

	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runeKey("s"))

	assert.Equal(t, filepath.Join(m.config.SaveDirectory, "sales.png"), exportedTo)
	assert.Equal(t, "Data Chart (sales.csv)", exported.Title)
	assert.Len(t, exported.Points, 2)
	assert.Equal(t, "Exported "+exportedTo, m.state.Notice)
	assert.Equal(t, ModeNormal, m.state.Mode)
}

func TestExportChartAsText(t *testing.T) {
	path := writeCSV(t, "sales.csv", "1,2\n3,4\n")

	m := newTestModel(t, ChartLine)
	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runeKey("t"))

	saved := filepath.Join(m.config.SaveDirectory, "sales.txt")
	assert.Equal(t, "Exported "+saved, m.state.Notice)

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Data Chart (sales.csv)")
	assert.Contains(t, string(data), "•")
	assert.NotContains(t, string(data), "\x1b[", "colors are stripped")
}

func TestExportFailure(t *testing.T) {
	path := writeCSV(t, "a.csv", "1,2\n")
	m := newTestModel(t, ChartLine)
	m.exportPNG = func(ChartPanel, string) error { return errors.New("disk full") }

	m, _ = press(t, m, runeKey("e"))
	m = typeText(t, m, path)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runeKey("s"))
	assert.Equal(t, "Export failed: disk full", m.state.Notice)
	assert.Empty(t, m.state.LastError)
}

func TestInitialPathIsLoaded(t *testing.T) {
	path := writeCSV(t, "a.csv", "1,2\n3,4\n")

	m := initialModel(defaultConfig(), path)
	assert.Equal(t, ModeNormal, m.state.Mode)
	require.NotNil(t, m.state.Series)
	assert.Equal(t, 2, m.state.Series.Len())

	missing := filepath.Join(t.TempDir(), "missing.csv")
	m = initialModel(defaultConfig(), missing)
	assert.Equal(t, ModeEditing, m.state.Mode)
	assert.Equal(t, missing, m.state.PathBuffer)
	assert.NotEmpty(t, m.state.LastError)
}

func TestHomeRelativePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "x.csv"), expandHome("~/x.csv"))
	assert.Equal(t, "rel/x.csv", expandHome("rel/x.csv"))
}
