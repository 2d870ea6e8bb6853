package terminal

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/recera/vangochart/internal/dataset"
	"github.com/recera/vangochart/pkg/barchart"
)

func layout(t *testing.T, values []float64, labels []string) *barchart.Layout {
	t.Helper()
	l, err := barchart.New(barchart.DefaultOptions()).Layout(values, labels)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRender(t *testing.T) {
	// 55 columns over a 550px plot: ten pixels per cell.
	out := ansi.Strip(Render(layout(t, []float64{1, 12, 45}, []string{"a", "b", "c"}), 55))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "   0") || !strings.HasSuffix(lines[0], "45") {
		t.Errorf("tick row = %q", lines[0])
	}
	if lines[1] != "  ┌"+strings.Repeat("─", 55) {
		t.Errorf("axis row = %q", lines[1])
	}

	tests := []struct {
		line int
		want string
	}{
		{2, "a │█ 1"},
		{3, "b │" + strings.Repeat("█", 12) + " 12"},
		{4, "c │" + strings.Repeat("█", 52) + " 45"},
	}
	for _, tt := range tests {
		if lines[tt.line] != tt.want {
			t.Errorf("line %d = %q, want %q", tt.line, lines[tt.line], tt.want)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	out := ansi.Strip(Render(layout(t, []float64{}, []string{}), 40))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want axis only:\n%s", len(lines), out)
	}
	if strings.TrimSpace(lines[0]) != "0" {
		t.Errorf("tick row = %q", lines[0])
	}
}

func TestRender_AlignsLabels(t *testing.T) {
	out := ansi.Strip(Render(layout(t, []float64{2, 4}, []string{"x", "longer"}), 20))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasPrefix(lines[2], "     x │") || !strings.HasPrefix(lines[3], "longer │") {
		t.Errorf("labels not right-aligned:\n%s", out)
	}
}

func series(values []float64, labels []string) Loader {
	return func() (*dataset.Series, error) {
		return &dataset.Series{Values: values, Labels: labels}, nil
	}
}

func TestModel_Load(t *testing.T) {
	chart := barchart.New(barchart.DefaultOptions())
	m := NewModel("Letters", chart, series([]float64{3, 12, 45}, []string{"a", "b", "c"}))

	if !strings.Contains(ansi.Strip(m.View()), "Loading...") {
		t.Error("expected loading view before first load")
	}

	updated, _ := m.Update(m.Init()())
	m = updated.(Model)
	view := ansi.Strip(m.View())
	for _, want := range []string{"Letters", "3 bars", "total 60.00", " 45"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func TestModel_PlotColsCountsCells(t *testing.T) {
	chart := barchart.New(barchart.DefaultOptions())
	cols := func(label string) int {
		m := NewModel("t", chart, series([]float64{1}, []string{label}))
		updated, _ := m.Update(m.Init()())
		return updated.(Model).plotCols()
	}

	if ascii, accented := cols("cafe"), cols("café"); ascii != accented {
		t.Errorf("plotCols() = %d for %q, %d for %q", ascii, "cafe", accented, "café")
	}
	if got, want := cols("日本"), cols("abcd"); got != want {
		t.Errorf("plotCols() for wide label = %d, want %d", got, want)
	}
}

func TestModel_Keys(t *testing.T) {
	chart := barchart.New(barchart.DefaultOptions())
	m := NewModel("t", chart, series([]float64{1}, []string{"a"}))
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	if cmd == nil || !m.loading {
		t.Error("r should start a reload")
	}
	if _, ok := cmd().(loadedMsg); !ok {
		t.Error("reload should produce loadedMsg")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = updated.(Model)
	if !strings.Contains(ansi.Strip(m.View()), "r reload • ? help • q quit") {
		t.Errorf("help not shown:\n%s", ansi.Strip(m.View()))
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModel_LoadError(t *testing.T) {
	chart := barchart.New(barchart.DefaultOptions())
	m := NewModel("t", chart, func() (*dataset.Series, error) {
		return nil, errors.New("no such file")
	})

	updated, _ := m.Update(m.Init()())
	m = updated.(Model)
	if view := ansi.Strip(m.View()); !strings.Contains(view, "✗ no such file") {
		t.Errorf("view should show error:\n%s", view)
	}
}
