package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, count float64
		want              []float64
	}{
		{"chart width 600", 0, 45, 7.5, []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}},
		{"round hundreds", 0, 1000, 10, []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}},
		{"fractional", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"tenths", 0, 1, 7.5, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"degenerate", 0, 0, 7.5, []float64{0}},
		{"no count", 0, 10, 0, nil},
		{"uneven stop", 0, 12, 7.5, []float64{0, 2, 4, 6, 8, 10, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Ticks(%v, %v, %v) mismatch (-want +got):\n%s", tt.start, tt.stop, tt.count, diff)
			}
		})
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		start, stop, count float64
		want              float64
	}{
		{0, 45, 7.5, 5},
		{0, 1, 7.5, 0.1},
		{0, 1000, 10, 100},
		{10, 0, 5, -2},
	}
	for _, tt := range tests {
		if got := TickStep(tt.start, tt.stop, tt.count); got != tt.want {
			t.Errorf("TickStep(%v, %v, %v) = %v, want %v", tt.start, tt.stop, tt.count, got, tt.want)
		}
	}
}

func TestLinear_Scale(t *testing.T) {
	x := NewLinear(0, 45, 50, 600)

	tests := []struct {
		in, want float64
	}{
		{0, 50},
		{45, 600},
		{22.5, 325},
	}
	for _, tt := range tests {
		if got := x.Scale(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Scale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := NewLinear(0, 0, 50, 600).Scale(7); got != 325 {
		t.Errorf("degenerate Scale(7) = %v, want midpoint 325", got)
	}
}

func TestLinear_AxisTicks(t *testing.T) {
	x := NewLinear(0, 2000, 0, 100)
	ticks := x.AxisTicks(5)

	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	want := []string{"0", "500", "1,000", "1,500", "2,000"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if ticks[2].Position != 50 {
		t.Errorf("tick 1,000 at %v, want 50", ticks[2].Position)
	}
}

func TestBand(t *testing.T) {
	y := NewBand([]string{"a", "b", "c"}, 30, 270).Padding(0.1)

	step := 240 / 3.1
	if got := y.Step(); math.Abs(got-step) > 1e-9 {
		t.Errorf("Step() = %v, want %v", got, step)
	}
	if got := y.Bandwidth(); math.Abs(got-step*0.9) > 1e-9 {
		t.Errorf("Bandwidth() = %v, want %v", got, step*0.9)
	}

	first := 30 + (240-step*2.9)/2
	for i, l := range []string{"a", "b", "c"} {
		got, ok := y.Scale(l)
		if !ok {
			t.Fatalf("Scale(%q) not found", l)
		}
		if want := first + step*float64(i); math.Abs(got-want) > 1e-9 {
			t.Errorf("Scale(%q) = %v, want %v", l, got, want)
		}
	}
	if _, ok := y.Scale("zzz"); ok {
		t.Error("Scale(unknown) should report false")
	}
}

func TestBand_Duplicates(t *testing.T) {
	y := NewBand([]string{"a", "b", "a"}, 0, 100)
	if diff := cmp.Diff([]string{"a", "b"}, y.Domain()); diff != "" {
		t.Errorf("Domain() mismatch (-want +got):\n%s", diff)
	}
}

func TestBand_Empty(t *testing.T) {
	y := NewBand(nil, 30, 270).Padding(0.1)
	if n := len(y.AxisTicks(0)); n != 0 {
		t.Errorf("AxisTicks() = %d ticks, want 0", n)
	}
	if bw := y.Bandwidth(); math.IsNaN(bw) || math.IsInf(bw, 0) {
		t.Errorf("Bandwidth() = %v, want finite", bw)
	}
}

func TestBand_Reversed(t *testing.T) {
	y := NewBand([]string{"a", "b"}, 100, 0)
	a, _ := y.Scale("a")
	b, _ := y.Scale("b")
	if !(a > b) {
		t.Errorf("reversed range should place a (%v) after b (%v)", a, b)
	}
}

func TestFormatInteger(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{45, "45"},
		{2.5, "3"},
		{2.4999, "2"},
		{12000, "12000"},
		{-7, "−7"},
		{-0.2, "0"},
	}
	for _, tt := range tests {
		if got := FormatInteger(tt.in); got != tt.want {
			t.Errorf("FormatInteger(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupedFixed(t *testing.T) {
	tests := []struct {
		precision int
		in        float64
		want      string
	}{
		{0, 1000, "1,000"},
		{0, 45, "45"},
		{1, 0.3, "0.3"},
		{1, 1234.5, "1,234.5"},
		{0, -2500, "−2,500"},
	}
	for _, tt := range tests {
		if got := GroupedFixed(tt.precision)(tt.in); got != tt.want {
			t.Errorf("GroupedFixed(%d)(%v) = %q, want %q", tt.precision, tt.in, got, tt.want)
		}
	}
}

func TestPrecisionFixed(t *testing.T) {
	tests := []struct {
		step float64
		want int
	}{
		{5, 0},
		{100, 0},
		{0.1, 1},
		{0.05, 2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := PrecisionFixed(tt.step); got != tt.want {
			t.Errorf("PrecisionFixed(%v) = %d, want %d", tt.step, got, tt.want)
		}
	}
}
