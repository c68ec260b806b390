package layout

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/latviz/internal/lattice"
)

func active(lengths ...float64) []lattice.Active {
	out := make([]lattice.Active, len(lengths))
	for i, l := range lengths {
		out[i] = lattice.Active{Index: i, Element: lattice.Element{Kind: lattice.Kinds[i%len(lattice.Kinds)], Length: l}}
	}
	return out
}

func widths(r Result) []int {
	w := make([]int, len(r.Segments))
	for i, s := range r.Segments {
		w[i] = s.Width
	}
	return w
}

func TestCompute_Proportional(t *testing.T) {
	res, err := Compute(active(2, 3, 5), 10, 1000, DefaultPolicy())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := []int{200, 300, 500}
	got := widths(res)
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d width = %d, want %d", i, got[i], want[i])
		}
	}
	if res.Padding != DefaultPadding {
		t.Errorf("padding = %d, want %d", res.Padding, DefaultPadding)
	}
	if res.Width() != 1000+2*DefaultPadding {
		t.Errorf("Width() = %d", res.Width())
	}
}

func TestPixelWidth(t *testing.T) {
	tests := []struct {
		name          string
		length, ratio float64
		want          int
	}{
		{"zero length", 0, 100, 0},
		{"sub pixel", 0.001, 100, 1},
		{"just under one", 0.0099, 100, 1},
		{"exactly one", 0.01, 100, 1},
		{"truncates", 1.999, 1, 1},
		{"truncates large", 2.75, 100, 275},
		{"zero ratio", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelWidth(tt.length, tt.ratio); got != tt.want {
				t.Errorf("PixelWidth(%g, %g) = %d, want %d", tt.length, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestCompute_DropsZeroWidth(t *testing.T) {
	res, err := Compute(active(1, 0, 1, 0), 2, 100, DefaultPolicy())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(res.Segments))
	}
	if res.Segments[0].Index != 0 || res.Segments[1].Index != 2 {
		t.Errorf("unexpected indices %+v", res.Segments)
	}
	if res.Segments[0].Width != 50 || res.Segments[1].Width != 50 {
		t.Errorf("zero-length elements changed neighbour widths: %v", widths(res))
	}
}

func TestCompute_SubPixelVisible(t *testing.T) {
	res, _ := Compute(active(1000, 0.001, 1000), 2000.001, 1000, DefaultPolicy())
	if len(res.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(res.Segments))
	}
	if res.Segments[1].Width != 1 {
		t.Errorf("sub-pixel element width = %d, want 1", res.Segments[1].Width)
	}
}

func TestCompute_Degenerate(t *testing.T) {
	for _, total := range []float64{0, math.NaN()} {
		if _, err := Compute(active(0, 0), total, 1000, DefaultPolicy()); !errors.Is(err, ErrDegenerateLattice) {
			t.Errorf("total %v: expected ErrDegenerateLattice, got %v", total, err)
		}
	}
}

func TestCompute_SingleElement(t *testing.T) {
	res, _ := Compute(active(7.3), 7.3, 1000, DefaultPolicy())
	if len(res.Segments) != 1 || res.Segments[0].Width != 1000 {
		t.Errorf("expected one 1000px segment, got %v", widths(res))
	}
}

func TestCompute_BoundedRoundingError(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(60)
		lengths := make([]float64, n)
		total := 0.0
		for i := range lengths {
			switch rng.Intn(4) {
			case 0:
				lengths[i] = 0
			case 1:
				lengths[i] = rng.Float64() * 0.01
			default:
				lengths[i] = rng.Float64() * 5
			}
			total += lengths[i]
		}
		if total == 0 {
			continue
		}
		target := rng.Intn(3000)

		res, err := Compute(active(lengths...), total, target, Policy{})
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		sum := 0
		for _, s := range res.Segments {
			sum += s.Width
			if s.Width < 1 {
				t.Fatalf("trial %d: segment with width %d", trial, s.Width)
			}
		}
		if sum > target+n {
			t.Errorf("trial %d: sum %d exceeds %d + %d", trial, sum, target, n)
		}
		for _, s := range res.Segments {
			if lengths[s.Index] == 0 {
				t.Errorf("trial %d: zero-length element %d produced a segment", trial, s.Index)
			}
		}
	}
}

func TestCompute_OrderFollowsInput(t *testing.T) {
	lengths := []float64{1, 4, 2, 3}
	perm := []int{2, 0, 3, 1}

	base, _ := Compute(active(lengths...), 10, 1000, DefaultPolicy())

	permuted := make([]lattice.Active, len(perm))
	for i, p := range perm {
		permuted[i] = lattice.Active{Index: p, Element: lattice.Element{Length: lengths[p]}}
	}
	res, _ := Compute(permuted, 10, 1000, DefaultPolicy())

	for i, p := range perm {
		if res.Segments[i].Index != p || res.Segments[i].Width != base.Segments[p].Width {
			t.Errorf("segment %d = %+v, want index %d width %d", i, res.Segments[i], p, base.Segments[p].Width)
		}
	}
}

func TestStrip_ClampsWidth(t *testing.T) {
	lat, _ := lattice.New([]lattice.Element{{Length: 1}, {Length: 1}})
	res, err := Strip(lat, 100, DefaultPolicy())
	if err != nil {
		t.Fatalf("Strip failed: %v", err)
	}
	if got := widths(res); got[0] != 440 || got[1] != 440 {
		t.Errorf("expected widths clamped to 880 total, got %v", got)
	}
}

func TestStrip_Window(t *testing.T) {
	lat, _ := lattice.New([]lattice.Element{{Length: 5}, {Length: 2}, {Length: 3}, {Length: 5}})
	if err := lat.SetWindow(5, 10); err != nil {
		t.Fatal(err)
	}
	res, _ := Strip(lat, 1000, DefaultPolicy())
	if len(res.Segments) != 2 || res.Segments[0].Index != 1 || res.Segments[0].Width != 400 {
		t.Errorf("unexpected windowed strip %+v", res.Segments)
	}
}

func TestResultAt(t *testing.T) {
	res := Result{Padding: 10, Segments: []Segment{{Width: 5}, {Width: 3}}}
	tests := []struct {
		px   int
		seg  int
		isOK bool
	}{
		{0, 0, false},
		{9, 0, false},
		{10, 0, true},
		{14, 0, true},
		{15, 1, true},
		{17, 1, true},
		{18, 0, false},
	}
	for _, tt := range tests {
		seg, ok := res.At(tt.px)
		if ok != tt.isOK || (ok && seg != tt.seg) {
			t.Errorf("At(%d) = (%d, %v), want (%d, %v)", tt.px, seg, ok, tt.seg, tt.isOK)
		}
	}
}

func TestResultSample(t *testing.T) {
	res := Result{Padding: 0, Segments: []Segment{{Width: 50}, {Width: 50}}}
	cols := res.Sample(4)
	want := []int{0, 0, 1, 1}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("Sample[%d] = %d, want %d", i, cols[i], want[i])
		}
	}
}

func TestColourCoversEveryKind(t *testing.T) {
	seen := map[string]lattice.Kind{}
	for _, k := range lattice.Kinds {
		c := string(Colour(k))
		if c == "" {
			t.Errorf("kind %v has no colour", k)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("kinds %v and %v share colour %s", prev, k, c)
		}
		seen[c] = k
	}
}
