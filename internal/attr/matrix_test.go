package attr

import (
	"math"
	"testing"
)

func approxMatrix(t *testing.T, got, want Matrix) {
	t.Helper()
	const eps = 1e-9
	vals := [][2]float64{
		{got.A, want.A}, {got.B, want.B}, {got.C, want.C},
		{got.D, want.D}, {got.E, want.E}, {got.F, want.F},
	}
	for _, v := range vals {
		if math.Abs(v[0]-v[1]) > eps {
			t.Fatalf("Matrix mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestParseMatrixIdentity(t *testing.T) {
	m, err := ParseMatrix("")
	if err != nil {
		t.Fatal(err)
	}
	approxMatrix(t, m, identityMatrix)
}

func TestParseMatrixTranslate(t *testing.T) {
	m, err := ParseMatrix("translate(10, 20)")
	if err != nil {
		t.Fatal(err)
	}
	approxMatrix(t, m, Matrix{A: 1, D: 1, E: 10, F: 20})
}

func TestParseMatrixScale(t *testing.T) {
	m, err := ParseMatrix("scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	approxMatrix(t, m, Matrix{A: 2, D: 2})
}

func TestParseMatrixComposedChain(t *testing.T) {
	m, err := ParseMatrix("translate(10,0) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	// The rightmost function applies to a point first:
	// point (1,0) -> scale -> (2,0) -> translate -> (12,0)
	x, y := applyMatrix(m, 1, 0)
	if math.Abs(x-12) > 1e-9 || math.Abs(y-0) > 1e-9 {
		t.Fatalf("applied composed matrix = (%v,%v), want (12,0)", x, y)
	}
}

func TestParseMatrixRotateAroundCenter(t *testing.T) {
	m, err := ParseMatrix("rotate(90,10,10)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := applyMatrix(m, 10, 10)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Fatalf("rotation center should be a fixed point, got (%v,%v)", x, y)
	}
}

func TestParseMatrixUnknownFunction(t *testing.T) {
	if _, err := ParseMatrix("bogus(1,2)"); err == nil {
		t.Fatal("expected error for unknown transform function")
	}
}

func TestMatrixToStringRoundTrip(t *testing.T) {
	m := Matrix{A: 1, B: 0, C: 0, D: 1, E: 5, F: 6}
	got := m.ToString()
	want := "matrix(1,0,0,1,5,6)"
	if got != want {
		t.Errorf("ToString() = %q, want %q", got, want)
	}
}

func TestMatrixHashStableAcrossNoise(t *testing.T) {
	h1 := newTestHash()
	h2 := newTestHash()

	m1 := Matrix{A: 1.000000001, D: 1}
	m2 := Matrix{A: 1.000000002, D: 1}
	m1.HashWithModifier(true, false, &h1)
	m2.HashWithModifier(true, false, &h2)

	if h1.Sum64() != h2.Sum64() {
		t.Errorf("matrices differing below 1e-8 should hash equal")
	}
}

// applyMatrix applies m to the point (x, y).
func applyMatrix(m Matrix, x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}
