package geofill

import (
	"math/rand"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{48.85661, 48.8566},
		{2.352219, 2.3522},
		{-33.868822, -33.8688},
		{151.209296, 151.2093},
		{0, 0},
		{-0.00004, 0},
		{179.99999, 180},
	}

	for _, tc := range tests {
		if got := Quantize(tc.in); got != tc.want {
			t.Errorf("Quantize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*360 - 180
		q := Quantize(x)
		if qq := Quantize(q); qq != q {
			t.Fatalf("Quantize(Quantize(%v)) = %v, want %v", x, qq, q)
		}
	}
}

func TestQuantizeSymmetric(t *testing.T) {
	for _, x := range []float64{0.12344, 12.98765, 48.85665001, 100.00005001} {
		if got, want := Quantize(-x), -Quantize(x); got != want {
			t.Errorf("Quantize(%v) = %v, want %v", -x, got, want)
		}
	}
}

func TestQuantizeLocation(t *testing.T) {
	got := QuantizeLocation(Location{Lat: 48.856613, Lon: 2.352222})
	want := Location{Lat: 48.8566, Lon: 2.3522}
	if got != want {
		t.Errorf("QuantizeLocation() = %v, want %v", got, want)
	}
}
