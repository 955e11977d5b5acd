package geo_test

import (
	"errors"
	"math"
	"testing"

	"camPark/internal/geo"
	"camPark/pkg/e"
)

func TestHaversineM_ZeroDistance(t *testing.T) {
	t.Parallel()

	d := geo.HaversineM(49.2505, -123.0016, 49.2505, -123.0016)
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineM_KnownDistance(t *testing.T) {
	t.Parallel()

	// One degree of latitude at the campus longitude is ~111.19 km on the
	// 6371 km sphere.
	d := geo.HaversineM(49.0, -123.0, 50.0, -123.0)
	want := geo.EarthRadiusM * math.Pi / 180.0
	if math.Abs(d-want) > 1e-6 {
		t.Fatalf("expected %f, got %f", want, d)
	}
}

func TestHaversineM_Symmetric(t *testing.T) {
	t.Parallel()

	d1 := geo.HaversineM(49.2505, -123.0016, 49.2512, -123.0040)
	d2 := geo.HaversineM(49.2512, -123.0040, 49.2505, -123.0016)
	if math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f and %f", d1, d2)
	}
}

func TestHaversineM_DateLine(t *testing.T) {
	t.Parallel()

	// Points straddling the antimeridian are ~222.39 km apart, not half the
	// planet.
	d := geo.HaversineM(0, 179, 0, -179)
	want := 2 * geo.EarthRadiusM * math.Pi / 180.0
	if math.Abs(d-want) > 1.0 {
		t.Fatalf("expected ~%f, got %f", want, d)
	}
}

func TestValidateCoordinate(t *testing.T) {
	t.Parallel()

	if err := geo.ValidateCoordinate(49.2505, -123.0016); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	bad := [][2]float64{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	}
	for _, c := range bad {
		if err := geo.ValidateCoordinate(c[0], c[1]); !errors.Is(err, e.ErrInvalidCoordinates) {
			t.Fatalf("lat=%f lng=%f: expected ErrInvalidCoordinates, got %v", c[0], c[1], err)
		}
	}
}
