package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestColorNameTotal(t *testing.T) {
	// Every RGB triple must map to exactly one of the ten fixed names.
	valid := map[string]bool{
		"white": true, "black": true, "red": true, "brown": true,
		"green": true, "blue": true, "yellow": true, "magenta": true,
		"cyan": true, "gray": true,
	}

	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				name := ColorName(float64(r), float64(g), float64(b))
				if !valid[name] {
					t.Fatalf("ColorName(%d,%d,%d) = %q, not a known name", r, g, b, name)
				}
			}
		}
	}
}

func TestColorNameKnownValues(t *testing.T) {
	tests := []struct {
		r, g, b float64
		want    string
	}{
		{255, 255, 255, "white"},
		{10, 10, 10, "black"},
		{220, 30, 30, "red"},
		{120, 60, 40, "brown"},
		{30, 180, 30, "green"},
		{30, 30, 200, "blue"},
		{128, 128, 128, "gray"},
	}

	for _, tt := range tests {
		if got := ColorName(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("ColorName(%.0f,%.0f,%.0f) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		hue     uint8
		minSat  uint8
	}{
		{255, 0, 0, 0, 200},   // pure red
		{0, 255, 0, 60, 200},  // pure green
		{0, 0, 255, 120, 200}, // pure blue
		{255, 255, 255, 0, 0}, // white: zero saturation
	}

	for _, tt := range tests {
		h, s, _ := RGBToHSV(tt.r, tt.g, tt.b)
		if h != tt.hue {
			t.Errorf("RGBToHSV(%d,%d,%d) hue = %d, want %d", tt.r, tt.g, tt.b, h, tt.hue)
		}
		if s < tt.minSat {
			t.Errorf("RGBToHSV(%d,%d,%d) sat = %d, want >= %d", tt.r, tt.g, tt.b, s, tt.minSat)
		}
	}
}

func TestHueBandRatio(t *testing.T) {
	// Fully green image: the whole frame sits in the green hue band.
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 200, B: 30, A: 255})
		}
	}

	green := HueBandRatio(img, 35, 85, 50)
	if green < 0.99 {
		t.Errorf("Expected green ratio ~1.0, got %f", green)
	}

	blue := HueBandRatio(img, 100, 130, 50)
	if blue != 0 {
		t.Errorf("Expected blue ratio 0, got %f", blue)
	}
}

func TestSobelAndContour(t *testing.T) {
	// White rectangle on black background
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	edges := SobelEdges(img, DefaultEdgeThreshold)

	density := EdgeDensity(edges, edges.Bounds())
	if density == 0 {
		t.Fatal("Expected non-zero edge density for rectangle outline")
	}

	rect, ok := LargestContour(edges)
	if !ok {
		t.Fatal("Expected at least one contour, got none")
	}
	if rect.Dx() < 80 || rect.Dy() < 80 {
		t.Errorf("Contour too small: %v", rect)
	}

	t.Logf("Detected contour %v with edge density %.4f", rect, density)
}

func TestEdgeDensityFlatImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	edges := SobelEdges(img, DefaultEdgeThreshold)

	if d := EdgeDensity(edges, edges.Bounds()); d != 0 {
		t.Errorf("Expected zero density on flat image, got %f", d)
	}
}

func TestMeanStdDev(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	mean, std := MeanStdDev(img)
	if mean != 200 {
		t.Errorf("Expected mean 200, got %f", mean)
	}
	if std != 0 {
		t.Errorf("Expected zero stddev on uniform image, got %f", std)
	}
}

func TestDarkFraction(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	// Half the pixels dark
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			img.SetGray(x, y, color.Gray{Y: 10})
		}
	}
	for y := 5; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	if d := DarkFraction(img, 50); d != 0.5 {
		t.Errorf("Expected dark fraction 0.5, got %f", d)
	}
}

func TestDominantColorNames(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 220, G: 20, B: 20, A: 255})
		}
	}

	names := DominantColorNames(img, 5)
	if len(names) == 0 || len(names) > 3 {
		t.Fatalf("Expected 1-3 names, got %v", names)
	}
	if names[0] != "red" {
		t.Errorf("Expected dominant color red, got %v", names)
	}

	// Deterministic across runs
	again := DominantColorNames(img, 5)
	if len(again) != len(names) || again[0] != names[0] {
		t.Errorf("Expected deterministic clustering, got %v then %v", names, again)
	}
}

func TestCenterCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	crop := CenterCrop(img)

	if crop.Bounds().Dx() != 50 || crop.Bounds().Dy() != 40 {
		t.Errorf("Expected 50x40 crop, got %v", crop.Bounds())
	}
}
