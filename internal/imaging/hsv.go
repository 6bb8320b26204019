package imaging

import "image"

// RGBToHSV converts 8-bit RGB to HSV on the OpenCV scale: hue in [0,179],
// saturation and value in [0,255]. The classification thresholds used by the
// analyzer are defined on this scale.
func RGBToHSV(r, g, b uint8) (uint8, uint8, uint8) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}
	delta := max - min

	var hue float64
	switch {
	case delta == 0:
		hue = 0
	case max == rf:
		hue = 60 * (gf - bf) / delta
	case max == gf:
		hue = 120 + 60*(bf-rf)/delta
	default:
		hue = 240 + 60*(rf-gf)/delta
	}
	if hue < 0 {
		hue += 360
	}

	var sat float64
	if max > 0 {
		sat = delta / max
	}

	return uint8(hue / 2), uint8(sat * 255), uint8(max * 255)
}

// HueBandRatio returns the fraction of pixels whose hue falls strictly inside
// (loHue, hiHue) with saturation above minSat, on the OpenCV scale.
func HueBandRatio(img image.Image, loHue, hiHue, minSat uint8) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			h, s, _ := RGBToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			if s > minSat && h > loHue && h < hiHue {
				count++
			}
		}
	}

	return float64(count) / float64(total)
}

// MeanSaturation returns the average saturation on the OpenCV [0,255] scale.
func MeanSaturation(img image.Image) float64 {
	bounds := img.Bounds()
	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			_, s, _ := RGBToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			sum += float64(s)
		}
	}

	return sum / total
}
