package imaging

import (
	"image"
	"image/color"
	"math"
)

// ToGray converts an image to grayscale.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// MeanStdDev returns the mean and standard deviation of grayscale intensity.
func MeanStdDev(gray *image.Gray) (float64, float64) {
	bounds := gray.Bounds()
	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return 0, 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
		}
	}
	mean := sum / total

	var sqDiff float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := float64(gray.GrayAt(x, y).Y) - mean
			sqDiff += d * d
		}
	}

	return mean, math.Sqrt(sqDiff / total)
}

// DarkFraction returns the fraction of pixels with intensity strictly below
// the given threshold.
func DarkFraction(gray *image.Gray, below uint8) float64 {
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	dark := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y < below {
				dark++
			}
		}
	}

	return float64(dark) / float64(total)
}

// ChannelMeans returns the mean red, green and blue channel values.
func ChannelMeans(img image.Image) (float64, float64, float64) {
	bounds := img.Bounds()
	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return 0, 0, 0
	}

	var sumR, sumG, sumB float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
		}
	}

	return sumR / total, sumG / total, sumB / total
}
