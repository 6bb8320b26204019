package imaging

import (
	"image"
	"math"
	"math/rand"

	"golang.org/x/image/draw"
)

// clusterSeed pins the k-means initialization so dominant-color extraction is
// deterministic for a given image.
const clusterSeed = 42

// maxClusterDim bounds the sample grid fed to k-means. Clustering is about
// cluster centers, not per-pixel labels, so a downscaled copy is sufficient.
const maxClusterDim = 96

// DominantColorNames clusters the image's pixels into k groups and maps each
// cluster center to its nearest named color. Duplicate names are dropped and
// at most three names are returned, ordered by cluster weight.
func DominantColorNames(img image.Image, k int) []string {
	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return []string{"neutral"}
	}
	if k > len(pixels) {
		k = len(pixels)
	}

	centers := kMeans(pixels, k)

	var names []string
	for _, c := range centers {
		name := ColorName(c[0], c[1], c[2])
		seen := false
		for _, n := range names {
			if n == name {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, name)
		}
		if len(names) == 3 {
			break
		}
	}

	return names
}

// ColorName maps an RGB triple to one of ten fixed color names. The mapping
// is total: every triple in [0,255]^3 resolves to exactly one name.
func ColorName(r, g, b float64) string {
	switch {
	case r > 200 && g > 200 && b > 200:
		return "white"
	case r < 50 && g < 50 && b < 50:
		return "black"
	case r > g && r > b:
		if r > 150 {
			return "red"
		}
		return "brown"
	case g > r && g > b:
		return "green"
	case b > r && b > g:
		return "blue"
	case r > 150 && g > 150:
		return "yellow"
	case r > 150 && b > 150:
		return "magenta"
	case g > 150 && b > 150:
		return "cyan"
	default:
		return "gray"
	}
}

// CenterCrop returns the middle half of the image in both dimensions, the
// region where a subject's clothing is expected.
func CenterCrop(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	crop := image.Rect(
		bounds.Min.X+w/4, bounds.Min.Y+h/4,
		bounds.Min.X+3*w/4, bounds.Min.Y+3*h/4,
	)

	dst := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Copy(dst, image.Point{}, img, crop, draw.Src, nil)
	return dst
}

// samplePixels returns the image's pixels as RGB triples, downscaling large
// images to keep clustering bounded.
func samplePixels(img image.Image) [][3]float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	if w > maxClusterDim || h > maxClusterDim {
		scale := float64(maxClusterDim) / float64(w)
		if h > w {
			scale = float64(maxClusterDim) / float64(h)
		}
		sw := int(math.Max(1, float64(w)*scale))
		sh := int(math.Max(1, float64(h)*scale))

		small := image.NewRGBA(image.Rect(0, 0, sw, sh))
		draw.ApproxBiLinear.Scale(small, small.Bounds(), img, bounds, draw.Src, nil)
		img = small
		bounds = small.Bounds()
	}

	pixels := make([][3]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, [3]float64{
				float64(r >> 8), float64(g >> 8), float64(b >> 8),
			})
		}
	}

	return pixels
}

// kMeans runs Lloyd's algorithm over RGB triples and returns the cluster
// centers ordered by descending cluster size.
func kMeans(pixels [][3]float64, k int) [][3]float64 {
	rng := rand.New(rand.NewSource(clusterSeed))

	centers := make([][3]float64, k)
	for i := range centers {
		centers[i] = pixels[rng.Intn(len(pixels))]
	}

	labels := make([]int, len(pixels))

	for iter := 0; iter < 10; iter++ {
		changed := false

		for i, p := range pixels {
			best, bestDist := 0, math.MaxFloat64
			for j, c := range centers {
				d := sqDist(p, c)
				if d < bestDist {
					best, bestDist = j, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		sums := make([][3]float64, k)
		counts := make([]int, k)
		for i, p := range pixels {
			l := labels[i]
			sums[l][0] += p[0]
			sums[l][1] += p[1]
			sums[l][2] += p[2]
			counts[l]++
		}
		for j := range centers {
			if counts[j] == 0 {
				// Re-seed an empty cluster rather than collapsing to zero.
				centers[j] = pixels[rng.Intn(len(pixels))]
				continue
			}
			n := float64(counts[j])
			centers[j] = [3]float64{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
		}

		if !changed && iter > 0 {
			break
		}
	}

	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	// Order centers by cluster weight, largest first.
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if counts[order[j]] > counts[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	out := make([][3]float64, k)
	for i, idx := range order {
		out[i] = centers[idx]
	}
	return out
}

func sqDist(a, b [3]float64) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return d0*d0 + d1*d1 + d2*d2
}
