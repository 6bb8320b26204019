package analyzer

import (
	"image"

	"github.com/framepack/promptgen/internal/imaging"
)

// Threshold constants for the heuristic classifiers. These are empirically
// chosen contracts; changing any of them changes classification behavior.
const (
	greenRatioOutdoor = 0.3
	greenRatioGarden  = 0.5
	blueRatioOutdoor  = 0.2
	blueRatioSky      = 0.4

	edgeDensityComplex  = 0.10
	edgeDensityModerate = 0.05

	positionCenterBand = 0.2

	sizeLargeRatio  = 0.4
	sizeMediumRatio = 0.2

	poseStandingAspect = 1.5
	poseSittingAspect  = 0.8

	brightnessBright = 180
	brightnessMedium = 120

	contrastHigh   = 60
	contrastNormal = 30

	temperatureDelta = 20

	shadowIntensity     = 50
	shadowStrongRatio   = 0.3
	shadowModerateRatio = 0.1

	framingCloseUp    = 0.8
	framingMedium     = 0.5
	framingMediumWide = 0.3

	thirdsEdgeDensity = 0.10

	saturationHigh   = 150
	saturationMedium = 80
)

// Hue bands on the OpenCV scale (hue 0-179, saturation 0-255).
const (
	greenHueLo = 35
	greenHueHi = 85
	blueHueLo  = 100
	blueHueHi  = 130
	hueMinSat  = 50
)

func analyzeScene(img image.Image, edges *image.Gray) SceneDetails {
	scene := SceneDetails{
		Setting:        "unknown",
		Environment:    "indoor",
		BackgroundType: "neutral",
		Depth:          "medium",
		Complexity:     "moderate",
	}

	greenRatio := imaging.HueBandRatio(img, greenHueLo, greenHueHi, hueMinSat)
	blueRatio := imaging.HueBandRatio(img, blueHueLo, blueHueHi, hueMinSat)

	switch {
	case greenRatio > greenRatioOutdoor:
		scene.Environment = "outdoor"
		if greenRatio > greenRatioGarden {
			scene.Setting = "garden"
		} else {
			scene.Setting = "park"
		}
	case blueRatio > blueRatioOutdoor:
		scene.Environment = "outdoor"
		if blueRatio > blueRatioSky {
			scene.Setting = "sky"
		} else {
			scene.Setting = "water"
		}
	default:
		scene.Environment = "indoor"
		scene.Setting = "room"
	}

	density := imaging.EdgeDensity(edges, edges.Bounds())
	switch {
	case density > edgeDensityComplex:
		scene.Complexity = "complex"
		scene.BackgroundType = "detailed"
	case density > edgeDensityModerate:
		scene.Complexity = "moderate"
		scene.BackgroundType = "textured"
	default:
		scene.Complexity = "simple"
		scene.BackgroundType = "clean"
	}

	return scene
}

func analyzeSubject(img image.Image, box image.Rectangle, hasSubject bool) SubjectAnalysis {
	subject := SubjectAnalysis{
		Position:   "center",
		Size:       "medium",
		Pose:       "standing",
		Clothing:   "casual",
		Expression: "neutral",
		Activity:   "static",
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if hasSubject {
		boxCenterX := box.Min.X + box.Dx()/2
		imgCenterX := bounds.Min.X + width/2

		offset := boxCenterX - imgCenterX
		if offset < 0 {
			offset = -offset
		}
		switch {
		case float64(offset) < float64(width)*positionCenterBand:
			subject.Position = "center"
		case boxCenterX < imgCenterX:
			subject.Position = "left"
		default:
			subject.Position = "right"
		}

		sizeRatio := float64(box.Dx()*box.Dy()) / float64(width*height)
		switch {
		case sizeRatio > sizeLargeRatio:
			subject.Size = "large"
		case sizeRatio > sizeMediumRatio:
			subject.Size = "medium"
		default:
			subject.Size = "small"
		}

		aspect := 1.0
		if box.Dx() > 0 {
			aspect = float64(box.Dy()) / float64(box.Dx())
		}
		switch {
		case aspect > poseStandingAspect:
			subject.Pose = "standing"
		case aspect < poseSittingAspect:
			subject.Pose = "sitting"
		default:
			subject.Pose = "neutral"
		}
	}

	// Clothing color from the central crop, where the subject is expected.
	if names := imaging.DominantColorNames(imaging.CenterCrop(img), 3); len(names) > 0 {
		subject.Clothing = names[0] + " clothing"
	} else {
		subject.Clothing = "casual clothing"
	}

	return subject
}

func analyzeLighting(img image.Image, gray *image.Gray) LightingAnalysis {
	lighting := LightingAnalysis{
		Brightness:       "medium",
		Contrast:         "normal",
		Direction:        "front",
		Quality:          "soft",
		ColorTemperature: "neutral",
		Shadows:          "minimal",
	}

	mean, std := imaging.MeanStdDev(gray)

	switch {
	case mean > brightnessBright:
		lighting.Brightness = "bright"
	case mean > brightnessMedium:
		lighting.Brightness = "medium"
	default:
		lighting.Brightness = "dim"
	}

	switch {
	case std > contrastHigh:
		lighting.Contrast = "high"
	case std > contrastNormal:
		lighting.Contrast = "normal"
	default:
		lighting.Contrast = "low"
	}

	avgR, _, avgB := imaging.ChannelMeans(img)
	switch {
	case avgR > avgB+temperatureDelta:
		lighting.ColorTemperature = "warm"
	case avgB > avgR+temperatureDelta:
		lighting.ColorTemperature = "cool"
	default:
		lighting.ColorTemperature = "neutral"
	}

	dark := imaging.DarkFraction(gray, shadowIntensity)
	switch {
	case dark > shadowStrongRatio:
		lighting.Shadows = "strong"
	case dark > shadowModerateRatio:
		lighting.Shadows = "moderate"
	default:
		lighting.Shadows = "minimal"
	}

	return lighting
}

func analyzeComposition(img image.Image, edges *image.Gray, box image.Rectangle, hasSubject bool) CompositionAnalysis {
	comp := CompositionAnalysis{
		Framing:      "medium_shot",
		Symmetry:     "none",
		DepthOfField: "normal",
	}

	bounds := img.Bounds()
	height := bounds.Dy()
	width := bounds.Dx()

	if hasSubject && height > 0 {
		heightRatio := float64(box.Dy()) / float64(height)
		switch {
		case heightRatio > framingCloseUp:
			comp.Framing = "close_up"
		case heightRatio > framingMedium:
			comp.Framing = "medium_shot"
		case heightRatio > framingMediumWide:
			comp.Framing = "medium_wide"
		default:
			comp.Framing = "wide_shot"
		}
	}

	// Rule of thirds: edge activity concentrated in any of five grid regions.
	thirdX := width / 3
	thirdY := height / 3
	minX, minY := bounds.Min.X, bounds.Min.Y

	regions := []image.Rectangle{
		image.Rect(minX, minY+thirdY, minX+thirdX, minY+2*thirdY),
		image.Rect(minX+thirdX, minY+thirdY, minX+2*thirdX, minY+2*thirdY),
		image.Rect(minX+2*thirdX, minY+thirdY, minX+width, minY+2*thirdY),
		image.Rect(minX+thirdX, minY, minX+2*thirdX, minY+thirdY),
		image.Rect(minX+thirdX, minY+2*thirdY, minX+2*thirdX, minY+height),
	}

	for _, region := range regions {
		if imaging.EdgeDensity(edges, region) > thirdsEdgeDensity {
			comp.RuleOfThirds = true
			break
		}
	}

	return comp
}

func analyzeColors(img image.Image) ColorAnalysis {
	colors := ColorAnalysis{
		DominantColors: []string{"neutral"},
		ColorHarmony:   "complementary",
		Saturation:     "medium",
		ColorMood:      "neutral",
	}

	if names := imaging.DominantColorNames(img, 5); len(names) > 0 {
		colors.DominantColors = names
	}

	sat := imaging.MeanSaturation(img)
	switch {
	case sat > saturationHigh:
		colors.Saturation = "high"
	case sat > saturationMedium:
		colors.Saturation = "medium"
	default:
		colors.Saturation = "low"
	}

	colors.ColorMood = colorMood(colors.DominantColors)
	return colors
}

func colorMood(dominant []string) string {
	has := func(name string) bool {
		for _, c := range dominant {
			if c == name {
				return true
			}
		}
		return false
	}

	switch {
	case has("red") || has("orange"):
		return "warm"
	case has("blue") || has("cyan"):
		return "cool"
	case has("green"):
		return "natural"
	default:
		return "neutral"
	}
}
