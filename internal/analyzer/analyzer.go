package analyzer

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"math"

	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/imaging"
)

// Captioner produces a natural-language caption for JPEG bytes plus the tag
// of the provider that produced it.
type Captioner interface {
	Describe(ctx context.Context, jpeg []byte) (string, string, error)
}

// Analyzer combines a captioning chain with the heuristic pixel-statistics
// classifiers. Analyze never returns an error: any internal failure degrades
// to placeholder values so downstream generation always has input.
type Analyzer struct {
	captioner Captioner
	log       zerolog.Logger
}

func New(captioner Captioner, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		captioner: captioner,
		log:       log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze produces the full structured description of an image. The format
// argument is the decoded image's registered format name ("jpeg", "png", ...)
// and is passed through to the technical details.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image, format string) Result {
	if img == nil {
		a.log.Warn().Msg("nil image, returning fallback result")
		return fallbackResult()
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		a.log.Warn().Msg("empty image, returning fallback result")
		return fallbackResult()
	}

	res := Result{}

	// Caption via the provider chain. A chain error (fallback disabled and
	// the primary provider down) degrades to a placeholder description; the
	// heuristic sub-analyses below run regardless.
	if caption, tag, err := a.caption(ctx, img); err != nil {
		a.log.Warn().Err(err).Msg("captioning failed, using placeholder description")
		res.BasicDescription = "A scene with various elements"
		res.Provider = "error_fallback"
	} else {
		res.BasicDescription = caption
		res.Provider = tag
	}

	gray := imaging.ToGray(img)
	edges := imaging.SobelEdges(gray, imaging.DefaultEdgeThreshold)
	subjectBox, hasSubject := imaging.LargestContour(edges)

	res.SceneDetails = analyzeScene(img, edges)
	res.SubjectAnalysis = analyzeSubject(img, subjectBox, hasSubject)
	res.LightingAnalysis = analyzeLighting(img, gray)
	res.CompositionAnalysis = analyzeComposition(img, edges, subjectBox, hasSubject)
	res.ColorAnalysis = analyzeColors(img)
	res.TechnicalDetails = TechnicalDetails{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		AspectRatio: math.Round(float64(bounds.Dx())/float64(bounds.Dy())*100) / 100,
		Format:      formatOrUnknown(format),
		Mode:        "RGB",
	}

	return res
}

func (a *Analyzer) caption(ctx context.Context, img image.Image) (string, string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", "", err
	}
	return a.captioner.Describe(ctx, buf.Bytes())
}

func formatOrUnknown(format string) string {
	if format == "" {
		return "Unknown"
	}
	return format
}
