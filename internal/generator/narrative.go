package generator

import (
	"fmt"
	"strings"

	"github.com/framepack/promptgen/internal/analyzer"
)

const flowSentence = "The sequence flows with natural rhythm, each movement building upon the previous, creating a cohesive visual narrative that captures both the subject's personality and the environment's character."

// RenderNarrative renders the plan as flowing prose for narrative-style video
// models: an opening sentence built from the analysis, one transition plus
// action sentence per shot after the first, and fixed closing sentences.
func (g *Generator) RenderNarrative(shots []Shot, analysis analyzer.Result) string {
	scene := analysis.SceneDetails
	lighting := analysis.LightingAnalysis
	colors := analysis.ColorAnalysis

	parts := []string{fmt.Sprintf(
		"The camera opens with %s. %s stands gracefully in the frame.",
		settingSentence(scene, lighting, colors),
		subjectSentence(analysis.SubjectAnalysis),
	)}

	for _, shot := range shots[1:] {
		parts = append(parts, choose(g.rng, transitions)+" "+g.fluidAction(shot))
	}

	if scene.Environment == "outdoor" {
		parts = append(parts, "Natural lighting enhances the organic movement and creates dynamic shadows.")
	} else {
		parts = append(parts, "The controlled lighting emphasizes the subject's expressions and movements.")
	}

	parts = append(parts, flowSentence)
	return strings.Join(parts, " ")
}

func settingSentence(scene analyzer.SceneDetails, lighting analyzer.LightingAnalysis, colors analyzer.ColorAnalysis) string {
	return fmt.Sprintf("a %sly lit %s with %s tones, creating an inviting %s atmosphere",
		settingOr(lighting.Brightness, "natural"),
		settingOr(scene.Setting, "scene"),
		settingOr(colors.ColorMood, "neutral"),
		settingOr(scene.Environment, "space"))
}

func subjectSentence(subject analyzer.SubjectAnalysis) string {
	return fmt.Sprintf("The subject, wearing %s, is positioned %s frame in a %s composition",
		settingOr(subject.Clothing, "casual attire"),
		settingOr(subject.Position, "center"),
		settingOr(subject.Size, "medium"))
}

func (g *Generator) fluidAction(shot Shot) string {
	template := choose(g.rng, fluidTemplates)
	return fmt.Sprintf(template, shot.CameraAngle, shot.CameraMovement, shot.SubjectAction)
}
