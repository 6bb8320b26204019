package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/framepack/promptgen/internal/analyzer"
)

// Shot is one timed segment of the planned video.
type Shot struct {
	StartTime      int    `yaml:"start_time" json:"start_time"`
	Duration       int    `yaml:"duration" json:"duration"`
	CameraAngle    string `yaml:"camera_angle" json:"camera_angle"`
	CameraMovement string `yaml:"camera_movement" json:"camera_movement"`
	SubjectAction  string `yaml:"subject_action" json:"subject_action"`
	Description    string `yaml:"description" json:"description"`
	Effects        string `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// Plan is an ordered shot sequence covering the full requested duration.
type Plan struct {
	Duration int    `yaml:"duration" json:"duration"`
	Shots    []Shot `yaml:"shots" json:"shots"`
}

// Generator builds sequence plans and renders them as prompts. All random
// choices go through the injected source, so a fixed seed pins the output.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. A nil source falls back to a time-seeded one.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate renders both prompt formats for one analyzed image.
func (g *Generator) Generate(analysis analyzer.Result, duration int, customAction string) (string, string) {
	plan := g.BuildPlan(analysis, duration, customAction)
	return RenderTimestamp(plan.Shots), g.RenderNarrative(plan.Shots, analysis)
}

// BuildPlan constructs the shot sequence. Shots are contiguous and their
// durations always sum to the requested duration: the opening and closing
// shots take 2 seconds each, a custom action is clamped so it cannot eat the
// closing reserve, and fillers never draw past it.
func (g *Generator) BuildPlan(analysis analyzer.Result, duration int, customAction string) Plan {
	sceneContext := extractSceneContext(analysis.BasicDescription, analysis.SceneDetails)
	subjectContext := extractSubjectContext(analysis.BasicDescription, analysis.SubjectAnalysis)

	shots := []Shot{{
		StartTime:      0,
		Duration:       2,
		CameraAngle:    openingAngle(analysis.CompositionAnalysis),
		CameraMovement: "static",
		SubjectAction:  "static pose",
		Description:    fmt.Sprintf("Establishing shot revealing %s in %s", subjectContext, sceneContext),
		Effects:        moodEffect(analysis.LightingAnalysis),
	}}
	current := 2

	if action := strings.TrimSpace(customAction); action != "" {
		actionDuration := estimateActionDuration(action)
		if max := duration - 4; actionDuration > max {
			actionDuration = max
		}
		if actionDuration < 1 {
			actionDuration = 1
		}
		shots = append(shots, Shot{
			StartTime:      current,
			Duration:       actionDuration,
			CameraAngle:    choose(g.rng, actionShotAngles),
			CameraMovement: movementForAction(action),
			SubjectAction:  action,
			Description:    fmt.Sprintf("Subject %s with %s", action, choose(g.rng, movementDescriptions)),
			Effects:        choose(g.rng, actionEffects),
		})
		current += actionDuration
	}

	for current < duration-2 {
		shotDuration := 2 + g.rng.Intn(3)
		if remaining := duration - 2 - current; shotDuration > remaining {
			shotDuration = remaining
		}
		shot := Shot{
			StartTime:      current,
			Duration:       shotDuration,
			CameraAngle:    choose(g.rng, cameraAngles),
			CameraMovement: choose(g.rng, cameraMovements),
			SubjectAction:  choose(g.rng, naturalActions),
			Description:    g.fillerDescription(analysis.SceneDetails, analysis.LightingAnalysis),
		}
		if g.rng.Float64() > 0.5 {
			shot.Effects = choose(g.rng, cameraEffects)
		}
		shots = append(shots, shot)
		current += shotDuration
	}

	if current < duration {
		shots = append(shots, Shot{
			StartTime:      current,
			Duration:       duration - current,
			CameraAngle:    "wide shot",
			CameraMovement: "slow zoom out",
			SubjectAction:  "final pose",
			Description:    fmt.Sprintf("Final wide shot capturing the complete %s", settingOr(analysis.SceneDetails.Setting, "scene")),
			Effects:        "shallow depth of field",
		})
	}

	return Plan{Duration: duration, Shots: shots}
}

func openingAngle(composition analyzer.CompositionAnalysis) string {
	switch composition.Framing {
	case "close_up":
		return "medium shot"
	case "wide_shot":
		return "wide shot"
	default:
		return "medium wide shot"
	}
}

func moodEffect(lighting analyzer.LightingAnalysis) string {
	switch {
	case lighting.Brightness == "bright" && lighting.Quality == "soft":
		return "shallow depth of field"
	case lighting.Brightness == "dim":
		return "cinematic lighting"
	default:
		return "natural depth of field"
	}
}

func movementForAction(action string) string {
	lower := strings.ToLower(action)
	switch {
	case containsAny(lower, "wave", "gesture", "point"):
		return "slight zoom in"
	case containsAny(lower, "walk", "move", "dance"):
		return "tracking shot"
	case containsAny(lower, "jump", "leap"):
		return "tilt up"
	default:
		return "dolly in"
	}
}

// estimateActionDuration matches the action text against the keyword table in
// declaration order; unmatched actions get a word-count based default.
func estimateActionDuration(action string) int {
	lower := strings.ToLower(action)
	for _, entry := range actionDurations {
		if strings.Contains(lower, entry.keyword) {
			return entry.seconds
		}
	}
	if len(strings.Fields(action)) > 3 {
		return 4
	}
	return 2
}

func (g *Generator) fillerDescription(scene analyzer.SceneDetails, lighting analyzer.LightingAnalysis) string {
	setting := settingOr(scene.Setting, "scene")
	environment := settingOr(scene.Environment, "space")
	brightness := settingOr(lighting.Brightness, "natural")

	descriptions := []string{
		fmt.Sprintf("capturing the %s ambiance of the %s", brightness, setting),
		fmt.Sprintf("revealing details of the %s setting", environment),
		fmt.Sprintf("emphasizing the subject's connection to the %s", setting),
		fmt.Sprintf("showcasing the %s lighting on the subject", brightness),
		fmt.Sprintf("highlighting the texture and depth of the %s", environment),
	}
	return choose(g.rng, descriptions)
}

func settingOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func choose(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
