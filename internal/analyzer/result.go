package analyzer

// Result is the full structured description of one analyzed image. Every
// sub-analysis is computed independently from the same source pixels; only
// BasicDescription and Provider come from the captioning chain.
type Result struct {
	BasicDescription    string              `json:"basic_description"`
	SceneDetails        SceneDetails        `json:"scene_details"`
	SubjectAnalysis     SubjectAnalysis     `json:"subject_analysis"`
	LightingAnalysis    LightingAnalysis    `json:"lighting_analysis"`
	CompositionAnalysis CompositionAnalysis `json:"composition_analysis"`
	ColorAnalysis       ColorAnalysis       `json:"color_analysis"`
	TechnicalDetails    TechnicalDetails    `json:"technical_details"`
	Provider            string              `json:"analysis_provider"`
}

type SceneDetails struct {
	Setting        string `json:"setting"`
	Environment    string `json:"environment"`
	BackgroundType string `json:"background_type"`
	Depth          string `json:"depth"`
	Complexity     string `json:"complexity"`
}

type SubjectAnalysis struct {
	Position   string `json:"position"`
	Size       string `json:"size"`
	Pose       string `json:"pose"`
	Clothing   string `json:"clothing"`
	Expression string `json:"expression"`
	Activity   string `json:"activity"`
}

type LightingAnalysis struct {
	Brightness       string `json:"brightness"`
	Contrast         string `json:"contrast"`
	Direction        string `json:"direction"`
	Quality          string `json:"quality"`
	ColorTemperature string `json:"color_temperature"`
	Shadows          string `json:"shadows"`
}

type CompositionAnalysis struct {
	Framing      string `json:"framing"`
	RuleOfThirds bool   `json:"rule_of_thirds"`
	Symmetry     string `json:"symmetry"`
	LeadingLines bool   `json:"leading_lines"`
	DepthOfField string `json:"depth_of_field"`
}

type ColorAnalysis struct {
	DominantColors []string `json:"dominant_colors"`
	ColorHarmony   string   `json:"color_harmony"`
	Saturation     string   `json:"saturation"`
	ColorMood      string   `json:"color_mood"`
}

type TechnicalDetails struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Format      string  `json:"format"`
	Mode        string  `json:"mode"`
}

// fallbackResult is substituted when analysis cannot run at all, so the rest
// of the pipeline always receives a well-formed result.
func fallbackResult() Result {
	return Result{
		BasicDescription: "A scene with various elements",
		SceneDetails: SceneDetails{
			Setting:        "unknown",
			Environment:    "indoor",
			BackgroundType: "neutral",
			Depth:          "medium",
			Complexity:     "moderate",
		},
		SubjectAnalysis: SubjectAnalysis{
			Position:   "center",
			Size:       "medium",
			Pose:       "standing",
			Clothing:   "casual",
			Expression: "neutral",
			Activity:   "static",
		},
		LightingAnalysis: LightingAnalysis{
			Brightness:       "medium",
			Contrast:         "normal",
			Direction:        "front",
			Quality:          "soft",
			ColorTemperature: "neutral",
			Shadows:          "minimal",
		},
		CompositionAnalysis: CompositionAnalysis{
			Framing:      "medium_shot",
			Symmetry:     "none",
			DepthOfField: "normal",
		},
		ColorAnalysis: ColorAnalysis{
			DominantColors: []string{"neutral"},
			ColorHarmony:   "complementary",
			Saturation:     "medium",
			ColorMood:      "neutral",
		},
		Provider: "error_fallback",
	}
}
