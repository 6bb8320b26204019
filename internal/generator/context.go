package generator

import (
	"strings"

	"github.com/framepack/promptgen/internal/analyzer"
)

// extractSceneContext derives a short scene phrase from the caption text,
// falling back to the heuristic scene fields when no keyword matches.
func extractSceneContext(caption string, scene analyzer.SceneDetails) string {
	lower := strings.ToLower(caption)

	switch {
	case containsAny(lower, "outdoor", "outside", "park", "garden", "street", "nature"):
		return "outdoor " + settingOr(scene.Setting, "environment")
	case containsAny(lower, "indoor", "inside", "room", "office", "home", "building"):
		return "indoor " + settingOr(scene.Setting, "space")
	case containsAny(lower, "kitchen", "bedroom", "living room", "bathroom"):
		for _, room := range []string{"kitchen", "bedroom", "living room", "bathroom"} {
			if strings.Contains(lower, room) {
				return room + " setting"
			}
		}
		return "room setting"
	case containsAny(lower, "beach", "ocean", "water", "lake"):
		return "waterfront location"
	case containsAny(lower, "mountain", "hill", "forest", "tree"):
		return "natural landscape"
	default:
		return settingOr(scene.Environment, "space") + " " + settingOr(scene.Setting, "scene")
	}
}

// extractSubjectContext derives a short subject phrase from the caption text,
// preferring clothing details mentioned in the caption over the heuristic
// clothing color.
func extractSubjectContext(caption string, subject analyzer.SubjectAnalysis) string {
	lower := strings.ToLower(caption)

	var subjectType string
	switch {
	case containsAny(lower, "woman", "girl", "female", "lady"):
		subjectType = "woman"
	case containsAny(lower, "man", "boy", "male", "guy"):
		subjectType = "man"
	case containsAny(lower, "child", "kid", "baby"):
		subjectType = "child"
	case containsAny(lower, "person", "people", "individual"):
		subjectType = "person"
	default:
		subjectType = "subject"
	}

	if containsAny(lower, "wearing", "dressed", "shirt", "dress", "jacket", "coat") {
		switch {
		case strings.Contains(lower, "red"):
			return subjectType + " in red clothing"
		case strings.Contains(lower, "blue"):
			return subjectType + " in blue clothing"
		case strings.Contains(lower, "white"):
			return subjectType + " in white clothing"
		case strings.Contains(lower, "black"):
			return subjectType + " in black clothing"
		case containsAny(lower, "shirt", "t-shirt", "blouse"):
			return subjectType + " in casual shirt"
		case containsAny(lower, "dress", "gown"):
			return subjectType + " in dress"
		case containsAny(lower, "suit", "formal"):
			return subjectType + " in formal attire"
		}
	}

	return subjectType + " in " + settingOr(subject.Clothing, "casual attire")
}
