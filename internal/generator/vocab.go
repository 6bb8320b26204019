package generator

// Fixed vocabularies for shot construction. The rendered prompts quote these
// strings verbatim, so additions or reordering change output text.

var cameraAngles = []string{
	"wide shot", "medium shot", "close-up", "extreme close-up",
	"aerial shot", "low angle", "high angle", "eye level",
	"bird's eye view", "worm's eye view", "over-the-shoulder",
}

var cameraMovements = []string{
	"dolly in", "dolly out", "pan left", "pan right",
	"tilt up", "tilt down", "zoom in", "zoom out",
	"tracking shot", "crane up", "crane down", "orbit around",
}

var cameraEffects = []string{
	"shallow depth of field", "deep focus", "motion blur",
	"focus pull", "speed ramping", "rack focus",
	"bokeh effect", "lens flare", "vignette",
}

// actionDurations maps action keywords to estimated durations in seconds.
// Lookup order matters: the first keyword contained in the action text wins.
var actionDurations = []struct {
	keyword string
	seconds int
}{
	{"wave", 2},
	{"nod", 1},
	{"smile", 1},
	{"walk", 3},
	{"turn", 2},
	{"look", 1},
	{"gesture", 2},
	{"dance", 4},
	{"jump", 1},
	{"sit", 2},
	{"stand", 2},
	{"reach", 2},
	{"point", 1},
	{"clap", 2},
	{"laugh", 2},
}

var naturalActions = []string{
	"looks around thoughtfully",
	"adjusts posture naturally",
	"shifts weight slightly",
	"turns head to follow something",
	"takes a small step forward",
	"gestures expressively",
	"smiles warmly",
	"looks directly at camera",
}

var actionShotAngles = []string{
	"medium shot", "medium close-up", "close-up",
}

var actionEffects = []string{
	"motion blur on background",
	"focus pull to subject",
	"shallow depth of field",
	"speed ramping",
}

var movementDescriptions = []string{
	"smooth camera motion",
	"fluid cinematography",
	"dynamic framing",
	"elegant camera work",
	"professional movement",
}

var transitions = []string{
	"The camera smoothly transitions,",
	"With fluid movement, the camera",
	"Seamlessly, the perspective shifts as",
	"The cinematography flows naturally,",
	"In a graceful motion, the camera",
}

var fluidTemplates = []string{
	"adopting a %s while executing a %s, capturing as the subject %s with natural grace and authentic expression.",
	"shifting to %s with %s, following the subject's %s in a way that feels organic and unforced.",
	"employing %s through %s, documenting the subject's %s with cinematic fluidity and emotional resonance.",
}
