package provider

import "context"

// Provider is an external captioning source: a remote vision API or a local
// model endpoint. Caption receives JPEG-encoded image bytes and returns a
// single natural-language description.
type Provider interface {
	Name() string
	Caption(ctx context.Context, jpeg []byte) (string, error)
}

// visionPrompt is sent to the multimodal chat providers alongside the image.
const visionPrompt = `Analyze this image in detail. Provide a comprehensive description including:
1. Basic scene description
2. Main subjects and their positions
3. Lighting conditions and mood
4. Composition and framing
5. Colors and visual style
6. Any notable activities or expressions

Format your response as a detailed paragraph.`
