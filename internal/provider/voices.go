package provider

// Symbolic voice names arrive from clients in OpenAI terms. Each backend maps
// them onto its own identifiers; unknown names fall back to a documented
// default instead of failing the call.

const (
	defaultOpenAIVoice = "nova"
	defaultGeminiVoice = "Kore"
)

var openAIVoices = map[string]bool{
	"alloy":   true,
	"echo":    true,
	"fable":   true,
	"onyx":    true,
	"nova":    true,
	"shimmer": true,
}

var geminiVoices = map[string]string{
	"nova":    "Kore",
	"alloy":   "Puck",
	"echo":    "Charon",
	"fable":   "Aoede",
	"onyx":    "Fenrir",
	"shimmer": "Leda",
	"Kore":    "Kore",
	"Puck":    "Puck",
	"Charon":  "Charon",
	"Aoede":   "Aoede",
	"Fenrir":  "Fenrir",
	"Leda":    "Leda",
}

func openAIVoice(symbolic string) string {
	if openAIVoices[symbolic] {
		return symbolic
	}
	return defaultOpenAIVoice
}

func geminiVoice(symbolic string) string {
	if mapped, ok := geminiVoices[symbolic]; ok {
		return mapped
	}
	return defaultGeminiVoice
}
