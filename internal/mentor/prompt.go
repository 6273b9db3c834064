package mentor

import (
	"strings"

	"github.com/akarpov/mentor-labs/internal/domain"
)

// Generic phrases substituted for absent persona fields. A nil or empty
// mentor degrades to these rather than failing composition.
const (
	fallbackName         = "a seasoned mentor"
	fallbackField        = "their field"
	fallbackDescription  = "an experienced professional who enjoys helping others grow"
	fallbackBackground   = "They have years of hands-on experience in their field."
	fallbackStyle        = "clear, direct and supportive"
	fallbackMentalModels = "first principles thinking, systems thinking"
)

const mentalModelSeparator = ", "

func orFallback(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ComposePrompt builds the full system+user prompt for one chat turn. It is
// deterministic: identical inputs always produce an identical string.
func ComposePrompt(message string, m *domain.Mentor, d ToneDescriptors) string {
	var (
		name         = fallbackName
		field        = fallbackField
		description  = fallbackDescription
		background   = fallbackBackground
		style        = fallbackStyle
		mentalModels = fallbackMentalModels
	)
	if m != nil {
		name = orFallback(m.Name, fallbackName)
		field = orFallback(m.Field, fallbackField)
		description = orFallback(m.Description, fallbackDescription)
		background = orFallback(m.Background, fallbackBackground)
		style = orFallback(m.CommunicationStyle, fallbackStyle)
		if len(m.MentalModels) > 0 {
			mentalModels = strings.Join(m.MentalModels, mentalModelSeparator)
		}
	}

	var b strings.Builder
	b.WriteString("You are " + name + ", a renowned expert in " + field + ". " + description + "\n\n")
	b.WriteString("PERSONALITY & COMMUNICATION STYLE:\n")
	b.WriteString("- Overall tone: " + d.Tone + "\n")
	b.WriteString("- Humor level: " + d.Fun + "\n")
	b.WriteString("- Intensity: " + d.Seriousness + "\n")
	b.WriteString("- Approach: " + d.Practicality + "\n\n")
	b.WriteString("BACKGROUND:\n" + background + "\n\n")
	b.WriteString("MENTAL MODELS YOU RELY ON:\n" + mentalModels + "\n\n")
	b.WriteString("COMMUNICATION STYLE: " + style + "\n\n")
	b.WriteString("Answer as " + name + " would, staying fully in character and drawing on the mental models above where they help.\n\n")
	b.WriteString("USER QUESTION: " + message)
	return b.String()
}
