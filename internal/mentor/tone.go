// Package mentor holds the mentor persona catalog and the prompt
// conditioning logic built on top of it.
package mentor

import "fmt"

// ToneSettings are the four fine-tuning sliders supplied per chat request.
// Each value must be in [0,100] inclusive.
type ToneSettings struct {
	Tone         int `json:"tone"`
	Fun          int `json:"fun"`
	Seriousness  int `json:"seriousness"`
	Practicality int `json:"practicality"`
}

// ToneDescriptors are the human-readable phrases the sliders map to.
type ToneDescriptors struct {
	Tone         string
	Fun          string
	Seriousness  string
	Practicality string
}

// Descriptor tables per axis, keyed by bucket level.
var (
	tonePhrases = map[int]string{
		0:   "very casual and conversational",
		25:  "casual but thoughtful",
		50:  "balanced",
		75:  "professional and polished",
		100: "very formal and precise",
	}
	funPhrases = map[int]string{
		0:   "completely serious",
		25:  "mostly serious with occasional levity",
		50:  "moderately playful",
		75:  "fun and lighthearted",
		100: "very fun and entertaining",
	}
	seriousnessPhrases = map[int]string{
		0:   "very light and casual",
		25:  "light and easygoing",
		50:  "moderately serious",
		75:  "serious and focused",
		100: "very intense and deep",
	}
	practicalityPhrases = map[int]string{
		0:   "purely theoretical and conceptual",
		25:  "mostly theoretical",
		50:  "balanced between theory and practice",
		75:  "practical with theoretical backing",
		100: "extremely practical and actionable",
	}
)

// Bucket discretizes a slider value into one of the five levels
// {0, 25, 50, 75, 100}. Boundaries are asymmetric and inclusive:
// 0-12, 13-37, 38-62, 63-87, 88-100.
func Bucket(v int) int {
	switch {
	case v <= 12:
		return 0
	case v <= 37:
		return 25
	case v <= 62:
		return 50
	case v <= 87:
		return 75
	default:
		return 100
	}
}

// Validate checks that every slider is within [0,100].
func (s ToneSettings) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"tone", s.Tone},
		{"fun", s.Fun},
		{"seriousness", s.Seriousness},
		{"practicality", s.Practicality},
	} {
		if f.value < 0 || f.value > 100 {
			return fmt.Errorf("tone setting %q out of range: %d", f.name, f.value)
		}
	}
	return nil
}

// MapTone buckets each slider independently and resolves the phrase for
// that axis. Settings must already be validated.
func MapTone(s ToneSettings) ToneDescriptors {
	return ToneDescriptors{
		Tone:         tonePhrases[Bucket(s.Tone)],
		Fun:          funPhrases[Bucket(s.Fun)],
		Seriousness:  seriousnessPhrases[Bucket(s.Seriousness)],
		Practicality: practicalityPhrases[Bucket(s.Practicality)],
	}
}
