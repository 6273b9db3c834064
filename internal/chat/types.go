// Package chat implements the persona-conditioned chat relay surface.
package chat

import (
	"errors"
	"fmt"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/akarpov/mentor-labs/internal/mentor"
)

// Malformed-input errors. These reject the request before any upstream call
// is made.
var (
	ErrEmptyConversation   = errors.New("conversation must not be empty")
	ErrFinalMessageNotUser = errors.New("final conversation message must have role \"user\"")
)

// Request is the chat endpoint payload.
type Request struct {
	Messages   []domain.ConversationMessage `json:"messages"`
	Mentor     *domain.Mentor               `json:"mentor"`
	FineTuning *ToneWire                    `json:"fineTuningSettings"`
}

// ToneWire carries the four sliders on the wire. Fields are pointers so an
// absent slider fails validation instead of silently defaulting; prompt
// composition must stay deterministic.
type ToneWire struct {
	Tone         *int `json:"tone"`
	Fun          *int `json:"fun"`
	Seriousness  *int `json:"seriousness"`
	Practicality *int `json:"practicality"`
}

// Validate checks the conversation and tone settings, returning the final
// user message and the resolved settings.
func (r *Request) Validate() (string, mentor.ToneSettings, error) {
	var settings mentor.ToneSettings

	if len(r.Messages) == 0 {
		return "", settings, ErrEmptyConversation
	}
	last := r.Messages[len(r.Messages)-1]
	if last.Role != domain.RoleUser {
		return "", settings, ErrFinalMessageNotUser
	}

	if r.FineTuning == nil {
		return "", settings, fmt.Errorf("fineTuningSettings is required")
	}
	for _, f := range []struct {
		name  string
		value *int
	}{
		{"tone", r.FineTuning.Tone},
		{"fun", r.FineTuning.Fun},
		{"seriousness", r.FineTuning.Seriousness},
		{"practicality", r.FineTuning.Practicality},
	} {
		if f.value == nil {
			return "", settings, fmt.Errorf("tone setting %q is required", f.name)
		}
	}

	settings = mentor.ToneSettings{
		Tone:         *r.FineTuning.Tone,
		Fun:          *r.FineTuning.Fun,
		Seriousness:  *r.FineTuning.Seriousness,
		Practicality: *r.FineTuning.Practicality,
	}
	if err := settings.Validate(); err != nil {
		return "", settings, err
	}

	return last.Content, settings, nil
}
