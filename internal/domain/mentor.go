// Package domain contains core domain types for the Mentor Labs application.
package domain

// Mentor is an AI mentor persona. Records are reference data seeded at
// startup and never mutated at runtime.
type Mentor struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Field              string   `json:"field"`
	Description        string   `json:"description"`
	Background         string   `json:"background"`
	CommunicationStyle string   `json:"communicationStyle"`
	MentalModels       []string `json:"mentalModels"`
	Rating             float64  `json:"rating"`
	SessionCount       int      `json:"sessionCount"`
	AvatarRef          string   `json:"avatarRef,omitempty"`
}
