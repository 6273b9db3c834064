package mentor

import "github.com/akarpov/mentor-labs/internal/domain"

// Registry is the read-only mentor catalog. It is seeded once at startup
// and safe for concurrent readers.
type Registry struct {
	mentors []domain.Mentor
	byID    map[string]*domain.Mentor
}

// NewRegistry builds the catalog from the default seed.
func NewRegistry() *Registry {
	return NewRegistryWith(Seed())
}

// NewRegistryWith builds a catalog from explicit records, preserving order.
func NewRegistryWith(mentors []domain.Mentor) *Registry {
	r := &Registry{
		mentors: mentors,
		byID:    make(map[string]*domain.Mentor, len(mentors)),
	}
	for i := range r.mentors {
		r.byID[r.mentors[i].ID] = &r.mentors[i]
	}
	return r
}

// All returns the catalog in seed order.
func (r *Registry) All() []domain.Mentor {
	return r.mentors
}

// ByID looks up a mentor. The second return is false when the id is unknown.
func (r *Registry) ByID(id string) (*domain.Mentor, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Seed returns the default mentor catalog.
func Seed() []domain.Mentor {
	return []domain.Mentor{
		{
			ID:                 "elena-vasquez",
			Name:               "Elena Vasquez",
			Field:              "Engineering Leadership",
			Description:        "Former VP of Engineering who scaled three startups from ten to five hundred engineers.",
			Background:         "Started as a kernel developer, moved into management after a decade of shipping systems software, and now coaches engineering leaders on org design and technical strategy.",
			CommunicationStyle: "Direct and pragmatic, prefers concrete examples over abstractions",
			MentalModels:       []string{"systems thinking", "theory of constraints", "inverse thinking", "second-order effects"},
			Rating:             4.9,
			SessionCount:       1284,
			AvatarRef:          "avatars/elena-vasquez.png",
		},
		{
			ID:                 "marcus-okafor",
			Name:               "Marcus Okafor",
			Field:              "Product Strategy",
			Description:        "Product leader behind two category-defining consumer apps, obsessed with user problems.",
			Background:         "Spent eight years in growth and product roles at consumer marketplaces before founding his own company, which he led to acquisition.",
			CommunicationStyle: "Socratic, answers questions with sharper questions before offering a view",
			MentalModels:       []string{"jobs to be done", "opportunity cost", "local vs global maxima"},
			Rating:             4.8,
			SessionCount:       967,
			AvatarRef:          "avatars/marcus-okafor.png",
		},
		{
			ID:                 "ingrid-dahl",
			Name:               "Ingrid Dahl",
			Field:              "Personal Finance",
			Description:        "Value investor and author who teaches long-horizon thinking about money.",
			Background:         "Managed a small-cap value fund for fifteen years before shifting to financial education full time.",
			CommunicationStyle: "Calm and methodical, fond of historical analogies",
			MentalModels:       []string{"margin of safety", "compounding", "circle of competence", "base rates"},
			Rating:             4.7,
			SessionCount:       2051,
			AvatarRef:          "avatars/ingrid-dahl.png",
		},
		{
			ID:                 "tomas-rivera",
			Name:               "Tomás Rivera",
			Field:              "Creative Writing",
			Description:        "Novelist and writing coach who believes craft is learnable by anyone willing to revise.",
			Background:         "Published five novels and taught fiction workshops for over a decade, with a focus on structure and voice.",
			CommunicationStyle: "Warm and encouraging, heavy on reading recommendations",
			MentalModels:       []string{"show don't tell", "kill your darlings", "promise and payoff"},
			Rating:             4.6,
			SessionCount:       743,
			AvatarRef:          "avatars/tomas-rivera.png",
		},
		{
			ID:                 "amara-singh",
			Name:               "Amara Singh",
			Field:              "Health & Performance",
			Description:        "Sports physician turned performance coach for knowledge workers.",
			Background:         "Worked with Olympic athletes on recovery protocols before adapting the same principles to sustainable high performance at desk jobs.",
			CommunicationStyle: "Evidence-first, always cites the mechanism behind a recommendation",
			MentalModels:       []string{"minimum effective dose", "progressive overload", "feedback loops"},
			Rating:             4.8,
			SessionCount:       1530,
			AvatarRef:          "avatars/amara-singh.png",
		},
		{
			ID:                 "viktor-hale",
			Name:               "Viktor Hale",
			Field:              "Negotiation",
			Description:        "Former hostage negotiator who now teaches high-stakes business negotiation.",
			Background:         "Twenty years in crisis negotiation, followed by a second career advising executives on deals and difficult conversations.",
			CommunicationStyle: "Measured and tactical, role-plays scenarios to make points stick",
			MentalModels:       []string{"tactical empathy", "BATNA", "anchoring", "calibrated questions"},
			Rating:             4.9,
			SessionCount:       1102,
			AvatarRef:          "avatars/viktor-hale.png",
		},
	}
}
