package mentor

import "testing"

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	all := r.All()
	if len(all) == 0 {
		t.Fatal("seed catalog is empty")
	}

	for _, m := range all {
		got, ok := r.ByID(m.ID)
		if !ok {
			t.Fatalf("ByID(%q) not found", m.ID)
		}
		if got.Name != m.Name {
			t.Errorf("ByID(%q).Name = %q, want %q", m.ID, got.Name, m.Name)
		}
	}

	if _, ok := r.ByID("no-such-mentor"); ok {
		t.Error("ByID on unknown id should return false")
	}
}

func TestSeedRecordsComplete(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, m := range Seed() {
		if m.ID == "" || m.Name == "" || m.Field == "" {
			t.Errorf("seed mentor %+v missing identity fields", m)
		}
		if seen[m.ID] {
			t.Errorf("duplicate mentor id %q", m.ID)
		}
		seen[m.ID] = true
		if len(m.MentalModels) == 0 {
			t.Errorf("mentor %q has no mental models", m.ID)
		}
	}
}
