package models

// AllergenSet collects distinct allergen texts in first-seen order. Unset
// allergens and the "no known allergen" sentinel are ignored.
type AllergenSet struct {
	seen map[string]bool
	list []string
}

// Add records the allergen text of f
func (s *AllergenSet) Add(f *Food) {
	if !f.HasAllergen() {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	text := *f.Allergens
	if s.seen[text] {
		return
	}
	s.seen[text] = true
	s.list = append(s.list, text)
}

// List returns the collected allergens, never nil
func (s *AllergenSet) List() []string {
	if s.list == nil {
		return []string{}
	}
	return append([]string(nil), s.list...)
}
