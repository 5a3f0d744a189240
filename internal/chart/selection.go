package chart

// Selection is the click selection shared by both maps. One value is handed
// to both map builders; selecting a country replaces any earlier choice.
type Selection struct {
	Name    string
	Field   string
	Country string
}

// NewSelection returns the shared selection, optionally preselecting country.
func NewSelection(country string) *Selection {
	return &Selection{Name: "selector", Field: "Country", Country: country}
}

// Select replaces the current selection. An empty country clears it.
func (s *Selection) Select(country string) {
	s.Country = country
}

// Selected reports the current country, if any.
func (s *Selection) Selected() (string, bool) {
	return s.Country, s.Country != ""
}

// Param declares the selection once for all the given views.
func (s *Selection) Param(views ...string) Param {
	p := Param{
		Name: s.Name,
		Select: Select{
			Type:   "point",
			Fields: []string{s.Field},
			On:     "click",
			Clear:  "dblclick",
			Toggle: false,
		},
		Views: views,
	}
	if country, ok := s.Selected(); ok {
		p.Value = []SelectedItem{{Country: country}}
	}
	return p
}

// Filter keeps only the selected country, or everything when nothing is selected.
func (s *Selection) Filter() Transform {
	return Transform{Filter: &Predicate{Param: s.Name}}
}
