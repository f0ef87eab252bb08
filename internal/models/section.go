package models

// SectionType identifies one of the three fixed expense sections of a yearly
// budget.
type SectionType string

const (
	SectionLiving       SectionType = "LIVING"
	SectionNonEssential SectionType = "NON_ESSENTIAL"
	SectionSavings      SectionType = "SAVINGS"
)

// Section is one of the three expense sections of a yearly budget. Sections
// are fixed at budget creation with 70/20/10 target percentages.
type Section struct {
	Model
	Type           SectionType `json:"type"`
	Name           string      `json:"name"`
	TargetPercent  int         `json:"targetPercent"`
	OrderIndex     int         `json:"orderIndex"`
	YearlyBudgetID int64       `json:"yearlyBudgetId"`

	Categories []YearlyCategory `json:"categories" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (s *Section) Clone() *Section {
	c := *s

	c.Categories = make([]YearlyCategory, len(s.Categories))
	for i, category := range s.Categories {
		c.Categories[i] = *category.Clone()
	}

	return &c
}

// DefaultSections returns the three sections every new yearly budget starts
// with.
func DefaultSections() []Section {
	return []Section{
		{Type: SectionLiving, Name: "Living", TargetPercent: 70, OrderIndex: 0},
		{Type: SectionNonEssential, Name: "Non-essential", TargetPercent: 20, OrderIndex: 1},
		{Type: SectionSavings, Name: "Savings", TargetPercent: 10, OrderIndex: 2},
	}
}
