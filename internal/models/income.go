package models

// IncomeSource is one source of income in a yearly budget. It owns exactly
// twelve IncomeEntry rows, one per calendar month, created atomically with
// the source.
type IncomeSource struct {
	Model
	Name           string `json:"name"`
	OrderIndex     int    `json:"orderIndex"`
	YearlyBudgetID int64  `json:"yearlyBudgetId"`

	Entries []IncomeEntry `json:"entries" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (s *IncomeSource) Clone() *IncomeSource {
	c := *s

	c.Entries = make([]IncomeEntry, len(s.Entries))
	for i, entry := range s.Entries {
		c.Entries[i] = *entry.Clone()
	}

	return &c
}

// IncomeEntry is the gross income of one source for one calendar month.
type IncomeEntry struct {
	Model
	Month          int   `json:"month"` // Calendar month, 1-12
	GrossAmount    int64 `json:"grossAmount"`
	IncomeSourceID int64 `json:"incomeSourceId"`

	Deductions []Deduction `json:"deductions" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (e *IncomeEntry) Clone() *IncomeEntry {
	c := *e

	c.Deductions = make([]Deduction, len(e.Deductions))
	copy(c.Deductions, e.Deductions)

	return &c
}

// Deduction is an amount withheld from one income entry, e.g. tax or
// medical aid.
type Deduction struct {
	Model
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	OrderIndex    int    `json:"orderIndex"`
	IncomeEntryID int64  `json:"incomeEntryId"`
}
