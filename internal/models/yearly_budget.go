package models

import "errors"

var ErrYearlyBudgetExists = errors.New("a yearly budget for this year already exists")

// YearlyBudget is the root of the yearly overview aggregate. At most one
// exists per profile and year, enforced by a unique index and checked before
// insert so the caller gets a readable error instead of a constraint
// violation.
type YearlyBudget struct {
	Model
	Year         int   `json:"year" gorm:"uniqueIndex:yearly_budget_profile_year"`
	SpendTarget  int64 `json:"spendTarget"`
	ShowWarnings bool  `json:"showWarnings"`
	ProfileID    int64 `json:"-" gorm:"uniqueIndex:yearly_budget_profile_year"`

	IncomeSources []IncomeSource `json:"incomeSources" gorm:"constraint:OnDelete:CASCADE"`
	Sections      []Section      `json:"sections" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (b *YearlyBudget) Clone() *YearlyBudget {
	if b == nil {
		return nil
	}

	c := *b

	c.IncomeSources = make([]IncomeSource, len(b.IncomeSources))
	for i, source := range b.IncomeSources {
		c.IncomeSources[i] = *source.Clone()
	}

	c.Sections = make([]Section, len(b.Sections))
	for i, section := range b.Sections {
		c.Sections[i] = *section.Clone()
	}

	return &c
}
