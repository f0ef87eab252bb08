package summary

import (
	"math"

	"github.com/ledgerly/backend/internal/models"
)

// SectionSummary is the derived state of one section for one month.
type SectionSummary struct {
	SectionID     int64              `json:"sectionId"`
	SectionType   models.SectionType `json:"sectionType"`
	SectionName   string             `json:"sectionName"`
	TargetPercent int                `json:"targetPercent"`
	ActualPercent int                `json:"actualPercent"`
	Total         int64              `json:"total"`
	IsOverBudget  bool               `json:"isOverBudget"`
}

// MonthOverview contains the derived totals of a yearly budget for one
// calendar month.
type MonthOverview struct {
	Month           int              `json:"month"`
	TotalGross      int64            `json:"totalGross"`
	TotalDeductions int64            `json:"totalDeductions"`
	TotalNet        int64            `json:"totalNet"`
	TotalExpenses   int64            `json:"totalExpenses"`
	SpendTarget     int64            `json:"spendTarget"`
	Leftover        int64            `json:"leftover"`
	Sections        []SectionSummary `json:"sections"`
}

// YearlyTotals are the twelve MonthOverview values summed up.
type YearlyTotals struct {
	TotalGross       int64 `json:"totalGross"`
	TotalDeductions  int64 `json:"totalDeductions"`
	TotalNet         int64 `json:"totalNet"`
	TotalExpenses    int64 `json:"totalExpenses"`
	TotalSpendTarget int64 `json:"totalSpendTarget"`
	TotalLeftover    int64 `json:"totalLeftover"`
}

// YearlySummary contains all derived totals for a yearly budget aggregate.
type YearlySummary struct {
	BudgetID     int64           `json:"budgetId"`
	Year         int             `json:"year"`
	SpendTarget  int64           `json:"spendTarget"`
	ShowWarnings bool            `json:"showWarnings"`
	Months       []MonthOverview `json:"months"`
	Yearly       YearlyTotals    `json:"yearly"`
}

// ForYear computes the summary for a yearly budget aggregate.
func ForYear(b *models.YearlyBudget) YearlySummary {
	s := YearlySummary{
		BudgetID:     b.ID,
		Year:         b.Year,
		SpendTarget:  b.SpendTarget,
		ShowWarnings: b.ShowWarnings,
		Months:       make([]MonthOverview, 0, 12),
	}

	for month := 1; month <= 12; month++ {
		overview := forCalendarMonth(b, month)
		s.Months = append(s.Months, overview)

		s.Yearly.TotalGross += overview.TotalGross
		s.Yearly.TotalDeductions += overview.TotalDeductions
		s.Yearly.TotalNet += overview.TotalNet
		s.Yearly.TotalExpenses += overview.TotalExpenses
		s.Yearly.TotalSpendTarget += overview.SpendTarget
		s.Yearly.TotalLeftover += overview.Leftover
	}

	return s
}

// SectionTotal sums the contributing category entries of one section for one
// calendar month. A parent's own entries stop contributing as soon as it has
// children; only the children's entries count then, so nothing is counted
// twice.
func SectionTotal(section *models.Section, month int) int64 {
	var total int64

	for i := range section.Categories {
		category := &section.Categories[i]
		if category.ParentID != nil {
			continue
		}

		if len(category.Children) == 0 {
			total += entryAmount(category.Entries, month)
			continue
		}

		for j := range category.Children {
			total += entryAmount(category.Children[j].Entries, month)
		}
	}

	return total
}

func forCalendarMonth(b *models.YearlyBudget, month int) MonthOverview {
	var totalGross, totalDeductions int64
	for i := range b.IncomeSources {
		source := &b.IncomeSources[i]
		for j := range source.Entries {
			entry := &source.Entries[j]
			if entry.Month != month {
				continue
			}

			totalGross += entry.GrossAmount
			for _, deduction := range entry.Deductions {
				totalDeductions += deduction.Amount
			}
		}
	}
	totalNet := totalGross - totalDeductions

	var totalExpenses int64
	sections := make([]SectionSummary, 0, len(b.Sections))
	for i := range b.Sections {
		section := &b.Sections[i]
		total := SectionTotal(section, month)
		actualPercent := percentOf(total, totalNet)

		sections = append(sections, SectionSummary{
			SectionID:     section.ID,
			SectionType:   section.Type,
			SectionName:   section.Name,
			TargetPercent: section.TargetPercent,
			ActualPercent: actualPercent,
			Total:         total,
			IsOverBudget:  actualPercent > section.TargetPercent,
		})
		totalExpenses += total
	}

	return MonthOverview{
		Month:           month,
		TotalGross:      totalGross,
		TotalDeductions: totalDeductions,
		TotalNet:        totalNet,
		TotalExpenses:   totalExpenses,
		SpendTarget:     b.SpendTarget,
		Leftover:        totalNet - totalExpenses - b.SpendTarget,
		Sections:        sections,
	}
}

// percentOf is defined as 0 when the net income is zero or negative, so a
// month without income never reports a section as over budget.
func percentOf(total, totalNet int64) int {
	if totalNet <= 0 {
		return 0
	}
	return int(math.Round(float64(total) * 100 / float64(totalNet)))
}

func entryAmount(entries []models.CategoryEntry, month int) int64 {
	for _, entry := range entries {
		if entry.Month == month {
			return entry.Amount
		}
	}
	return 0
}
