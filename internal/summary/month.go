// Package summary derives budget totals from an in-memory aggregate.
//
// The functions are pure: the same aggregate always produces the same
// summary. They run on the server behind the summary endpoints and on the
// client after every optimistic transform, so both sides agree
// integer-for-integer on every derived value.
package summary

import "github.com/ledgerly/backend/internal/models"

// CategorySummary is the spending breakdown for one monthly category.
type CategorySummary struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Allocated    int64  `json:"allocated"`
	Spent        int64  `json:"spent"`
	Remaining    int64  `json:"remaining"`  // max(0, allocated - spent)
	OverBudget   int64  `json:"overBudget"` // amount spent beyond the allocation, 0 if within
}

// MonthSummary contains all derived totals for one monthly aggregate.
type MonthSummary struct {
	MonthID               int64             `json:"monthId"`
	MonthName             string            `json:"monthName"`
	Income                int64             `json:"income"`
	TotalFixedPayments    int64             `json:"totalFixedPayments"`
	AvailableAfterFixed   int64             `json:"availableAfterFixed"`
	TotalBudgeted         int64             `json:"totalBudgeted"`
	AvailableAfterBudgets int64             `json:"availableAfterBudgets"`
	TotalSpent            int64             `json:"totalSpent"`
	TotalRemaining        int64             `json:"totalRemaining"`
	Categories            []CategorySummary `json:"categories"`
}

// ForMonth computes the summary for a monthly aggregate.
func ForMonth(m *models.Month) MonthSummary {
	var totalFixed int64
	for _, payment := range m.FixedPayments {
		totalFixed += payment.Amount
	}

	var totalBudgeted, totalSpent int64
	categories := make([]CategorySummary, 0, len(m.Categories))
	for _, category := range m.Categories {
		var spent int64
		for _, transaction := range category.Transactions {
			spent += transaction.Amount
		}

		remaining := category.Allocated - spent
		c := CategorySummary{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Allocated:    category.Allocated,
			Spent:        spent,
		}
		if remaining >= 0 {
			c.Remaining = remaining
		} else {
			c.OverBudget = -remaining
		}

		totalBudgeted += category.Allocated
		totalSpent += spent
		categories = append(categories, c)
	}

	return MonthSummary{
		MonthID:               m.ID,
		MonthName:             m.Name,
		Income:                m.Income,
		TotalFixedPayments:    totalFixed,
		AvailableAfterFixed:   m.Income - totalFixed,
		TotalBudgeted:         totalBudgeted,
		AvailableAfterBudgets: m.Income - totalFixed - totalBudgeted,
		TotalSpent:            totalSpent,
		TotalRemaining:        m.Income - totalFixed - totalSpent,
		Categories:            categories,
	}
}
