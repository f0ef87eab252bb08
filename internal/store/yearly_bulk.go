package store

import (
	"context"
	"time"

	"github.com/ledgerly/backend/internal/client"
	"github.com/ledgerly/backend/internal/models"
)

// CopyMonth copies one calendar month of the current budget onto another:
// every category entry amount (children included), every income entry gross
// amount, and the deductions of each income entry, matched by name so target
// deductions keep their identity. With ResetPaidStatus the target entries
// are additionally marked unpaid.
//
// The whole copy is one optimistic mutation on the budget: it either settles
// completely or rolls back completely.
func (st *YearlyStore) CopyMonth(ctx context.Context, data client.CopyMonthRequest) (client.BulkResult, error) {
	budgetID, err := st.bulkTarget(data.SourceMonth, data.TargetMonth)
	if err == nil && data.SourceMonth == data.TargetMonth {
		err = ErrSameMonth
		st.s.setError(err.Error())
	}
	if err != nil {
		return client.BulkResult{}, err
	}

	return run(ctx, &st.s, mutation[*yearlyState, client.BulkResult]{
		op:     OperationUpdate,
		entity: EntityYearlyBudget,
		realID: budgetID,
		apply: func(state *yearlyState) {
			copyMonth(state.Current, data, st.temp)
		},
		call: func(ctx context.Context) (client.BulkResult, error) {
			return st.api.CopyMonth(ctx, budgetID, data)
		},
		// The server reports row counts only; the optimistic transform is
		// already the settled state.
	})
}

// ClearMonth zeroes one calendar month of the current budget: all category
// entry amounts, income gross amounts and deduction amounts, with paid flags
// reset when requested.
func (st *YearlyStore) ClearMonth(ctx context.Context, data client.ClearMonthRequest) (client.BulkResult, error) {
	budgetID, err := st.bulkTarget(data.Month, data.Month)
	if err != nil {
		return client.BulkResult{}, err
	}

	return run(ctx, &st.s, mutation[*yearlyState, client.BulkResult]{
		op:     OperationUpdate,
		entity: EntityYearlyBudget,
		realID: budgetID,
		apply: func(state *yearlyState) {
			clearMonth(state.Current, data)
		},
		call: func(ctx context.Context) (client.BulkResult, error) {
			return st.api.ClearMonth(ctx, budgetID, data)
		},
	})
}

// bulkTarget validates a bulk request against the current state and returns
// the budget it targets.
func (st *YearlyStore) bulkTarget(source, target int) (int64, error) {
	var budgetID int64
	st.s.read(func(state *yearlyState) {
		if state.Current != nil {
			budgetID = state.Current.ID
		}
	})

	var err error
	switch {
	case budgetID == 0:
		err = ErrNoBudgetSelected
	case source < 1 || source > 12 || target < 1 || target > 12:
		err = ErrInvalidCalendarMonth
	}
	if err != nil {
		st.s.setError(err.Error())
	}
	return budgetID, err
}

func copyMonth(budget *models.YearlyBudget, data client.CopyMonthRequest, temp *TempIDSource) {
	if budget == nil {
		return
	}
	now := time.Now().In(time.UTC)

	for i := range budget.Sections {
		categories := budget.Sections[i].Categories
		for j := range categories {
			copyCategoryMonth(&categories[j], data, now)
			for k := range categories[j].Children {
				copyCategoryMonth(&categories[j].Children[k], data, now)
			}
		}
	}

	for i := range budget.IncomeSources {
		entries := budget.IncomeSources[i].Entries
		source := incomeEntryForMonth(entries, data.SourceMonth)
		target := incomeEntryForMonth(entries, data.TargetMonth)
		if source == nil || target == nil {
			continue
		}

		target.GrossAmount = source.GrossAmount
		target.UpdatedAt = now

		// Deductions carry over by name: matching ones take the source
		// amount, the rest of the source's deductions are appended.
		for j := range target.Deductions {
			if match := deductionByName(source.Deductions, target.Deductions[j].Name); match != nil {
				target.Deductions[j].Amount = match.Amount
				target.Deductions[j].UpdatedAt = now
			}
		}
		for _, deduction := range source.Deductions {
			if deductionByName(target.Deductions, deduction.Name) != nil {
				continue
			}
			// The copy is a new entity, so it carries a placeholder ID like
			// any other client-side create. Keeping the source's ID would put
			// two deductions with one real ID into the aggregate.
			copied := deduction
			copied.Model = models.Model{ID: temp.Next(), Timestamps: models.Timestamps{CreatedAt: now, UpdatedAt: now}}
			copied.IncomeEntryID = target.ID
			target.Deductions = append(target.Deductions, copied)
		}
	}
}

func copyCategoryMonth(category *models.YearlyCategory, data client.CopyMonthRequest, now time.Time) {
	source := categoryEntryForMonth(category.Entries, data.SourceMonth)
	target := categoryEntryForMonth(category.Entries, data.TargetMonth)
	if source == nil || target == nil {
		return
	}
	target.Amount = source.Amount
	if data.ResetPaidStatus {
		target.IsPaid = false
	}
	target.UpdatedAt = now
}

func clearMonth(budget *models.YearlyBudget, data client.ClearMonthRequest) {
	if budget == nil {
		return
	}
	now := time.Now().In(time.UTC)

	clearCategory := func(category *models.YearlyCategory) {
		entry := categoryEntryForMonth(category.Entries, data.Month)
		if entry == nil {
			return
		}
		entry.Amount = 0
		if data.ResetPaidStatus {
			entry.IsPaid = false
		}
		entry.UpdatedAt = now
	}

	for i := range budget.Sections {
		categories := budget.Sections[i].Categories
		for j := range categories {
			clearCategory(&categories[j])
			for k := range categories[j].Children {
				clearCategory(&categories[j].Children[k])
			}
		}
	}

	for i := range budget.IncomeSources {
		entry := incomeEntryForMonth(budget.IncomeSources[i].Entries, data.Month)
		if entry == nil {
			continue
		}
		entry.GrossAmount = 0
		entry.UpdatedAt = now
		for j := range entry.Deductions {
			entry.Deductions[j].Amount = 0
			entry.Deductions[j].UpdatedAt = now
		}
	}
}

func categoryEntryForMonth(entries []models.CategoryEntry, month int) *models.CategoryEntry {
	for i := range entries {
		if entries[i].Month == month {
			return &entries[i]
		}
	}
	return nil
}

func incomeEntryForMonth(entries []models.IncomeEntry, month int) *models.IncomeEntry {
	for i := range entries {
		if entries[i].Month == month {
			return &entries[i]
		}
	}
	return nil
}

func deductionByName(deductions []models.Deduction, name string) *models.Deduction {
	for i := range deductions {
		if deductions[i].Name == name {
			return &deductions[i]
		}
	}
	return nil
}
