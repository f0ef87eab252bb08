package store

import (
	"context"
	"time"

	"github.com/ledgerly/backend/internal/client"
	"github.com/ledgerly/backend/internal/models"
)

// CreateIncomeSource creates an income source. Like the server, the
// placeholder carries twelve zero-gross entries, one per calendar month.
func (st *YearlyStore) CreateIncomeSource(ctx context.Context, data client.IncomeSourceCreate) (models.IncomeSource, error) {
	tempID := st.temp.Next()

	placeholder := models.IncomeSource{
		Model:          models.Model{ID: tempID, Timestamps: freshTimestamps()},
		Name:           data.Name,
		OrderIndex:     data.OrderIndex,
		YearlyBudgetID: data.YearlyBudgetID,
		Entries:        make([]models.IncomeEntry, 0, 12),
	}
	for month := 1; month <= 12; month++ {
		placeholder.Entries = append(placeholder.Entries, models.IncomeEntry{
			Model:          models.Model{ID: st.temp.Next(), Timestamps: freshTimestamps()},
			Month:          month,
			IncomeSourceID: tempID,
			Deductions:     []models.Deduction{},
		})
	}

	return run(ctx, &st.s, mutation[*yearlyState, models.IncomeSource]{
		op:     OperationCreate,
		entity: EntityIncomeSource,
		tempID: tempID,
		apply: func(state *yearlyState) {
			if state.Current == nil {
				return
			}
			state.Current.IncomeSources = append(state.Current.IncomeSources, placeholder)
		},
		call: func(ctx context.Context) (models.IncomeSource, error) {
			return st.api.CreateIncomeSource(ctx, data)
		},
		reconcile: func(state *yearlyState, created models.IncomeSource) {
			source := findIncomeSource(state, tempID)
			if source == nil {
				return
			}
			if created.Entries == nil {
				created.Entries = source.Entries
			}
			*source = created
		},
	})
}

func (st *YearlyStore) UpdateIncomeSource(ctx context.Context, id int64, data client.IncomeSourceUpdate) (models.IncomeSource, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.IncomeSource]{
		op:     OperationUpdate,
		entity: EntityIncomeSource,
		realID: id,
		apply: func(state *yearlyState) {
			source := findIncomeSource(state, id)
			if source == nil {
				return
			}
			patch(&source.Name, data.Name)
			patch(&source.OrderIndex, data.OrderIndex)
			source.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.IncomeSource, error) {
			return st.api.UpdateIncomeSource(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.IncomeSource) {
			source := findIncomeSource(state, id)
			if source == nil {
				return
			}
			updated.Entries = source.Entries
			*source = updated
		},
	})
}

func (st *YearlyStore) DeleteIncomeSource(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*yearlyState, struct{}]{
		op:     OperationDelete,
		entity: EntityIncomeSource,
		realID: id,
		apply: func(state *yearlyState) {
			if state.Current == nil {
				return
			}
			sources := state.Current.IncomeSources[:0]
			for _, source := range state.Current.IncomeSources {
				if source.ID != id {
					sources = append(sources, source)
				}
			}
			state.Current.IncomeSources = sources
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteIncomeSource(ctx, id)
		},
	})
	if err == nil {
		st.s.notify.ShowSuccess("Income source deleted")
	}
	return err
}

func (st *YearlyStore) UpdateIncomeEntry(ctx context.Context, id int64, data client.IncomeEntryUpdate) (models.IncomeEntry, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.IncomeEntry]{
		op:     OperationUpdate,
		entity: EntityIncomeEntry,
		realID: id,
		apply: func(state *yearlyState) {
			entry := findIncomeEntry(state, id)
			if entry == nil {
				return
			}
			patch(&entry.GrossAmount, data.GrossAmount)
			entry.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.IncomeEntry, error) {
			return st.api.UpdateIncomeEntry(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.IncomeEntry) {
			entry := findIncomeEntry(state, id)
			if entry == nil {
				return
			}
			updated.Deductions = entry.Deductions
			*entry = updated
		},
	})
}

func (st *YearlyStore) CreateDeduction(ctx context.Context, data client.DeductionCreate) (models.Deduction, error) {
	tempID := st.temp.Next()

	placeholder := models.Deduction{
		Model:         models.Model{ID: tempID, Timestamps: freshTimestamps()},
		Name:          data.Name,
		Amount:        data.Amount,
		OrderIndex:    data.OrderIndex,
		IncomeEntryID: data.IncomeEntryID,
	}

	return run(ctx, &st.s, mutation[*yearlyState, models.Deduction]{
		op:     OperationCreate,
		entity: EntityDeduction,
		tempID: tempID,
		apply: func(state *yearlyState) {
			entry := findIncomeEntry(state, data.IncomeEntryID)
			if entry != nil {
				entry.Deductions = append(entry.Deductions, placeholder)
			}
		},
		call: func(ctx context.Context) (models.Deduction, error) {
			return st.api.CreateDeduction(ctx, data)
		},
		reconcile: func(state *yearlyState, created models.Deduction) {
			deduction := findDeduction(state, tempID)
			if deduction != nil {
				*deduction = created
			}
		},
	})
}

func (st *YearlyStore) UpdateDeduction(ctx context.Context, id int64, data client.DeductionUpdate) (models.Deduction, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.Deduction]{
		op:     OperationUpdate,
		entity: EntityDeduction,
		realID: id,
		apply: func(state *yearlyState) {
			deduction := findDeduction(state, id)
			if deduction == nil {
				return
			}
			patch(&deduction.Name, data.Name)
			patch(&deduction.Amount, data.Amount)
			patch(&deduction.OrderIndex, data.OrderIndex)
			deduction.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.Deduction, error) {
			return st.api.UpdateDeduction(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.Deduction) {
			deduction := findDeduction(state, id)
			if deduction != nil {
				*deduction = updated
			}
		},
	})
}

func (st *YearlyStore) DeleteDeduction(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*yearlyState, struct{}]{
		op:     OperationDelete,
		entity: EntityDeduction,
		realID: id,
		apply: func(state *yearlyState) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.IncomeSources {
				entries := state.Current.IncomeSources[i].Entries
				for j := range entries {
					deductions := entries[j].Deductions[:0]
					for _, deduction := range entries[j].Deductions {
						if deduction.ID != id {
							deductions = append(deductions, deduction)
						}
					}
					entries[j].Deductions = deductions
				}
			}
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteDeduction(ctx, id)
		},
	})
	return err
}

// IncomeSources returns a copy of the income sources of the current budget.
func (st *YearlyStore) IncomeSources() []models.IncomeSource {
	var sources []models.IncomeSource
	st.s.read(func(state *yearlyState) {
		if state.Current == nil {
			return
		}
		sources = make([]models.IncomeSource, len(state.Current.IncomeSources))
		for i := range state.Current.IncomeSources {
			sources[i] = *state.Current.IncomeSources[i].Clone()
		}
	})
	return sources
}

// IncomeEntry returns a copy of the entry of an income source for a month,
// or nil.
func (st *YearlyStore) IncomeEntry(sourceID int64, month int) *models.IncomeEntry {
	var found *models.IncomeEntry
	st.s.read(func(state *yearlyState) {
		source := findIncomeSource(state, sourceID)
		if source == nil {
			return
		}
		for i := range source.Entries {
			if source.Entries[i].Month == month {
				found = source.Entries[i].Clone()
				return
			}
		}
	})
	return found
}

// NetIncomeForMonth returns gross income minus deductions across all sources
// for one calendar month.
func (st *YearlyStore) NetIncomeForMonth(month int) int64 {
	var total int64
	st.s.read(func(state *yearlyState) {
		if state.Current == nil {
			return
		}
		for i := range state.Current.IncomeSources {
			for _, entry := range state.Current.IncomeSources[i].Entries {
				if entry.Month != month {
					continue
				}
				total += entry.GrossAmount
				for _, deduction := range entry.Deductions {
					total -= deduction.Amount
				}
			}
		}
	})
	return total
}

func findIncomeSource(state *yearlyState, id int64) *models.IncomeSource {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.IncomeSources {
		if state.Current.IncomeSources[i].ID == id {
			return &state.Current.IncomeSources[i]
		}
	}
	return nil
}

func findIncomeEntry(state *yearlyState, id int64) *models.IncomeEntry {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.IncomeSources {
		entries := state.Current.IncomeSources[i].Entries
		for j := range entries {
			if entries[j].ID == id {
				return &entries[j]
			}
		}
	}
	return nil
}

func findDeduction(state *yearlyState, id int64) *models.Deduction {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.IncomeSources {
		entries := state.Current.IncomeSources[i].Entries
		for j := range entries {
			for k := range entries[j].Deductions {
				if entries[j].Deductions[k].ID == id {
					return &entries[j].Deductions[k]
				}
			}
		}
	}
	return nil
}
