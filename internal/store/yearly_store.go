package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ledgerly/backend/internal/client"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
	"github.com/rs/zerolog"
)

var (
	ErrNoBudgetSelected     = errors.New("no yearly budget is selected")
	ErrInvalidCalendarMonth = errors.New("month must be between 1 and 12")
	ErrSameMonth            = errors.New("source and target months cannot be the same")
)

// YearlyAPI is the part of the API the yearly store calls into.
type YearlyAPI interface {
	YearlyBudgets(ctx context.Context) ([]models.YearlyBudget, error)
	YearlyBudget(ctx context.Context, id int64) (models.YearlyBudget, error)
	YearlyBudgetByYear(ctx context.Context, year int) (models.YearlyBudget, error)
	CreateYearlyBudget(ctx context.Context, data client.YearlyBudgetCreate) (models.YearlyBudget, error)
	UpdateYearlyBudget(ctx context.Context, id int64, data client.YearlyBudgetUpdate) (models.YearlyBudget, error)
	DeleteYearlyBudget(ctx context.Context, id int64) error

	UpdateSection(ctx context.Context, id int64, data client.SectionUpdate) (models.Section, error)

	CreateYearlyCategory(ctx context.Context, data client.YearlyCategoryCreate) (models.YearlyCategory, error)
	UpdateYearlyCategory(ctx context.Context, id int64, data client.YearlyCategoryUpdate) (models.YearlyCategory, error)
	DeleteYearlyCategory(ctx context.Context, id int64) error
	UpdateCategoryEntry(ctx context.Context, id int64, data client.CategoryEntryUpdate) (models.CategoryEntry, error)

	CreateIncomeSource(ctx context.Context, data client.IncomeSourceCreate) (models.IncomeSource, error)
	UpdateIncomeSource(ctx context.Context, id int64, data client.IncomeSourceUpdate) (models.IncomeSource, error)
	DeleteIncomeSource(ctx context.Context, id int64) error
	UpdateIncomeEntry(ctx context.Context, id int64, data client.IncomeEntryUpdate) (models.IncomeEntry, error)

	CreateDeduction(ctx context.Context, data client.DeductionCreate) (models.Deduction, error)
	UpdateDeduction(ctx context.Context, id int64, data client.DeductionUpdate) (models.Deduction, error)
	DeleteDeduction(ctx context.Context, id int64) error

	CopyMonth(ctx context.Context, budgetID int64, data client.CopyMonthRequest) (client.BulkResult, error)
	ClearMonth(ctx context.Context, budgetID int64, data client.ClearMonthRequest) (client.BulkResult, error)
}

// yearlyState is the aggregate the yearly store owns: the list of budgets,
// the budget selected for the current year with its full tree, and the
// summary derived from it.
type yearlyState struct {
	Budgets      []models.YearlyBudget
	Current      *models.YearlyBudget
	SelectedYear int
	Summary      *summary.YearlySummary
}

// Clone returns a deep copy sharing no references with the receiver.
func (s *yearlyState) Clone() *yearlyState {
	c := &yearlyState{
		Current:      s.Current.Clone(),
		SelectedYear: s.SelectedYear,
	}

	c.Budgets = make([]models.YearlyBudget, len(s.Budgets))
	for i := range s.Budgets {
		c.Budgets[i] = *s.Budgets[i].Clone()
	}

	if s.Summary != nil {
		sum := *s.Summary
		sum.Months = make([]summary.MonthOverview, len(s.Summary.Months))
		for i, month := range s.Summary.Months {
			month.Sections = append([]summary.SectionSummary(nil), month.Sections...)
			sum.Months[i] = month
		}
		c.Summary = &sum
	}

	return c
}

// YearlyStore owns the yearly overview aggregate. It is constructed once at
// application start and handed to every consumer; all mutation entry points
// follow the snapshot/rollback protocol.
type YearlyStore struct {
	s    session[*yearlyState]
	api  YearlyAPI
	temp *TempIDSource
}

func NewYearlyStore(api YearlyAPI, ledger *Ledger, temp *TempIDSource, notify Notifier, log zerolog.Logger) *YearlyStore {
	st := &YearlyStore{
		api:  api,
		temp: temp,
	}
	st.s = session[*yearlyState]{
		state:  &yearlyState{},
		ledger: ledger,
		notify: notify,
		log:    log.With().Str("store", "yearly").Logger(),
		recompute: func(state *yearlyState) {
			if state.Current == nil {
				state.Summary = nil
				return
			}
			sum := summary.ForYear(state.Current)
			state.Summary = &sum
		},
	}
	return st
}

func (st *YearlyStore) Err() string { return st.s.Err() }
func (st *YearlyStore) ClearError() { st.s.ClearError() }

// HasBudget reports whether a budget is selected.
func (st *YearlyStore) HasBudget() bool {
	var has bool
	st.s.read(func(state *yearlyState) {
		has = state.Current != nil
	})
	return has
}

// SelectedYear returns the year the store is focused on.
func (st *YearlyStore) SelectedYear() int {
	var year int
	st.s.read(func(state *yearlyState) {
		year = state.SelectedYear
	})
	return year
}

// Budgets returns a copy of the budget list.
func (st *YearlyStore) Budgets() []models.YearlyBudget {
	var budgets []models.YearlyBudget
	st.s.read(func(state *yearlyState) {
		budgets = make([]models.YearlyBudget, len(state.Budgets))
		for i := range state.Budgets {
			budgets[i] = *state.Budgets[i].Clone()
		}
	})
	return budgets
}

// AvailableYears returns the years of all known budgets, newest first.
func (st *YearlyStore) AvailableYears() []int {
	var years []int
	st.s.read(func(state *yearlyState) {
		for _, budget := range state.Budgets {
			years = append(years, budget.Year)
		}
	})
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Current returns a copy of the selected budget, or nil.
func (st *YearlyStore) Current() *models.YearlyBudget {
	var current *models.YearlyBudget
	st.s.read(func(state *yearlyState) {
		current = state.Current.Clone()
	})
	return current
}

// Summary returns the summary derived from the current optimistic state, or
// nil when no budget is selected.
func (st *YearlyStore) Summary() *summary.YearlySummary {
	var sum *summary.YearlySummary
	st.s.read(func(state *yearlyState) {
		if state.Summary == nil {
			return
		}
		s := *state.Summary
		s.Months = make([]summary.MonthOverview, len(state.Summary.Months))
		for i, month := range state.Summary.Months {
			month.Sections = append([]summary.SectionSummary(nil), month.Sections...)
			s.Months[i] = month
		}
		sum = &s
	})
	return sum
}

// IsSyncing reports whether the entity is referenced by an in-flight
// mutation of this store's ledger.
func (st *YearlyStore) IsSyncing(entity EntityKind, id int64) bool {
	return st.s.ledger.IsSyncing(entity, id)
}

// FetchBudgets loads the budget list.
func (st *YearlyStore) FetchBudgets(ctx context.Context) error {
	st.s.setError("")

	budgets, err := st.api.YearlyBudgets(ctx)
	if err != nil {
		st.s.setError(err.Error())
		return err
	}

	st.s.update(func(state *yearlyState) {
		state.Budgets = budgets
	})
	return nil
}

// FetchBudgetByID loads one budget with its full tree and selects it.
func (st *YearlyStore) FetchBudgetByID(ctx context.Context, id int64) error {
	st.s.setError("")

	budget, err := st.api.YearlyBudget(ctx, id)
	if err != nil {
		st.s.setError(err.Error())
		return err
	}

	st.s.update(func(state *yearlyState) {
		state.Current = &budget
		state.SelectedYear = budget.Year
	})
	return nil
}

// FetchBudgetByYear loads the budget for a year. A missing budget is not an
// error: the current budget is cleared and the caller can offer creation.
func (st *YearlyStore) FetchBudgetByYear(ctx context.Context, year int) error {
	st.s.setError("")

	budget, err := st.api.YearlyBudgetByYear(ctx, year)
	if err != nil {
		if client.IsNotFound(err) {
			st.s.update(func(state *yearlyState) {
				state.Current = nil
				state.SelectedYear = year
			})
			return nil
		}
		st.s.setError(err.Error())
		return err
	}

	st.s.update(func(state *yearlyState) {
		state.Current = &budget
		state.SelectedYear = year
	})
	return nil
}

// SelectYear focuses the store on a year and fetches its budget.
func (st *YearlyStore) SelectYear(ctx context.Context, year int) error {
	return st.FetchBudgetByYear(ctx, year)
}

// GetOrCreateBudgetForYear fetches the budget for a year, creating it when
// none exists yet.
func (st *YearlyStore) GetOrCreateBudgetForYear(ctx context.Context, year int) error {
	err := st.FetchBudgetByYear(ctx, year)
	if err != nil {
		return err
	}
	if st.HasBudget() {
		return nil
	}

	_, err = st.CreateBudget(ctx, client.YearlyBudgetCreate{Year: year})
	return err
}

func (st *YearlyStore) CreateBudget(ctx context.Context, data client.YearlyBudgetCreate) (models.YearlyBudget, error) {
	tempID := st.temp.Next()

	placeholder := models.YearlyBudget{
		Model: models.Model{ID: tempID, Timestamps: freshTimestamps()},
		Year:  data.Year,
	}
	patch(&placeholder.SpendTarget, data.SpendTarget)
	patch(&placeholder.ShowWarnings, data.ShowWarnings)

	// The server creates the three fixed sections with the budget, so the
	// placeholder carries them too.
	placeholder.Sections = models.DefaultSections()
	for i := range placeholder.Sections {
		placeholder.Sections[i].Model = models.Model{ID: st.temp.Next(), Timestamps: freshTimestamps()}
		placeholder.Sections[i].YearlyBudgetID = tempID
		placeholder.Sections[i].Categories = []models.YearlyCategory{}
	}
	placeholder.IncomeSources = []models.IncomeSource{}

	return run(ctx, &st.s, mutation[*yearlyState, models.YearlyBudget]{
		op:     OperationCreate,
		entity: EntityYearlyBudget,
		tempID: tempID,
		apply: func(state *yearlyState) {
			state.Budgets = append(state.Budgets, placeholder)
			state.Current = placeholder.Clone()
			state.SelectedYear = data.Year
		},
		call: func(ctx context.Context) (models.YearlyBudget, error) {
			return st.api.CreateYearlyBudget(ctx, data)
		},
		reconcile: func(state *yearlyState, created models.YearlyBudget) {
			for i := range state.Budgets {
				if state.Budgets[i].ID == tempID {
					state.Budgets[i] = created
				}
			}
			if state.Current != nil && state.Current.ID == tempID {
				state.Current = created.Clone()
			}
		},
	})
}

func (st *YearlyStore) UpdateBudget(ctx context.Context, id int64, data client.YearlyBudgetUpdate) (models.YearlyBudget, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.YearlyBudget]{
		op:     OperationUpdate,
		entity: EntityYearlyBudget,
		realID: id,
		apply: func(state *yearlyState) {
			for i := range state.Budgets {
				if state.Budgets[i].ID == id {
					patchBudget(&state.Budgets[i], data)
				}
			}
			if state.Current != nil && state.Current.ID == id {
				patchBudget(state.Current, data)
			}
		},
		call: func(ctx context.Context) (models.YearlyBudget, error) {
			return st.api.UpdateYearlyBudget(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.YearlyBudget) {
			for i := range state.Budgets {
				if state.Budgets[i].ID == id {
					state.Budgets[i] = updated
				}
			}
			// Merge weakly into the current aggregate: the update response
			// carries no relations, the optimistic tree stays.
			if state.Current != nil && state.Current.ID == id {
				merged := updated
				merged.IncomeSources = state.Current.IncomeSources
				merged.Sections = state.Current.Sections
				state.Current = &merged
			}
		},
	})
}

func (st *YearlyStore) DeleteBudget(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*yearlyState, struct{}]{
		op:     OperationDelete,
		entity: EntityYearlyBudget,
		realID: id,
		apply: func(state *yearlyState) {
			budgets := state.Budgets[:0]
			for _, budget := range state.Budgets {
				if budget.ID != id {
					budgets = append(budgets, budget)
				}
			}
			state.Budgets = budgets

			if state.Current != nil && state.Current.ID == id {
				state.Current = nil
			}
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteYearlyBudget(ctx, id)
		},
	})
	if err == nil {
		st.s.notify.ShowSuccess("Yearly budget deleted")
	}
	return err
}

func (st *YearlyStore) UpdateSection(ctx context.Context, id int64, data client.SectionUpdate) (models.Section, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.Section]{
		op:     OperationUpdate,
		entity: EntitySection,
		realID: id,
		apply: func(state *yearlyState) {
			section := findSection(state, id)
			if section == nil {
				return
			}
			patch(&section.Name, data.Name)
			patch(&section.TargetPercent, data.TargetPercent)
			patch(&section.OrderIndex, data.OrderIndex)
			section.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.Section, error) {
			return st.api.UpdateSection(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.Section) {
			section := findSection(state, id)
			if section == nil {
				return
			}
			updated.Categories = section.Categories
			*section = updated
		},
	})
}

func patchBudget(budget *models.YearlyBudget, data client.YearlyBudgetUpdate) {
	patch(&budget.SpendTarget, data.SpendTarget)
	patch(&budget.ShowWarnings, data.ShowWarnings)
	budget.UpdatedAt = time.Now().In(time.UTC)
}

func findSection(state *yearlyState, id int64) *models.Section {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.Sections {
		if state.Current.Sections[i].ID == id {
			return &state.Current.Sections[i]
		}
	}
	return nil
}
