package store

import (
	"context"
	"sort"
	"time"

	"github.com/ledgerly/backend/internal/client"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
	"github.com/rs/zerolog"
)

// MonthAPI is the part of the API the month store calls into.
type MonthAPI interface {
	Months(ctx context.Context) ([]models.Month, error)
	Month(ctx context.Context, id int64) (models.Month, error)
	CreateMonth(ctx context.Context, data client.MonthCreate) (models.Month, error)
	UpdateMonth(ctx context.Context, id int64, data client.MonthUpdate) (models.Month, error)
	DeleteMonth(ctx context.Context, id int64) error

	CreateFixedPayment(ctx context.Context, data client.FixedPaymentCreate) (models.FixedPayment, error)
	UpdateFixedPayment(ctx context.Context, id int64, data client.FixedPaymentUpdate) (models.FixedPayment, error)
	DeleteFixedPayment(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, data client.CategoryCreate) (models.Category, error)
	UpdateCategory(ctx context.Context, id int64, data client.CategoryUpdate) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, data client.TransactionCreate) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, data client.TransactionUpdate) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// monthState is the aggregate the month store owns: the list of months, the
// currently selected month with all relations, and the summary derived from
// it.
type monthState struct {
	Months  []models.Month
	Current *models.Month
	Summary *summary.MonthSummary
}

// Clone returns a deep copy sharing no references with the receiver.
func (s *monthState) Clone() *monthState {
	c := &monthState{
		Current: s.Current.Clone(),
	}

	c.Months = make([]models.Month, len(s.Months))
	for i := range s.Months {
		c.Months[i] = *s.Months[i].Clone()
	}

	if s.Summary != nil {
		sum := *s.Summary
		sum.Categories = make([]summary.CategorySummary, len(s.Summary.Categories))
		copy(sum.Categories, s.Summary.Categories)
		c.Summary = &sum
	}

	return c
}

// MonthStore owns the monthly transaction aggregate. It is constructed once
// at application start and handed to every consumer; all mutation entry
// points follow the snapshot/rollback protocol.
type MonthStore struct {
	s    session[*monthState]
	api  MonthAPI
	temp *TempIDSource
}

func NewMonthStore(api MonthAPI, ledger *Ledger, temp *TempIDSource, notify Notifier, log zerolog.Logger) *MonthStore {
	st := &MonthStore{
		api:  api,
		temp: temp,
	}
	st.s = session[*monthState]{
		state:  &monthState{},
		ledger: ledger,
		notify: notify,
		log:    log.With().Str("store", "month").Logger(),
		recompute: func(state *monthState) {
			if state.Current == nil {
				state.Summary = nil
				return
			}
			sum := summary.ForMonth(state.Current)
			state.Summary = &sum
		},
	}
	return st
}

func (st *MonthStore) Err() string     { return st.s.Err() }
func (st *MonthStore) ClearError()     { st.s.ClearError() }
func (st *MonthStore) HasMonths() bool { return len(st.Months()) > 0 }

// Months returns a copy of the month list.
func (st *MonthStore) Months() []models.Month {
	var months []models.Month
	st.s.read(func(state *monthState) {
		months = make([]models.Month, len(state.Months))
		for i := range state.Months {
			months[i] = *state.Months[i].Clone()
		}
	})
	return months
}

// SortedMonths returns the month list sorted newest first.
func (st *MonthStore) SortedMonths() []models.Month {
	months := st.Months()
	sort.SliceStable(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months
}

// Current returns a copy of the selected month, or nil.
func (st *MonthStore) Current() *models.Month {
	var current *models.Month
	st.s.read(func(state *monthState) {
		current = state.Current.Clone()
	})
	return current
}

// Summary returns the summary derived from the current optimistic state, or
// nil when no month is selected.
func (st *MonthStore) Summary() *summary.MonthSummary {
	var sum *summary.MonthSummary
	st.s.read(func(state *monthState) {
		if state.Summary != nil {
			s := *state.Summary
			s.Categories = make([]summary.CategorySummary, len(state.Summary.Categories))
			copy(s.Categories, state.Summary.Categories)
			sum = &s
		}
	})
	return sum
}

// FetchMonths loads the month list.
func (st *MonthStore) FetchMonths(ctx context.Context) error {
	st.s.setError("")

	months, err := st.api.Months(ctx)
	if err != nil {
		st.s.setError(err.Error())
		return err
	}

	st.s.update(func(state *monthState) {
		state.Months = months
	})
	return nil
}

// FetchMonth loads one month with all relations and selects it.
func (st *MonthStore) FetchMonth(ctx context.Context, id int64) error {
	st.s.setError("")

	month, err := st.api.Month(ctx, id)
	if err != nil {
		st.s.setError(err.Error())
		return err
	}

	st.s.update(func(state *monthState) {
		state.Current = &month
	})
	return nil
}

// SelectMonth selects a month, fetching it unless it is already current.
func (st *MonthStore) SelectMonth(ctx context.Context, id int64) error {
	var selected bool
	st.s.read(func(state *monthState) {
		selected = state.Current != nil && state.Current.ID == id
	})
	if selected {
		return nil
	}
	return st.FetchMonth(ctx, id)
}

// RefreshCurrentMonth re-fetches the selected month, if any.
func (st *MonthStore) RefreshCurrentMonth(ctx context.Context) error {
	var id int64
	st.s.read(func(state *monthState) {
		if state.Current != nil {
			id = state.Current.ID
		}
	})
	if id == 0 {
		return nil
	}
	return st.FetchMonth(ctx, id)
}

// ClearCurrentMonth drops the selection.
func (st *MonthStore) ClearCurrentMonth() {
	st.s.update(func(state *monthState) {
		state.Current = nil
	})
}

func (st *MonthStore) CreateMonth(ctx context.Context, data client.MonthCreate) (models.Month, error) {
	tempID := st.temp.Next()
	return run(ctx, &st.s, mutation[*monthState, models.Month]{
		op:     OperationCreate,
		entity: EntityMonth,
		tempID: tempID,
		apply: func(state *monthState) {
			state.Months = append(state.Months, models.Month{
				Model:  models.Model{ID: tempID, Timestamps: freshTimestamps()},
				Name:   data.Name,
				Year:   data.Year,
				Month:  data.Month,
				Income: data.Income,
			})
		},
		call: func(ctx context.Context) (models.Month, error) {
			return st.api.CreateMonth(ctx, data)
		},
		reconcile: func(state *monthState, created models.Month) {
			for i := range state.Months {
				if state.Months[i].ID == tempID {
					state.Months[i] = created
					return
				}
			}
		},
	})
}

func (st *MonthStore) UpdateMonth(ctx context.Context, id int64, data client.MonthUpdate) (models.Month, error) {
	return run(ctx, &st.s, mutation[*monthState, models.Month]{
		op:     OperationUpdate,
		entity: EntityMonth,
		realID: id,
		apply: func(state *monthState) {
			for i := range state.Months {
				if state.Months[i].ID == id {
					patchMonth(&state.Months[i], data)
				}
			}
			if state.Current != nil && state.Current.ID == id {
				patchMonth(state.Current, data)
			}
		},
		call: func(ctx context.Context) (models.Month, error) {
			return st.api.UpdateMonth(ctx, id, data)
		},
		reconcile: func(state *monthState, updated models.Month) {
			for i := range state.Months {
				if state.Months[i].ID == id {
					state.Months[i] = updated
				}
			}
			// Merge weakly into the current aggregate: the update response
			// carries no relations, the optimistic ones stay.
			if state.Current != nil && state.Current.ID == id {
				merged := updated
				merged.FixedPayments = state.Current.FixedPayments
				merged.Categories = state.Current.Categories
				state.Current = &merged
			}
		},
	})
}

func (st *MonthStore) DeleteMonth(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*monthState, struct{}]{
		op:     OperationDelete,
		entity: EntityMonth,
		realID: id,
		apply: func(state *monthState) {
			months := state.Months[:0]
			for _, month := range state.Months {
				if month.ID != id {
					months = append(months, month)
				}
			}
			state.Months = months

			if state.Current != nil && state.Current.ID == id {
				state.Current = nil
			}
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteMonth(ctx, id)
		},
	})
	if err == nil {
		st.s.notify.ShowSuccess("Month deleted")
	}
	return err
}

func (st *MonthStore) CreateFixedPayment(ctx context.Context, data client.FixedPaymentCreate) (models.FixedPayment, error) {
	tempID := st.temp.Next()
	return run(ctx, &st.s, mutation[*monthState, models.FixedPayment]{
		op:     OperationCreate,
		entity: EntityFixedPayment,
		tempID: tempID,
		apply: func(state *monthState) {
			if state.Current == nil || state.Current.ID != data.MonthID {
				return
			}
			state.Current.FixedPayments = append(state.Current.FixedPayments, models.FixedPayment{
				Model:      models.Model{ID: tempID, Timestamps: freshTimestamps()},
				Name:       data.Name,
				Amount:     data.Amount,
				OrderIndex: data.OrderIndex,
				MonthID:    data.MonthID,
			})
		},
		call: func(ctx context.Context) (models.FixedPayment, error) {
			return st.api.CreateFixedPayment(ctx, data)
		},
		reconcile: func(state *monthState, created models.FixedPayment) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.FixedPayments {
				if state.Current.FixedPayments[i].ID == tempID {
					state.Current.FixedPayments[i] = created
					return
				}
			}
		},
	})
}

func (st *MonthStore) UpdateFixedPayment(ctx context.Context, id int64, data client.FixedPaymentUpdate) (models.FixedPayment, error) {
	return run(ctx, &st.s, mutation[*monthState, models.FixedPayment]{
		op:     OperationUpdate,
		entity: EntityFixedPayment,
		realID: id,
		apply: func(state *monthState) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.FixedPayments {
				if state.Current.FixedPayments[i].ID == id {
					payment := &state.Current.FixedPayments[i]
					patch(&payment.Name, data.Name)
					patch(&payment.Amount, data.Amount)
					patch(&payment.OrderIndex, data.OrderIndex)
					payment.UpdatedAt = time.Now().In(time.UTC)
					return
				}
			}
		},
		call: func(ctx context.Context) (models.FixedPayment, error) {
			return st.api.UpdateFixedPayment(ctx, id, data)
		},
		reconcile: func(state *monthState, updated models.FixedPayment) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.FixedPayments {
				if state.Current.FixedPayments[i].ID == id {
					state.Current.FixedPayments[i] = updated
					return
				}
			}
		},
	})
}

func (st *MonthStore) DeleteFixedPayment(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*monthState, struct{}]{
		op:     OperationDelete,
		entity: EntityFixedPayment,
		realID: id,
		apply: func(state *monthState) {
			if state.Current == nil {
				return
			}
			payments := state.Current.FixedPayments[:0]
			for _, payment := range state.Current.FixedPayments {
				if payment.ID != id {
					payments = append(payments, payment)
				}
			}
			state.Current.FixedPayments = payments
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteFixedPayment(ctx, id)
		},
	})
	return err
}

func (st *MonthStore) CreateCategory(ctx context.Context, data client.CategoryCreate) (models.Category, error) {
	tempID := st.temp.Next()
	return run(ctx, &st.s, mutation[*monthState, models.Category]{
		op:     OperationCreate,
		entity: EntityCategory,
		tempID: tempID,
		apply: func(state *monthState) {
			if state.Current == nil || state.Current.ID != data.MonthID {
				return
			}
			state.Current.Categories = append(state.Current.Categories, models.Category{
				Model:        models.Model{ID: tempID, Timestamps: freshTimestamps()},
				Name:         data.Name,
				Allocated:    data.Allocated,
				OrderIndex:   data.OrderIndex,
				MonthID:      data.MonthID,
				Transactions: []models.Transaction{},
			})
		},
		call: func(ctx context.Context) (models.Category, error) {
			return st.api.CreateCategory(ctx, data)
		},
		reconcile: func(state *monthState, created models.Category) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.Categories {
				if state.Current.Categories[i].ID == tempID {
					state.Current.Categories[i] = created
					return
				}
			}
		},
	})
}

func (st *MonthStore) UpdateCategory(ctx context.Context, id int64, data client.CategoryUpdate) (models.Category, error) {
	return run(ctx, &st.s, mutation[*monthState, models.Category]{
		op:     OperationUpdate,
		entity: EntityCategory,
		realID: id,
		apply: func(state *monthState) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.Categories {
				if state.Current.Categories[i].ID == id {
					category := &state.Current.Categories[i]
					patch(&category.Name, data.Name)
					patch(&category.Allocated, data.Allocated)
					patch(&category.OrderIndex, data.OrderIndex)
					category.UpdatedAt = time.Now().In(time.UTC)
					return
				}
			}
		},
		call: func(ctx context.Context) (models.Category, error) {
			return st.api.UpdateCategory(ctx, id, data)
		},
		reconcile: func(state *monthState, updated models.Category) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.Categories {
				if state.Current.Categories[i].ID == id {
					// The update response carries no transactions, the
					// optimistic ones stay.
					updated.Transactions = state.Current.Categories[i].Transactions
					state.Current.Categories[i] = updated
					return
				}
			}
		},
	})
}

// DeleteCategory removes a category and all transactions it contains.
func (st *MonthStore) DeleteCategory(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*monthState, struct{}]{
		op:     OperationDelete,
		entity: EntityCategory,
		realID: id,
		apply: func(state *monthState) {
			if state.Current == nil {
				return
			}
			categories := state.Current.Categories[:0]
			for _, category := range state.Current.Categories {
				if category.ID != id {
					categories = append(categories, category)
				}
			}
			state.Current.Categories = categories
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteCategory(ctx, id)
		},
	})
	return err
}

func (st *MonthStore) CreateTransaction(ctx context.Context, data client.TransactionCreate) (models.Transaction, error) {
	tempID := st.temp.Next()
	return run(ctx, &st.s, mutation[*monthState, models.Transaction]{
		op:     OperationCreate,
		entity: EntityTransaction,
		tempID: tempID,
		apply: func(state *monthState) {
			category := findCategory(state, data.CategoryID)
			if category == nil {
				return
			}
			category.Transactions = append(category.Transactions, models.Transaction{
				Model:       models.Model{ID: tempID, Timestamps: freshTimestamps()},
				Description: data.Description,
				Amount:      data.Amount,
				Date:        data.Date,
				CategoryID:  data.CategoryID,
			})
		},
		call: func(ctx context.Context) (models.Transaction, error) {
			return st.api.CreateTransaction(ctx, data)
		},
		reconcile: func(state *monthState, created models.Transaction) {
			category := findCategory(state, data.CategoryID)
			if category == nil {
				return
			}
			for i := range category.Transactions {
				if category.Transactions[i].ID == tempID {
					category.Transactions[i] = created
					return
				}
			}
		},
	})
}

func (st *MonthStore) UpdateTransaction(ctx context.Context, id int64, data client.TransactionUpdate) (models.Transaction, error) {
	return run(ctx, &st.s, mutation[*monthState, models.Transaction]{
		op:     OperationUpdate,
		entity: EntityTransaction,
		realID: id,
		apply: func(state *monthState) {
			transaction := findTransaction(state, id)
			if transaction == nil {
				return
			}
			patch(&transaction.Description, data.Description)
			patch(&transaction.Amount, data.Amount)
			patch(&transaction.Date, data.Date)
			transaction.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.Transaction, error) {
			return st.api.UpdateTransaction(ctx, id, data)
		},
		reconcile: func(state *monthState, updated models.Transaction) {
			transaction := findTransaction(state, id)
			if transaction != nil {
				*transaction = updated
			}
		},
	})
}

func (st *MonthStore) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*monthState, struct{}]{
		op:     OperationDelete,
		entity: EntityTransaction,
		realID: id,
		apply: func(state *monthState) {
			if state.Current == nil {
				return
			}
			for i := range state.Current.Categories {
				category := &state.Current.Categories[i]
				transactions := category.Transactions[:0]
				for _, transaction := range category.Transactions {
					if transaction.ID != id {
						transactions = append(transactions, transaction)
					}
				}
				category.Transactions = transactions
			}
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteTransaction(ctx, id)
		},
	})
	return err
}

// IsSyncing reports whether the entity is referenced by an in-flight
// mutation of this store's ledger.
func (st *MonthStore) IsSyncing(entity EntityKind, id int64) bool {
	return st.s.ledger.IsSyncing(entity, id)
}

func patchMonth(month *models.Month, data client.MonthUpdate) {
	patch(&month.Name, data.Name)
	patch(&month.Year, data.Year)
	patch(&month.Month, data.Month)
	patch(&month.Income, data.Income)
	month.UpdatedAt = time.Now().In(time.UTC)
}

func findCategory(state *monthState, id int64) *models.Category {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.Categories {
		if state.Current.Categories[i].ID == id {
			return &state.Current.Categories[i]
		}
	}
	return nil
}

func findTransaction(state *monthState, id int64) *models.Transaction {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.Categories {
		transactions := state.Current.Categories[i].Transactions
		for j := range transactions {
			if transactions[j].ID == id {
				return &transactions[j]
			}
		}
	}
	return nil
}

func freshTimestamps() models.Timestamps {
	stamp := time.Now().In(time.UTC)
	return models.Timestamps{CreatedAt: stamp, UpdatedAt: stamp}
}
