// Package store implements the optimistic mutation layer: every mutation is
// applied to the shared in-memory aggregate first, tracked as a pending
// operation while the API call is in flight, and rolled back to a snapshot
// if the call fails. Derived summaries are recomputed locally after every
// transform so the UI never waits for the server to show consistent totals.
package store

// OperationKind is the kind of mutation a pending operation performs.
type OperationKind uint8

const (
	OperationCreate OperationKind = iota + 1
	OperationUpdate
	OperationDelete
)

func (k OperationKind) String() string {
	switch k {
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	}
	return "unknown"
}

// EntityKind identifies the aggregate member a pending operation refers to.
// It is a closed enum so that the mutation helpers handle every entity
// explicitly instead of routing on strings.
type EntityKind uint8

const (
	EntityMonth EntityKind = iota + 1
	EntityFixedPayment
	EntityCategory
	EntityTransaction
	EntityYearlyBudget
	EntitySection
	EntityYearlyCategory
	EntityCategoryEntry
	EntityIncomeSource
	EntityIncomeEntry
	EntityDeduction
)

func (k EntityKind) String() string {
	switch k {
	case EntityMonth:
		return "month"
	case EntityFixedPayment:
		return "fixedPayment"
	case EntityCategory:
		return "category"
	case EntityTransaction:
		return "transaction"
	case EntityYearlyBudget:
		return "yearlyBudget"
	case EntitySection:
		return "section"
	case EntityYearlyCategory:
		return "yearlyCategory"
	case EntityCategoryEntry:
		return "categoryEntry"
	case EntityIncomeSource:
		return "incomeSource"
	case EntityIncomeEntry:
		return "incomeEntry"
	case EntityDeduction:
		return "deduction"
	}
	return "unknown"
}
