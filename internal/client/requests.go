package client

import "time"

// Create requests carry every required field. Update requests carry only
// pointers: a nil field is left untouched by the server, mirroring how the
// stores patch only the fields present in the payload. All amounts are in
// minor units; conversion from user input happens at the UI boundary.

type MonthCreate struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Income int64  `json:"income"`
}

type MonthUpdate struct {
	Name   *string `json:"name,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Month  *int    `json:"month,omitempty"`
	Income *int64  `json:"income,omitempty"`
}

type FixedPaymentCreate struct {
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`
}

type FixedPaymentUpdate struct {
	Name       *string `json:"name,omitempty"`
	Amount     *int64  `json:"amount,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

type CategoryCreate struct {
	Name       string `json:"name"`
	Allocated  int64  `json:"allocatedAmount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`
}

type CategoryUpdate struct {
	Name       *string `json:"name,omitempty"`
	Allocated  *int64  `json:"allocatedAmount,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

type TransactionCreate struct {
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  int64     `json:"categoryId"`
}

type TransactionUpdate struct {
	Description *string    `json:"description,omitempty"`
	Amount      *int64     `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type YearlyBudgetCreate struct {
	Year         int    `json:"year"`
	SpendTarget  *int64 `json:"spendTarget,omitempty"`
	ShowWarnings *bool  `json:"showWarnings,omitempty"`
}

type YearlyBudgetUpdate struct {
	SpendTarget  *int64 `json:"spendTarget,omitempty"`
	ShowWarnings *bool  `json:"showWarnings,omitempty"`
}

type SectionUpdate struct {
	Name          *string `json:"name,omitempty"`
	TargetPercent *int    `json:"targetPercent,omitempty"`
	OrderIndex    *int    `json:"orderIndex,omitempty"`
}

type YearlyCategoryCreate struct {
	Name       string `json:"name"`
	OrderIndex int    `json:"orderIndex"`
	SectionID  int64  `json:"sectionId"`
	ParentID   *int64 `json:"parentId,omitempty"`
}

type YearlyCategoryUpdate struct {
	Name       *string `json:"name,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

type CategoryEntryUpdate struct {
	Amount *int64 `json:"amount,omitempty"`
	IsPaid *bool  `json:"isPaid,omitempty"`
}

type IncomeSourceCreate struct {
	Name           string `json:"name"`
	OrderIndex     int    `json:"orderIndex"`
	YearlyBudgetID int64  `json:"yearlyBudgetId"`
}

type IncomeSourceUpdate struct {
	Name       *string `json:"name,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

type IncomeEntryUpdate struct {
	GrossAmount *int64 `json:"grossAmount,omitempty"`
}

type DeductionCreate struct {
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	OrderIndex    int    `json:"orderIndex"`
	IncomeEntryID int64  `json:"incomeEntryId"`
}

type DeductionUpdate struct {
	Name       *string `json:"name,omitempty"`
	Amount     *int64  `json:"amount,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

type CopyMonthRequest struct {
	SourceMonth     int  `json:"sourceMonth"`
	TargetMonth     int  `json:"targetMonth"`
	ResetPaidStatus bool `json:"resetPaidStatus"`
}

type ClearMonthRequest struct {
	Month           int  `json:"month"`
	ResetPaidStatus bool `json:"resetPaidStatus"`
}

// BulkResult reports how many rows a copy-month or clear-month call touched.
type BulkResult struct {
	CategoryEntries int `json:"categoryEntries"`
	IncomeEntries   int `json:"incomeEntries"`
	Deductions      int `json:"deductions"`
}
