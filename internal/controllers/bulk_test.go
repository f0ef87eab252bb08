package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCopyMonth() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	sectionID := budget.Sections[0].ID

	category := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID})
	january := category.Entries[0]

	// January: 85 000, paid
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", january.ID), map[string]any{"amount": 85_000, "isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{YearlyBudgetID: budget.ID})
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/income-entries/%d", source.Entries[0].ID), map[string]any{"grossAmount": 4_500_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	createTestDeduction(suite.T(), controllers.DeductionEditable{Name: "Tax", Amount: 900_000, IncomeEntryID: source.Entries[0].ID})

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/yearly/%d/copy-month", budget.ID),
		controllers.CopyMonthBody{SourceMonth: 1, TargetMonth: 2, ResetPaidStatus: true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result controllers.BulkResult
	test.DecodeResponse(suite.T(), &r, &result)
	assert.Equal(suite.T(), 1, result.CategoryEntries)
	assert.Equal(suite.T(), 1, result.IncomeEntries)
	assert.Equal(suite.T(), 1, result.Deductions)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var fetched models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &fetched)

	february := fetched.Sections[0].Categories[0].Entries[1]
	assert.Equal(suite.T(), int64(85_000), february.Amount)
	assert.False(suite.T(), february.IsPaid, "resetPaidStatus must leave the target unpaid")

	targetIncome := fetched.IncomeSources[0].Entries[1]
	assert.Equal(suite.T(), int64(4_500_000), targetIncome.GrossAmount)

	// The deduction is created on the target entry by name
	require.Len(suite.T(), targetIncome.Deductions, 1)
	assert.Equal(suite.T(), "Tax", targetIncome.Deductions[0].Name)
	assert.Equal(suite.T(), int64(900_000), targetIncome.Deductions[0].Amount)
}

func (suite *TestSuiteStandard) TestCopyMonthKeepsPaidStatus() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	category := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: budget.Sections[0].ID})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", category.Entries[1].ID), map[string]any{"isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/yearly/%d/copy-month", budget.ID),
		controllers.CopyMonthBody{SourceMonth: 1, TargetMonth: 2, ResetPaidStatus: false})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	var fetched models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &fetched)

	february := fetched.Sections[0].Categories[0].Entries[1]
	assert.True(suite.T(), february.IsPaid, "without resetPaidStatus the target keeps its flag")
}

func (suite *TestSuiteStandard) TestCopyMonthValidation() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})

	tests := []struct {
		name string
		body controllers.CopyMonthBody
	}{
		{"source below range", controllers.CopyMonthBody{SourceMonth: 0, TargetMonth: 2}},
		{"target above range", controllers.CopyMonthBody{SourceMonth: 1, TargetMonth: 13}},
		{"same month", controllers.CopyMonthBody{SourceMonth: 3, TargetMonth: 3}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, fmt.Sprintf("/v1/yearly/%d/copy-month", budget.ID), tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestClearMonth() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	category := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: budget.Sections[0].ID})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", category.Entries[0].ID), map[string]any{"amount": 85_000, "isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{YearlyBudgetID: budget.ID})
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/income-entries/%d", source.Entries[0].ID), map[string]any{"grossAmount": 4_500_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	createTestDeduction(suite.T(), controllers.DeductionEditable{Name: "Tax", Amount: 900_000, IncomeEntryID: source.Entries[0].ID})

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/yearly/%d/clear-month", budget.ID),
		controllers.ClearMonthBody{Month: 1, ResetPaidStatus: true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result controllers.BulkResult
	test.DecodeResponse(suite.T(), &r, &result)
	assert.Equal(suite.T(), 1, result.CategoryEntries)
	assert.Equal(suite.T(), 1, result.IncomeEntries)
	assert.Equal(suite.T(), 1, result.Deductions)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	var fetched models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &fetched)

	january := fetched.Sections[0].Categories[0].Entries[0]
	assert.Zero(suite.T(), january.Amount)
	assert.False(suite.T(), january.IsPaid)

	incomeJanuary := fetched.IncomeSources[0].Entries[0]
	assert.Zero(suite.T(), incomeJanuary.GrossAmount)
	require.Len(suite.T(), incomeJanuary.Deductions, 1)
	assert.Zero(suite.T(), incomeJanuary.Deductions[0].Amount)
}
