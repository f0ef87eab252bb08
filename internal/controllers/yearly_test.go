package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestYearlyBudget(t *testing.T, editable controllers.YearlyBudgetEditable, expectedStatus ...int) models.YearlyBudget {
	if editable.Year == 0 {
		editable.Year = 2026
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/yearly", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget models.YearlyBudget
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &budget)
	}
	return budget
}

func createTestYearlyCategory(t *testing.T, editable controllers.YearlyCategoryEditable, expectedStatus ...int) models.YearlyCategory {
	if editable.SectionID == 0 {
		budget := createTestYearlyBudget(t, controllers.YearlyBudgetEditable{})
		editable.SectionID = budget.Sections[0].ID
	}
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/yearly/categories", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var category models.YearlyCategory
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &category)
	}
	return category
}

func createTestIncomeSource(t *testing.T, editable controllers.IncomeSourceEditable, expectedStatus ...int) models.IncomeSource {
	if editable.YearlyBudgetID == 0 {
		editable.YearlyBudgetID = createTestYearlyBudget(t, controllers.YearlyBudgetEditable{}).ID
	}
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/yearly/income-sources", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var source models.IncomeSource
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &source)
	}
	return source
}

func createTestDeduction(t *testing.T, editable controllers.DeductionEditable, expectedStatus ...int) models.Deduction {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/yearly/deductions", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var deduction models.Deduction
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &deduction)
	}
	return deduction
}

// A new budget comes with the three fixed sections and their 70/20/10
// targets.
func (suite *TestSuiteStandard) TestYearlyBudgetsCreate() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{Year: 2026})

	assert.Greater(suite.T(), budget.ID, int64(0))
	require.Len(suite.T(), budget.Sections, 3)
	assert.Equal(suite.T(), models.SectionLiving, budget.Sections[0].Type)
	assert.Equal(suite.T(), 70, budget.Sections[0].TargetPercent)
	assert.Equal(suite.T(), 20, budget.Sections[1].TargetPercent)
	assert.Equal(suite.T(), 10, budget.Sections[2].TargetPercent)
}

// At most one budget exists per profile and year.
func (suite *TestSuiteStandard) TestYearlyBudgetsCreateDuplicateYear() {
	createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{Year: 2026})

	r := test.Request(suite.T(), http.MethodPost, "/v1/yearly", controllers.YearlyBudgetEditable{Year: 2026})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestYearlyBudgetsGetByYear() {
	created := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{Year: 2027})

	r := test.Request(suite.T(), http.MethodGet, "/v1/yearly/by-year/2027", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budget models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &budget)
	assert.Equal(suite.T(), created.ID, budget.ID)

	r = test.Request(suite.T(), http.MethodGet, "/v1/yearly/by-year/1999", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestYearlyBudgetsUpdate() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/%d", budget.ID), map[string]any{"spendTarget": 300_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), int64(300_000), updated.SpendTarget)
}

func (suite *TestSuiteStandard) TestYearlyBudgetsDelete() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSectionsUpdate() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	section := budget.Sections[0]

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/sections/%d", section.ID), map[string]any{"targetPercent": 60})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Section
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), 60, updated.TargetPercent)
	assert.Equal(suite.T(), section.Name, updated.Name)
}

// A category is created with its twelve monthly entries, all unpaid and
// zero.
func (suite *TestSuiteStandard) TestYearlyCategoriesCreate() {
	category := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{Name: "Utilities"})

	require.Len(suite.T(), category.Entries, 12)
	for i, entry := range category.Entries {
		assert.Equal(suite.T(), i+1, entry.Month)
		assert.Zero(suite.T(), entry.Amount)
		assert.False(suite.T(), entry.IsPaid)
	}
}

// Categories nest exactly one level deep.
func (suite *TestSuiteStandard) TestYearlyCategoriesNesting() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	sectionID := budget.Sections[0].ID

	parent := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID})
	child := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID, ParentID: &parent.ID})

	createTestYearlyCategory(suite.T(),
		controllers.YearlyCategoryEditable{SectionID: sectionID, ParentID: &child.ID},
		http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestYearlyCategoriesDeleteCascades() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	sectionID := budget.Sections[0].ID

	parent := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID})
	createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID, ParentID: &parent.ID})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/yearly/categories/%d", parent.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var fetched models.YearlyBudget
	test.DecodeResponse(suite.T(), &r, &fetched)
	assert.Empty(suite.T(), fetched.Sections[0].Categories)
}

func (suite *TestSuiteStandard) TestCategoryEntriesUpdate() {
	category := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{})
	entry := category.Entries[2]

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", entry.ID), map[string]any{"amount": 85_000, "isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.CategoryEntry
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), int64(85_000), updated.Amount)
	assert.True(suite.T(), updated.IsPaid)
}

// An income source is created with its twelve monthly entries.
func (suite *TestSuiteStandard) TestIncomeSourcesCreate() {
	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{Name: "Salary"})

	require.Len(suite.T(), source.Entries, 12)
	for i, entry := range source.Entries {
		assert.Equal(suite.T(), i+1, entry.Month)
		assert.Zero(suite.T(), entry.GrossAmount)
	}
}

func (suite *TestSuiteStandard) TestIncomeEntriesUpdate() {
	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{})
	entry := source.Entries[0]

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/income-entries/%d", entry.ID), map[string]any{"grossAmount": 4_500_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.IncomeEntry
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), int64(4_500_000), updated.GrossAmount)
}

func (suite *TestSuiteStandard) TestDeductionsLifecycle() {
	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{})
	entry := source.Entries[0]

	deduction := createTestDeduction(suite.T(), controllers.DeductionEditable{Name: "Tax", Amount: 900_000, IncomeEntryID: entry.ID})
	assert.Equal(suite.T(), entry.ID, deduction.IncomeEntryID)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/deductions/%d", deduction.ID), map[string]any{"amount": 950_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Deduction
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), int64(950_000), updated.Amount)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/yearly/deductions/%d", deduction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

// Once a category has children, only the children's entries count toward
// section totals.
func (suite *TestSuiteStandard) TestYearlySummaryParentExclusion() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})
	sectionID := budget.Sections[0].ID

	parent := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID})
	setEntryAmount(suite.T(), parent.Entries[0].ID, 999_999)

	child := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: sectionID, ParentID: &parent.ID})
	setEntryAmount(suite.T(), child.Entries[0].ID, 120_000)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d/summary", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s summary.YearlySummary
	test.DecodeResponse(suite.T(), &r, &s)

	require.Len(suite.T(), s.Months, 12)
	january := s.Months[0]
	assert.Equal(suite.T(), int64(120_000), january.TotalExpenses, "the parent's own entry must not count")
}

// 75% of net income in a 70% section flags the section as over budget.
func (suite *TestSuiteStandard) TestYearlySummaryOverBudget() {
	budget := createTestYearlyBudget(suite.T(), controllers.YearlyBudgetEditable{})

	source := createTestIncomeSource(suite.T(), controllers.IncomeSourceEditable{YearlyBudgetID: budget.ID})
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/yearly/income-entries/%d", source.Entries[0].ID), map[string]any{"grossAmount": 1_000_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	living := createTestYearlyCategory(suite.T(), controllers.YearlyCategoryEditable{SectionID: budget.Sections[0].ID})
	setEntryAmount(suite.T(), living.Entries[0].ID, 750_000)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/yearly/%d/summary", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s summary.YearlySummary
	test.DecodeResponse(suite.T(), &r, &s)

	january := s.Months[0]
	require.Len(suite.T(), january.Sections, 3)
	assert.Equal(suite.T(), 75, january.Sections[0].ActualPercent)
	assert.True(suite.T(), january.Sections[0].IsOverBudget)
	assert.False(suite.T(), january.Sections[1].IsOverBudget)
}

func setEntryAmount(t *testing.T, entryID int64, amount int64) {
	r := test.Request(t, http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", entryID), map[string]any{"amount": amount})
	test.AssertHTTPStatus(t, &r, http.StatusOK)
}
