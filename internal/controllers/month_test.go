package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/router"
	"github.com/ledgerly/backend/internal/summary"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestMonth(t *testing.T, editable controllers.MonthEditable, expectedStatus ...int) models.Month {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}
	if editable.Year == 0 {
		editable.Year = 2026
	}
	if editable.Month == 0 {
		editable.Month = 1
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/months", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var month models.Month
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &month)
	}
	return month
}

func (suite *TestSuiteStandard) TestMonthsCreate() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{Name: "January", Year: 2026, Month: 1, Income: 4_500_000})

	assert.Greater(suite.T(), month.ID, int64(0))
	assert.Equal(suite.T(), "January", month.Name)
	assert.Equal(suite.T(), int64(4_500_000), month.Income)
	assert.NotNil(suite.T(), month.Categories)
}

func (suite *TestSuiteStandard) TestMonthsCreateInvalidMonth() {
	tests := []int{-1, 0, 13}

	for _, month := range tests {
		suite.T().Run(fmt.Sprintf("month %d", month), func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/months", controllers.MonthEditable{Name: "Broken", Year: 2026, Month: month})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/months", `{ "name": `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMonthsList() {
	createTestMonth(suite.T(), controllers.MonthEditable{Year: 2025, Month: 12})
	createTestMonth(suite.T(), controllers.MonthEditable{Year: 2026, Month: 1})
	createTestMonth(suite.T(), controllers.MonthEditable{Year: 2026, Month: 3})

	r := test.Request(suite.T(), http.MethodGet, "/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var months []models.Month
	test.DecodeResponse(suite.T(), &r, &months)

	require.Len(suite.T(), months, 3)

	// Newest first
	assert.Equal(suite.T(), 3, months[0].Month)
	assert.Equal(suite.T(), 1, months[1].Month)
	assert.Equal(suite.T(), 2025, months[2].Year)
}

func (suite *TestSuiteStandard) TestMonthsListFilterYear() {
	createTestMonth(suite.T(), controllers.MonthEditable{Year: 2025, Month: 12})
	createTestMonth(suite.T(), controllers.MonthEditable{Year: 2026, Month: 1})

	r := test.Request(suite.T(), http.MethodGet, "/v1/months?year=2026", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var months []models.Month
	test.DecodeResponse(suite.T(), &r, &months)

	require.Len(suite.T(), months, 1)
	assert.Equal(suite.T(), 2026, months[0].Year)
}

func (suite *TestSuiteStandard) TestMonthsGetSingle() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing month", fmt.Sprint(month.ID), http.StatusOK},
		{"No month with this ID", "4923", http.StatusNotFound},
		{"Not parseable as ID", "definitely-not-an-int", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/v1/months/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsUpdate() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{Income: 100})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/months/%d", month.ID), map[string]any{"income": 4_500_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Month
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), int64(4_500_000), updated.Income)
	assert.Equal(suite.T(), month.Name, updated.Name, "fields not in the patch must not change")
}

func (suite *TestSuiteStandard) TestMonthsDelete() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/months/%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/months/%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// Months of one profile must not be visible to another.
func (suite *TestSuiteStandard) TestMonthsProfileScoping() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})

	other := map[string]string{router.ProfileTokenHeader: "another-profile-token-1111"}

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/months/%d", month.ID), "", other)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "/v1/months", "", other)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var months []models.Month
	test.DecodeResponse(suite.T(), &r, &months)
	assert.Empty(suite.T(), months)
}

func (suite *TestSuiteStandard) TestMonthSummary() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{Name: "March", Year: 2026, Month: 3, Income: 4_500_000})

	createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{Name: "Rent", Amount: 850_000, MonthID: month.ID})
	createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{Name: "Insurance", Amount: 200_000, MonthID: month.ID})

	groceries := createTestMonthlyCategory(suite.T(), controllers.CategoryEditable{Name: "Groceries", Allocated: 500_000, MonthID: month.ID})
	createTestTransaction(suite.T(), controllers.TransactionEditable{Description: "Supermarket", Amount: 123_400, CategoryID: groceries.ID})
	createTestTransaction(suite.T(), controllers.TransactionEditable{Description: "Bakery", Amount: 94_300, CategoryID: groceries.ID})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/months/%d/summary", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s summary.MonthSummary
	test.DecodeResponse(suite.T(), &r, &s)

	assert.Equal(suite.T(), int64(4_500_000), s.Income)
	assert.Equal(suite.T(), int64(1_050_000), s.TotalFixedPayments)
	assert.Equal(suite.T(), int64(3_450_000), s.AvailableAfterFixed)
	assert.Equal(suite.T(), int64(500_000), s.TotalBudgeted)
	assert.Equal(suite.T(), int64(2_950_000), s.AvailableAfterBudgets)
	assert.Equal(suite.T(), int64(217_700), s.TotalSpent)
	assert.Equal(suite.T(), int64(282_300), s.TotalRemaining)

	require.Len(suite.T(), s.Categories, 1)
	assert.Equal(suite.T(), int64(282_300), s.Categories[0].Remaining)
	assert.Zero(suite.T(), s.Categories[0].OverBudget)
}
