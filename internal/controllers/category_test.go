package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestMonthlyCategory(t *testing.T, editable controllers.CategoryEditable, expectedStatus ...int) models.Category {
	if editable.MonthID == 0 {
		editable.MonthID = createTestMonth(t, controllers.MonthEditable{}).ID
	}
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/categories", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var category models.Category
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &category)
	}
	return category
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	category := createTestMonthlyCategory(suite.T(), controllers.CategoryEditable{Name: "Groceries", Allocated: 500_000})

	assert.Greater(suite.T(), category.ID, int64(0))
	assert.Equal(suite.T(), int64(500_000), category.Allocated)
}

func (suite *TestSuiteStandard) TestCategoriesCreateUnknownMonth() {
	createTestMonthlyCategory(suite.T(), controllers.CategoryEditable{MonthID: 48152}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestMonthlyCategory(suite.T(), controllers.CategoryEditable{Allocated: 100})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/categories/%d", category.ID), map[string]any{"allocatedAmount": 750_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Category
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), int64(750_000), updated.Allocated)
}

// Deleting a category also removes its transactions from the month tree.
func (suite *TestSuiteStandard) TestCategoriesDeleteCascades() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})
	category := createTestMonthlyCategory(suite.T(), controllers.CategoryEditable{MonthID: month.ID})
	createTestTransaction(suite.T(), controllers.TransactionEditable{CategoryID: category.ID, Amount: 100})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/categories/%d", category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/months/%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var fetched models.Month
	test.DecodeResponse(suite.T(), &r, &fetched)
	require.Empty(suite.T(), fetched.Categories)
}
