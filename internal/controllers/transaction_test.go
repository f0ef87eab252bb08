package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestTransaction(t *testing.T, editable controllers.TransactionEditable, expectedStatus ...int) models.Transaction {
	if editable.CategoryID == 0 {
		editable.CategoryID = createTestMonthlyCategory(t, controllers.CategoryEditable{}).ID
	}
	if editable.Description == "" {
		editable.Description = uuid.NewString()
	}
	if editable.Date.IsZero() {
		editable.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/transactions", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction models.Transaction
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &transaction)
	}
	return transaction
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	transaction := createTestTransaction(suite.T(), controllers.TransactionEditable{Description: "Supermarket", Amount: 123_400})

	assert.Greater(suite.T(), transaction.ID, int64(0))
	assert.Equal(suite.T(), int64(123_400), transaction.Amount)
}

func (suite *TestSuiteStandard) TestTransactionsCreateUnknownCategory() {
	createTestTransaction(suite.T(), controllers.TransactionEditable{CategoryID: 48152}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: 100})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%d", transaction.ID), map[string]any{"amount": 94_300})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Transaction
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), int64(94_300), updated.Amount)
	assert.Equal(suite.T(), transaction.Description, updated.Description)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), controllers.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
