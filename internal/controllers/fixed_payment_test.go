package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/router"
	"github.com/ledgerly/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestFixedPayment(t *testing.T, editable controllers.FixedPaymentEditable, expectedStatus ...int) models.FixedPayment {
	if editable.MonthID == 0 {
		editable.MonthID = createTestMonth(t, controllers.MonthEditable{}).ID
	}
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/v1/fixed-payments", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var payment models.FixedPayment
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &payment)
	}
	return payment
}

func (suite *TestSuiteStandard) TestFixedPaymentsCreate() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})
	payment := createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{Name: "Rent", Amount: 850_000, MonthID: month.ID})

	assert.Greater(suite.T(), payment.ID, int64(0))
	assert.Equal(suite.T(), int64(850_000), payment.Amount)
	assert.Equal(suite.T(), month.ID, payment.MonthID)
}

func (suite *TestSuiteStandard) TestFixedPaymentsCreateUnknownMonth() {
	createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{MonthID: 48152}, http.StatusNotFound)
}

// A payment cannot be attached to another profile's month.
func (suite *TestSuiteStandard) TestFixedPaymentsCreateForeignMonth() {
	month := createTestMonth(suite.T(), controllers.MonthEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/fixed-payments",
		controllers.FixedPaymentEditable{Name: "Rent", MonthID: month.ID},
		map[string]string{router.ProfileTokenHeader: "another-profile-token-1111"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestFixedPaymentsUpdate() {
	payment := createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{Amount: 100})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/fixed-payments/%d", payment.ID), map[string]any{"amount": 200_000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.FixedPayment
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), int64(200_000), updated.Amount)
	assert.Equal(suite.T(), payment.Name, updated.Name)
}

func (suite *TestSuiteStandard) TestFixedPaymentsDelete() {
	payment := createTestFixedPayment(suite.T(), controllers.FixedPaymentEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/fixed-payments/%d", payment.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/fixed-payments/%d", payment.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
