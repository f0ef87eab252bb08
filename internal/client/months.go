package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
)

func (c *Client) Months(ctx context.Context) ([]models.Month, error) {
	var months []models.Month
	err := c.do(ctx, http.MethodGet, "/v1/months", nil, &months)
	return months, err
}

// Month returns one month with its fixed payments, categories and
// transactions.
func (c *Client) Month(ctx context.Context, id int64) (models.Month, error) {
	var month models.Month
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/months/%d", id), nil, &month)
	return month, err
}

func (c *Client) CreateMonth(ctx context.Context, data MonthCreate) (models.Month, error) {
	var month models.Month
	err := c.do(ctx, http.MethodPost, "/v1/months", data, &month)
	return month, err
}

func (c *Client) UpdateMonth(ctx context.Context, id int64, data MonthUpdate) (models.Month, error) {
	var month models.Month
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/months/%d", id), data, &month)
	return month, err
}

func (c *Client) DeleteMonth(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/months/%d", id), nil, nil)
}

// MonthSummary returns the server-computed summary. The stores only use it
// to re-sync after a fetch; day-to-day they recompute the identical values
// locally.
func (c *Client) MonthSummary(ctx context.Context, id int64) (summary.MonthSummary, error) {
	var s summary.MonthSummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/months/%d/summary", id), nil, &s)
	return s, err
}

func (c *Client) CreateFixedPayment(ctx context.Context, data FixedPaymentCreate) (models.FixedPayment, error) {
	var payment models.FixedPayment
	err := c.do(ctx, http.MethodPost, "/v1/fixed-payments", data, &payment)
	return payment, err
}

func (c *Client) UpdateFixedPayment(ctx context.Context, id int64, data FixedPaymentUpdate) (models.FixedPayment, error) {
	var payment models.FixedPayment
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/fixed-payments/%d", id), data, &payment)
	return payment, err
}

func (c *Client) DeleteFixedPayment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/fixed-payments/%d", id), nil, nil)
}

func (c *Client) CreateCategory(ctx context.Context, data CategoryCreate) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodPost, "/v1/categories", data, &category)
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, data CategoryUpdate) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/categories/%d", id), data, &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/categories/%d", id), nil, nil)
}

func (c *Client) CreateTransaction(ctx context.Context, data TransactionCreate) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPost, "/v1/transactions", data, &transaction)
	return transaction, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, data TransactionUpdate) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/transactions/%d", id), data, &transaction)
	return transaction, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", id), nil, nil)
}
