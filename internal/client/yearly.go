package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
)

func (c *Client) YearlyBudgets(ctx context.Context) ([]models.YearlyBudget, error) {
	var budgets []models.YearlyBudget
	err := c.do(ctx, http.MethodGet, "/v1/yearly", nil, &budgets)
	return budgets, err
}

// YearlyBudget returns one budget with its full tree of income sources,
// entries, deductions, sections, categories and category entries.
func (c *Client) YearlyBudget(ctx context.Context, id int64) (models.YearlyBudget, error) {
	var budget models.YearlyBudget
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/yearly/%d", id), nil, &budget)
	return budget, err
}

func (c *Client) YearlyBudgetByYear(ctx context.Context, year int) (models.YearlyBudget, error) {
	var budget models.YearlyBudget
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/yearly/by-year/%d", year), nil, &budget)
	return budget, err
}

func (c *Client) CreateYearlyBudget(ctx context.Context, data YearlyBudgetCreate) (models.YearlyBudget, error) {
	var budget models.YearlyBudget
	err := c.do(ctx, http.MethodPost, "/v1/yearly", data, &budget)
	return budget, err
}

func (c *Client) UpdateYearlyBudget(ctx context.Context, id int64, data YearlyBudgetUpdate) (models.YearlyBudget, error) {
	var budget models.YearlyBudget
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/%d", id), data, &budget)
	return budget, err
}

func (c *Client) DeleteYearlyBudget(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/yearly/%d", id), nil, nil)
}

func (c *Client) YearlySummary(ctx context.Context, id int64) (summary.YearlySummary, error) {
	var s summary.YearlySummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/yearly/%d/summary", id), nil, &s)
	return s, err
}

func (c *Client) CopyMonth(ctx context.Context, budgetID int64, data CopyMonthRequest) (BulkResult, error) {
	var result BulkResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/yearly/%d/copy-month", budgetID), data, &result)
	return result, err
}

func (c *Client) ClearMonth(ctx context.Context, budgetID int64, data ClearMonthRequest) (BulkResult, error) {
	var result BulkResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/yearly/%d/clear-month", budgetID), data, &result)
	return result, err
}

func (c *Client) UpdateSection(ctx context.Context, id int64, data SectionUpdate) (models.Section, error) {
	var section models.Section
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/sections/%d", id), data, &section)
	return section, err
}

func (c *Client) CreateYearlyCategory(ctx context.Context, data YearlyCategoryCreate) (models.YearlyCategory, error) {
	var category models.YearlyCategory
	err := c.do(ctx, http.MethodPost, "/v1/yearly/categories", data, &category)
	return category, err
}

func (c *Client) UpdateYearlyCategory(ctx context.Context, id int64, data YearlyCategoryUpdate) (models.YearlyCategory, error) {
	var category models.YearlyCategory
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/categories/%d", id), data, &category)
	return category, err
}

func (c *Client) DeleteYearlyCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/yearly/categories/%d", id), nil, nil)
}

func (c *Client) UpdateCategoryEntry(ctx context.Context, id int64, data CategoryEntryUpdate) (models.CategoryEntry, error) {
	var entry models.CategoryEntry
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/category-entries/%d", id), data, &entry)
	return entry, err
}

func (c *Client) CreateIncomeSource(ctx context.Context, data IncomeSourceCreate) (models.IncomeSource, error) {
	var source models.IncomeSource
	err := c.do(ctx, http.MethodPost, "/v1/yearly/income-sources", data, &source)
	return source, err
}

func (c *Client) UpdateIncomeSource(ctx context.Context, id int64, data IncomeSourceUpdate) (models.IncomeSource, error) {
	var source models.IncomeSource
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/income-sources/%d", id), data, &source)
	return source, err
}

func (c *Client) DeleteIncomeSource(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/yearly/income-sources/%d", id), nil, nil)
}

func (c *Client) UpdateIncomeEntry(ctx context.Context, id int64, data IncomeEntryUpdate) (models.IncomeEntry, error) {
	var entry models.IncomeEntry
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/income-entries/%d", id), data, &entry)
	return entry, err
}

func (c *Client) CreateDeduction(ctx context.Context, data DeductionCreate) (models.Deduction, error) {
	var deduction models.Deduction
	err := c.do(ctx, http.MethodPost, "/v1/yearly/deductions", data, &deduction)
	return deduction, err
}

func (c *Client) UpdateDeduction(ctx context.Context, id int64, data DeductionUpdate) (models.Deduction, error) {
	var deduction models.Deduction
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/yearly/deductions/%d", id), data, &deduction)
	return deduction, err
}

func (c *Client) DeleteDeduction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/yearly/deductions/%d", id), nil, nil)
}
