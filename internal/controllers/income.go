package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
)

func RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/income-sources", httputil.OptionsPost)
		r.POST("/income-sources", CreateIncomeSource)

		r.OPTIONS("/income-sources/:id", httputil.OptionsPatchDelete)
		r.PATCH("/income-sources/:id", UpdateIncomeSource)
		r.DELETE("/income-sources/:id", DeleteIncomeSource)
	}

	{
		r.OPTIONS("/income-entries/:id", httputil.OptionsPatch)
		r.PATCH("/income-entries/:id", UpdateIncomeEntry)
	}

	{
		r.OPTIONS("/deductions", httputil.OptionsPost)
		r.POST("/deductions", CreateDeduction)

		r.OPTIONS("/deductions/:id", httputil.OptionsPatchDelete)
		r.PATCH("/deductions/:id", UpdateDeduction)
		r.DELETE("/deductions/:id", DeleteDeduction)
	}
}

type IncomeSourceEditable struct {
	Name           string `json:"name"`
	OrderIndex     int    `json:"orderIndex"`
	YearlyBudgetID int64  `json:"yearlyBudgetId"`
}

type IncomeSourcePatch struct {
	Name       *string `json:"name"`
	OrderIndex *int    `json:"orderIndex"`
}

type IncomeEntryPatch struct {
	GrossAmount *int64 `json:"grossAmount"`
}

type DeductionEditable struct {
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	OrderIndex    int    `json:"orderIndex"`
	IncomeEntryID int64  `json:"incomeEntryId"`
}

type DeductionPatch struct {
	Name       *string `json:"name"`
	Amount     *int64  `json:"amount"`
	OrderIndex *int    `json:"orderIndex"`
}

// fetchIncomeSource loads a source and verifies the ownership chain through
// its budget.
func fetchIncomeSource(c *gin.Context, id int64) (models.IncomeSource, error) {
	var source models.IncomeSource
	err := models.DB.First(&source, id).Error
	if err != nil {
		return source, err
	}

	return source, ownedBudget(c, source.YearlyBudgetID)
}

// CreateIncomeSource creates a source together with its twelve monthly
// entries.
func CreateIncomeSource(c *gin.Context) {
	var editable IncomeSourceEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if err := ownedBudget(c, editable.YearlyBudgetID); err != nil {
		abort(c, err)
		return
	}

	source := models.IncomeSource{
		Name:           editable.Name,
		OrderIndex:     editable.OrderIndex,
		YearlyBudgetID: editable.YearlyBudgetID,
		Entries:        make([]models.IncomeEntry, 0, 12),
	}
	for month := 1; month <= 12; month++ {
		source.Entries = append(source.Entries, models.IncomeEntry{
			Month:      month,
			Deductions: []models.Deduction{},
		})
	}

	if err := models.DB.Create(&source).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, source)
}

func UpdateIncomeSource(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	source, err := fetchIncomeSource(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data IncomeSourcePatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&source.Name, data.Name)
	patch(&source.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&source).Error; err != nil {
		abort(c, err)
		return
	}

	source.Entries = nil
	c.JSON(http.StatusOK, source)
}

func DeleteIncomeSource(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	source, err := fetchIncomeSource(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&source).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// fetchIncomeEntry loads an entry and verifies the ownership chain through
// its source.
func fetchIncomeEntry(c *gin.Context, id int64) (models.IncomeEntry, error) {
	var entry models.IncomeEntry
	err := models.DB.First(&entry, id).Error
	if err != nil {
		return entry, err
	}

	_, err = fetchIncomeSource(c, entry.IncomeSourceID)
	return entry, err
}

func UpdateIncomeEntry(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	entry, err := fetchIncomeEntry(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data IncomeEntryPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&entry.GrossAmount, data.GrossAmount)

	if err := models.DB.Save(&entry).Error; err != nil {
		abort(c, err)
		return
	}

	entry.Deductions = nil
	c.JSON(http.StatusOK, entry)
}

// fetchDeduction loads a deduction and verifies the ownership chain through
// its income entry.
func fetchDeduction(c *gin.Context, id int64) (models.Deduction, error) {
	var deduction models.Deduction
	err := models.DB.First(&deduction, id).Error
	if err != nil {
		return deduction, err
	}

	_, err = fetchIncomeEntry(c, deduction.IncomeEntryID)
	return deduction, err
}

func CreateDeduction(c *gin.Context) {
	var editable DeductionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if _, err := fetchIncomeEntry(c, editable.IncomeEntryID); err != nil {
		abort(c, err)
		return
	}

	deduction := models.Deduction{
		Name:          editable.Name,
		Amount:        editable.Amount,
		OrderIndex:    editable.OrderIndex,
		IncomeEntryID: editable.IncomeEntryID,
	}

	if err := models.DB.Create(&deduction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, deduction)
}

func UpdateDeduction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	deduction, err := fetchDeduction(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data DeductionPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&deduction.Name, data.Name)
	patch(&deduction.Amount, data.Amount)
	patch(&deduction.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&deduction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, deduction)
}

func DeleteDeduction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	deduction, err := fetchDeduction(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&deduction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
