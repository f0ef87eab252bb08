package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
	"gorm.io/gorm"
)

// RegisterYearlyRoutes registers the routes for the yearly overview with the
// RouterGroup that is passed: budgets, their sections, categories with
// entries, income sources with entries and deductions, and the bulk month
// operations.
func RegisterYearlyRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetYearlyBudgets)
		r.POST("", CreateYearlyBudget)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetYearlyBudget)
		r.PATCH("/:id", UpdateYearlyBudget)
		r.DELETE("/:id", DeleteYearlyBudget)
	}

	{
		r.OPTIONS("/by-year/:year", httputil.OptionsGet)
		r.GET("/by-year/:year", GetYearlyBudgetByYear)

		r.OPTIONS("/:id/summary", httputil.OptionsGet)
		r.GET("/:id/summary", GetYearlySummary)

		r.OPTIONS("/:id/copy-month", httputil.OptionsPost)
		r.POST("/:id/copy-month", CopyMonth)

		r.OPTIONS("/:id/clear-month", httputil.OptionsPost)
		r.POST("/:id/clear-month", ClearMonth)
	}

	{
		r.OPTIONS("/sections/:id", httputil.OptionsPatch)
		r.PATCH("/sections/:id", UpdateSection)
	}

	RegisterYearlyCategoryRoutes(r)
	RegisterIncomeRoutes(r)
}

type YearlyBudgetEditable struct {
	Year         int    `json:"year"`
	SpendTarget  *int64 `json:"spendTarget"`
	ShowWarnings *bool  `json:"showWarnings"`
}

type YearlyBudgetPatch struct {
	SpendTarget  *int64 `json:"spendTarget"`
	ShowWarnings *bool  `json:"showWarnings"`
}

type SectionPatch struct {
	Name          *string `json:"name"`
	TargetPercent *int    `json:"targetPercent"`
	OrderIndex    *int    `json:"orderIndex"`
}

func monthAsc(db *gorm.DB) *gorm.DB {
	return db.Order("month ASC")
}

func topLevel(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL").Order("order_index ASC")
}

// budgetQuery is the query for a yearly budget with its full tree, scoped to
// the requesting profile. Only top-level categories are loaded directly;
// children hang off their parent.
func budgetQuery(c *gin.Context) *gorm.DB {
	return models.DB.
		Preload("IncomeSources", orderIndexAsc).
		Preload("IncomeSources.Entries", monthAsc).
		Preload("IncomeSources.Entries.Deductions", orderIndexAsc).
		Preload("Sections", orderIndexAsc).
		Preload("Sections.Categories", topLevel).
		Preload("Sections.Categories.Entries", monthAsc).
		Preload("Sections.Categories.Children", orderIndexAsc).
		Preload("Sections.Categories.Children.Entries", monthAsc).
		Where("profile_id = ?", profileID(c))
}

func fetchBudget(c *gin.Context, id int64) (models.YearlyBudget, error) {
	var budget models.YearlyBudget
	err := budgetQuery(c).First(&budget, id).Error
	if err != nil {
		abort(c, err)
	}
	return budget, err
}

// ownedBudget verifies that the budget belongs to the requesting profile.
func ownedBudget(c *gin.Context, budgetID int64) error {
	var budget models.YearlyBudget
	return models.DB.Where("profile_id = ?", profileID(c)).First(&budget, budgetID).Error
}

// GetYearlyBudgets returns all budgets of the profile without their trees,
// newest first.
func GetYearlyBudgets(c *gin.Context) {
	var budgets []models.YearlyBudget
	err := models.DB.
		Where("profile_id = ?", profileID(c)).
		Order("year DESC").
		Find(&budgets).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// CreateYearlyBudget creates a budget together with its three fixed
// sections. At most one budget exists per profile and year.
func CreateYearlyBudget(c *gin.Context) {
	var editable YearlyBudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	var existing models.YearlyBudget
	err := models.DB.
		Where("profile_id = ? AND year = ?", profileID(c), editable.Year).
		First(&existing).Error
	if err == nil {
		abort(c, models.ErrYearlyBudgetExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		abort(c, err)
		return
	}

	budget := models.YearlyBudget{
		Year:          editable.Year,
		ProfileID:     profileID(c),
		Sections:      models.DefaultSections(),
		IncomeSources: []models.IncomeSource{},
	}
	patch(&budget.SpendTarget, editable.SpendTarget)
	patch(&budget.ShowWarnings, editable.ShowWarnings)

	if err := models.DB.Create(&budget).Error; err != nil {
		abort(c, err)
		return
	}

	for i := range budget.Sections {
		budget.Sections[i].Categories = []models.YearlyCategory{}
	}

	c.JSON(http.StatusCreated, budget)
}

func GetYearlyBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	budget, err := fetchBudget(c, id)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, budget)
}

func GetYearlyBudgetByYear(c *gin.Context) {
	year, err := httputil.ParseID(c, "year")
	if err != nil {
		return
	}

	var budget models.YearlyBudget
	err = budgetQuery(c).Where("year = ?", year).First(&budget).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func UpdateYearlyBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var budget models.YearlyBudget
	err = models.DB.Where("profile_id = ?", profileID(c)).First(&budget, id).Error
	if err != nil {
		abort(c, err)
		return
	}

	var data YearlyBudgetPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&budget.SpendTarget, data.SpendTarget)
	patch(&budget.ShowWarnings, data.ShowWarnings)

	if err := models.DB.Save(&budget).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func DeleteYearlyBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var budget models.YearlyBudget
	err = models.DB.Where("profile_id = ?", profileID(c)).First(&budget, id).Error
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func GetYearlySummary(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	budget, err := fetchBudget(c, id)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, summary.ForYear(&budget))
}

// fetchSection loads a section and verifies the ownership chain through its
// budget.
func fetchSection(c *gin.Context, id int64) (models.Section, error) {
	var section models.Section
	err := models.DB.First(&section, id).Error
	if err != nil {
		return section, err
	}

	return section, ownedBudget(c, section.YearlyBudgetID)
}

func UpdateSection(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	section, err := fetchSection(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data SectionPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&section.Name, data.Name)
	patch(&section.TargetPercent, data.TargetPercent)
	patch(&section.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&section).Error; err != nil {
		abort(c, err)
		return
	}

	section.Categories = nil
	c.JSON(http.StatusOK, section)
}
