package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
)

func RegisterYearlyCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/categories", httputil.OptionsPost)
		r.POST("/categories", CreateYearlyCategory)

		r.OPTIONS("/categories/:id", httputil.OptionsPatchDelete)
		r.PATCH("/categories/:id", UpdateYearlyCategory)
		r.DELETE("/categories/:id", DeleteYearlyCategory)
	}

	{
		r.OPTIONS("/category-entries/:id", httputil.OptionsPatch)
		r.PATCH("/category-entries/:id", UpdateCategoryEntry)
	}
}

type YearlyCategoryEditable struct {
	Name       string `json:"name"`
	OrderIndex int    `json:"orderIndex"`
	SectionID  int64  `json:"sectionId"`
	ParentID   *int64 `json:"parentId"`
}

type YearlyCategoryPatch struct {
	Name       *string `json:"name"`
	OrderIndex *int    `json:"orderIndex"`
}

type CategoryEntryPatch struct {
	Amount *int64 `json:"amount"`
	IsPaid *bool  `json:"isPaid"`
}

// fetchYearlyCategory loads a category and verifies the ownership chain
// through its section and budget.
func fetchYearlyCategory(c *gin.Context, id int64) (models.YearlyCategory, error) {
	var category models.YearlyCategory
	err := models.DB.First(&category, id).Error
	if err != nil {
		return category, err
	}

	_, err = fetchSection(c, category.SectionID)
	return category, err
}

// CreateYearlyCategory creates a category together with its twelve monthly
// entries. A parent must be a top-level category of the same budget; deeper
// nesting is rejected.
func CreateYearlyCategory(c *gin.Context) {
	var editable YearlyCategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if _, err := fetchSection(c, editable.SectionID); err != nil {
		abort(c, err)
		return
	}

	if editable.ParentID != nil {
		parent, err := fetchYearlyCategory(c, *editable.ParentID)
		if err != nil {
			abort(c, err)
			return
		}
		if parent.ParentID != nil {
			abort(c, models.ErrCategoryNestingTooDeep)
			return
		}
	}

	category := models.YearlyCategory{
		Name:       editable.Name,
		OrderIndex: editable.OrderIndex,
		SectionID:  editable.SectionID,
		ParentID:   editable.ParentID,
		Entries:    make([]models.CategoryEntry, 0, 12),
		Children:   []models.YearlyCategory{},
	}
	for month := 1; month <= 12; month++ {
		category.Entries = append(category.Entries, models.CategoryEntry{Month: month})
	}

	// One insert for the category and its entries, so a failed entry never
	// leaves a category without its twelve months.
	if err := models.DB.Create(&category).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func UpdateYearlyCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := fetchYearlyCategory(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data YearlyCategoryPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&category.Name, data.Name)
	patch(&category.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&category).Error; err != nil {
		abort(c, err)
		return
	}

	category.Entries = nil
	category.Children = nil
	c.JSON(http.StatusOK, category)
}

func DeleteYearlyCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := fetchYearlyCategory(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// fetchCategoryEntry loads an entry and verifies the ownership chain through
// its category.
func fetchCategoryEntry(c *gin.Context, id int64) (models.CategoryEntry, error) {
	var entry models.CategoryEntry
	err := models.DB.First(&entry, id).Error
	if err != nil {
		return entry, err
	}

	_, err = fetchYearlyCategory(c, entry.CategoryID)
	return entry, err
}

func UpdateCategoryEntry(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	entry, err := fetchCategoryEntry(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data CategoryEntryPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&entry.Amount, data.Amount)
	patch(&entry.IsPaid, data.IsPaid)

	if err := models.DB.Save(&entry).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
