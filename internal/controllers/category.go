package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
)

func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", CreateCategory)

	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", UpdateCategory)
	r.DELETE("/:id", DeleteCategory)
}

type CategoryEditable struct {
	Name       string `json:"name"`
	Allocated  int64  `json:"allocatedAmount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`
}

type CategoryPatch struct {
	Name       *string `json:"name"`
	Allocated  *int64  `json:"allocatedAmount"`
	OrderIndex *int    `json:"orderIndex"`
}

// fetchCategory loads a category and verifies the ownership chain through
// its month.
func fetchCategory(c *gin.Context, id int64) (models.Category, error) {
	var category models.Category
	err := models.DB.First(&category, id).Error
	if err != nil {
		return category, err
	}

	return category, ownedMonth(c, category.MonthID)
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if err := ownedMonth(c, editable.MonthID); err != nil {
		abort(c, err)
		return
	}

	category := models.Category{
		Name:         editable.Name,
		Allocated:    editable.Allocated,
		OrderIndex:   editable.OrderIndex,
		MonthID:      editable.MonthID,
		Transactions: []models.Transaction{},
	}

	if err := models.DB.Create(&category).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := fetchCategory(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data CategoryPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&category.Name, data.Name)
	patch(&category.Allocated, data.Allocated)
	patch(&category.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&category).Error; err != nil {
		abort(c, err)
		return
	}

	// Save would upsert the transactions, so they are not loaded; the
	// response carries the category fields only.
	category.Transactions = nil
	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := fetchCategory(c, id)
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
