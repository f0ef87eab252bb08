package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
	"gorm.io/gorm"
)

// RegisterMonthRoutes registers the routes for months with the RouterGroup
// that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetMonths)
		r.POST("", CreateMonth)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetMonth)
		r.PATCH("/:id", UpdateMonth)
		r.DELETE("/:id", DeleteMonth)
	}

	{
		r.OPTIONS("/:id/summary", httputil.OptionsGet)
		r.GET("/:id/summary", GetMonthSummary)
	}
}

// MonthEditable represents all user configurable parameters of a month.
type MonthEditable struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Month  int    `json:"month"` // Calendar month, 1-12
	Income int64  `json:"income"`
}

// MonthPatch carries a partial update. Only set fields are applied.
type MonthPatch struct {
	Name   *string `json:"name"`
	Year   *int    `json:"year"`
	Month  *int    `json:"month"`
	Income *int64  `json:"income"`
}

func orderIndexAsc(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func dateAsc(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC")
}

// monthQuery is the query for a month with its full tree, scoped to the
// requesting profile.
func monthQuery(c *gin.Context) *gorm.DB {
	return models.DB.
		Preload("FixedPayments", orderIndexAsc).
		Preload("Categories", orderIndexAsc).
		Preload("Categories.Transactions", dateAsc).
		Where("profile_id = ?", profileID(c))
}

func fetchMonth(c *gin.Context, id int64) (models.Month, error) {
	var month models.Month
	err := monthQuery(c).First(&month, id).Error
	if err != nil {
		abort(c, err)
	}
	return month, err
}

// ownedMonth verifies that the month belongs to the requesting profile.
func ownedMonth(c *gin.Context, monthID int64) error {
	var month models.Month
	return models.DB.Where("profile_id = ?", profileID(c)).First(&month, monthID).Error
}

// GetMonths returns all months of the profile, newest first. An optional
// "year" query parameter restricts the list to one year.
func GetMonths(c *gin.Context) {
	q := monthQuery(c)

	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			abort(c, httputil.ErrInvalidID)
			return
		}
		q = q.Where("year = ?", year)
	}

	var months []models.Month
	err := q.Order("year DESC, month DESC").Find(&months).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, months)
}

func CreateMonth(c *gin.Context) {
	var editable MonthEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if editable.Month < 1 || editable.Month > 12 {
		abort(c, errInvalidCalendarMonth)
		return
	}

	month := models.Month{
		Name:          editable.Name,
		Year:          editable.Year,
		Month:         editable.Month,
		Income:        editable.Income,
		ProfileID:     profileID(c),
		FixedPayments: []models.FixedPayment{},
		Categories:    []models.Category{},
	}

	if err := models.DB.Create(&month).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, month)
}

func GetMonth(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, err := fetchMonth(c, id)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, month)
}

func UpdateMonth(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var month models.Month
	err = models.DB.Where("profile_id = ?", profileID(c)).First(&month, id).Error
	if err != nil {
		abort(c, err)
		return
	}

	var data MonthPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.Month != nil && (*data.Month < 1 || *data.Month > 12) {
		abort(c, errInvalidCalendarMonth)
		return
	}

	patch(&month.Name, data.Name)
	patch(&month.Year, data.Year)
	patch(&month.Month, data.Month)
	patch(&month.Income, data.Income)

	if err := models.DB.Save(&month).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, month)
}

func DeleteMonth(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var month models.Month
	err = models.DB.Where("profile_id = ?", profileID(c)).First(&month, id).Error
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&month).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func GetMonthSummary(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, err := fetchMonth(c, id)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, summary.ForMonth(&month))
}
