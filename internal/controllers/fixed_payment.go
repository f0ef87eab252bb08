package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
)

func RegisterFixedPaymentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", CreateFixedPayment)

	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", UpdateFixedPayment)
	r.DELETE("/:id", DeleteFixedPayment)
}

type FixedPaymentEditable struct {
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`
}

type FixedPaymentPatch struct {
	Name       *string `json:"name"`
	Amount     *int64  `json:"amount"`
	OrderIndex *int    `json:"orderIndex"`
}

// fetchFixedPayment loads a payment and verifies the ownership chain through
// its month.
func fetchFixedPayment(c *gin.Context, id int64) (models.FixedPayment, error) {
	var payment models.FixedPayment
	err := models.DB.First(&payment, id).Error
	if err != nil {
		return payment, err
	}

	return payment, ownedMonth(c, payment.MonthID)
}

func CreateFixedPayment(c *gin.Context) {
	var editable FixedPaymentEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if err := ownedMonth(c, editable.MonthID); err != nil {
		abort(c, err)
		return
	}

	payment := models.FixedPayment{
		Name:       editable.Name,
		Amount:     editable.Amount,
		OrderIndex: editable.OrderIndex,
		MonthID:    editable.MonthID,
	}

	if err := models.DB.Create(&payment).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func UpdateFixedPayment(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	payment, err := fetchFixedPayment(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data FixedPaymentPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&payment.Name, data.Name)
	patch(&payment.Amount, data.Amount)
	patch(&payment.OrderIndex, data.OrderIndex)

	if err := models.DB.Save(&payment).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func DeleteFixedPayment(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	payment, err := fetchFixedPayment(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&payment).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
