package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
)

func RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", CreateTransaction)

	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", UpdateTransaction)
	r.DELETE("/:id", DeleteTransaction)
}

type TransactionEditable struct {
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  int64     `json:"categoryId"`
}

type TransactionPatch struct {
	Description *string    `json:"description"`
	Amount      *int64     `json:"amount"`
	Date        *time.Time `json:"date"`
}

// fetchTransaction loads a transaction and verifies the ownership chain
// through its category and month.
func fetchTransaction(c *gin.Context, id int64) (models.Transaction, error) {
	var transaction models.Transaction
	err := models.DB.First(&transaction, id).Error
	if err != nil {
		return transaction, err
	}

	_, err = fetchOwnedCategory(c, transaction.CategoryID)
	return transaction, err
}

func fetchOwnedCategory(c *gin.Context, id int64) (models.Category, error) {
	var category models.Category
	err := models.DB.First(&category, id).Error
	if err != nil {
		return category, err
	}

	return category, ownedMonth(c, category.MonthID)
}

func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if _, err := fetchOwnedCategory(c, editable.CategoryID); err != nil {
		abort(c, err)
		return
	}

	transaction := models.Transaction{
		Description: editable.Description,
		Amount:      editable.Amount,
		Date:        editable.Date,
		CategoryID:  editable.CategoryID,
	}

	if err := models.DB.Create(&transaction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func UpdateTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	transaction, err := fetchTransaction(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	var data TransactionPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	patch(&transaction.Description, data.Description)
	patch(&transaction.Amount, data.Amount)
	patch(&transaction.Date, data.Date)

	if err := models.DB.Save(&transaction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

func DeleteTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	transaction, err := fetchTransaction(c, id)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
