package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
	"gorm.io/gorm"
)

type CopyMonthBody struct {
	SourceMonth     int  `json:"sourceMonth"`
	TargetMonth     int  `json:"targetMonth"`
	ResetPaidStatus bool `json:"resetPaidStatus"`
}

type ClearMonthBody struct {
	Month           int  `json:"month"`
	ResetPaidStatus bool `json:"resetPaidStatus"`
}

// BulkResult reports how many rows a bulk month operation touched.
type BulkResult struct {
	CategoryEntries int `json:"categoryEntries"`
	IncomeEntries   int `json:"incomeEntries"`
	Deductions      int `json:"deductions"`
}

// CopyMonth copies one calendar month of a budget onto another in a single
// transaction: category entry amounts (children included), income gross
// amounts, and deductions matched by name. With resetPaidStatus the target
// entries are additionally marked unpaid.
func CopyMonth(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var body CopyMonthBody
	if err := httputil.BindData(c, &body); err != nil {
		return
	}

	if body.SourceMonth < 1 || body.SourceMonth > 12 || body.TargetMonth < 1 || body.TargetMonth > 12 {
		abort(c, errInvalidCalendarMonth)
		return
	}
	if body.SourceMonth == body.TargetMonth {
		abort(c, errSameMonth)
		return
	}

	budget, err := fetchBudget(c, id)
	if err != nil {
		return
	}

	var result BulkResult
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := forEachCategory(&budget, func(category *models.YearlyCategory) error {
			source := entryForMonth(category.Entries, body.SourceMonth)
			target := entryForMonth(category.Entries, body.TargetMonth)
			if source == nil || target == nil {
				return nil
			}

			updates := map[string]any{"amount": source.Amount}
			if body.ResetPaidStatus {
				updates["is_paid"] = false
			}
			if err := tx.Model(target).Updates(updates).Error; err != nil {
				return err
			}
			result.CategoryEntries++
			return nil
		})
		if err != nil {
			return err
		}

		for i := range budget.IncomeSources {
			entries := budget.IncomeSources[i].Entries
			source := incomeForMonth(entries, body.SourceMonth)
			target := incomeForMonth(entries, body.TargetMonth)
			if source == nil || target == nil {
				continue
			}

			if err := tx.Model(target).Update("gross_amount", source.GrossAmount).Error; err != nil {
				return err
			}
			result.IncomeEntries++

			if err := copyDeductions(tx, source, target, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearMonth zeroes one calendar month of a budget in a single transaction:
// category entry amounts, income gross amounts and deduction amounts, with
// paid flags reset when requested.
func ClearMonth(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	var body ClearMonthBody
	if err := httputil.BindData(c, &body); err != nil {
		return
	}

	if body.Month < 1 || body.Month > 12 {
		abort(c, errInvalidCalendarMonth)
		return
	}

	budget, err := fetchBudget(c, id)
	if err != nil {
		return
	}

	var result BulkResult
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := forEachCategory(&budget, func(category *models.YearlyCategory) error {
			entry := entryForMonth(category.Entries, body.Month)
			if entry == nil {
				return nil
			}

			updates := map[string]any{"amount": int64(0)}
			if body.ResetPaidStatus {
				updates["is_paid"] = false
			}
			if err := tx.Model(entry).Updates(updates).Error; err != nil {
				return err
			}
			result.CategoryEntries++
			return nil
		})
		if err != nil {
			return err
		}

		for i := range budget.IncomeSources {
			entry := incomeForMonth(budget.IncomeSources[i].Entries, body.Month)
			if entry == nil {
				continue
			}

			if err := tx.Model(entry).Update("gross_amount", int64(0)).Error; err != nil {
				return err
			}
			result.IncomeEntries++

			for j := range entry.Deductions {
				if err := tx.Model(&entry.Deductions[j]).Update("amount", int64(0)).Error; err != nil {
					return err
				}
				result.Deductions++
			}
		}
		return nil
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// copyDeductions carries the source entry's deductions onto the target by
// name: matching ones take the source amount, missing ones are created.
func copyDeductions(tx *gorm.DB, source, target *models.IncomeEntry, result *BulkResult) error {
	byName := make(map[string]*models.Deduction, len(target.Deductions))
	for i := range target.Deductions {
		byName[target.Deductions[i].Name] = &target.Deductions[i]
	}

	for _, deduction := range source.Deductions {
		existing, ok := byName[deduction.Name]
		if ok {
			if err := tx.Model(existing).Update("amount", deduction.Amount).Error; err != nil {
				return err
			}
		} else {
			created := models.Deduction{
				Name:          deduction.Name,
				Amount:        deduction.Amount,
				OrderIndex:    deduction.OrderIndex,
				IncomeEntryID: target.ID,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		}
		result.Deductions++
	}
	return nil
}

// forEachCategory visits every category of the budget, parents before their
// children, stopping at the first error.
func forEachCategory(budget *models.YearlyBudget, visit func(*models.YearlyCategory) error) error {
	for i := range budget.Sections {
		categories := budget.Sections[i].Categories
		for j := range categories {
			if err := visit(&categories[j]); err != nil {
				return err
			}
			for k := range categories[j].Children {
				if err := visit(&categories[j].Children[k]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func entryForMonth(entries []models.CategoryEntry, month int) *models.CategoryEntry {
	for i := range entries {
		if entries[i].Month == month {
			return &entries[i]
		}
	}
	return nil
}

func incomeForMonth(entries []models.IncomeEntry, month int) *models.IncomeEntry {
	for i := range entries {
		if entries[i].Month == month {
			return &entries[i]
		}
	}
	return nil
}
