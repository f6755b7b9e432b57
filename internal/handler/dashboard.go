package handler

import (
	"net/http"
	"strconv"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the month summary cards: collection total,
// expense total and the running balance.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// Summary takes a numeric month (1-12) and a year and returns the
// period's totals. The month number is mapped to the stored month name.
func (h *DashboardHandler) Summary(c *gin.Context) {
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month and year are required")
		return
	}

	monthNum, err := strconv.Atoi(monthStr)
	if err != nil || monthNum < 1 || monthNum > 12 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
		return
	}
	monthName := models.MonthNames[monthNum-1]

	var collectionPaise int64
	if err := h.DB.Model(&models.Collection{}).
		Where("month = ? AND year = ?", monthName, year).
		Select("COALESCE(SUM(amount_paise), 0)").
		Scan(&collectionPaise).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to total collections")
		return
	}

	var expensePaise int64
	if err := h.DB.Model(&models.Expense{}).
		Where("month = ? AND year = ?", monthName, year).
		Select("COALESCE(SUM(amount_paise), 0)").
		Scan(&expensePaise).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to total expenses")
		return
	}

	util.Success(c, util.Response{
		"month":            monthName,
		"year":             year,
		"totalCollection":  util.FormatPaise(collectionPaise),
		"totalExpense":     util.FormatPaise(expensePaise),
		"balance":          util.FormatPaise(collectionPaise - expensePaise),
		"collection_paise": collectionPaise,
		"expense_paise":    expensePaise,
		"balance_paise":    collectionPaise - expensePaise,
	})
}
