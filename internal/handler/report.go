package handler

import (
	"net/http"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler serves the monthly summary report: totals plus which
// homes have paid and which are pending for the period.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// MonthlySummary takes ?month=<name>&year= and returns totals, the
// paid/pending home lists and the period's collections.
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	month, year, ok := requirePeriod(c)
	if !ok {
		return
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month name")
		return
	}

	var cols []models.Collection
	if err := h.DB.Where("month = ? AND year = ?", month, year).Find(&cols).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query collections")
		return
	}

	var collectionPaise int64
	paidHomes := make(map[string]bool, len(cols))
	items := make([]collectionResp, 0, len(cols))
	for i := range cols {
		collectionPaise += cols[i].AmountPaise
		paidHomes[cols[i].HomeNo] = true
		items = append(items, toCollectionResp(&cols[i]))
	}

	var expensePaise int64
	if err := h.DB.Model(&models.Expense{}).
		Where("month = ? AND year = ?", month, year).
		Select("COALESCE(SUM(amount_paise), 0)").
		Scan(&expensePaise).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to total expenses")
		return
	}

	var allHomes []models.OwnerResident
	if err := h.DB.Order("home_no ASC").Find(&allHomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query directory")
		return
	}

	paid := make([]models.OwnerResident, 0, len(allHomes))
	pending := make([]models.OwnerResident, 0)
	for _, home := range allHomes {
		if paidHomes[home.HomeNo] {
			paid = append(paid, home)
		} else {
			pending = append(pending, home)
		}
	}

	util.Success(c, util.Response{
		"month":           month,
		"year":            year,
		"totalCollection": util.FormatPaise(collectionPaise),
		"totalExpense":    util.FormatPaise(expensePaise),
		"balance":         util.FormatPaise(collectionPaise - expensePaise),
		"paidHomes":       paid,
		"pendingHomes":    pending,
		"collections":     items,
	})
}
