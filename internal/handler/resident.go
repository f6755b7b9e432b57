package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/middleware"
	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResidentHandler serves the self-service endpoints. Every query is
// scoped to the home number from the verified token; the client never
// gets to pick a home. This is the one place home-level isolation is
// enforced server-side.
type ResidentHandler struct {
	DB *gorm.DB
}

func NewResidentHandler(db *gorm.DB) *ResidentHandler {
	return &ResidentHandler{DB: db}
}

func residentHome(c *gin.Context) (string, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok || claims.HomeNo == "" {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return "", false
	}
	return claims.HomeNo, true
}

// Profile returns the directory entry for the caller's own home, or a
// bare {homeNo} when no entry exists yet.
func (h *ResidentHandler) Profile(c *gin.Context) {
	homeNo, ok := residentHome(c)
	if !ok {
		return
	}

	var record models.OwnerResident
	if err := h.DB.Where("home_no = ?", homeNo).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Success(c, util.Response{
				"homeNo": homeNo,
			})
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch profile")
		}
		return
	}

	util.Success(c, util.Response{
		"homeNo":   record.HomeNo,
		"owner":    record.Owner,
		"resident": record.Resident,
	})
}

// Payments returns the caller's own payment history, newest period first.
func (h *ResidentHandler) Payments(c *gin.Context) {
	homeNo, ok := residentHome(c)
	if !ok {
		return
	}

	var cols []models.Collection
	if err := h.DB.Where("home_no = ?", homeNo).
		Order("year DESC, created_at DESC").
		Find(&cols).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch payments")
		return
	}

	items := make([]collectionResp, 0, len(cols))
	for i := range cols {
		items = append(items, toCollectionResp(&cols[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// residentStatusPeriod returns the period CurrentStatus reports on:
// the previous calendar month, with the current calendar year. Billing
// runs one month behind, so January's dues show as December's status.
func residentStatusPeriod(now time.Time) (month string, year int) {
	prev := now.AddDate(0, -1, 0)
	return models.MonthNames[prev.Month()-1], now.Year()
}

// CurrentStatus reports PAID/PENDING for the caller's home for the
// billing period.
func (h *ResidentHandler) CurrentStatus(c *gin.Context) {
	homeNo, ok := residentHome(c)
	if !ok {
		return
	}

	month, year := residentStatusPeriod(time.Now())

	var col models.Collection
	err := h.DB.Where("home_no = ? AND month = ? AND year = ?", homeNo, month, year).
		First(&col).Error
	switch {
	case err == nil:
		util.Success(c, util.Response{
			"homeNo":       homeNo,
			"month":        month,
			"year":         year,
			"status":       "PAID",
			"amount_paise": col.AmountPaise,
			"amount":       util.FormatPaise(col.AmountPaise),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.Success(c, util.Response{
			"homeNo":       homeNo,
			"month":        month,
			"year":         year,
			"status":       "PENDING",
			"amount_paise": int64(0),
			"amount":       util.FormatPaise(0),
		})
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch status")
	}
}

// Expenses returns the society-wide expense list and total for a
// period. Not home-scoped: expenses belong to the whole society.
func (h *ResidentHandler) Expenses(c *gin.Context) {
	if _, ok := residentHome(c); !ok {
		return
	}
	month, year, ok := requirePeriod(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := h.DB.Where("month = ? AND year = ?", month, year).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch expenses")
		return
	}

	items := make([]expenseResp, 0, len(expenses))
	var totalPaise int64
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
		totalPaise += expenses[i].AmountPaise
	}

	util.Success(c, util.Response{
		"items":       items,
		"total_paise": totalPaise,
		"total":       util.FormatPaise(totalPaise),
	})
}
