package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollectionHandler serves the maintenance payment records.
type CollectionHandler struct {
	DB *gorm.DB
}

func NewCollectionHandler(db *gorm.DB) *CollectionHandler {
	return &CollectionHandler{DB: db}
}

// ---------- request/response shapes ----------

type createCollectionReq struct {
	HomeNo   string  `json:"homeNo" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Month    string  `json:"month" binding:"required"`
	Year     int     `json:"year" binding:"required"`
	Category string  `json:"category"`
}

type updateCollectionReq struct {
	HomeNo   string  `json:"homeNo" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Month    string  `json:"month" binding:"required"`
	Year     int     `json:"year" binding:"required"`
	Category string  `json:"category"`
}

type collectionResp struct {
	ID            uint      `json:"id"`
	HomeNo        string    `json:"homeNo"`
	AmountPaise   int64     `json:"amount_paise"`
	Amount        string    `json:"amount"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	Category      string    `json:"category"`
	ResidentName  string    `json:"residentName"`
	ResidentPhone string    `json:"residentPhone"`
	OwnerName     string    `json:"ownerName"`
	OwnerPhone    string    `json:"ownerPhone"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCollectionResp(col *models.Collection) collectionResp {
	return collectionResp{
		ID:            col.ID,
		HomeNo:        col.HomeNo,
		AmountPaise:   col.AmountPaise,
		Amount:        util.FormatPaise(col.AmountPaise),
		Month:         col.Month,
		Year:          col.Year,
		Category:      col.Category,
		ResidentName:  col.ResidentName,
		ResidentPhone: col.ResidentPhone,
		OwnerName:     col.OwnerName,
		OwnerPhone:    col.OwnerPhone,
		Status:        col.Status,
		CreatedAt:     col.CreatedAt,
	}
}

func (h *CollectionHandler) validatePeriod(c *gin.Context, homeNo, month string, year int, amount float64) bool {
	if err := util.ValidateHomeNo(homeNo); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown home number")
		return false
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month name")
		return false
	}
	if err := util.ValidateYear(year); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
		return false
	}
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return false
	}
	return true
}

// ---------- list ----------

// List returns collections, optionally filtered by month/year, newest
// first. Visible to any authenticated caller; per-home scoping happens
// only on the /api/resident endpoints.
func (h *CollectionHandler) List(c *gin.Context) {
	month, year, ok := periodFilter(c)
	if !ok {
		return
	}

	q := h.DB.Model(&models.Collection{})
	if month != "" {
		q = q.Where("month = ?", month)
	}
	if year != 0 {
		q = q.Where("year = ?", year)
	}

	var cols []models.Collection
	if err := q.Order("created_at DESC, id DESC").Find(&cols).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query collections")
		return
	}

	items := make([]collectionResp, 0, len(cols))
	var totalPaise int64
	for i := range cols {
		items = append(items, toCollectionResp(&cols[i]))
		totalPaise += cols[i].AmountPaise
	}

	util.Success(c, util.Response{
		"items":        items,
		"total":        len(items),
		"total_paise":  totalPaise,
		"total_amount": util.FormatPaise(totalPaise),
	})
}

// ---------- create ----------

// Create records a payment. The current directory entry for the home
// is snapshotted onto the record so the receipt keeps the payer's name
// even after the directory changes.
func (h *CollectionHandler) Create(c *gin.Context) {
	var req createCollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "homeNo, amount, month and year are required")
		return
	}

	req.HomeNo = strings.TrimSpace(req.HomeNo)
	if !h.validatePeriod(c, req.HomeNo, req.Month, req.Year, req.Amount) {
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryMaintenance
	}
	if !models.ValidCategory(category) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category")
		return
	}

	var dir models.OwnerResident
	if err := h.DB.Where("home_no = ?", req.HomeNo).First(&dir).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "no owner/resident record for this home")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query directory")
		}
		return
	}

	col := models.Collection{
		HomeNo:        req.HomeNo,
		AmountPaise:   util.RupeesToPaise(req.Amount),
		Month:         req.Month,
		Year:          req.Year,
		Category:      category,
		ResidentName:  dir.Resident.Name,
		ResidentPhone: dir.Resident.Phone,
		OwnerName:     dir.Owner.Name,
		OwnerPhone:    dir.Owner.Phone,
		Status:        "PAID",
	}

	if err := h.DB.Create(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeConflict,
				"collection already exists for this home, month, year and category")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save collection")
		}
		return
	}

	util.Success(c, util.Response{
		"collection": toCollectionResp(&col),
	})
}

// ---------- update ----------

// Update mutates amount/month/year/homeNo/category by id. The snapshot
// fields are historical facts and are deliberately left untouched.
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateCollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "homeNo, amount, month and year are required")
		return
	}

	req.HomeNo = strings.TrimSpace(req.HomeNo)
	if !h.validatePeriod(c, req.HomeNo, req.Month, req.Year, req.Amount) {
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryMaintenance
	}
	if !models.ValidCategory(category) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category")
		return
	}

	var col models.Collection
	if err := h.DB.First(&col, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "collection not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query collection")
		}
		return
	}

	col.HomeNo = req.HomeNo
	col.AmountPaise = util.RupeesToPaise(req.Amount)
	col.Month = req.Month
	col.Year = req.Year
	col.Category = category

	if err := h.DB.Save(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeConflict,
				"collection already exists for this home, month, year and category")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save collection")
		}
		return
	}

	util.Success(c, util.Response{
		"collection": toCollectionResp(&col),
	})
}

// ---------- delete ----------

// Delete hard-deletes a payment record by id.
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Collection{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete collection")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "collection not found")
		return
	}

	util.Success(c, util.Response{
		"message": "collection deleted",
	})
}
