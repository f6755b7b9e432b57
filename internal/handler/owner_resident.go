package handler

import (
	"net/http"
	"strings"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OwnerResidentHandler serves the per-home directory and the derived
// paid/pending view.
type OwnerResidentHandler struct {
	DB *gorm.DB
}

func NewOwnerResidentHandler(db *gorm.DB) *OwnerResidentHandler {
	return &OwnerResidentHandler{DB: db}
}

type upsertOwnerResidentReq struct {
	HomeNo   string         `json:"homeNo" binding:"required"`
	Owner    models.Contact `json:"owner" binding:"required"`
	Resident models.Contact `json:"resident" binding:"required"`
}

// Upsert creates or overwrites the directory record for one home.
func (h *OwnerResidentHandler) Upsert(c *gin.Context) {
	var req upsertOwnerResidentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "homeNo, owner and resident are required")
		return
	}

	req.HomeNo = strings.TrimSpace(req.HomeNo)
	if err := util.ValidateHomeNo(req.HomeNo); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown home number")
		return
	}
	if req.Owner.Name == "" || req.Owner.Phone == "" ||
		req.Resident.Name == "" || req.Resident.Phone == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "owner and resident need name and phone")
		return
	}

	var record models.OwnerResident
	err := h.DB.Where("home_no = ?", req.HomeNo).First(&record).Error
	switch {
	case err == nil:
		record.Owner = req.Owner
		record.Resident = req.Resident
		err = h.DB.Save(&record).Error
	case err == gorm.ErrRecordNotFound:
		record = models.OwnerResident{
			HomeNo:   req.HomeNo,
			Owner:    req.Owner,
			Resident: req.Resident,
		}
		err = h.DB.Create(&record).Error
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save owner/resident record")
		return
	}

	util.Success(c, util.Response{
		"message": "owner and resident saved successfully",
		"record":  record,
	})
}

// List returns every directory entry ordered by home number.
func (h *OwnerResidentHandler) List(c *gin.Context) {
	var records []models.OwnerResident
	if err := h.DB.Order("home_no ASC").Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query directory")
		return
	}

	util.Success(c, util.Response{
		"items": records,
		"total": len(records),
	})
}

// ---------- home status ----------

// identity is who a home's row on the dashboard names. For PAID homes
// it comes from the payment snapshot (who actually paid); for PENDING
// homes it comes from the live directory (who lives there now). Source
// makes that distinction visible to the client instead of silently
// picking fields.
type identity struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Source string `json:"source"` // "snapshot" or "directory"
}

type homeStatusEntry struct {
	HomeNo      string   `json:"homeNo"`
	Status      string   `json:"status"` // PAID or PENDING
	Owner       identity `json:"owner"`
	Resident    identity `json:"resident"`
	AmountPaise int64    `json:"amount_paise"`
	Amount      string   `json:"amount"`
}

func snapshotIdentity(name, phone string) identity {
	return identity{Name: name, Phone: phone, Source: "snapshot"}
}

func directoryIdentity(ct models.Contact) identity {
	return identity{Name: ct.Name, Phone: ct.Phone, Source: "directory"}
}

// HomeStatus left-joins the directory against the period's collections
// and marks each home PAID or PENDING. Homes without a directory entry
// don't appear; collections for such homes are ignored rather than
// blowing up the view.
func (h *OwnerResidentHandler) HomeStatus(c *gin.Context) {
	month, year, ok := requirePeriod(c)
	if !ok {
		return
	}

	var records []models.OwnerResident
	if err := h.DB.Order("home_no ASC").Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query directory")
		return
	}

	var cols []models.Collection
	if err := h.DB.Where("month = ? AND year = ?", month, year).Find(&cols).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query collections")
		return
	}

	paidByHome := make(map[string]*models.Collection, len(cols))
	for i := range cols {
		if _, seen := paidByHome[cols[i].HomeNo]; !seen {
			paidByHome[cols[i].HomeNo] = &cols[i]
		}
	}

	result := make([]homeStatusEntry, 0, len(records))
	for i := range records {
		rec := &records[i]
		entry := homeStatusEntry{HomeNo: rec.HomeNo}

		if col, paid := paidByHome[rec.HomeNo]; paid {
			entry.Status = "PAID"
			entry.Owner = snapshotIdentity(col.OwnerName, col.OwnerPhone)
			entry.Resident = snapshotIdentity(col.ResidentName, col.ResidentPhone)
			entry.AmountPaise = col.AmountPaise
			entry.Amount = util.FormatPaise(col.AmountPaise)
		} else {
			entry.Status = "PENDING"
			entry.Owner = directoryIdentity(rec.Owner)
			entry.Resident = directoryIdentity(rec.Resident)
			entry.Amount = util.FormatPaise(0)
		}
		result = append(result, entry)
	}

	util.Success(c, util.Response{
		"month": month,
		"year":  year,
		"homes": result,
	})
}
