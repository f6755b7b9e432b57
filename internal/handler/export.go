package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExportHandler produces CSV downloads of the books.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func writeCSV(c *gin.Context, name string, header []string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build csv")
		return
	}

	fileName := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// Collections exports payment records, optionally filtered by period.
func (h *ExportHandler) Collections(c *gin.Context) {
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
	if err := q.Order("year DESC, month ASC, home_no ASC").Find(&cols).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query collections")
		return
	}

	rows := make([][]string, 0, len(cols))
	for i := range cols {
		col := &cols[i]
		rows = append(rows, []string{
			col.HomeNo,
			col.Month,
			strconv.Itoa(col.Year),
			col.Category,
			util.FormatPaise(col.AmountPaise),
			col.ResidentName,
			col.ResidentPhone,
			col.Status,
			col.CreatedAt.Format("2006-01-02"),
		})
	}

	writeCSV(c, "collections",
		[]string{"home", "month", "year", "category", "amount", "resident", "phone", "status", "recorded"},
		rows)
}

// Expenses exports expenditures, optionally filtered by period.
func (h *ExportHandler) Expenses(c *gin.Context) {
	month, year, ok := periodFilter(c)
	if !ok {
		return
	}

	q := h.DB.Model(&models.Expense{})
	if month != "" {
		q = q.Where("month = ?", month)
	}
	if year != 0 {
		q = q.Where("year = ?", year)
	}

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query expenses")
		return
	}

	rows := make([][]string, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		hasFile := "no"
		if e.HasAttachment {
			hasFile = "yes"
		}
		rows = append(rows, []string{
			e.Title,
			util.FormatPaise(e.AmountPaise),
			e.Date.Format("2006-01-02"),
			e.Month,
			strconv.Itoa(e.Year),
			hasFile,
		})
	}

	writeCSV(c, "expenses",
		[]string{"title", "amount", "date", "month", "year", "receipt"},
		rows)
}
