package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves society expenditures and their receipt
// attachments.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

const maxAttachmentBytes = 10 << 20 // 10 MiB per receipt

type expenseResp struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	AmountPaise   int64     `json:"amount_paise"`
	Amount        string    `json:"amount"`
	Date          time.Time `json:"date"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	HasAttachment bool      `json:"hasAttachment"`
	CreatedAt     time.Time `json:"created_at"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:            e.ID,
		Title:         e.Title,
		AmountPaise:   e.AmountPaise,
		Amount:        util.FormatPaise(e.AmountPaise),
		Date:          e.Date,
		Month:         e.Month,
		Year:          e.Year,
		HasAttachment: e.HasAttachment,
		CreatedAt:     e.CreatedAt,
	}
}

// expenseInput is the shared create/update payload. The handlers accept
// either JSON or a multipart form with an optional "file" part.
type expenseInput struct {
	Title  string
	Amount float64
	Date   time.Time
	Month  string
	Year   int
}

// parseExpenseInput reads the payload from JSON or multipart form data
// and derives month/year from the date when they are not supplied.
func parseExpenseInput(c *gin.Context) (*expenseInput, error) {
	in := &expenseInput{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.Title = strings.TrimSpace(c.PostForm("title"))
		amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount")
		}
		in.Amount = amount
		dateStr := c.PostForm("date")
		if dateStr == "" {
			return nil, fmt.Errorf("date is required")
		}
		in.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date")
		}
		in.Month = strings.TrimSpace(c.PostForm("month"))
		if y := c.PostForm("year"); y != "" {
			in.Year, err = strconv.Atoi(y)
			if err != nil {
				return nil, fmt.Errorf("invalid year")
			}
		}
	} else {
		var req struct {
			Title  string  `json:"title" binding:"required"`
			Amount float64 `json:"amount" binding:"required"`
			Date   string  `json:"date" binding:"required"`
			Month  string  `json:"month"`
			Year   int     `json:"year"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, fmt.Errorf("title, amount and date are required")
		}
		in.Title = strings.TrimSpace(req.Title)
		in.Amount = req.Amount
		var err error
		in.Date, err = parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date")
		}
		in.Month = req.Month
		in.Year = req.Year
	}

	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, fmt.Errorf("invalid amount")
	}

	// denormalized period, for filtering without date-range queries
	if in.Month == "" {
		in.Month = models.MonthNames[in.Date.Month()-1]
	}
	if in.Year == 0 {
		in.Year = in.Date.Year()
	}
	return in, nil
}

func parseDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// readUpload pulls the optional "file" part out of a multipart request.
// Returns nil without error when no file was sent.
func readUpload(c *gin.Context) ([]byte, string, string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, "", "", nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		// no file part is fine
		return nil, "", "", nil
	}
	if fh.Size > maxAttachmentBytes {
		return nil, "", "", fmt.Errorf("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, fh.Filename, contentType, nil
}

// ---------- list ----------

// List returns expenses, optionally filtered by month/year, newest first.
func (h *ExpenseHandler) List(c *gin.Context) {
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
	if err := q.Order("created_at DESC, id DESC").Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query expenses")
		return
	}

	items := make([]expenseResp, 0, len(expenses))
	var totalPaise int64
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
		totalPaise += expenses[i].AmountPaise
	}

	util.Success(c, util.Response{
		"items":        items,
		"total":        len(items),
		"total_paise":  totalPaise,
		"total_amount": util.FormatPaise(totalPaise),
	})
}

// ---------- create ----------

// Create stores an expense and, when a file part is present, its
// receipt. The two writes are separate; a crash in between can leave
// hasAttachment set with no attachment row. Accepted window, there is
// no transaction spanning both on purpose (matches the delete cascade,
// which is also explicit).
func (h *ExpenseHandler) Create(c *gin.Context) {
	in, err := parseExpenseInput(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	fileData, fileName, contentType, err := readUpload(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid file upload")
		return
	}

	expense := models.Expense{
		Title:         in.Title,
		AmountPaise:   util.RupeesToPaise(in.Amount),
		Date:          in.Date,
		Month:         in.Month,
		Year:          in.Year,
		HasAttachment: len(fileData) > 0,
	}

	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save expense")
		return
	}

	if len(fileData) > 0 {
		att := models.Attachment{
			ExpenseID:   expense.ID,
			FileData:    fileData,
			FileName:    fileName,
			ContentType: contentType,
		}
		if err := h.DB.Create(&att).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save attachment")
			return
		}
	}

	util.Success(c, util.Response{
		"expense": toExpenseResp(&expense),
	})
}

// ---------- update ----------

// Update mutates an expense by id. A file part replaces any existing
// receipt (upsert keyed on expense id).
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	in, err := parseExpenseInput(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	fileData, fileName, contentType, err := readUpload(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid file upload")
		return
	}

	var expense models.Expense
	if err := h.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query expense")
		}
		return
	}

	expense.Title = in.Title
	expense.AmountPaise = util.RupeesToPaise(in.Amount)
	expense.Date = in.Date
	expense.Month = in.Month
	expense.Year = in.Year
	if len(fileData) > 0 {
		expense.HasAttachment = true
	}

	if err := h.DB.Save(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save expense")
		return
	}

	if len(fileData) > 0 {
		var att models.Attachment
		err := h.DB.Where("expense_id = ?", expense.ID).First(&att).Error
		switch {
		case err == nil:
			att.FileData = fileData
			att.FileName = fileName
			att.ContentType = contentType
			err = h.DB.Save(&att).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			att = models.Attachment{
				ExpenseID:   expense.ID,
				FileData:    fileData,
				FileName:    fileName,
				ContentType: contentType,
			}
			err = h.DB.Create(&att).Error
		}
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save attachment")
			return
		}
	}

	util.Success(c, util.Response{
		"expense": toExpenseResp(&expense),
	})
}

// ---------- delete ----------

// Delete removes the expense's attachment row first, then the expense.
// The cascade is explicit; nothing at the persistence layer does it.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var expense models.Expense
	if err := h.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query expense")
		}
		return
	}

	if err := h.DB.Where("expense_id = ?", expense.ID).Delete(&models.Attachment{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete attachment")
		return
	}
	if err := h.DB.Delete(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete expense")
		return
	}

	util.Success(c, util.Response{
		"message": "expense deleted",
	})
}

// ---------- attachment download ----------

// DownloadAttachment streams the stored receipt bytes for an expense id
// with the original content type and filename.
func (h *ExpenseHandler) DownloadAttachment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var att models.Attachment
	if err := h.DB.Where("expense_id = ?", id).First(&att).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "attachment not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query attachment")
		}
		return
	}

	fileName := att.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("receipt-%d", att.ExpenseID)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, att.ContentType, att.FileData)
}
