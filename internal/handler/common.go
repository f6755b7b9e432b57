package handler

import (
	"net/http"
	"strconv"

	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. On failure it writes the error
// response itself and returns ok=false.
func parseID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// periodFilter reads optional ?month=&year= query filters. The literal
// "All" (any case) and the empty string both mean "no filter". A bad
// year writes the error response and returns ok=false.
func periodFilter(c *gin.Context) (month string, year int, ok bool) {
	month = c.Query("month")
	if month == "All" || month == "all" {
		month = ""
	}

	yearStr := c.Query("year")
	if yearStr == "All" || yearStr == "all" {
		yearStr = ""
	}
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return "", 0, false
		}
		year = y
	}
	return month, year, true
}

// requirePeriod reads mandatory ?month=&year= query parameters.
func requirePeriod(c *gin.Context) (month string, year int, ok bool) {
	month = c.Query("month")
	yearStr := c.Query("year")
	if month == "" || yearStr == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month and year are required")
		return "", 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
		return "", 0, false
	}
	return month, year, true
}
