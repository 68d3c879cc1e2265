package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"github.com/pinball19/bus-app-2/internal/app/roster"
	"github.com/pinball19/bus-app-2/internal/domain/driver"
)

// DriverHandler exposes the roster and the duty analysis.
type DriverHandler struct {
	Roster       *roster.Service
	UpcomingDays int
}

type driverRequest struct {
	Name string `json:"name" binding:"required"`
	Memo string `json:"memo"`
}

func (h DriverHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	recs, err := h.Roster.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": recs})
}

func (h DriverHandler) Create(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.Roster.Create(c.Request.Context(), &driver.Record{Name: req.Name, Memo: req.Memo})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h DriverHandler) Update(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec := driver.Record{Name: req.Name, Memo: req.Memo, IsActive: true}
	if err := h.Roster.Update(c.Request.Context(), c.Param("id"), &rec); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h DriverHandler) Deactivate(c *gin.Context) {
	if err := h.Roster.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Duty returns the thirty-day work summary, the consecutive-duty report and
// upcoming assignments for one driver.
func (h DriverHandler) Duty(c *gin.Context) {
	days := h.UpcomingDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	status, err := h.Roster.Duty(c.Request.Context(), c.Param("name"), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h DriverHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, driver.ErrDriverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, roster.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ DriverHTTP = DriverHandler{}
