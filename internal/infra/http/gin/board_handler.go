package ginserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"github.com/pinball19/bus-app-2/internal/app/board"
	"github.com/pinball19/bus-app-2/internal/app/dto"
	"github.com/pinball19/bus-app-2/internal/app/export"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// BoardHandler serves the occupancy grid and the month export.
type BoardHandler struct {
	Board   *board.Service
	Store   schedule.Store
	Archive Archiver
}

// Archiver keeps a copy of each generated export.
type Archiver interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Get selects the requested month and filter (defaulting to the current
// month, unfiltered) and returns the board payload. A fetch or subscribe
// failure is retryable; the client keeps its previous state.
func (h BoardHandler) Get(c *gin.Context) {
	sel, err := selectionFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Board.Select(c.Request.Context(), sel); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusOK, dto.MapBoard(h.Board.Snapshot()))
}

// Export streams the month's bookings as CSV and archives a copy when an
// archive bucket is configured.
func (h BoardHandler) Export(c *gin.Context) {
	sel, err := selectionFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raws, err := h.Store.Bookings(c.Request.Context(), sel.Month, sel.Year, schedule.Filter{})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	csv := export.MonthCSV(raws)
	if h.Archive != nil {
		key := fmt.Sprintf("schedules/%04d-%02d.csv", sel.Year, sel.Month)
		// Archive failures are logged by the uploader; the download itself
		// must not fail because of them.
		_ = h.Archive.Put(c.Request.Context(), key, csv)
	}
	filename := fmt.Sprintf("schedules_%04d_%02d.csv", sel.Year, sel.Month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}

func selectionFrom(c *gin.Context) (board.Selection, error) {
	now := time.Now()
	sel := board.Selection{Month: int(now.Month()), Year: now.Year()}
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return board.Selection{}, fmt.Errorf("invalid month: %q", raw)
		}
		sel.Month = m
	}
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 {
			return board.Selection{}, fmt.Errorf("invalid year: %q", raw)
		}
		sel.Year = y
	}
	sel.Filter = schedule.Filter{
		VehicleName:   c.Query("vehicle"),
		ContactPerson: c.Query("contact"),
		DriverName:    c.Query("driver"),
	}
	return sel, nil
}

var _ BoardHTTP = BoardHandler{}
