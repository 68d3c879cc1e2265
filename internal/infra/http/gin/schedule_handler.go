package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/pinball19/bus-app-2/internal/app/board"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// ScheduleHandler exposes booking CRUD and the vehicle rename operation.
type ScheduleHandler struct {
	Writer *board.Writer
}

type scheduleRequest struct {
	BusName       string `json:"busName" binding:"required"`
	Month         int    `json:"month" binding:"required"`
	Year          int    `json:"year" binding:"required"`
	Day           int    `json:"day"`
	Span          int    `json:"span"`
	OrderDate     string `json:"orderDate"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	GroupName     string `json:"groupName"`
	Destination   string `json:"destination"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	ContactInfo   string `json:"contactInfo"`
	DriverName    string `json:"driverName"`
	Price         string `json:"price"`
	Passengers    string `json:"passengers"`
	BusType       string `json:"busType"`
	PaymentMethod string `json:"paymentMethod"`
	Memo          string `json:"memo"`

	ItineraryReceived bool `json:"itineraryReceived"`
	PaymentCompleted  bool `json:"paymentCompleted"`

	Styles map[string]schedule.CellStyle `json:"styles"`
}

func (r scheduleRequest) toRaw() *schedule.RawBooking {
	return &schedule.RawBooking{
		VehicleName:       r.BusName,
		Month:             r.Month,
		Year:              r.Year,
		Day:               r.Day,
		Span:              r.Span,
		OrderDate:         r.OrderDate,
		DepartureDate:     schedule.DateFromText(r.DepartureDate),
		ReturnDate:        schedule.DateFromText(r.ReturnDate),
		GroupName:         r.GroupName,
		Destination:       r.Destination,
		CompanyName:       r.CompanyName,
		ContactPerson:     r.ContactPerson,
		ContactInfo:       r.ContactInfo,
		DriverName:        r.DriverName,
		Price:             r.Price,
		Passengers:        r.Passengers,
		BusType:           r.BusType,
		PaymentMethod:     r.PaymentMethod,
		Memo:              r.Memo,
		ItineraryReceived: r.ItineraryReceived,
		PaymentCompleted:  r.PaymentCompleted,
		Styles:            r.Styles,
	}
}

func (h ScheduleHandler) Create(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.Writer.Create(c.Request.Context(), req.toRaw())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h ScheduleHandler) Update(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Writer.Update(c.Request.Context(), c.Param("id"), req.toRaw()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ScheduleHandler) Delete(c *gin.Context) {
	if err := h.Writer.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type renameRequest struct {
	NewName string `json:"newName" binding:"required"`
	Month   int    `json:"month" binding:"required"`
	Year    int    `json:"year" binding:"required"`
}

func (h ScheduleHandler) RenameVehicle(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	changed, err := h.Writer.RenameVehicle(c.Request.Context(), c.Param("name"), req.NewName, req.Month, req.Year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrUnknownVehicle), errors.Is(err, board.ErrMonthRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ ScheduleHTTP = ScheduleHandler{}
