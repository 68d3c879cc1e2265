package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ItineraryWindowDays is how many days before departure the itinerary
// document has to be in hand.
const ItineraryWindowDays = 21

// AlertKind names the two alert classes the board derives from the grid.
type AlertKind string

const (
	AlertConsecutiveRun    AlertKind = "consecutive_run"
	AlertItineraryDeadline AlertKind = "itinerary_deadline"
)

// Severity grades an alert for display.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is a derived operational warning. Alerts are never persisted; they
// are recomputed from the grid after every rebuild or merge.
type Alert struct {
	VehicleName string    `json:"vehicleName"`
	Kind        AlertKind `json:"kind"`
	Severity    Severity  `json:"severity"`
	Days        []int     `json:"days,omitempty"`
	Message     string    `json:"message"`
}

// ItineraryDue reports whether the itinerary-missing alert fires: the
// document has not arrived and today sits inside [departure-21d, departure).
// The lower bound is inclusive, the upper exclusive; a booking departing
// today no longer alerts. Today must be day-granular (time of day zeroed).
func ItineraryDue(departure time.Time, received bool, today time.Time) bool {
	if received {
		return false
	}
	deadline := departure.AddDate(0, 0, -ItineraryWindowDays)
	return !today.Before(deadline) && today.Before(departure)
}

// ComputeAlerts derives the full alert set for the grid as of today:
// consecutive-duty runs of RunAlertThreshold days or more per vehicle, and
// outstanding itinerary documents inside the pre-departure window. Entries
// whose departure date does not parse never produce a deadline alert.
func ComputeAlerts(g *Grid, today time.Time) []Alert {
	if g == nil {
		return nil
	}
	var alerts []Alert
	for _, row := range g.Rows {
		for _, run := range ConsecutiveRuns(row.OccupiedDays()) {
			if !Alertable(run) {
				continue
			}
			alerts = append(alerts, Alert{
				VehicleName: row.VehicleName,
				Kind:        AlertConsecutiveRun,
				Severity:    SeverityWarning,
				Days:        run,
				Message:     fmt.Sprintf("%s: %d日間連続稼働中 (%s日)", row.VehicleName, len(run), joinDays(run)),
			})
		}
	}
	for _, row := range g.Rows {
		for _, e := range row.Entries {
			departure, ok := e.DepartureDate()
			if !ok {
				continue
			}
			if !ItineraryDue(departure, e.Content.ItineraryReceived, today) {
				continue
			}
			alerts = append(alerts, Alert{
				VehicleName: row.VehicleName,
				Kind:        AlertItineraryDeadline,
				Severity:    SeverityError,
				Message: fmt.Sprintf("%s (%s): %sの行程表が未着です",
					row.VehicleName, departure.Format("01/02"), e.Content.GroupName),
			})
		}
	}
	return alerts
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, ", ")
}
