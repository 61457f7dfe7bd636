package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
	"github.com/room-booking/backend/internal/schedule"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/storage/models"
)

const dateParam = "2006-01-02"

// MonthEventResponse is one event bar or list entry in a month cell.
type MonthEventResponse struct {
	BookingResponse
	Lane     int  `json:"lane"`
	MultiDay bool `json:"multi_day"`
}

// MonthCellResponse is one box of the month grid. Overflow counts the
// events that found no free lane and are summarized as "+N more".
type MonthCellResponse struct {
	Date         string               `json:"date"`
	Day          int                  `json:"day"`
	CurrentMonth bool                 `json:"current_month"`
	Events       []MonthEventResponse `json:"events"`
	Overflow     int                  `json:"overflow"`
}

// MonthViewResponse is the full month grid.
type MonthViewResponse struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Cells []MonthCellResponse `json:"cells"`
}

// MonthView renders the month grid for ?date=YYYY-MM-DD (default today):
// a Sunday-start grid of cells, each with its events ordered multi-day
// bars first, annotated with lane assignments.
func MonthView(repo *storage.BookingRepository, laneCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := parseDateParam(w, r)
		if !ok {
			return
		}

		cells := schedule.MonthCells(date)
		gridStart := cells[0].Date
		gridEnd := cells[len(cells)-1].Date.AddDate(0, 0, 1)

		events, byID, ok := loadEvents(w, r, repo, gridStart, gridEnd)
		if !ok {
			return
		}

		lanes := schedule.AssignLanes(events, schedule.MonthStart(date), schedule.MonthEnd(date), laneCount)

		response := MonthViewResponse{
			Year:  date.Year(),
			Month: int(date.Month()),
			Cells: make([]MonthCellResponse, len(cells)),
		}
		for i, cell := range cells {
			out := MonthCellResponse{
				Date:         cell.Date.Format(dateParam),
				Day:          cell.Day,
				CurrentMonth: cell.CurrentMonth,
				Events:       []MonthEventResponse{},
			}
			for _, ce := range schedule.MonthCellEvents(events, cell.Date, lanes) {
				if ce.Lane == schedule.LaneUnassigned {
					out.Overflow++
				}
				out.Events = append(out.Events, MonthEventResponse{
					BookingResponse: newBookingResponse(byID[ce.ID]),
					Lane:            ce.Lane,
					MultiDay:        ce.MultiDay,
				})
			}
			response.Cells[i] = out
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// PlacementResponse is a timed block on the 24-hour timeline.
type PlacementResponse struct {
	BookingResponse
	Edge  string                 `json:"edge,omitempty"`
	Block schedule.BlockGeometry `json:"block"`
}

// BarResponse is a multi-day continuation bar in the all-day strip.
type BarResponse struct {
	BookingResponse
	Edge string `json:"edge"`
}

// WeekDayResponse is one column of the week timeline: the multi-day
// bars of the all-day strip plus the timed single-day blocks.
type WeekDayResponse struct {
	Date     string              `json:"date"`
	MultiDay []BarResponse       `json:"multi_day"`
	Events   []PlacementResponse `json:"events"`
}

// WeekViewResponse is the Monday-start week timeline.
type WeekViewResponse struct {
	WeekStart string            `json:"week_start"`
	Days      []WeekDayResponse `json:"days"`
}

// WeekView renders the Monday-start week containing ?date=YYYY-MM-DD.
// Multi-day events go to each day's all-day strip as continuation bars;
// single-day events are packed into columns and placed on the timeline.
func WeekView(repo *storage.BookingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := parseDateParam(w, r)
		if !ok {
			return
		}

		weekStart := schedule.WeekStart(date)
		events, byID, ok := loadEvents(w, r, repo, weekStart, weekStart.AddDate(0, 0, 7))
		if !ok {
			return
		}
		weekEvents := schedule.EventsForWeek(events, date)

		response := WeekViewResponse{
			WeekStart: weekStart.Format(dateParam),
		}
		for _, day := range schedule.WeekDates(date) {
			out := WeekDayResponse{
				Date:     day.Format(dateParam),
				MultiDay: []BarResponse{},
				Events:   []PlacementResponse{},
			}

			for _, de := range schedule.MultiDayEventsForWeek(events, day) {
				out.MultiDay = append(out.MultiDay, BarResponse{
					BookingResponse: newBookingResponse(byID[de.ID]),
					Edge:            string(de.Edge),
				})
			}

			var timed []schedule.Event
			for _, ev := range weekEvents {
				if !ev.MultiDay() && schedule.SameDay(ev.Start, day) {
					timed = append(timed, ev)
				}
			}
			for _, p := range schedule.LayoutDay(timed, day) {
				out.Events = append(out.Events, PlacementResponse{
					BookingResponse: newBookingResponse(byID[p.Event.ID]),
					Block:           p.Block,
				})
			}

			response.Days = append(response.Days, out)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// DayViewResponse is the 24-hour timeline of a single day. Multi-day
// events appear clipped to the day's window, annotated with the edge
// they touch.
type DayViewResponse struct {
	Date   string              `json:"date"`
	Events []PlacementResponse `json:"events"`
}

// DayView renders the timeline for ?date=YYYY-MM-DD. Every event
// covering the day is placed, clipped to the day's 24 hours.
func DayView(repo *storage.BookingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := parseDateParam(w, r)
		if !ok {
			return
		}

		dayStart := schedule.DayStart(date)
		events, byID, ok := loadEvents(w, r, repo, dayStart, dayStart.AddDate(0, 0, 1))
		if !ok {
			return
		}

		dayEvents := schedule.EventsForDay(events, date)
		edges := make(map[string]schedule.DayEdge, len(dayEvents))
		timed := make([]schedule.Event, len(dayEvents))
		for i, de := range dayEvents {
			timed[i] = de.Event
			edges[de.ID] = de.Edge
		}

		response := DayViewResponse{
			Date:   dayStart.Format(dateParam),
			Events: []PlacementResponse{},
		}
		for _, p := range schedule.LayoutDay(timed, date) {
			out := PlacementResponse{
				BookingResponse: newBookingResponse(byID[p.Event.ID]),
				Block:           p.Block,
			}
			if edge := edges[p.Event.ID]; edge != schedule.EdgeNone {
				out.Edge = string(edge)
			}
			response.Events = append(response.Events, out)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// parseDateParam reads ?date=YYYY-MM-DD, defaulting to today.
func parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().UTC(), true
	}

	date, err := time.Parse(dateParam, raw)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// loadEvents fetches the bookings intersecting a window, padded a day on
// each side so day-granularity filters see events touching the edges,
// and projects them onto scheduling events.
func loadEvents(w http.ResponseWriter, r *http.Request, repo *storage.BookingRepository, start, end time.Time) ([]schedule.Event, map[string]models.Booking, bool) {
	bookings, err := repo.ListBetween(r.Context(), start.AddDate(0, 0, -1), end.AddDate(0, 0, 1))
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query bookings")
		return nil, nil, false
	}

	events := make([]schedule.Event, len(bookings))
	byID := make(map[string]models.Booking, len(bookings))
	for i, b := range bookings {
		events[i] = booking.ToEvent(b)
		byID[b.ID] = b
	}
	return events, byID, true
}
