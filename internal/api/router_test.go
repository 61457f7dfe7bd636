package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
	"github.com/room-booking/backend/internal/session"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/storage/models"
	"github.com/room-booking/backend/internal/websocket"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	bookingRepo := storage.NewBookingRepository(db)
	service := booking.NewService(bookingRepo, websocket.NewEventBroadcaster(hub), []string{
		models.LocationAulaLantai1,
		models.LocationAulaLantai2,
	})

	cache := session.NewCache(15*time.Minute, session.RealClock{})
	authenticator := middleware.NewAuthenticator(cache, map[string]session.User{
		userToken:  {ID: "u1", Name: "Alice", Role: "user"},
		adminToken: {ID: "a1", Name: "Bob", Role: "admin"},
	})

	return NewRouter(Deps{
		DB:            db,
		BookingRepo:   bookingRepo,
		FeedbackRepo:  storage.NewFeedbackRepository(db),
		Service:       service,
		Hub:           hub,
		Authenticator: authenticator,
		LaneCount:     3,
	})
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bookingBody(location string, startHour, endHour int) map[string]any {
	return map[string]any{
		"contact_name":   "Alice",
		"contact_phone":  "0800",
		"organizer_name": "Student Council",
		"event_name":     "Planning Meeting",
		"location":       location,
		"start_date":     time.Date(2025, 3, 12, startHour, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"end_date":       time.Date(2025, 3, 12, endHour, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestBookingRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", "", bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := do(t, router, "GET", "/api/bookings", "bogus", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestCreateAndVerifyBooking(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Color  string `json:"color"`
	}
	decode(t, rec, &created)
	if created.Status != "pending" || created.Color != "yellow" {
		t.Errorf("created = %+v, want pending/yellow", created)
	}

	verifyPath := fmt.Sprintf("/api/admin/bookings/%s/verify", created.ID)
	decision := map[string]string{"status": "approved"}

	if rec := do(t, router, "POST", verifyPath, userToken, decision); rec.Code != http.StatusForbidden {
		t.Errorf("verify as user: status = %d, want 403", rec.Code)
	}

	rec = do(t, router, "POST", verifyPath, adminToken, decision)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify as admin: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var verified struct {
		Status string `json:"status"`
		Color  string `json:"color"`
	}
	decode(t, rec, &verified)
	if verified.Status != "approved" || verified.Color != "blue" {
		t.Errorf("verified = %+v, want approved/blue", verified)
	}

	if rec := do(t, router, "POST", verifyPath, adminToken, decision); rec.Code != http.StatusConflict {
		t.Errorf("second verify: status = %d, want 409", rec.Code)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", rec.Code)
	}

	rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 10, 12))
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlapping create: status = %d, want 409", rec.Code)
	}

	var resp middleware.ErrorResponse
	decode(t, rec, &resp)
	if resp.Error != middleware.ErrConflict {
		t.Errorf("error code = %q, want conflict", resp.Error)
	}
	if resp.Details == nil {
		t.Error("conflict response carries no blocking booking")
	}

	// The same slot at the other venue is fine.
	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai2, 10, 12)); rec.Code != http.StatusCreated {
		t.Errorf("other venue: status = %d, want 201", rec.Code)
	}
}

func TestCheckAvailabilityRoute(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	query := func(startHour, endHour int) string {
		return fmt.Sprintf("/api/check-availability?location=%s&start=%s&end=%s",
			models.LocationAulaLantai1,
			time.Date(2025, 3, 12, startHour, 0, 0, 0, time.UTC).Format(time.RFC3339),
			time.Date(2025, 3, 12, endHour, 0, 0, 0, time.UTC).Format(time.RFC3339))
	}

	// Public endpoint, no token needed.
	rec := do(t, router, "GET", query(10, 12), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var busy struct {
		Available bool `json:"available"`
	}
	decode(t, rec, &busy)
	if busy.Available {
		t.Error("occupied slot reported available")
	}

	rec = do(t, router, "GET", query(11, 12), "", nil)
	var free struct {
		Available bool `json:"available"`
	}
	decode(t, rec, &free)
	if !free.Available {
		t.Error("adjacent slot reported busy")
	}
}

func TestMonthViewRoute(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	rec := do(t, router, "GET", "/api/calendar/month?date=2025-03-12", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Month int `json:"month"`
		Cells []struct {
			Date   string `json:"date"`
			Events []struct {
				ID   string `json:"id"`
				Lane int    `json:"lane"`
			} `json:"events"`
		} `json:"cells"`
	}
	decode(t, rec, &view)

	if view.Month != 3 {
		t.Errorf("month = %d, want 3", view.Month)
	}
	if len(view.Cells)%7 != 0 {
		t.Errorf("grid has %d cells, not a whole number of weeks", len(view.Cells))
	}

	found := false
	for _, cell := range view.Cells {
		if cell.Date == "2025-03-12" {
			found = len(cell.Events) == 1
		}
	}
	if !found {
		t.Error("booking missing from its month cell")
	}
}

func TestDayViewRoute(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	rec := do(t, router, "GET", "/api/calendar/day?date=2025-03-12", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Events []struct {
			Block struct {
				Top    float64 `json:"top"`
				Height float64 `json:"height"`
				Width  float64 `json:"width"`
			} `json:"block"`
		} `json:"events"`
	}
	decode(t, rec, &view)

	if len(view.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(view.Events))
	}
	block := view.Events[0].Block
	// 09:00 to 11:00 on the 24h column: top 37.5%, height 8.33%.
	if block.Top < 37.4 || block.Top > 37.6 {
		t.Errorf("top = %v, want 37.5", block.Top)
	}
	if block.Height < 8.2 || block.Height > 8.4 {
		t.Errorf("height = %v, want ~8.33", block.Height)
	}
	if block.Width != 100 {
		t.Errorf("width = %v, want 100 for an isolated event", block.Width)
	}
}

func TestCalendarFeedRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	// Pending bookings stay out of the feed.
	rec = do(t, router, "GET", "/api/calendar.ics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed: status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "BEGIN:VEVENT") {
		t.Error("pending booking leaked into the feed")
	}

	verifyPath := fmt.Sprintf("/api/admin/bookings/%s/verify", created.ID)
	if rec := do(t, router, "POST", verifyPath, adminToken, map[string]string{"status": "approved"}); rec.Code != http.StatusOK {
		t.Fatalf("verify: status = %d", rec.Code)
	}

	rec = do(t, router, "GET", "/api/calendar.ics", "", nil)
	if !strings.Contains(rec.Body.String(), "SUMMARY:Planning Meeting") {
		t.Errorf("approved booking missing from feed:\n%s", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestFeedbackRoutes(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{"rating": 5, "message": "Smooth booking process"}
	if rec := do(t, router, "POST", "/api/feedback", userToken, body); rec.Code != http.StatusCreated {
		t.Fatalf("create feedback: status = %d, body %s", rec.Code, rec.Body.String())
	}

	bad := map[string]any{"rating": 9, "message": "out of range"}
	if rec := do(t, router, "POST", "/api/feedback", userToken, bad); rec.Code != http.StatusBadRequest {
		t.Errorf("bad rating: status = %d, want 400", rec.Code)
	}

	if rec := do(t, router, "GET", "/api/admin/feedback", userToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("list as user: status = %d, want 403", rec.Code)
	}

	rec := do(t, router, "GET", "/api/admin/feedback", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list as admin: status = %d", rec.Code)
	}
	var entries []struct {
		Rating int `json:"rating"`
	}
	decode(t, rec, &entries)
	if len(entries) != 1 || entries[0].Rating != 5 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestListBookingsScope(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, "POST", "/api/bookings", userToken, bookingBody(models.LocationAulaLantai1, 9, 11)); rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	rec := do(t, router, "GET", "/api/bookings", userToken, nil)
	var mine []struct {
		UserID string `json:"user_id"`
	}
	decode(t, rec, &mine)
	if len(mine) != 1 || mine[0].UserID != "u1" {
		t.Errorf("own bookings = %+v", mine)
	}

	rec = do(t, router, "GET", "/api/bookings", adminToken, nil)
	var all []struct {
		UserID string `json:"user_id"`
	}
	decode(t, rec, &all)
	if len(all) != 1 {
		t.Errorf("admin sees %d bookings, want 1", len(all))
	}
}
