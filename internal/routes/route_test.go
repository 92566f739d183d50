package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/config"
	"github.com/joshua-takyi/resort/internal/container"
	"github.com/joshua-takyi/resort/internal/handlers"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/models/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const password = "Str0ng!Pass"

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	router   *gin.Engine
	ct       *container.Container
	store    *fakes.Store
	identity *fakes.Identity
}

func newApp(t *testing.T) *app {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := fakes.NewStore()
	identity := fakes.NewIdentity()
	cfg := &config.Config{
		Environment:         "test",
		AllowedOrigins:      []string{"http://localhost:3000"},
		PlaceholderImageURL: "https://img.example.com/placeholder.png",
	}
	stores := container.Stores{
		Guests:    store,
		Staff:     store,
		Rooms:     store,
		Events:    store,
		Catalog:   store,
		Tables:    store,
		Tours:     store,
		Status:    store,
		Audit:     store,
		TourViews: store,
		Wishlists: store,
		Identity:  identity,
	}
	ct := container.NewContainer(cfg, logger, stores, identity, nil)
	return &app{router: SetupRoutes(ct), ct: ct, store: store, identity: identity}
}

func (a *app) call(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (helpers.ApiResponse, map[string]any) {
	t.Helper()
	var res helpers.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	data, _ := res.Data.(map[string]any)
	return res, data
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// login signs in through the API and returns the access token from its cookie.
func (a *app) login(t *testing.T, email string) string {
	t.Helper()
	w := a.call(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ck := cookie(w, middleware.AccessCookie)
	require.NotNil(t, ck)
	return ck.Value
}

func (a *app) registerGuest(t *testing.T, first string) (string, string) {
	t.Helper()
	email := first + "@example.com"
	w := a.call(t, http.MethodPost, "/auth/register", "", gin.H{
		"guest_fname":    first,
		"guest_lname":    "Mensah",
		"guest_email":    email,
		"guest_phone":    "0244000000",
		"guest_password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := decode(t, w)
	return data["guest_id"].(string), a.login(t, email)
}

func (a *app) staffToken(t *testing.T, email, role string) string {
	t.Helper()
	_, err := a.ct.StaffService.CreateStaff(context.Background(), models.CreateStaffRequest{
		FirstName: "Staff", LastName: role, Email: email, Phone: "0201234567",
		Role: role, ShiftStart: "08:00", ShiftEnd: "16:00", Password: password,
	})
	require.NoError(t, err)
	return a.login(t, email)
}

func (a *app) createRoom(t *testing.T, token, number string) string {
	t.Helper()
	w := a.call(t, http.MethodPost, "/rooms", token, gin.H{
		"room_number": number, "room_type": "Deluxe", "room_max_pax": 2, "room_rate": 200, "room_discount": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := decode(t, w)
	return data["room_id"].(string)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	w := a.call(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "resort-api", body["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoginSetsCookiesAndMe(t *testing.T) {
	a := newApp(t)
	_, _ = a.registerGuest(t, "ama")

	w := a.call(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ama@example.com", "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	access := cookie(w, middleware.AccessCookie)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	require.NotNil(t, cookie(w, middleware.RefreshCookie))
	_, data := decode(t, w)
	assert.Equal(t, "guest", data["role"])

	w = a.call(t, http.MethodGet, "/auth/me", access.Value, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, "guest", data["role"])

	w = a.call(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ama@example.com", "password": "Wr0ng!Pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusUnauthorized, a.call(t, http.MethodGet, "/auth/me", "", nil).Code)
}

func TestRegisterBadBody(t *testing.T) {
	a := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	res, _ := decode(t, w)
	assert.False(t, res.Success)
}

func TestRefreshAndLogout(t *testing.T) {
	a := newApp(t)
	_, _ = a.registerGuest(t, "ama")
	login := a.call(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ama@example.com", "password": password})
	refresh := cookie(login, middleware.RefreshCookie)
	require.NotNil(t, refresh)

	w := a.call(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": refresh.Value})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, cookie(w, middleware.AccessCookie))

	// refresh tokens are single use
	w = a.call(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": refresh.Value})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.call(t, http.MethodPost, "/auth/logout", cookie(login, middleware.AccessCookie).Value, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookie(w, middleware.AccessCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Len(t, a.identity.SignedOut, 1)
}

func TestRoomBookingJourney(t *testing.T) {
	a := newApp(t)
	guestID, guest := a.registerGuest(t, "ama")
	mgr := a.staffToken(t, "manager@resort.test", "manager")
	roomID := a.createRoom(t, mgr, "101")

	w := a.call(t, http.MethodGet, "/rooms/availability?check_in=2024-06-01&check_out=2024-06-03&guests=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res, _ := decode(t, w)
	assert.Equal(t, 1, res.Total)

	w = a.call(t, http.MethodPost, "/room-reservations", guest, gin.H{
		"room_id": roomID, "room_check_in_date": "2024-06-01", "room_check_out_date": "2024-06-03", "room_no_guest": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := decode(t, w)
	reservationID := data["reservation_id"].(string)

	w = a.call(t, http.MethodGet, "/room-reservations/"+reservationID, guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, 360.0, data["room_total_cost"])

	w = a.call(t, http.MethodGet, "/guests/"+guestID+"/room-reservations", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res, _ = decode(t, w)
	assert.Equal(t, 1, res.Total)

	// the room is taken for those nights now
	w = a.call(t, http.MethodGet, "/rooms/availability?check_in=2024-06-02&check_out=2024-06-04&guests=1", "", nil)
	res, _ = decode(t, w)
	assert.Equal(t, 0, res.Total)

	w = a.call(t, http.MethodPut, "/room-reservations/"+reservationID+"/status", guest, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.call(t, http.MethodPut, "/room-reservations/"+reservationID+"/status", guest, gin.H{"status": "canceled", "reason": "plans changed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.call(t, http.MethodGet, "/reports/audit?entity=room_reservation&id="+reservationID, mgr, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res, _ = decode(t, w)
	assert.Equal(t, 1, res.Total)
}

func TestRoleGatesOnRoutes(t *testing.T) {
	a := newApp(t)
	_, guest := a.registerGuest(t, "ama")
	bar := a.staffToken(t, "bar@resort.test", "bar")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
	}{
		{"guest cannot create rooms", http.MethodPost, "/rooms", guest, http.StatusForbidden},
		{"bar cannot create rooms", http.MethodPost, "/rooms", bar, http.StatusForbidden},
		{"anonymous cannot create rooms", http.MethodPost, "/rooms", "", http.StatusUnauthorized},
		{"guest cannot list guests", http.MethodGet, "/guests", guest, http.StatusForbidden},
		{"bar cannot read reports", http.MethodGet, "/reports/summary?from=2024-06-01&to=2024-06-30", bar, http.StatusForbidden},
		{"bar cannot add food", http.MethodPost, "/food-items", bar, http.StatusForbidden},
		{"staff have no wishlist", http.MethodGet, "/wishlist", bar, http.StatusForbidden},
		{"guest cannot list staff", http.MethodGet, "/staff", guest, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.call(t, tt.method, tt.path, tt.token, gin.H{})
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := a.call(t, http.MethodPost, "/drinks", bar, gin.H{"name": "Palm Wine", "category": "Local", "price": 20})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.call(t, http.MethodGet, "/drinks", "", nil)
	res, _ := decode(t, w)
	assert.Equal(t, 1, res.Total)
}

func TestInvalidPathID(t *testing.T) {
	a := newApp(t)
	w := a.call(t, http.MethodGet, "/rooms/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.call(t, http.MethodGet, "/tables/availability?date=2024-06-01&time=19:00&guests=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTourViewSessionHeader(t *testing.T) {
	a := newApp(t)
	mgr := a.staffToken(t, "manager@resort.test", "manager")
	roomID := a.createRoom(t, mgr, "101")

	w := a.call(t, http.MethodPost, "/tours", mgr, gin.H{
		"room_id": roomID, "tour_title": "Suite walkthrough", "tour_media": "https://cdn.example.com/101.mp4",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := decode(t, w)
	tourID := data["tour_id"].(string)

	w = a.call(t, http.MethodPost, "/tours/"+tourID+"/views", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := w.Header().Get(handlers.SessionHeader)
	require.NotEmpty(t, session)
	_, data = decode(t, w)
	assert.Equal(t, true, data["recorded"])

	w = a.call(t, http.MethodPost, "/tours/"+tourID+"/views", "", nil, handlers.SessionHeader, session)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, false, data["recorded"])

	w = a.call(t, http.MethodGet, "/tours/"+tourID+"/stats", mgr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.EqualValues(t, 1, data["total_views"])
}

func TestWishlistRoutes(t *testing.T) {
	a := newApp(t)
	_, guest := a.registerGuest(t, "ama")
	mgr := a.staffToken(t, "manager@resort.test", "manager")
	roomID := a.createRoom(t, mgr, "101")

	w := a.call(t, http.MethodPost, "/wishlist/"+roomID, guest, gin.H{"item_type": "room"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.call(t, http.MethodGet, "/wishlist", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Contains(t, data["items"], roomID)

	w = a.call(t, http.MethodDelete, "/wishlist/"+roomID, guest, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
