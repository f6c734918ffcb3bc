package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
)

type fakeService struct {
	response *models.BookingResponse
	err      error

	gotID    uuid.UUID
	gotActor int64
	gotRole  domain.Role
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID, actorID int64, actorRole domain.Role) (*models.BookingResponse, error) {
	f.gotID = id
	f.gotActor = actorID
	f.gotRole = actorRole
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *fakeService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.Handle("/api/v1/bookings/{bookingId}",
		middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodGet)
	return r
}

func doRequest(router *mux.Router, bookingID, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	bookingID := uuid.New()
	svc := &fakeService{response: &models.BookingResponse{ID: bookingID.String(), Status: "confirmed"}}
	router := newRouter(svc)

	rec := doRequest(router, bookingID.String(), "1", "client")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingID, svc.gotID)
	assert.Equal(t, int64(1), svc.gotActor)
	assert.Equal(t, domain.RoleClient, svc.gotRole)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, bookingID.String(), body.ID)
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(router, "not-a-uuid", "1", "client")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingIdentityHeaders(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(router, uuid.New().String(), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidRole(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(router, uuid.New().String(), "1", "manager")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &fakeService{err: bookings.ErrBookingNotFound}
	router := newRouter(svc)

	rec := doRequest(router, uuid.New().String(), "1", "client")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_AccessDenied(t *testing.T) {
	svc := &fakeService{err: bookings.ErrAccessDenied}
	router := newRouter(svc)

	rec := doRequest(router, uuid.New().String(), "999", "client")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
