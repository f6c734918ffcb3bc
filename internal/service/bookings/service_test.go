package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

type fakeRepo struct {
	booking *domain.Booking
	list    []*domain.Booking
	getErr  error
	listErr error

	lastParticipantID int64
	lastRole          domain.Role
	lastStatus        *domain.BookingStatus
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) GetByParticipant(_ context.Context, participantID int64, role domain.Role, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastParticipantID = participantID
	f.lastRole = role
	f.lastStatus = status
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestBooking() *domain.Booking {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            uuid.New(),
		ClientIDs:     []int64{1},
		CoachIDs:      []int64{101},
		StartAt:       start,
		EndAt:         start.Add(90 * time.Minute),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentUnpaid,
		RateUSD:       ptr.Ptr(50.0),
	}
}

func TestGetByID_Participant(t *testing.T) {
	booking := newTestBooking()
	svc := NewService(&fakeRepo{booking: booking}, nopLogger{})

	got, err := svc.GetByID(context.Background(), booking.ID, 1, domain.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, booking.ID.String(), got.ID)
	assert.Equal(t, "confirmed", got.Status)
	require.NotNil(t, got.DurationHours)
	assert.Equal(t, 1.5, *got.DurationHours)
	require.NotNil(t, got.TotalCostUSD)
	assert.Equal(t, 75.0, *got.TotalCostUSD)
}

func TestGetByID_AccessDenied(t *testing.T) {
	booking := newTestBooking()
	svc := NewService(&fakeRepo{booking: booking}, nopLogger{})

	_, err := svc.GetByID(context.Background(), booking.ID, 999, domain.RoleClient)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Тренер не может читать бронирование под ролью клиента
	_, err = svc.GetByID(context.Background(), booking.ID, 101, domain.RoleClient)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: bookingRepo.ErrBookingNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), uuid.New(), 1, domain.RoleClient)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetParticipantBookings_OwnCollection(t *testing.T) {
	repo := &fakeRepo{list: []*domain.Booking{newTestBooking()}}
	svc := NewService(repo, nopLogger{})

	got, err := svc.GetParticipantBookings(context.Background(), &models.GetParticipantBookingsRequest{
		ActorID:       1,
		ActorRole:     domain.RoleClient,
		ParticipantID: 1,
	})
	require.NoError(t, err)

	assert.Len(t, got.Bookings, 1)
	assert.Equal(t, int64(1), repo.lastParticipantID)
	assert.Equal(t, domain.RoleClient, repo.lastRole)
	assert.Nil(t, repo.lastStatus)
}

func TestGetParticipantBookings_StatusFilter(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetParticipantBookings(context.Background(), &models.GetParticipantBookingsRequest{
		ActorID:       101,
		ActorRole:     domain.RoleCoach,
		ParticipantID: 101,
		Status:        ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
}

func TestGetParticipantBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetParticipantBookings(context.Background(), &models.GetParticipantBookingsRequest{
		ActorID:       1,
		ActorRole:     domain.RoleClient,
		ParticipantID: 1,
		Status:        ptr.Ptr("nonsense"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetParticipantBookings_ForeignCollection(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetParticipantBookings(context.Background(), &models.GetParticipantBookingsRequest{
		ActorID:       1,
		ActorRole:     domain.RoleClient,
		ParticipantID: 2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
