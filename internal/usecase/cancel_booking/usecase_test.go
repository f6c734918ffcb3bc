package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

type fakeRepo struct {
	booking   *domain.Booking
	getErr    error
	lastDelta *domain.TransitionDelta
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) Transition(_ context.Context, _ uuid.UUID, delta domain.TransitionDelta) error {
	f.lastDelta = &delta
	return nil
}

type fakeOutbox struct {
	created []*domain.Notification
}

func (f *fakeOutbox) Create(_ context.Context, notifications []*domain.Notification) error {
	f.created = append(f.created, notifications...)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newConfirmedBooking(paymentStatus domain.PaymentStatus) *domain.Booking {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            uuid.New(),
		ClientIDs:     []int64{1},
		CoachIDs:      []int64{101},
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		Status:        domain.StatusConfirmed,
		PaymentStatus: paymentStatus,
	}
}

func newTestUseCase(repo *fakeRepo, outbox *fakeOutbox, now time.Time) *UseCase {
	uc := NewUseCase(repo, outbox, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CancelledByClient(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	booking := newConfirmedBooking(domain.PaymentUnpaid)
	repo := &fakeRepo{booking: booking}
	outbox := &fakeOutbox{}
	uc := newTestUseCase(repo, outbox, now)

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   1,
		ActorRole: domain.RoleClient,
		Reason:    ptr.Ptr("изменились планы"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByClient, result.Status)
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, "изменились планы", *result.CancellationReason)
	assert.Equal(t, &now, result.CancelledAt)

	// Уведомление уходит противоположной стороне - тренеру
	require.Len(t, outbox.created, 1)
	assert.Equal(t, domain.RoleCoach, outbox.created[0].RecipientRole)
}

func TestExecute_CancelledByCoach(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	booking := newConfirmedBooking(domain.PaymentUnpaid)
	repo := &fakeRepo{booking: booking}
	outbox := &fakeOutbox{}
	uc := newTestUseCase(repo, outbox, now)

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   101,
		ActorRole: domain.RoleCoach,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByCoach, result.Status)
	assert.Nil(t, result.CancellationReason)

	// Уведомление уходит клиенту
	require.Len(t, outbox.created, 1)
	assert.Equal(t, domain.RoleClient, outbox.created[0].RecipientRole)
}

func TestExecute_PaidBookingIsLocked(t *testing.T) {
	booking := newConfirmedBooking(domain.PaymentPaid)
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeOutbox{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   1,
		ActorRole: domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Nil(t, repo.lastDelta)
}

func TestExecute_UnconfirmedBooking(t *testing.T) {
	booking := newConfirmedBooking(domain.PaymentUnpaid)
	booking.Status = domain.StatusPendingAcceptance
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeOutbox{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   1,
		ActorRole: domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_NotAParticipant(t *testing.T) {
	booking := newConfirmedBooking(domain.PaymentUnpaid)
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeOutbox{}, time.Now())

	// Клиент 1 существует, но не в роли тренера
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   1,
		ActorRole: domain.RoleCoach,
	})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakeOutbox{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: uuid.New(),
		ActorID:   1,
		ActorRole: domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
