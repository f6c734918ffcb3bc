package acknowledge_payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
)

type fakeRepo struct {
	booking     *domain.Booking
	getErr      error
	lastDelta   *domain.TransitionDelta
	transitions int
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) Transition(_ context.Context, _ uuid.UUID, delta domain.TransitionDelta) error {
	f.lastDelta = &delta
	f.transitions++
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newBooking(status domain.BookingStatus, paymentStatus domain.PaymentStatus) *domain.Booking {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            uuid.New(),
		ClientIDs:     []int64{1},
		CoachIDs:      []int64{101},
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		Status:        status,
		PaymentStatus: paymentStatus,
	}
}

func TestExecute_MarksBookingPaid(t *testing.T) {
	booking := newBooking(domain.StatusConfirmed, domain.PaymentUnpaid)
	repo := &fakeRepo{booking: booking}
	outbox := &fakeOutbox{}
	uc := NewUseCase(repo, outbox, &fakeTxManager{}, nopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   1,
		ActorRole: domain.RoleClient,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPaid, result.PaymentStatus)
	assert.True(t, result.IsTerminal())

	require.NotNil(t, repo.lastDelta)
	require.NotNil(t, repo.lastDelta.PaymentStatus)
	assert.Equal(t, domain.PaymentPaid, *repo.lastDelta.PaymentStatus)

	// Тренер узнает об оплате
	require.Len(t, outbox.created, 1)
	assert.Equal(t, domain.RoleCoach, outbox.created[0].RecipientRole)
}

func TestExecute_IdempotentWhenAlreadyPaid(t *testing.T) {
	booking := newBooking(domain.StatusConfirmed, domain.PaymentPaid)
	repo := &fakeRepo{booking: booking}
	outbox := &fakeOutbox{}
	uc := NewUseCase(repo, outbox, &fakeTxManager{}, nopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   101,
		ActorRole: domain.RoleCoach,
	})
	require.NoError(t, err)

	// Повтор не порождает ни перехода, ни уведомлений
	assert.Equal(t, domain.PaymentPaid, result.PaymentStatus)
	assert.Equal(t, 0, repo.transitions)
	assert.Empty(t, outbox.created)
}

func TestExecute_NotConfirmed(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{name: "requested", status: domain.StatusRequested},
		{name: "pending acceptance", status: domain.StatusPendingAcceptance},
		{name: "declined", status: domain.StatusDeclinedByClient},
		{name: "cancelled", status: domain.StatusCancelledByClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := newBooking(tt.status, domain.PaymentUnpaid)
			repo := &fakeRepo{booking: booking}
			uc := NewUseCase(repo, &fakeOutbox{}, &fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: booking.ID,
				ActorID:   1,
				ActorRole: domain.RoleClient,
			})
			assert.ErrorIs(t, err, ErrNotConfirmed)
		})
	}
}

func TestExecute_NotAParticipant(t *testing.T) {
	booking := newBooking(domain.StatusConfirmed, domain.PaymentUnpaid)
	repo := &fakeRepo{booking: booking}
	uc := NewUseCase(repo, &fakeOutbox{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		ActorID:   999,
		ActorRole: domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := NewUseCase(repo, &fakeOutbox{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: uuid.New(),
		ActorID:   1,
		ActorRole: domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
