package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

type fakeRepo struct {
	created *domain.Booking
}

func (f *fakeRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
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

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		ActorID:   1,
		ActorRole: domain.RoleClient,
		ClientIDs: []int64{1},
		CoachIDs:  []int64{101},
		StartAt:   testNow.Add(24 * time.Hour),
		EndAt:     testNow.Add(25 * time.Hour),
	}
}

func newTestUseCase(repo *fakeRepo, outbox *fakeOutbox) *UseCase {
	uc := NewUseCase(repo, outbox, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_CreatesBooking(t *testing.T) {
	repo := &fakeRepo{}
	outbox := &fakeOutbox{}
	uc := newTestUseCase(repo, outbox)

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRequested, result.Status)
	assert.Equal(t, domain.PaymentUnpaid, result.PaymentStatus)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.ID.String())
	assert.False(t, result.IsGroup())

	// Каждый тренер получает уведомление о новой заявке
	require.Len(t, outbox.created, 1)
	assert.Equal(t, int64(101), outbox.created[0].RecipientID)
	assert.Equal(t, domain.RoleCoach, outbox.created[0].RecipientRole)
}

func TestExecute_CreatesGroupBooking(t *testing.T) {
	repo := &fakeRepo{}
	outbox := &fakeOutbox{}
	uc := newTestUseCase(repo, outbox)

	req := validRequest()
	req.ClientIDs = []int64{1, 2}
	req.CoachIDs = []int64{101, 102, 103}

	result, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.IsGroup())
	assert.Len(t, outbox.created, 3)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{
			name:     "coach cannot create a booking",
			mutate:   func(req *Request) { req.ActorRole = domain.RoleCoach },
			expected: ErrWrongRole,
		},
		{
			name:     "actor must be a listed client",
			mutate:   func(req *Request) { req.ClientIDs = []int64{2} },
			expected: ErrNotParticipant,
		},
		{
			name:     "empty coach list",
			mutate:   func(req *Request) { req.CoachIDs = nil },
			expected: ErrInvalidInput,
		},
		{
			name:     "duplicate coach ids",
			mutate:   func(req *Request) { req.CoachIDs = []int64{101, 101} },
			expected: ErrInvalidInput,
		},
		{
			name:     "start after end",
			mutate:   func(req *Request) { req.EndAt = req.StartAt.Add(-time.Hour) },
			expected: ErrInvalidTimeRange,
		},
		{
			name:     "start equals end",
			mutate:   func(req *Request) { req.EndAt = req.StartAt },
			expected: ErrInvalidTimeRange,
		},
		{
			name: "start in the past",
			mutate: func(req *Request) {
				req.StartAt = testNow.Add(-time.Hour)
				req.EndAt = testNow.Add(time.Hour)
			},
			expected: ErrStartInPast,
		},
		{
			name: "too many participants",
			mutate: func(req *Request) {
				ids := make([]int64, domain.MaxParticipants)
				for i := range ids {
					ids[i] = int64(i + 100)
				}
				req.CoachIDs = ids
			},
			expected: ErrInvalidInput,
		},
		{
			name:     "notes too long",
			mutate:   func(req *Request) { req.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1)) },
			expected: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc := newTestUseCase(repo, &fakeOutbox{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, repo.created)
		})
	}
}
