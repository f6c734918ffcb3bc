package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Валидация выполняется до любой записи: некорректный запрос не оставляет
// следов в хранилище.
func validateRequest(req *Request, now time.Time) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.ActorRole != domain.RoleClient {
		return ErrWrongRole
	}

	if len(req.ClientIDs) == 0 {
		return fmt.Errorf("%w: clientIDs must not be empty", ErrInvalidInput)
	}
	if len(req.CoachIDs) == 0 {
		return fmt.Errorf("%w: coachIDs must not be empty", ErrInvalidInput)
	}
	if len(req.ClientIDs)+len(req.CoachIDs) > domain.MaxParticipants {
		return fmt.Errorf("%w: too many participants", ErrInvalidInput)
	}

	if err := validateIDList("clientIDs", req.ClientIDs); err != nil {
		return err
	}
	if err := validateIDList("coachIDs", req.CoachIDs); err != nil {
		return err
	}

	if !containsID(req.ClientIDs, req.ActorID) {
		return ErrNotParticipant
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return ErrInvalidTimeRange
	}
	if req.StartAt.Before(now) {
		return ErrStartInPast
	}

	if req.Location != nil && len(*req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location is too long", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateIDList проверяет, что идентификаторы положительны и без дубликатов
func validateIDList(field string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: %s must contain positive IDs", ErrInvalidInput, field)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s contains duplicate id=%d", ErrInvalidInput, field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
