package accept_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
	acceptBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/accept_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgNotParticipant     = "тренер не числится в этом бронировании"
	msgInvalidTransition  = "бронирование уже не ожидает принятия тренером"
	msgWrongRole          = "принять бронирование может только тренер"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase AcceptBookingUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := models.ParseBookingID(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/accept - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	coachID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleCoach {
		h.logger.Warn("PATCH /bookings/{id}/accept - Wrong role: user_id=%d, role=%s", coachID, role)
		handlers.RespondForbidden(w, msgWrongRole)
		return
	}

	var req AcceptBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptBooking.Request{
		BookingID: bookingID,
		CoachID:   coachID,
		RateUSD:   req.RateUSD,
		CoachNote: req.CoachNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/accept - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptBooking.ErrNotParticipant):
			h.logger.Warn("PATCH /bookings/{id}/accept - Not a listed coach: booking_id=%s, coach_id=%d", bookingID, coachID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, acceptBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/accept - Invalid transition: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, acceptBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/accept - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/accept - Failed to accept booking: booking_id=%s, coach_id=%d, error=%v",
				bookingID, coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/accept - Booking accepted: booking_id=%s, coach_id=%d, status=%s",
		bookingID, coachID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result))
}
