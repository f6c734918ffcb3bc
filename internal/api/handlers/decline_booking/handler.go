package decline_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
	declineBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/decline_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgNotParticipant     = "клиент не числится в этом бронировании"
	msgInvalidTransition  = "бронирование нельзя отклонить из текущего статуса"
	msgWrongRole          = "отклонить бронирование может только клиент"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase DeclineBookingUseCase
	logger  Logger
}

func NewHandler(useCase DeclineBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := models.ParseBookingID(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decline - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/decline - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleClient {
		h.logger.Warn("PATCH /bookings/{id}/decline - Wrong role: user_id=%d, role=%s", clientID, role)
		handlers.RespondForbidden(w, msgWrongRole)
		return
	}

	var req DeclineBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &declineBooking.Request{
		BookingID: bookingID,
		ClientID:  clientID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, declineBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/decline - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, declineBooking.ErrNotParticipant):
			h.logger.Warn("PATCH /bookings/{id}/decline - Not a listed client: booking_id=%s, client_id=%d", bookingID, clientID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, declineBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/decline - Invalid transition: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, declineBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/decline - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/decline - Failed to decline booking: booking_id=%s, client_id=%d, error=%v",
				bookingID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/decline - Booking declined: booking_id=%s, client_id=%d",
		bookingID, clientID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result))
}
