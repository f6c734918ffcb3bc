package acknowledge_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
	acknowledgePayment "github.com/m04kA/SMC-CoachingService/internal/usecase/acknowledge_payment"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgNotParticipant   = "пользователь не является участником бронирования"
	msgNotConfirmed     = "отметить оплату можно только у подтверждённого бронирования"
)

type Handler struct {
	useCase AcknowledgePaymentUseCase
	logger  Logger
}

func NewHandler(useCase AcknowledgePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := models.ParseBookingID(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole, _ := middleware.GetUserRole(r.Context())

	result, err := h.useCase.Execute(r.Context(), &acknowledgePayment.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, acknowledgePayment.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/payment - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acknowledgePayment.ErrNotParticipant):
			h.logger.Warn("PATCH /bookings/{id}/payment - Not a participant: booking_id=%s, user_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, acknowledgePayment.ErrNotConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/payment - Booking not confirmed: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotConfirmed)

		default:
			h.logger.Error("PATCH /bookings/{id}/payment - Failed to acknowledge payment: booking_id=%s, user_id=%d, error=%v",
				bookingID, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/payment - Payment acknowledged: booking_id=%s, user_id=%d",
		bookingID, actorID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result))
}
