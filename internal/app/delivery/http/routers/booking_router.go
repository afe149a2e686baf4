package routers

import (
	"eduvoyage-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, bookingController *controllers.BookingController) {
	router.Post("/", bookingController.CreateBooking)
	router.Post("/reschedule", bookingController.RescheduleBooking)
	router.Post("/cancel", bookingController.CancelBooking)
}
