package bookings

import (
	"tourly/internal/shared/config"
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking wizard and booking list routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers booking routes. Everything requires a signed-in
// user: joining a tour is gated on authentication.
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		bookings.GET("", bookingRouter.controller.GetUserBookings)

		wizard := bookings.Group("/wizard")
		{
			wizard.POST("", bookingRouter.controller.StartWizard)
			wizard.GET("/:sessionId", bookingRouter.controller.GetSession)
			wizard.POST("/:sessionId/date", bookingRouter.controller.SelectDate)
			wizard.POST("/:sessionId/participants", bookingRouter.controller.SetParticipants)
			wizard.POST("/:sessionId/contact", bookingRouter.controller.SubmitContact)
			wizard.POST("/:sessionId/back", bookingRouter.controller.Back)
			wizard.POST("/:sessionId/confirm", bookingRouter.controller.Confirm)
			wizard.DELETE("/:sessionId", bookingRouter.controller.CloseWizard)
		}
	}
}
