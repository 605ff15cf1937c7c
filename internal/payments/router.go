package payments

import (
	"tourly/internal/shared/config"
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles payment wizard routes
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

// SetupRoutes registers payment routes. Every route requires a signed-in
// user; sessions are created by the booking confirmation flow, not here.
func (paymentRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuthWithConfig(paymentRouter.config))
	{
		payments.GET("/:sessionId", paymentRouter.controller.GetSession)
		payments.POST("/:sessionId/method", paymentRouter.controller.ChooseMethod)
		payments.POST("/:sessionId/back", paymentRouter.controller.Back)
		payments.POST("/:sessionId/details", paymentRouter.controller.SubmitDetails)
		payments.DELETE("/:sessionId", paymentRouter.controller.Close)
	}
}
