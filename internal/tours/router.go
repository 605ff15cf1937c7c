package tours

import (
	"github.com/gin-gonic/gin"
)

// Router handles tour-related routes
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all tour routes. All reads are public.
func (tourRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	tours := rg.Group("/tours")
	{
		tours.GET("", tourRouter.controller.GetAllTours)
		tours.GET("/:id", tourRouter.controller.GetTourByID)
		tours.GET("/:id/dates", tourRouter.controller.GetTourDates)
	}
}
