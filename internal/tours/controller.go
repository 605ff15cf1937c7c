package tours

import (
	"net/http"

	"tourly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetAllTours handles GET /tours with pagination and filters
func (c *Controller) GetAllTours(ctx *gin.Context) {
	var query TourListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetAllTours(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get tours", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tours retrieved successfully", result, nil)
}

// GetTourByID handles GET /tours/:id, the detail aggregate
func (c *Controller) GetTourByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	tour, err := c.service.GetTourByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrTourNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Tour not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get tour", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour retrieved successfully", tour, nil)
}

// GetTourDates handles GET /tours/:id/dates
func (c *Controller) GetTourDates(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	dates, err := c.service.GetTourDates(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get tour dates", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour dates retrieved successfully", dates, nil)
}
