package bookings

import (
	"net/http"

	"tourly/internal/shared/utils/response"
	"tourly/internal/tours"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// StartWizard handles POST /bookings/wizard. The route sits behind JWT
// auth, so an anonymous caller gets the sign-in notice from the
// middleware before reaching here.
func (c *Controller) StartWizard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req StartWizardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tourID, _ := uuid.Parse(req.TourID)
	resp, err := c.service.StartWizard(ctx.Request.Context(), userID, tourID)
	if err != nil {
		switch err {
		case tours.ErrTourNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Tour not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to start booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking session started", resp, nil)
}

func (c *Controller) GetSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.GetSession(ctx.Request.Context(), ctx.Param("sessionId"), userID)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking session retrieved", resp, nil)
}

func (c *Controller) SelectDate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	dateID, _ := uuid.Parse(req.DateID)
	resp, err := c.service.SelectDate(ctx.Request.Context(), ctx.Param("sessionId"), userID, dateID)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Date selected", resp, nil)
}

func (c *Controller) SetParticipants(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SetParticipantsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.SetParticipants(ctx.Request.Context(), ctx.Param("sessionId"), userID, req.Count)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Participant count updated", resp, nil)
}

func (c *Controller) SubmitContact(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	contact := ContactInfo{
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		SpecialRequests:  req.SpecialRequests,
	}

	resp, err := c.service.SubmitContact(ctx.Request.Context(), ctx.Param("sessionId"), userID, contact)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact details saved", resp, nil)
}

func (c *Controller) Back(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.Back(ctx.Request.Context(), ctx.Param("sessionId"), userID)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Stepped back", resp, nil)
}

func (c *Controller) Confirm(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.Confirm(ctx.Request.Context(), ctx.Param("sessionId"), userID)
	if err != nil {
		switch err {
		case ErrInsufficientCapacity:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Not enough seats remaining", nil, nil)
		case ErrDateNotAvailable:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Tour date is no longer available", nil, nil)
		default:
			respondWizardError(ctx, err)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created, awaiting payment", resp, nil)
}

func (c *Controller) CloseWizard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.CloseWizard(ctx.Request.Context(), ctx.Param("sessionId"), userID); err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking session closed", nil, nil)
}

func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, NoticeSignInRequired, nil, nil)
		return uuid.Nil, false
	}

	idStr, _ := raw.(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}

func respondWizardError(ctx *gin.Context, err error) {
	switch err {
	case ErrSessionNotFound:
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking session not found", nil, nil)
	case ErrSessionNotYours:
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking session belongs to another user", nil, nil)
	case ErrWrongStep:
		response.RespondJSON(ctx, "error", http.StatusConflict, "Action not allowed at current step", nil, nil)
	case ErrDateNotBookable:
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Selected date is not available", nil, nil)
	case ErrNoDateSelected:
		response.RespondJSON(ctx, "error", http.StatusConflict, "No date selected", nil, nil)
	case ErrCountOutOfRange:
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Participant count out of range", nil, nil)
	case ErrContactRequired:
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, NoticeFillRequired, nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Booking operation failed", nil, nil)
	}
}
