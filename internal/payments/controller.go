package payments

import (
	"net/http"

	"tourly/internal/shared/utils/response"

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

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment session retrieved", resp, nil)
}

func (c *Controller) ChooseMethod(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req ChooseMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.ChooseMethod(ctx.Request.Context(), ctx.Param("sessionId"), userID, Method(req.Method))
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment method selected", resp, nil)
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

	response.RespondJSON(ctx, "success", http.StatusOK, "Returned to method selection", resp, nil)
}

func (c *Controller) SubmitDetails(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	card := CardDetails{
		Number:     req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
		HolderName: req.CardholderName,
	}

	resp, err := c.service.SubmitDetails(ctx.Request.Context(), ctx.Param("sessionId"), userID, card)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment processing started", resp, nil)
}

func (c *Controller) Close(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.Close(ctx.Request.Context(), ctx.Param("sessionId"), userID); err != nil {
		respondWizardError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment session closed", nil, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
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
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment session not found", nil, nil)
	case ErrSessionNotYours:
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Payment session belongs to another user", nil, nil)
	case ErrWrongStep:
		response.RespondJSON(ctx, "error", http.StatusConflict, "Action not allowed at current step", nil, nil)
	case ErrInvalidMethod:
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid payment method", nil, nil)
	case ErrIncompleteCard:
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Card details incomplete", nil, nil)
	case ErrCloseDuringSettle:
		response.RespondJSON(ctx, "error", http.StatusConflict, "Cannot close while payment is processing", nil, nil)
	case ErrSettlementComplete:
		response.RespondJSON(ctx, "error", http.StatusConflict, "Payment already settled", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Payment operation failed", nil, nil)
	}
}
