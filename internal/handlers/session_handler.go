package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
	"github.com/akylbek/payment-system/payment-broker/internal/service"
	"github.com/akylbek/payment-system/payment-broker/internal/telemetry"
)

const (
	msgInvalidAmount    = "Invalid or missing payment amount"
	msgMissingPaymentID = "Invalid or missing paymentId"
	msgNoProvider       = "Could not find available payment details"
	msgSessionNotFound  = "Payment details not found or expired"
	msgSessionFound     = "Payment details found"
	msgConfirmed        = "Payment confirmed and is being processed"
	msgCanceled         = "Payment canceled"
	msgNothingToCancel  = "Nothing to cancel"
	msgInternal         = "Internal server error"
)

type SessionHandler struct {
	svc            *service.SessionService
	paymentPageURL string
}

func NewSessionHandler(svc *service.SessionService, paymentPageURL string) *SessionHandler {
	return &SessionHandler{svc: svc, paymentPageURL: paymentPageURL}
}

// Provision handles POST /payment-details.
func (h *SessionHandler) Provision(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	var req models.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ProvisionResponse{Success: false, Message: msgInvalidAmount})
		return
	}

	telemetry.Logger.Info("Provisioning payment session",
		zap.Float64("amount", req.Amount),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	id, err := h.svc.Provision(ctx, req.Amount)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.ProvisionResponse{
			Success:    true,
			PaymentURL: fmt.Sprintf("%s/?paymentId=%s", h.paymentPageURL, id),
		})
	case errors.Is(err, internalErrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, models.ProvisionResponse{Success: false, Message: msgInvalidAmount})
	case errors.Is(err, internalErrors.ErrNoProviderAvailable):
		c.JSON(http.StatusNotFound, models.ProvisionResponse{Success: false, Message: msgNoProvider})
	default:
		telemetry.Logger.Error("Failed to provision payment session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ProvisionResponse{Success: false, Message: msgInternal})
	}
}

// Read handles GET /payment/:id.
func (h *SessionHandler) Read(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, models.SessionResponse{Success: false, Message: msgMissingPaymentID})
		return
	}

	details, err := h.svc.Read(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Success: true, Message: msgSessionFound, Data: details})
}

// Confirm handles POST /confirm-payment.
func (h *SessionHandler) Confirm(c *gin.Context) {
	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentID == "" {
		c.JSON(http.StatusBadRequest, models.SessionResponse{Success: false, Message: msgMissingPaymentID})
		return
	}

	details, err := h.svc.Confirm(c.Request.Context(), req.PaymentID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Success: true, Message: msgConfirmed, Data: details})
}

// Cancel handles POST /cancel-payment.
func (h *SessionHandler) Cancel(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentID == "" {
		c.JSON(http.StatusBadRequest, models.SessionResponse{Success: false, Message: msgMissingPaymentID})
		return
	}

	removed, err := h.svc.Cancel(c.Request.Context(), req.PaymentID)
	if err != nil {
		telemetry.Logger.Error("Failed to cancel payment session",
			zap.String("session_id", req.PaymentID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.SessionResponse{Success: false, Message: msgInternal})
		return
	}

	message := msgCanceled
	if !removed {
		message = msgNothingToCancel
	}
	c.JSON(http.StatusOK, models.SessionResponse{Success: true, Message: message})
}

func (h *SessionHandler) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, internalErrors.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, models.SessionResponse{Success: false, Message: msgSessionNotFound})
		return
	}

	telemetry.Logger.Error("Session lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.SessionResponse{Success: false, Message: msgInternal})
}
