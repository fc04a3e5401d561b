package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/payment"
	"github.com/jwalitptl/salon-api/internal/service/settlement"
)

type Handler struct {
	service    *payment.Service
	settlement *settlement.Service
}

func NewHandler(service *payment.Service, settlementSvc *settlement.Service) *Handler {
	return &Handler{service: service, settlement: settlementSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments", middleware.RequireRole(model.RoleCustomer))
	{
		payments.POST("/initiate/:bookingId", h.InitiatePayment)
		payments.POST("/confirm", h.ConfirmPayment)
		payments.POST("/wallet/:bookingId", h.PayWithWallet)
	}
}

func (h *Handler) InitiatePayment(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		handler.BadRequest(c, "invalid booking ID")
		return
	}

	order, err := h.service.InitiatePayment(c.Request.Context(), principal, bookingID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusCreated, order)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req payment.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	settled, err := h.service.ConfirmPayment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, settled)
}

func (h *Handler) PayWithWallet(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		handler.BadRequest(c, "invalid booking ID")
		return
	}

	paid, err := h.settlement.PayWithWallet(c.Request.Context(), bookingID, principal.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, paid)
}
