package payout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/settlement"
)

type Handler struct {
	settlement *settlement.Service
}

func NewHandler(settlementSvc *settlement.Service) *Handler {
	return &Handler{settlement: settlementSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payouts := r.Group("/payouts", middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
	{
		payouts.POST("", h.RequestPayout)
		payouts.GET("", h.ListPayouts)
		payouts.GET("/balance/:businessId", h.GetBalance)
	}
}

func (h *Handler) RequestPayout(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req model.RequestPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	created, err := h.settlement.RequestPayout(c.Request.Context(), principal.ID, req.BusinessID, req.Amount)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusCreated, created)
}

func (h *Handler) ListPayouts(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	payouts, err := h.settlement.ListPayouts(c.Request.Context(), principal.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, payouts)
}

func (h *Handler) GetBalance(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	businessID, err := uuid.Parse(c.Param("businessId"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	totals, err := h.settlement.Balance(c.Request.Context(), principal.ID, businessID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, gin.H{
		"total_earnings":    totals.TotalEarnings,
		"processed_payouts": totals.ProcessedPayouts,
		"pending_payouts":   totals.PendingPayouts,
		"available_balance": totals.AvailableBalance(),
	})
}
