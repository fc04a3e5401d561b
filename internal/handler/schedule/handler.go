package schedule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/business"
	"github.com/jwalitptl/salon-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Handler struct {
	service    *schedule.Service
	businesses *business.Service
}

func NewHandler(service *schedule.Service, businesses *business.Service) *Handler {
	return &Handler{service: service, businesses: businesses}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	schedules := r.Group("/businesses/:id/schedule")
	{
		schedules.GET("", h.GetWeek)
		schedules.PUT("/:day", middleware.RequireRole(model.RoleVendor, model.RoleAdmin), h.UpsertDay)
	}
}

func (h *Handler) GetWeek(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	week, err := h.service.GetWeek(c.Request.Context(), businessID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, week)
}

func (h *Handler) UpsertDay(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	dayOfWeek, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		handler.BadRequest(c, "invalid day of week")
		return
	}

	if err := h.authorizeOwner(c, principal, businessID); err != nil {
		handler.Error(c, err)
		return
	}

	var req model.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Upsert(c.Request.Context(), businessID, dayOfWeek, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, updated)
}

func (h *Handler) authorizeOwner(c *gin.Context, principal model.Principal, businessID uuid.UUID) error {
	if principal.IsAdmin() {
		return nil
	}
	found, err := h.businesses.Get(c.Request.Context(), businessID)
	if err != nil {
		return err
	}
	if found.VendorID != principal.ID {
		return apperrors.Forbidden("business does not belong to this account")
	}
	return nil
}
