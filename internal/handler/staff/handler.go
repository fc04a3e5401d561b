package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/business"
	"github.com/jwalitptl/salon-api/internal/service/staff"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Handler struct {
	service    *staff.Service
	businesses *business.Service
}

func NewHandler(service *staff.Service, businesses *business.Service) *Handler {
	return &Handler{service: service, businesses: businesses}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staffGroup := r.Group("/businesses/:id/staff")
	{
		staffGroup.GET("", h.ListStaff)
		staffGroup.POST("", middleware.RequireRole(model.RoleVendor, model.RoleAdmin), h.CreateStaff)
		staffGroup.DELETE("/:staffId", middleware.RequireRole(model.RoleVendor, model.RoleAdmin), h.DeactivateStaff)
	}
}

func (h *Handler) ListStaff(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	members, err := h.service.ListActive(c.Request.Context(), businessID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, members)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	if err := h.authorizeOwner(c, principal, businessID); err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusCreated, created)
}

func (h *Handler) DeactivateStaff(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	staffID, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		handler.BadRequest(c, "invalid staff ID")
		return
	}

	if err := h.authorizeOwner(c, principal, businessID); err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), businessID, staffID); err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, nil)
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
