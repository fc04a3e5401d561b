package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/availability"
)

type Handler struct {
	resolver  *availability.Resolver
	durations *availability.DurationResolver
}

func NewHandler(resolver *availability.Resolver, durations *availability.DurationResolver) *Handler {
	return &Handler{resolver: resolver, durations: durations}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/businesses/:id/availability", h.CheckAvailability)
}

// CheckAvailability answers whether one slot is bookable without creating
// anything. The creating transaction re-runs the same check, so a positive
// answer here is advisory.
func (h *Handler) CheckAvailability(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid business ID")
		return
	}

	date, err := time.Parse(model.DateFormat, c.Query("date"))
	if err != nil {
		handler.BadRequest(c, "invalid date format")
		return
	}

	timeOfDay := c.Query("time")
	if timeOfDay == "" {
		handler.BadRequest(c, "time is required")
		return
	}

	probe := &model.Booking{Time: timeOfDay}
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			handler.BadRequest(c, "invalid service ID")
			return
		}
		probe.ServiceID = &serviceID
	}
	if raw := c.Query("package_id"); raw != "" {
		packageID, err := uuid.Parse(raw)
		if err != nil {
			handler.BadRequest(c, "invalid package ID")
			return
		}
		probe.PackageID = &packageID
	}
	if raw := c.Query("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			handler.BadRequest(c, "invalid duration")
			return
		}
		probe.Duration = duration
	}

	req := availability.Request{
		BusinessID: businessID,
		Date:       date,
		Time:       timeOfDay,
		Duration:   h.durations.Resolve(c.Request.Context(), probe),
	}
	if raw := c.Query("staff_id"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			handler.BadRequest(c, "invalid staff ID")
			return
		}
		req.PreferredStaffID = &staffID
	}

	result, err := h.resolver.Resolve(c.Request.Context(), nil, req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Success(c, http.StatusOK, gin.H{
		"available": true,
		"staff_id":  result.StaffID,
	})
}
