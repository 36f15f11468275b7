package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/metrics"
	"github.com/villagehs/village-backend/internal/usecase/discovery"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.DiscoveryUseCase
}

func NewDiscoveryHandler(discoveryUseCase *discovery.DiscoveryUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUseCase: discoveryUseCase,
	}
}

// Browse handles GET /discovery
// @Summary Browse members
// @Description Run the discovery filter chain over the member roster
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param search query string false "Global free-text search, overrides all filters"
// @Param tab query string false "Account-type tab" Enums(all, family, teacher, business, other)
// @Param radius_km query number false "Radius in km around the viewer's location"
// @Param location query string false "Location substring match or browse origin"
// @Success 200 {object} discovery.Response
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discovery [get]
func (h *DiscoveryHandler) Browse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// State is rebuilt from scratch each request, so a tab switch on the
	// client naturally arrives with that tab's sub-filters only.
	state := discovery.FilterState{
		Search:         c.Query("search"),
		Tab:            c.DefaultQuery("tab", discovery.TabAll),
		Status:         c.Query("status"),
		StatusCustom:   c.Query("status_custom"),
		Approach:       c.Query("approach"),
		TeacherGroup:   c.Query("teacher_group"),
		TeacherCustom:  c.Query("teacher_custom"),
		Subject:        c.Query("subject"),
		SubjectCustom:  c.Query("subject_custom"),
		Category:       c.Query("category"),
		CategoryCustom: c.Query("category_custom"),
		LocationText:   c.Query("location"),
	}

	if v := c.Query("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid radius_km",
			})
			return
		}
		state.RadiusKm = radius
	}
	if v := c.Query("age_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid age_min",
			})
			return
		}
		state.AgeMin = n
	}
	if v := c.Query("age_max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid age_max",
			})
			return
		}
		state.AgeMax = n
	}
	if state.AgeMax > 0 && state.AgeMin > state.AgeMax {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "age_min must not exceed age_max",
		})
		return
	}

	resp, err := h.discoveryUseCase.Browse(c.Request.Context(), userID, state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to browse members",
		})
		return
	}

	metrics.DiscoveryQueriesTotal.WithLabelValues(state.Tab).Inc()
	c.JSON(http.StatusOK, resp)
}
