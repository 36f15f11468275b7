package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/usecase/prefs"
)

type PrefsHandler struct {
	prefsUseCase *prefs.PrefsUseCase
}

func NewPrefsHandler(prefsUseCase *prefs.PrefsUseCase) *PrefsHandler {
	return &PrefsHandler{
		prefsUseCase: prefsUseCase,
	}
}

// GetPrefs handles GET /prefs
// @Summary Get preferences
// @Tags prefs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.ViewerPrefs
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prefs [get]
func (h *PrefsHandler) GetPrefs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.prefsUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get preferences",
		})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdatePrefs handles PUT /prefs
// @Summary Update preferences
// @Tags prefs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body prefs.UpdatePrefsRequest true "Preference changes"
// @Success 200 {object} domain.ViewerPrefs
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prefs [put]
func (h *PrefsHandler) UpdatePrefs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req prefs.UpdatePrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindingError(err),
		})
		return
	}

	p, err := h.prefsUseCase.Update(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to update preferences",
		})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Hide handles POST /discovery/hidden/:user_id
// @Summary Hide a member
// @Description Add a member to the viewer's hidden list
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "User ID to hide"
// @Success 200 {object} domain.ViewerPrefs
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discovery/hidden/{user_id} [post]
func (h *PrefsHandler) Hide(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	p, err := h.prefsUseCase.Hide(c.Request.Context(), viewerID, targetID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to hide member",
		})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Unhide handles DELETE /discovery/hidden/:user_id
// @Summary Unhide a member
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "User ID to unhide"
// @Success 200 {object} domain.ViewerPrefs
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discovery/hidden/{user_id} [delete]
func (h *PrefsHandler) Unhide(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	p, err := h.prefsUseCase.Unhide(c.Request.Context(), viewerID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to unhide member",
		})
		return
	}

	c.JSON(http.StatusOK, p)
}
