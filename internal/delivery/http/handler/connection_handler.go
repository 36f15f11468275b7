package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/usecase/connection"
)

type ConnectionHandler struct {
	connectionUseCase *connection.ConnectionUseCase
}

func NewConnectionHandler(connectionUseCase *connection.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUseCase: connectionUseCase,
	}
}

// ConnectionRequest represents a connection request body
type ConnectionRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// Request handles POST /connections
// @Summary Request a connection
// @Tags connections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ConnectionRequest true "Target user"
// @Success 201 {object} domain.Connection
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections [post]
func (h *ConnectionHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindingError(err),
		})
		return
	}

	conn, err := h.connectionUseCase.Request(c.Request.Context(), userID, req.UserID)
	if err != nil {
		switch err {
		case domain.ErrCannotConnectSelf:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "cannot connect to yourself",
			})
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
		case domain.ErrConnectionAlreadyExists:
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "connection already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to request connection",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, conn)
}

// List handles GET /connections
// @Summary List connections
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Connection
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conns, err := h.connectionUseCase.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list connections",
		})
		return
	}

	c.JSON(http.StatusOK, conns)
}

// Accept handles POST /connections/:id/accept
// @Summary Accept a connection request
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} domain.Connection
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/{id}/accept [post]
func (h *ConnectionHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

// Decline handles POST /connections/:id/decline
// @Summary Decline a connection request
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} domain.Connection
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/{id}/decline [post]
func (h *ConnectionHandler) Decline(c *gin.Context) {
	h.respond(c, false)
}

func (h *ConnectionHandler) respond(c *gin.Context, accept bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	connectionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	conn, err := h.connectionUseCase.Respond(c.Request.Context(), connectionID, userID, accept)
	if err != nil {
		switch err {
		case domain.ErrConnectionNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "connection request not found",
			})
		case domain.ErrNotConnectionAddressee:
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "only the addressee can respond",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to respond to connection request",
			})
		}
		return
	}

	c.JSON(http.StatusOK, conn)
}

// PendingCount handles GET /connections/pending-count
// @Summary Count pending requests
// @Description Number of incoming pending connection requests
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /connections/pending-count [get]
func (h *ConnectionHandler) PendingCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.connectionUseCase.PendingCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to count pending requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_count": count,
	})
}
