package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/usecase/event"
)

type EventHandler struct {
	eventUseCase *event.EventUseCase
}

func NewEventHandler(eventUseCase *event.EventUseCase) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
	}
}

// Create handles POST /events
// @Summary Create an event
// @Description Create a one-off or recurring event
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body event.CreateEventRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindingError(err),
		})
		return
	}

	ev, err := h.eventUseCase.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		if err == domain.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid event data",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to create event",
		})
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// Calendar handles GET /events
// @Summary List upcoming events
// @Description Upcoming occurrences including expanded recurring dates
// @Tags events
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.EventOccurrence
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [get]
func (h *EventHandler) Calendar(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	occurrences, err := h.eventUseCase.ListCalendar(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list events",
		})
		return
	}

	c.JSON(http.StatusOK, occurrences)
}

// RSVP handles POST /events/:id/rsvp
// @Summary RSVP to an event
// @Description Join an event, waitlisted when at capacity
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} event.RSVPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id}/rsvp [post]
func (h *EventHandler) RSVP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.eventUseCase.RSVP(c.Request.Context(), eventID, userID)
	if err != nil {
		switch err {
		case domain.ErrEventNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "event not found",
			})
		case domain.ErrAlreadyAttending:
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "already attending",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to rsvp",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CancelRSVP handles DELETE /events/:id/rsvp
// @Summary Cancel an RSVP
// @Description Cancel attendance, promoting the earliest waitlisted member
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id}/rsvp [delete]
func (h *EventHandler) CancelRSVP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.eventUseCase.CancelRSVP(c.Request.Context(), eventID, userID)
	if err != nil {
		switch err {
		case domain.ErrEventNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "event not found",
			})
		case domain.ErrRSVPNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "rsvp not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to cancel rsvp",
			})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "rsvp cancelled",
	})
}

// Attendees handles GET /events/:id/attendees
// @Summary List event attendees
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} domain.RSVP
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id}/attendees [get]
func (h *EventHandler) Attendees(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rsvps, err := h.eventUseCase.Attendees(c.Request.Context(), eventID)
	if err != nil {
		if err == domain.ErrEventNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list attendees",
		})
		return
	}

	c.JSON(http.StatusOK, rsvps)
}
