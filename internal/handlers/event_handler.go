package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/domain/event"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/objects"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
	"github.com/gravadigital/conexa-api/internal/validation"
)

// EventHandler handles event CRUD and event-scoped reads
type EventHandler struct {
	eventRepo postgres.EventRepository
	objects   *objects.Store
	log       *log.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventRepo postgres.EventRepository, store *objects.Store) *EventHandler {
	return &EventHandler{
		eventRepo: eventRepo,
		objects:   store,
		log:       logger.Handler("event"),
	}
}

type createEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type updateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// resolveImageURL rewrites a stored object key into a public URL. Events
// created before the object store was configured keep whatever they have.
func (h *EventHandler) resolveImageURL(e *event.Event) {
	if h.objects != nil {
		e.ImageURL = h.objects.PublicURL(e.ImageURL)
	}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	if err := validation.Event.ValidateEventName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := validation.Event.ValidateEventDescription(req.Description); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := validation.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	e := event.NewEvent(req.Name, req.Description, req.ImageURL, req.StartDate, req.EndDate)
	if err := h.eventRepo.Create(e); err != nil {
		h.log.Error("Failed to create event", "name", req.Name, "error", err)
		response.InternalServerError(c, "Failed to create event")
		return
	}

	h.log.Info("Event created", "event_id", e.ID, "slug", e.Slug)
	h.resolveImageURL(e)
	response.SuccessResponse(c, http.StatusCreated, "Event created successfully", e)
}

// GetAllEvents handles GET /api/events
func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventRepo.GetAll()
	if err != nil {
		h.log.Error("Failed to list events", "error", err)
		response.InternalServerError(c, "Failed to list events")
		return
	}
	for _, e := range events {
		h.resolveImageURL(e)
	}
	response.SuccessResponse(c, http.StatusOK, "", events)
}

// GetEvent handles GET /api/events/:id
//
// The path parameter is either the event UUID or its slug, so shared links
// like /events/conexa-2026 keep working.
func (h *EventHandler) GetEvent(c *gin.Context) {
	e, err := h.findEvent(c.Param("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		h.log.Error("Failed to get event", "ref", c.Param("id"), "error", err)
		response.InternalServerError(c, "Failed to get event")
		return
	}
	h.resolveImageURL(e)
	response.SuccessResponse(c, http.StatusOK, "", e)
}

func (h *EventHandler) findEvent(ref string) (*event.Event, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return h.eventRepo.GetByID(id)
	}
	return h.eventRepo.GetBySlug(ref)
}

// UpdateEvent handles PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	e, err := h.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to get event")
		return
	}

	if req.Name != nil {
		if err := validation.Event.ValidateEventName(*req.Name); err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		e.Name = *req.Name
	}
	if req.Description != nil {
		if err := validation.Event.ValidateEventDescription(*req.Description); err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		e.Description = *req.Description
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		e.EndDate = *req.EndDate
	}
	if err := validation.ValidateDateRange(e.StartDate, e.EndDate); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.eventRepo.Update(e); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		h.log.Error("Failed to update event", "event_id", id, "error", err)
		response.InternalServerError(c, "Failed to update event")
		return
	}

	h.log.Info("Event updated", "event_id", id)
	h.resolveImageURL(e)
	response.SuccessResponse(c, http.StatusOK, "Event updated successfully", e)
}

// DeleteEvent handles DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	if err := h.eventRepo.Delete(id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		h.log.Error("Failed to delete event", "event_id", id, "error", err)
		response.InternalServerError(c, "Failed to delete event")
		return
	}

	h.log.Info("Event deleted", "event_id", id)
	response.SuccessResponse(c, http.StatusOK, "Event deleted successfully", nil)
}
