package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/domain/activity"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/qrcode"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/objects"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
	"github.com/gravadigital/conexa-api/internal/validation"
)

// ActivityHandler handles activity CRUD and QR material generation
type ActivityHandler struct {
	activityRepo postgres.ActivityRepository
	eventRepo    postgres.EventRepository
	objects      *objects.Store
	qrBaseURL    string
	log          *log.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityRepo postgres.ActivityRepository, eventRepo postgres.EventRepository, store *objects.Store, qrBaseURL string) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
		eventRepo:    eventRepo,
		objects:      store,
		qrBaseURL:    qrBaseURL,
		log:          logger.Handler("activity"),
	}
}

type createActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Points      int    `json:"points"`
}

type updateActivityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Points      *int    `json:"points"`
}

func (h *ActivityHandler) resolveImageURL(a *activity.Activity) {
	if h.objects != nil {
		a.ImageURL = h.objects.PublicURL(a.ImageURL)
	}
}

// CreateActivity handles POST /api/events/:id/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	activityType, ok := activity.TypeFromString(req.Type)
	if !ok {
		response.BadRequestError(c, "type must be 'mission' or 'hidden_point'")
		return
	}
	if err := validation.Activity.ValidateActivityName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := validation.Activity.ValidatePoints(req.Points); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if _, err := h.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to get event")
		return
	}

	a := activity.NewActivity(eventID, activityType, req.Name, req.Description, req.ImageURL, req.Points)
	if err := h.activityRepo.Create(a); err != nil {
		h.log.Error("Failed to create activity", "event_id", eventID, "error", err)
		response.InternalServerError(c, "Failed to create activity")
		return
	}

	h.log.Info("Activity created", "activity_id", a.ID, "event_id", eventID, "type", a.Type)
	h.resolveImageURL(a)
	response.SuccessResponse(c, http.StatusCreated, "Activity created successfully", a)
}

// GetEventActivities handles GET /api/events/:id/activities
//
// Accepts an optional ?type= filter so the admin panel can list missions and
// hidden points separately.
func (h *ActivityHandler) GetEventActivities(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	var typeFilter *activity.Type
	if raw := c.Query("type"); raw != "" {
		t, ok := activity.TypeFromString(raw)
		if !ok {
			response.BadRequestError(c, "type must be 'mission' or 'hidden_point'")
			return
		}
		typeFilter = &t
	}

	activities, err := h.activityRepo.GetByEvent(eventID, typeFilter)
	if err != nil {
		h.log.Error("Failed to list activities", "event_id", eventID, "error", err)
		response.InternalServerError(c, "Failed to list activities")
		return
	}
	for _, a := range activities {
		h.resolveImageURL(a)
	}
	response.SuccessResponse(c, http.StatusOK, "", activities)
}

// GetActivity handles GET /api/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "activity id must be a valid UUID")
		return
	}

	a, err := h.activityRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Activity not found")
			return
		}
		response.InternalServerError(c, "Failed to get activity")
		return
	}
	h.resolveImageURL(a)
	response.SuccessResponse(c, http.StatusOK, "", a)
}

// UpdateActivity handles PUT /api/activities/:id
//
// The identifier and event binding are immutable: printed QR material must
// never be invalidated by an edit.
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "activity id must be a valid UUID")
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	a, err := h.activityRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Activity not found")
			return
		}
		response.InternalServerError(c, "Failed to get activity")
		return
	}

	if req.Name != nil {
		if err := validation.Activity.ValidateActivityName(*req.Name); err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.Points != nil {
		if err := validation.Activity.ValidatePoints(*req.Points); err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		a.Points = *req.Points
	}

	if err := h.activityRepo.Update(a); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Activity not found")
			return
		}
		h.log.Error("Failed to update activity", "activity_id", id, "error", err)
		response.InternalServerError(c, "Failed to update activity")
		return
	}

	h.log.Info("Activity updated", "activity_id", id)
	h.resolveImageURL(a)
	response.SuccessResponse(c, http.StatusOK, "Activity updated successfully", a)
}

// DeleteActivity handles DELETE /api/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "activity id must be a valid UUID")
		return
	}

	if err := h.activityRepo.Delete(id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Activity not found")
			return
		}
		h.log.Error("Failed to delete activity", "activity_id", id, "error", err)
		response.InternalServerError(c, "Failed to delete activity")
		return
	}

	h.log.Info("Activity deleted", "activity_id", id)
	response.SuccessResponse(c, http.StatusOK, "Activity deleted successfully", nil)
}

// GetActivityQRCode handles GET /api/activities/:id/qrcode
//
// Returns the structured token and the scannable URL for the activity, so
// the admin panel can render printable QR codes.
func (h *ActivityHandler) GetActivityQRCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "activity id must be a valid UUID")
		return
	}

	a, err := h.activityRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Activity not found")
			return
		}
		response.InternalServerError(c, "Failed to get activity")
		return
	}

	token := qrcode.Encode(qrcode.TypeActivity, a.EventID.String(), a.Identifier.String())
	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"token": token,
		"url":   qrcode.BuildURL(h.qrBaseURL, qrcode.TypeActivity, a.EventID.String(), a.Identifier.String()),
	})
}
