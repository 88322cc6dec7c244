package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/metrics"
	"github.com/gravadigital/conexa-api/internal/middleware/authn"
	"github.com/gravadigital/conexa-api/internal/qrcode"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"

	"github.com/gravadigital/conexa-api/internal/domain/scan"
)

// ScanHandler exposes the scan endpoint and the per-event QR of the caller
type ScanHandler struct {
	scanService *scan.Service
	eventRepo   postgres.EventRepository
	profileRepo postgres.ProfileRepository
	qrBaseURL   string
	log         *log.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *scan.Service, eventRepo postgres.EventRepository, profileRepo postgres.ProfileRepository, qrBaseURL string) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		qrBaseURL:   qrBaseURL,
		log:         logger.Handler("scan"),
	}
}

type processScanRequest struct {
	Code    string `json:"code" binding:"required"`
	EventID string `json:"event_id"`
}

// ProcessScan handles POST /api/scan
//
// The response body is always the uniform scan result, success or not; the
// frontend renders it directly. event_id is the event the user is currently
// viewing and may be omitted for context-free scans from the home screen.
func (h *ScanHandler) ProcessScan(c *gin.Context) {
	userID := authn.UserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, scan.Failure(scan.MsgLoginRequired))
		return
	}

	var req processScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, scan.Failure(scan.MsgNoCode))
		return
	}

	contextEventID := uuid.Nil
	if req.EventID != "" {
		parsed, err := uuid.Parse(req.EventID)
		if err != nil {
			response.BadRequestError(c, "event_id must be a valid UUID")
			return
		}
		contextEventID = parsed
	}

	result := h.scanService.ProcessScan(userID, req.Code, contextEventID)

	points := 0
	if result.Points != nil {
		points = *result.Points
	}
	metrics.ObserveScan(result.Success, points)

	c.JSON(http.StatusOK, result)
}

// MyQRCode handles GET /api/events/:id/qrcode
//
// Returns the caller's structured user token for the event, ready to render
// as a QR image.
func (h *ScanHandler) MyQRCode(c *gin.Context) {
	userID := authn.UserID(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	if _, err := h.eventRepo.GetByID(eventID); err != nil {
		response.NotFoundError(c, "Event not found")
		return
	}

	p, err := h.profileRepo.GetByID(userID)
	if err != nil {
		h.log.Error("Failed to load profile for QR", "user_id", userID, "error", err)
		response.InternalServerError(c, "Failed to load profile")
		return
	}

	token := qrcode.Encode(qrcode.TypeUser, eventID.String(), p.QRIdentifier.String())
	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"token": token,
		"url":   qrcode.BuildURL(h.qrBaseURL, qrcode.TypeUser, eventID.String(), p.QRIdentifier.String()),
	})
}
