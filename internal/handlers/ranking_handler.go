package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/middleware/authn"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
)

// RankingHandler handles event scores, rankings and connections
type RankingHandler struct {
	pointsRepo postgres.PointsRepository
	log        *log.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(pointsRepo postgres.PointsRepository) *RankingHandler {
	return &RankingHandler{
		pointsRepo: pointsRepo,
		log:        logger.Handler("ranking"),
	}
}

// GetRanking handles GET /api/events/:id/ranking
func (h *RankingHandler) GetRanking(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.pointsRepo.GetRanking(eventID, page, limit)
	if err != nil {
		h.log.Error("Failed to get ranking", "event_id", eventID, "error", err)
		response.InternalServerError(c, "Failed to get ranking")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", entries)
}

// GetMyPoints handles GET /api/events/:id/points
//
// Returns the caller's score together with the derived level progress the
// frontend renders as a progress bar.
func (h *RankingHandler) GetMyPoints(c *gin.Context) {
	userID := authn.UserID(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	points, err := h.pointsRepo.GetUserEventPoints(userID, eventID)
	if err != nil {
		h.log.Error("Failed to get points", "user_id", userID, "event_id", eventID, "error", err)
		response.InternalServerError(c, "Failed to get points")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"points": points,
		"level":  profile.ProgressFor(points),
	})
}

// GetMyConnections handles GET /api/events/:id/connections
func (h *RankingHandler) GetMyConnections(c *gin.Context) {
	userID := authn.UserID(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequestError(c, "event id must be a valid UUID")
		return
	}

	connections, err := h.pointsRepo.GetConnections(userID, eventID)
	if err != nil {
		h.log.Error("Failed to get connections", "user_id", userID, "event_id", eventID, "error", err)
		response.InternalServerError(c, "Failed to get connections")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", connections)
}
