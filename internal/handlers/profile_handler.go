package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/middleware/authn"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/objects"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
	"github.com/gravadigital/conexa-api/internal/validation"
)

// ProfileHandler handles the authenticated user's own profile
type ProfileHandler struct {
	profileRepo postgres.ProfileRepository
	objects     *objects.Store
	log         *log.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileRepo postgres.ProfileRepository, store *objects.Store) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
		objects:     store,
		log:         logger.Handler("profile"),
	}
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Instagram *string `json:"instagram"`
	TikTok    *string `json:"tiktok"`
	AgeGroup  *string `json:"age_group"`
}

func (h *ProfileHandler) resolveAvatarURL(p *profile.Profile) {
	if h.objects != nil {
		p.AvatarURL = h.objects.PublicURL(p.AvatarURL)
	}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := authn.UserID(c)

	p, err := h.profileRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Profile not found")
			return
		}
		h.log.Error("Failed to get profile", "user_id", userID, "error", err)
		response.InternalServerError(c, "Failed to get profile")
		return
	}

	h.resolveAvatarURL(p)
	response.SuccessResponse(c, http.StatusOK, "", p)
}

// UpdateProfile handles PUT /api/profile
//
// Social handles are sanitized on the way in: users paste full profile URLs
// and @-prefixed handles, we store the bare username.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := authn.UserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.profileRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "Profile not found")
			return
		}
		response.InternalServerError(c, "Failed to get profile")
		return
	}

	if req.FullName != nil {
		if err := validation.Profile.ValidateFullName(*req.FullName); err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		p.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}
	if req.Instagram != nil {
		p.Instagram = profile.SanitizeInstagram(*req.Instagram)
	}
	if req.TikTok != nil {
		p.TikTok = profile.SanitizeTikTok(*req.TikTok)
	}
	if req.AgeGroup != nil {
		ag, err := profile.AgeGroupFromString(*req.AgeGroup)
		if err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		p.AgeGroup = ag
	}

	if err := h.profileRepo.Update(p); err != nil {
		h.log.Error("Failed to update profile", "user_id", userID, "error", err)
		response.InternalServerError(c, "Failed to update profile")
		return
	}

	h.log.Info("Profile updated", "user_id", userID)
	h.resolveAvatarURL(p)
	response.SuccessResponse(c, http.StatusOK, "Profile updated successfully", p)
}
