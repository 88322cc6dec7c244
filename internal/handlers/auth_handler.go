package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/conexa-api/internal/auth"
	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
	"github.com/gravadigital/conexa-api/internal/validation"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	profileRepo postgres.ProfileRepository
	tokens      *auth.TokenService
	log         *log.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(profileRepo postgres.ProfileRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		profileRepo: profileRepo,
		tokens:      tokens,
		log:         logger.Handler("auth"),
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	AgeGroup string `json:"age_group"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	if err := validation.Profile.ValidateFullName(req.FullName); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	p := profile.NewProfile(strings.ToLower(strings.TrimSpace(req.Email)), hash, req.FullName)
	if req.AgeGroup != "" {
		ag, err := profile.AgeGroupFromString(req.AgeGroup)
		if err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		p.AgeGroup = ag
	}

	if err := p.Validate(); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.profileRepo.Create(p); err != nil {
		if err == postgres.ErrEmailTaken {
			response.ConflictError(c, "Email already registered")
			return
		}
		h.log.Error("Failed to create profile", "email", p.Email, "error", err)
		response.InternalServerError(c, "Failed to create account")
		return
	}

	token, err := h.tokens.Generate(p.ID)
	if err != nil {
		h.log.Error("Failed to issue token", "user_id", p.ID, "error", err)
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	h.log.Info("Account created", "user_id", p.ID)
	response.SuccessResponse(c, http.StatusCreated, "Account created", gin.H{
		"token":   token,
		"profile": p,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.profileRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		response.UnauthorizedError(c, "Invalid email or password")
		return
	}

	if !auth.CheckPassword(p.PasswordHash, req.Password) {
		response.UnauthorizedError(c, "Invalid email or password")
		return
	}

	token, err := h.tokens.Generate(p.ID)
	if err != nil {
		h.log.Error("Failed to issue token", "user_id", p.ID, "error", err)
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"token":   token,
		"profile": p,
	})
}
