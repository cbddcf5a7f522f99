package handler

import (
	"net/http"

	"complaint-portal/internal/model"
	"complaint-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type CitizenHandler struct {
	citizenService *service.CitizenService
}

func NewCitizenHandler(citizenService *service.CitizenService) *CitizenHandler {
	return &CitizenHandler{citizenService: citizenService}
}

// Register handles POST /api/auth/register.
func (h *CitizenHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	citizen, err := h.citizenService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to register citizen")
		return
	}

	c.JSON(http.StatusCreated, citizen)
}

// Login handles POST /api/auth/login.
func (h *CitizenHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.citizenService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CitizenHandler) Profile(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	profile, err := h.citizenService.Profile(c.Request.Context(), id.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
