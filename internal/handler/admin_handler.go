package handler

import (
	"net/http"

	"complaint-portal/internal/model"
	"complaint-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.adminService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) AddCategory(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.adminService.AddCategory(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) AddOfficial(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.AddOfficialRequest
	if !bindJSON(c, &req) {
		return
	}

	official, err := h.adminService.AddOfficial(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to add official")
		return
	}
	c.JSON(http.StatusCreated, official)
}

func (h *AdminHandler) ListOfficials(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	officials, err := h.adminService.ListOfficials(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch officials")
		return
	}
	c.JSON(http.StatusOK, officials)
}

// Roles handles GET /api/me/roles.
func (h *AdminHandler) Roles(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	resp := gin.H{
		"is_admin":    id.IsAdmin,
		"is_official": id.IsOfficial(),
		"category":    nil,
	}
	if id.IsOfficial() {
		resp["category"] = id.Official
	}
	c.JSON(http.StatusOK, resp)
}
