package handler

import (
	"net/http"

	"complaint-portal/internal/model"
	"complaint-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.CreateComplaintRequest
	if !bindJSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.Create(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to create complaint")
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) List(c *gin.Context) {
	complaints, err := h.complaintService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch complaints")
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	complaint, err := h.complaintService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch complaint")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) ListByCategory(c *gin.Context) {
	complaints, err := h.complaintService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err, "Failed to fetch complaints by category")
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) Update(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.UpdateComplaintRequest
	if !bindJSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.Update(c.Request.Context(), id, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update complaint")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) Delete(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	if err := h.complaintService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete complaint")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.UpdateStatus(c.Request.Context(), id, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update complaint status")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) AddResponse(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	var req model.CreateResponseRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.complaintService.AddResponse(c.Request.Context(), id, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to add response")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListForOfficial handles GET /api/official/complaints.
func (h *ComplaintHandler) ListForOfficial(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	complaints, err := h.complaintService.ListForOfficial(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch category complaints")
		return
	}
	c.JSON(http.StatusOK, complaints)
}
