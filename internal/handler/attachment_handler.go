package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"complaint-portal/internal/attachment"

	"github.com/gin-gonic/gin"
)

// AttachmentHandler serves the upload handshake for both backends.
type AttachmentHandler struct {
	attachments *attachment.Service
}

func NewAttachmentHandler(attachments *attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// UploadURL handles POST /api/attachments/upload-url.
func (h *AttachmentHandler) UploadURL(c *gin.Context) {
	id, _ := CurrentIdentity(c)

	url, err := h.attachments.UploadURL(c.Request.Context(), id.ID)
	if err != nil {
		respondError(c, err, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_url": url})
}

// Upload handles POST /uploads/:token. The body is the raw file; its name
// comes from X-File-Name.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	name := filepath.Base(c.GetHeader("X-File-Name"))
	if name == "." || name == "/" {
		name = ""
	}

	blob, err := h.attachments.Accept(c.Request.Context(), c.Param("token"), name, c.ContentType(), c.Request.Body)
	if err != nil {
		respondError(c, err, "Failed to store upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"storage_id": blob.ID, "name": blob.Name})
}

// Download handles GET /attachments/:id.
func (h *AttachmentHandler) Download(c *gin.Context) {
	blob, f, err := h.attachments.Open(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to open attachment")
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, blob.Size, blob.ContentType, f, map[string]string{
		"Content-Disposition": "inline; filename=" + strconv.Quote(blob.Name),
	})
}
