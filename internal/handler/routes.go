package handler

import (
	"net/http"

	"complaint-portal/internal/attachment"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/messaging"
	"complaint-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// APIDeps wires the relational REST API. Attachments and Outbox may be nil,
// in which case their routes are not mounted.
type APIDeps struct {
	Tokens      TokenValidator
	Roles       authz.RoleResolver
	Citizens    *service.CitizenService
	Complaints  *service.ComplaintService
	Admin       *service.AdminService
	Attachments *attachment.Service
	Outbox      OutboxStats
	CORSOrigins []string
}

func NewAPIRouter(d APIDeps) *gin.Engine {
	r := gin.Default()
	r.Use(CORS(d.CORSOrigins))

	citizenHandler := NewCitizenHandler(d.Citizens)
	complaintHandler := NewComplaintHandler(d.Complaints)
	adminHandler := NewAdminHandler(d.Admin)
	requireAuth := RequireAuth(d.Tokens, d.Roles)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Citizen Complaint Management API"})
	})
	r.GET("/health", Health)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", citizenHandler.Register)
		authRoutes.POST("/login", citizenHandler.Login)
	}

	api.GET("/citizen/profile", requireAuth, citizenHandler.Profile)
	api.GET("/me/roles", requireAuth, adminHandler.Roles)
	api.GET("/categories", adminHandler.ListCategories)

	complaints := api.Group("/complaints")
	{
		complaints.GET("", complaintHandler.List)
		complaints.GET("/:id", complaintHandler.Get)
		complaints.GET("/category/:category", complaintHandler.ListByCategory)

		complaints.POST("", requireAuth, complaintHandler.Create)
		complaints.PUT("/:id", requireAuth, complaintHandler.Update)
		complaints.DELETE("/:id", requireAuth, complaintHandler.Delete)
		complaints.PATCH("/:id/status", requireAuth, complaintHandler.UpdateStatus)
		complaints.POST("/:id/responses", requireAuth, complaintHandler.AddResponse)
	}

	api.GET("/official/complaints", requireAuth, complaintHandler.ListForOfficial)

	admin := api.Group("/admin", requireAuth)
	{
		admin.POST("/categories", adminHandler.AddCategory)
		admin.POST("/officials", adminHandler.AddOfficial)
		admin.GET("/officials", adminHandler.ListOfficials)
		if d.Outbox != nil {
			admin.GET("/outbox/stats", NewOutboxHandler(d.Outbox).Stats)
		}
	}

	if d.Attachments != nil {
		MountAttachments(r, api, NewAttachmentHandler(d.Attachments), requireAuth)
	}

	return r
}

// MountAttachments adds the upload handshake. uploadURL is where the
// authenticated upload-url endpoint goes; the upload and download routes sit
// on the root router.
func MountAttachments(root gin.IRouter, uploadURL gin.IRouter, h *AttachmentHandler, requireAuth gin.HandlerFunc) {
	uploadURL.POST("/attachments/upload-url", requireAuth, h.UploadURL)
	root.POST("/uploads/:token", h.Upload)
	root.GET("/attachments/:id", h.Download)
}

type NotificationDeps struct {
	Tokens        TokenValidator
	Roles         authz.RoleResolver
	Notifications *service.NotificationService
	Hub           *messaging.SSEHub
	CORSOrigins   []string
}

func NewNotificationRouter(d NotificationDeps) *gin.Engine {
	r := gin.Default()
	r.Use(CORS(d.CORSOrigins))

	h := NewNotificationHandler(d.Notifications, d.Hub)
	requireAuth := RequireAuth(d.Tokens, d.Roles)

	r.GET("/health", Health)

	notifications := r.Group("/notifications")
	{
		notifications.GET("", requireAuth, h.List)
		notifications.GET("/stream", QueryToken(), requireAuth, h.Stream)
		notifications.PATCH("/:id/read", requireAuth, h.MarkAsRead)
		notifications.PATCH("/read-all", requireAuth, h.MarkAllAsRead)
	}

	return r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
