package reactive

import (
	"complaint-portal/internal/attachment"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/handler"

	"github.com/gin-gonic/gin"
)

// Deps wires the reactive API. Attachments may be nil, in which case the
// upload routes are not mounted.
type Deps struct {
	Procedures  Registry
	Tokens      handler.TokenValidator
	Roles       authz.RoleResolver
	Changes     ChangePublisher
	Live        *LiveServer
	Attachments *attachment.Service
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(handler.CORS(d.CORSOrigins))

	optionalAuth := handler.OptionalAuth(d.Tokens, d.Roles)
	rpc := NewRPCHandler(d.Procedures, d.Changes)

	r.GET("/health", handler.Health)
	r.GET("/rpc", rpc.List)
	r.POST("/rpc/:name", optionalAuth, rpc.Call)
	r.GET("/ws", handler.QueryToken(), optionalAuth, d.Live.Serve)

	if d.Attachments != nil {
		handler.MountAttachments(r, r, handler.NewAttachmentHandler(d.Attachments), handler.RequireAuth(d.Tokens, d.Roles))
	}

	return r
}
