package reactive

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/handler"

	"github.com/gin-gonic/gin"
)

const maxArgsBytes = 1 << 20

type RPCHandler struct {
	procs   Registry
	changes ChangePublisher
}

func NewRPCHandler(procs Registry, changes ChangePublisher) *RPCHandler {
	return &RPCHandler{procs: procs, changes: changes}
}

// Call runs the procedure named in the path. The body is the argument
// object; the answer is {"value": ...} or {"error": msg}.
func (h *RPCHandler) Call(c *gin.Context) {
	name := c.Param("name")
	proc, ok := h.procs[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown procedure"})
		return
	}

	args, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgsBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var id *authz.Identity
	if ident, ok := handler.CurrentIdentity(c); ok {
		id = ident
	}

	ctx := c.Request.Context()
	value, err := proc.Handler(ctx, id, json.RawMessage(args))
	if err != nil {
		status, msg, ok := apperr.Public(err)
		if !ok {
			log.Printf("rpc %s: %v", name, err)
			msg = "Internal server error"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if proc.Kind == Mutation && h.changes != nil {
		if err := h.changes.Publish(ctx, name); err != nil {
			log.Printf("rpc %s: publish change: %v", name, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"value": value})
}

// List names the available procedures.
func (h *RPCHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"procedures": h.procs.Names()})
}
