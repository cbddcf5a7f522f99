package handler

import (
	"context"
	"net/http"

	"complaint-portal/internal/authz"

	"github.com/gin-gonic/gin"
)

type OutboxStats interface {
	Stats(ctx context.Context) (map[string]int, error)
}

type OutboxHandler struct {
	outbox OutboxStats
}

func NewOutboxHandler(outbox OutboxStats) *OutboxHandler {
	return &OutboxHandler{outbox: outbox}
}

// Stats handles GET /api/admin/outbox/stats: outbox rows per status, so an
// admin can spot events stuck as failed.
func (h *OutboxHandler) Stats(c *gin.Context) {
	id, _ := CurrentIdentity(c)
	if d := authz.Decide(id, authz.InspectOutbox, authz.Resource{}); !d.Allowed {
		respondError(c, d.Err(), "Not authorized")
		return
	}

	stats, err := h.outbox.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch outbox stats")
		return
	}
	for _, status := range []string{"pending", "published", "failed"} {
		if _, ok := stats[status]; !ok {
			stats[status] = 0
		}
	}
	c.JSON(http.StatusOK, gin.H{"outbox": stats})
}
