package reactive

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxFrameSize = 64 << 10
	sendBuffer   = 64
	queryTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS middleware on the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type clientFrame struct {
	Op    string          `json:"op"`
	ID    string          `json:"id"`
	Query string          `json:"query"`
	Args  json.RawMessage `json:"args"`
}

type serverFrame map[string]interface{}

func valueFrame(id string, v interface{}) serverFrame {
	return serverFrame{"id": id, "value": v}
}

func errorFrame(id, msg string) serverFrame {
	return serverFrame{"id": id, "error": msg}
}

type subscription struct {
	query string
	args  json.RawMessage
}

// LiveServer keeps the open websocket connections and re-runs their
// subscriptions when data changes.
type LiveServer struct {
	procs Registry
	roles authz.RoleResolver

	mu    sync.Mutex
	conns map[*liveConn]struct{}
}

func NewLiveServer(procs Registry, roles authz.RoleResolver) *LiveServer {
	return &LiveServer{
		procs: procs,
		roles: roles,
		conns: make(map[*liveConn]struct{}),
	}
}

// Run marks every connection stale for each change message until ctx ends
// or the channel closes.
func (s *LiveServer) Run(ctx context.Context, changes <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			s.Invalidate()
		}
	}
}

func (s *LiveServer) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.markDirty()
	}
}

func (s *LiveServer) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// CloseAll drops every connection, used on shutdown.
func (s *LiveServer) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.close()
	}
}

// Serve handles GET /ws. The caller's token was already checked by the
// optional auth middleware; anonymous connections are allowed and see what
// anonymous queries return.
func (s *LiveServer) Serve(c *gin.Context) {
	var base *authz.Identity
	if id, ok := handler.CurrentIdentity(c); ok {
		base = id
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("live: upgrade: %v", err)
		return
	}

	conn := &liveConn{
		server: s,
		ws:     ws,
		base:   base,
		send:   make(chan serverFrame, sendBuffer),
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		subs:   make(map[string]subscription),
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	go conn.writePump()
	go conn.refreshLoop()
	conn.readPump()
}

// identity re-reads the caller's roles so an appointment made after the
// connection opened shows up on the next refresh.
func (s *LiveServer) identity(ctx context.Context, base *authz.Identity) *authz.Identity {
	if base == nil || s.roles == nil {
		return base
	}
	facts, err := s.roles.ResolveRoles(ctx, base.ID)
	if err != nil {
		log.Printf("live: resolve roles for %s: %v", base.ID, err)
		return base
	}
	id := *base
	id.RoleFacts = facts
	return &id
}

func (s *LiveServer) run(ctx context.Context, id *authz.Identity, subID string, sub subscription) serverFrame {
	proc, ok := s.procs[sub.query]
	if !ok || proc.Kind != Query {
		return errorFrame(subID, "Unknown query")
	}
	value, err := proc.Handler(ctx, id, sub.args)
	if err != nil {
		_, msg, ok := apperr.Public(err)
		if !ok {
			log.Printf("live: %s: %v", sub.query, err)
			msg = "Internal server error"
		}
		return errorFrame(subID, msg)
	}
	return valueFrame(subID, value)
}

type liveConn struct {
	server *LiveServer
	ws     *websocket.Conn
	base   *authz.Identity

	send  chan serverFrame
	dirty chan struct{}
	done  chan struct{}
	once  sync.Once

	mu   sync.Mutex
	subs map[string]subscription
}

func (c *liveConn) markDirty() {
	select {
	case c.dirty <- struct{}{}:
	default:
	}
}

func (c *liveConn) close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

func (c *liveConn) push(f serverFrame) {
	select {
	case c.send <- f:
	case <-c.done:
	}
}

func (c *liveConn) readPump() {
	defer c.close()

	c.ws.SetReadLimit(maxFrameSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: read: %v", err)
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.push(errorFrame("", "Invalid message"))
			continue
		}
		c.handle(f)
	}
}

func (c *liveConn) handle(f clientFrame) {
	switch f.Op {
	case "subscribe":
		if f.ID == "" {
			c.push(errorFrame("", "Subscription id is required"))
			return
		}
		if proc, ok := c.server.procs[f.Query]; !ok || proc.Kind != Query {
			c.push(errorFrame(f.ID, "Unknown query"))
			return
		}

		sub := subscription{query: f.Query, args: f.Args}
		c.mu.Lock()
		c.subs[f.ID] = sub
		c.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		c.push(c.server.run(ctx, c.server.identity(ctx, c.base), f.ID, sub))

	case "unsubscribe":
		c.mu.Lock()
		delete(c.subs, f.ID)
		c.mu.Unlock()

	default:
		c.push(errorFrame(f.ID, "Unknown op"))
	}
}

// refreshLoop re-runs every subscription once per batch of changes.
func (c *liveConn) refreshLoop() {
	for {
		select {
		case <-c.done:
			return
		case <-c.dirty:
		}

		c.mu.Lock()
		snapshot := make(map[string]subscription, len(c.subs))
		for id, sub := range c.subs {
			snapshot[id] = sub
		}
		c.mu.Unlock()
		if len(snapshot) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		id := c.server.identity(ctx, c.base)
		for subID, sub := range snapshot {
			c.push(c.server.run(ctx, id, subID, sub))
		}
		cancel()
	}
}

func (c *liveConn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case f := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
