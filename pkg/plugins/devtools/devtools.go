// Package devtools provides a router plugin that streams plugin-lifecycle
// and navigation events to connected devtools clients over WebSocket, plus a
// small HTTP surface for snapshots.
package devtools

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// MessageType identifies a devtools message.
type MessageType string

const (
	TypeLifecycle  MessageType = "lifecycle"
	TypeNavigation MessageType = "navigation"
)

// Message is sent to devtools clients as JSON.
type Message struct {
	Type  MessageType `json:"type"`
	Event string      `json:"event,omitempty"`
	Route string      `json:"route,omitempty"`
	Path  string      `json:"path,omitempty"`
	Count int         `json:"count,omitempty"`
	Time  time.Time   `json:"time"`
}

// snapshot is the JSON body of the snapshot endpoint.
type snapshot struct {
	Attached   bool   `json:"attached"`
	Installed  int    `json:"installed"`
	Pending    int    `json:"pending"`
	Uninstalls int    `json:"uninstalls"`
	Path       string `json:"path,omitempty"`
}

// Bridge manages devtools WebSocket connections and exposes the plugin that
// feeds them.
type Bridge struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	router  *router.Router
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a devtools bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // devtools is a dev-only surface
			},
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Plugin returns the router plugin that feeds this bridge.
// It forwards lifecycle events and committed navigations to all connected
// clients and disconnects them when the application unmounts.
func (b *Bridge) Plugin() plugin.Plugin {
	return plugin.Func(func(ctx *plugin.Context) {
		b.mu.Lock()
		b.router = ctx.Router
		b.mu.Unlock()

		removeObserver := plugin.Observe(ctx.Router, func(ev plugin.Event) {
			b.broadcast(Message{
				Type:  TypeLifecycle,
				Event: string(ev.Type),
				Count: ev.Count,
				Time:  time.Now(),
			})
		})

		removeHook := ctx.Router.AfterEach(func(to, from *router.Route) {
			b.broadcast(Message{
				Type:  TypeNavigation,
				Route: to.Name,
				Path:  to.Path,
				Time:  time.Now(),
			})
		})

		ctx.OnUninstall(func() {
			removeObserver()
			removeHook()
			b.Close()
		})
	})
}

// Handler returns the HTTP surface: GET /ws upgrades to the event stream,
// GET /snapshot returns the current lifecycle state as JSON.
func (b *Bridge) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", b.handleWebSocket)
	r.Get("/snapshot", b.handleSnapshot)
	return r
}

// handleWebSocket upgrades the connection and keeps it until the client
// disconnects.
func (b *Bridge) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := b.upgrader.Upgrade(w, req, nil)
	if err != nil {
		b.logger.Debug("devtools upgrade failed", "error", err)
		return
	}

	b.mu.Lock()
	b.clients[conn] = true
	b.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
	conn.Close()
}

// handleSnapshot reports the router's lifecycle state.
func (b *Bridge) handleSnapshot(w http.ResponseWriter, req *http.Request) {
	b.mu.RLock()
	r := b.router
	b.mu.RUnlock()

	if r == nil {
		http.Error(w, "devtools plugin not installed", http.StatusServiceUnavailable)
		return
	}

	snap := snapshot{
		Attached:   plugin.Attached(r),
		Installed:  plugin.InstalledCount(r),
		Pending:    plugin.PendingCount(r),
		Uninstalls: plugin.UninstallCount(r),
	}
	if route := r.CurrentRoute(); route != nil {
		snap.Path = route.Path
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// broadcast sends msg to all connected clients, dropping clients whose
// writes fail.
func (b *Bridge) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	b.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(b.clients))
	for client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			b.mu.Lock()
			delete(b.clients, client)
			b.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Bridge) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects all clients.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for client := range b.clients {
		client.Close()
		delete(b.clients, client)
	}
}
