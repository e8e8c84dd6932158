// Package server is the HTTP side of the web surface: the WebSocket
// endpoint, the skin catalog and the embedded frontend.
package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soar/skinview/internal/hub"
	"github.com/soar/skinview/internal/skin"
)

type Options struct {
	Addr     string
	Frontend fs.FS
	Skins    skin.Results
	Active   string // Key of the skin being shown
	Assets   *Assets
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // capture software loads the page from anywhere
	},
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	opts        Options
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, opts Options) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		opts:        opts,
	}
}

// Handler builds the request router.
func (s *Server) Handler() (http.Handler, error) {
	static, err := loadStatic(s.opts.Frontend)
	if err != nil {
		return nil, err
	}
	cat := newCatalog(s.opts.Skins, s.opts.Active)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /api/skins", cat.handleSkins)
	mux.HandleFunc("GET /api/skins/{id}/preview.webp", cat.handlePreview)
	mux.Handle("GET /assets/{id}", s.opts.Assets)
	mux.Handle("/", static)
	return mux, nil
}

// handleWebSocket attaches a viewer page to the shared web session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := hub.NewClient(s.hub, conn)
	s.hub.Register(client)
	s.broadcaster.Join(client)

	go client.WritePump()
	go client.ReadPump(s.broadcaster)
}

func (s *Server) ListenAndServe() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.opts.Addr,
		Handler: handler,
	}

	log.Printf("HTTP server listening on %s", s.opts.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
