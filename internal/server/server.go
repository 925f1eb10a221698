// Package server exposes the comparator to a browser: static UI over
// HTTP, control messages in over websocket, rendered frame triplets
// out as CBOR binary messages.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"framediff-go/internal/config"
	"framediff-go/internal/session"
)

//go:embed web/*
var webFS embed.FS

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = (pongWait * 9) / 10
)

// Command is one parsed control message from a websocket client.
type Command struct {
	Op    string  `json:"op"`
	Index int     `json:"index"`
	Dir   int     `json:"dir"`
	DX    int     `json:"dx"`
	DY    int     `json:"dy"`
	Value float64 `json:"value"`
	On    bool    `json:"on"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     int     `json:"w"`
	H     int     `json:"h"`
}

type Server struct {
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*sync.Mutex
	mu       sync.Mutex
	cfg      config.AppConfig
	sess     *session.Session
	notify   func()
}

// Run serves until ctx is done. Each payload received on frames is
// broadcast to every connected client as one binary message; notify is
// called after any state-changing command so the owner can schedule a
// fresh render.
func Run(ctx context.Context, cfg config.AppConfig, sess *session.Session, frames <-chan []byte, notify func()) error {
	srv := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		cfg:     cfg,
		sess:    sess,
		notify:  notify,
	}

	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/config", srv.handleConfig)
	mux.HandleFunc("/status", srv.handleStatus)

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	go srv.broadcast(ctx, frames)

	return httpServer.ListenAndServe()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s.mu.Lock()
	writeMu := &sync.Mutex{}
	s.clients[conn] = writeMu
	s.mu.Unlock()

	_ = s.writeJSON(conn, writeMu, s.configPayload())
	if s.notify != nil {
		s.notify()
	}

	go func() {
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(pingEvery)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := s.writeMessage(conn, writeMu, websocket.PingMessage, nil); err != nil {
						_ = conn.Close()
						return
					}
				}
			}
		}()
		defer close(done)
		defer s.removeClient(conn)
		for {
			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			var cmd Command
			if err := json.Unmarshal(payload, &cmd); err != nil {
				continue
			}
			if cmd.Op == "probe" {
				result, hit := s.sess.Probe(cmd.X, cmd.Y, cmd.W, cmd.H)
				_ = s.writeJSON(conn, writeMu, map[string]any{
					"type":   "probe",
					"hit":    hit,
					"result": result,
				})
				continue
			}
			if s.apply(cmd) && s.notify != nil {
				s.notify()
			}
		}
	}()
}

// apply dispatches a control command to the session. Returns false for
// unknown operations.
func (s *Server) apply(cmd Command) bool {
	switch cmd.Op {
	case "seek":
		s.sess.Seek(cmd.Index)
	case "play":
		s.sess.SetPlaying(true)
	case "pause":
		s.sess.SetPlaying(false)
	case "speed":
		s.sess.SetSpeed(cmd.Value)
	case "loop":
		s.sess.SetLoop(cmd.On)
	case "zoom":
		s.sess.StepZoom(cmd.Dir)
	case "pan":
		s.sess.Pan(cmd.DX, cmd.DY)
	case "rotate":
		if cmd.Dir < 0 {
			s.sess.RotateLeft()
		} else {
			s.sess.RotateRight()
		}
	case "reset_rotation":
		s.sess.ResetRotation()
	case "fit":
		s.sess.FitToScreen()
	case "swap":
		s.sess.Swap()
	case "diff":
		s.sess.SetDiffVisible(cmd.On)
	case "resize":
		s.sess.Resize(cmd.W, cmd.H)
	default:
		return false
	}
	return true
}

func (s *Server) configPayload() map[string]any {
	return map[string]any{
		"type":        "config",
		"view_width":  s.cfg.ViewWidth,
		"view_height": s.cfg.ViewHeight,
		"ref_path":    s.cfg.RefPath,
		"comp_path":   s.cfg.CompPath,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	payload := s.configPayload()
	payload["port"] = s.cfg.Port
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	payload := s.sess.Status()
	payload["ws_clients"] = s.clientCount()
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) broadcast(ctx context.Context, frames <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-frames:
			if !ok {
				return
			}
			var stale []*websocket.Conn
			s.mu.Lock()
			for conn, writeMu := range s.clients {
				if err := s.writeMessage(conn, writeMu, websocket.BinaryMessage, payload); err != nil {
					stale = append(stale, conn)
				}
			}
			s.mu.Unlock()
			for _, conn := range stale {
				s.removeClient(conn)
			}
		}
	}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) writeJSON(conn *websocket.Conn, writeMu *sync.Mutex, payload any) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(payload)
}

func (s *Server) writeMessage(conn *websocket.Conn, writeMu *sync.Mutex, messageType int, payload []byte) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(messageType, payload)
}
