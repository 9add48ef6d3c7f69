package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
	"github.com/shodojo/tegaki/log"
	"github.com/shodojo/tegaki/session"
	"github.com/shodojo/tegaki/version"
)

type ApiServer struct {
	provider glyph.Provider
	manager  *session.Manager
	cfg      *Config
	upgrader websocket.Upgrader
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewApiServer(cfg *Config) (*ApiServer, error) {
	provider, err := cfg.buildProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to build glyph provider: %w", err)
	}

	return &ApiServer{
		provider: provider,
		manager:  session.NewManager(),
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}, nil
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

// glyphStatus maps provider failures to HTTP statuses. A character the
// library doesn't know and an upstream outage are different failures.
func glyphStatus(err error) int {
	switch {
	case errors.Is(err, glyph.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, glyph.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/glyphs
func (s *ApiServer) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lister, ok := s.provider.(interface{ List() ([]string, error) })
	if !ok {
		s.writeError(w, http.StatusNotImplemented, fmt.Errorf("glyph provider cannot enumerate characters"))
		return
	}

	chars, err := lister.List()
	if err != nil {
		s.writeError(w, glyphStatus(err), err)
		return
	}

	s.writeSuccess(w, chars)
}

// GET /api/glyph?char=<character>
func (s *ApiServer) handleGlyph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	char := r.URL.Query().Get("char")
	if char == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("char parameter is required"))
		return
	}

	g, err := s.provider.Glyph(char)
	if err != nil {
		s.writeError(w, glyphStatus(err), err)
		return
	}

	s.writeSuccess(w, g)
}

// POST /api/grade
func (s *ApiServer) handleGrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Character string            `json:"character"`
		Strokes   []geometry.Stroke `json:"strokes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Character == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("character is required"))
		return
	}

	g, err := s.provider.Glyph(req.Character)
	if err != nil {
		s.writeError(w, glyphStatus(err), err)
		return
	}

	res, err := grader.Grade(req.Strokes, g, s.cfg.gradePolicy())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeSuccess(w, res)
}

// POST /api/session
func (s *ApiServer) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Character string `json:"character"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Character == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("character is required"))
		return
	}

	g, err := s.provider.Glyph(req.Character)
	if err != nil {
		s.writeError(w, glyphStatus(err), err)
		return
	}

	id, sess := s.manager.Create(g, s.cfg.snapPolicy())

	token, err := s.issueToken(id)
	if err != nil {
		s.manager.Remove(id)
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to issue token: %v", err))
		return
	}

	s.writeSuccess(w, map[string]interface{}{
		"sessionId": id,
		"token":     token,
		"state":     sess.State(),
	})
}

// POST /api/session/stroke
func (s *ApiServer) handleSessionStroke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Points geometry.Stroke `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	dec, err := sess.Submit(req.Points)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeSuccess(w, map[string]interface{}{
		"decision":    dec,
		"state":       sess.State(),
		"clearStroke": !dec.Accepted && sess.Policy().ClearRejected,
	})
}

// POST /api/session/reset
func (s *ApiServer) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	sess.Reset()
	s.writeSuccess(w, map[string]interface{}{"state": sess.State()})
}

// DELETE /api/session
func (s *ApiServer) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	s.manager.Remove(id)
	s.writeSuccess(w, map[string]string{"message": "session removed"})
}

// GET /api/version
func (s *ApiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, map[string]string{"version": version.Version})
}

func (s *ApiServer) issueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// sessionFromRequest authenticates the bearer token and resolves the
// session it is bound to.
func (s *ApiServer) sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		s.writeError(w, http.StatusUnauthorized, fmt.Errorf("missing bearer token"))
		return "", nil, false
	}

	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		s.writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid token"))
		return "", nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid token claims"))
		return "", nil, false
	}
	id, _ := claims["sid"].(string)

	sess, ok := s.manager.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("session doesn't exist"))
		return "", nil, false
	}

	return id, sess, true
}

// wsRequest and wsResponse are the live practice protocol. The client
// streams completed strokes, the server answers each with the decision
// and a state snapshot. One session per connection.
type wsRequest struct {
	Action    string          `json:"action"` // stroke | reset | glyph
	Points    geometry.Stroke `json:"points,omitempty"`
	Character string          `json:"character,omitempty"`
}

type wsResponse struct {
	Decision    *session.Decision `json:"decision,omitempty"`
	State       session.State     `json:"state"`
	ClearStroke bool              `json:"clearStroke,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// GET /ws/practice?char=<character>
func (s *ApiServer) handlePractice(w http.ResponseWriter, r *http.Request) {
	char := r.URL.Query().Get("char")
	if char == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("char parameter is required"))
		return
	}

	g, err := s.provider.Glyph(char)
	if err != nil {
		s.writeError(w, glyphStatus(err), err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Trace.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess := session.New(g, s.cfg.snapPolicy())

	if err := conn.WriteJSON(wsResponse{State: sess.State()}); err != nil {
		return
	}

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			log.Trace.Printf("websocket closed: %v", err)
			return
		}

		res := wsResponse{}
		switch req.Action {
		case "stroke":
			dec, err := sess.Submit(req.Points)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Decision = &dec
				res.ClearStroke = !dec.Accepted && sess.Policy().ClearRejected
			}
		case "reset":
			sess.Reset()
		case "glyph":
			ng, err := s.provider.Glyph(req.Character)
			if err != nil {
				res.Error = err.Error()
			} else {
				sess.SetGlyph(ng)
			}
		default:
			res.Error = fmt.Sprintf("unknown action %q", req.Action)
		}
		res.State = sess.State()

		if err := conn.WriteJSON(res); err != nil {
			return
		}
	}
}

func (s *ApiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/glyphs", s.handleGlyphs)
	mux.HandleFunc("/api/glyph", s.handleGlyph)
	mux.HandleFunc("/api/grade", s.handleGrade)
	mux.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleSessionCreate(w, r)
		case http.MethodDelete:
			s.handleSessionDelete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/session/stroke", s.handleSessionStroke)
	mux.HandleFunc("/api/session/reset", s.handleSessionReset)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/ws/practice", s.handlePractice)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

func runServerMode(cfg *Config) {
	server, err := NewApiServer(cfg)
	if err != nil {
		log.Error.Fatalf("Failed to initialize API server: %v", err)
	}

	log.Info.Printf("Starting HTTP server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, server.routes()); err != nil {
		log.Error.Fatalf("Server failed: %v", err)
	}
}
