package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gricha/site/game"
	"github.com/gricha/site/resolver"
)

const (
	// SessionCookie holds the game session between page loads.
	SessionCookie = "mcp_session_id"
	// HeaderRequestID correlates a game response with its log line.
	HeaderRequestID = "X-Request-Id"

	sessionCookieAge = 7 * 24 * time.Hour
	maxRequestBytes  = 1 << 20
)

type commandRequest struct {
	Command   string           `json:"command"`
	SessionID string           `json:"sessionId,omitempty"`
	History   []resolver.Entry `json:"history,omitempty"`
}

type commandResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

func (s *Server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	s.setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	var req commandRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "command is required"})
		return
	}
	if s.game == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: game.FriendlyError})
		return
	}
	if req.SessionID == "" {
		req.SessionID = sessionFromCookie(r)
	}

	result := s.game.Handle(r.Context(), game.Request{
		Command:   strings.TrimSpace(req.Command),
		SessionID: req.SessionID,
		History:   req.History,
	})
	s.writeResult(w, r, result)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	var req struct {
		SessionID string `json:"sessionId,omitempty"`
	}
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if s.game == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: game.FriendlyError})
		return
	}
	if req.SessionID == "" {
		req.SessionID = sessionFromCookie(r)
	}
	s.writeResult(w, r, s.game.Resume(r.Context(), req.SessionID))
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result game.Result) {
	s.metrics.observe(result)
	id := requestID(r)
	w.Header().Set(HeaderRequestID, id)
	s.logger.V(1).Info("game command", "request", id, "outcome", result.Outcome, "attempts", result.Attempts)
	if result.Outcome == game.OutcomeFailed && result.SessionID == "" {
		writeJSON(w, http.StatusBadGateway, errorBody{Error: result.Response})
		return
	}
	if result.SessionID != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    url.QueryEscape(result.SessionID),
			Path:     "/",
			MaxAge:   int(sessionCookieAge / time.Second),
			SameSite: http.SameSiteLaxMode,
		})
	}
	writeJSON(w, http.StatusOK, commandResponse{Response: result.Response, SessionID: result.SessionID})
}

func (s *Server) setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", s.allowOrigin)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	return decoder.Decode(target)
}

// requestID keeps a caller supplied id, otherwise it mints one.
func requestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderRequestID)); id != "" {
		return id
	}
	return uuid.NewString()
}

func sessionFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return cookie.Value
	}
	return value
}
