package webui

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsRequest is one incoming websocket frame.
type wsRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// wsResponse is one outgoing websocket frame.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Intent    string `json:"intent,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// One connection is one session unless the client supplies its own id.
	session := uuid.NewString()
	log := s.log.With().Str("session", session).Logger()
	log.Debug().Msg("websocket connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.send(conn, wsResponse{Type: "error", SessionID: session, Content: "invalid message format"})
			continue
		}
		if req.SessionID != "" {
			session = req.SessionID
		}
		if strings.TrimSpace(req.Content) == "" {
			s.send(conn, wsResponse{Type: "error", SessionID: session, Content: "content is required"})
			continue
		}

		reply, intent := s.responder.Chat(r.Context(), req.Content)
		if err := s.send(conn, wsResponse{
			Type:      "response",
			SessionID: session,
			Content:   reply,
			Intent:    intent.String(),
		}); err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (s *Server) send(conn *websocket.Conn, resp wsResponse) error {
	return conn.WriteJSON(resp)
}
