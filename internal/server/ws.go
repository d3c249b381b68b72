package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/buisihung11/langchain-basic/internal/chat"
	"github.com/buisihung11/langchain-basic/internal/llm"
	vlog "github.com/buisihung11/langchain-basic/internal/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin browser UI plus local tooling.
		return true
	},
}

type wsInbound struct {
	Type    string `json:"type"` // "message" | "reset"
	Content string `json:"content,omitempty"`
}

type wsOutbound struct {
	Type    string `json:"type"` // "delta" | "done" | "error"
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleChatWS serves one streaming chat conversation per connection.
// The session lives and dies with the connection; closing the browser
// tab cancels the in-flight completion through the request context.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		vlog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	session := chat.NewSession(s.client, llm.Params{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
	}, s.cfg.SystemMessage)

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				vlog.Debug("websocket read", "err", err)
			}
			return
		}

		switch in.Type {
		case "reset":
			session.Reset()
		case "message":
			full, err := session.SendStream(r.Context(), in.Content, func(delta string) error {
				return conn.WriteJSON(wsOutbound{Type: "delta", Content: delta})
			})
			if err != nil {
				msg := err.Error()
				var lerr *llm.Error
				if errors.As(err, &lerr) {
					msg = lerr.Hint()
				}
				if werr := conn.WriteJSON(wsOutbound{Type: "error", Message: msg}); werr != nil {
					return
				}
				continue
			}
			if err := conn.WriteJSON(wsOutbound{Type: "done", Content: full}); err != nil {
				return
			}
		default:
			if err := conn.WriteJSON(wsOutbound{Type: "error", Message: "unknown message type"}); err != nil {
				return
			}
		}
	}
}
