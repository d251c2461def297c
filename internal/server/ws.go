package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// wsOutbound mirrors Event with an explicit type tag for websocket clients.
type wsOutbound struct {
	Type    string  `json:"type"`
	Message string  `json:"message,omitempty"`
	Report  *Report `json:"report,omitempty"`
}

// handleAnalyzeWS runs one analysis over a websocket: the client sends a
// single request message, the server streams phase events and the final
// report, then closes.
func (s *Service) handleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var in analyzeRequest
	if err := conn.ReadJSON(&in); err != nil {
		writeWS(conn, wsOutbound{Type: PhaseError, Message: "invalid request message"})
		return
	}
	if in.RepoURL == "" || in.APIKey == "" {
		writeWS(conn, wsOutbound{Type: PhaseError, Message: "repo_url and api_key are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	report, err := s.Analyze(ctx, in.RepoURL, in.APIKey, func(phase string) {
		writeWS(conn, wsOutbound{Type: phase})
	})
	if err != nil {
		writeWS(conn, wsOutbound{Type: PhaseError, Message: err.Error()})
		return
	}
	writeWS(conn, wsOutbound{Type: PhaseComplete, Report: report})
}

func writeWS(conn *websocket.Conn, out wsOutbound) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("server: websocket write failed: %v", err)
	}
}
