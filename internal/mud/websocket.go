package mud

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds each websocket write.
const writeWait = 10 * time.Second

type diagnostics struct {
	Status        string `json:"status"`
	ActivePlayers int64  `json:"activePlayers"`
	BoardSize     int    `json:"boardSize"`
	Debug         bool   `json:"debug"`
	ServerTime    int64  `json:"serverTime"`
}

// HTTPHandler serves the websocket transport at /ws, plus /health and
// /diagnostics for operators. Each websocket text frame carries one
// protocol line; replies are text frames with the same content the line
// protocol would send.
func (s *Server) HTTPHandler() http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(diagnostics{
			Status:        "ok",
			ActivePlayers: s.Players(),
			BoardSize:     s.board.Size(),
			Debug:         s.cfg.Debug,
			ServerTime:    time.Now().UnixMilli(),
		})
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		s.serveWebSocket(conn, r.RemoteAddr)
	})

	return mux
}

func (s *Server) serveWebSocket(conn *websocket.Conn, remote string) {
	sess := s.NewSession(TransportWebSocket, remote)
	n := s.join(sess)
	reason := ReasonEOF
	defer func() {
		conn.Close()
		s.leave(sess, reason)
	}()

	write := func(messageType int, data []byte) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(messageType, data)
	}

	if err := write(websocket.TextMessage, []byte(WelcomeMessage(n))); err != nil {
		reason = ReasonWriteError
		return
	}

	for {
		messageType, r, err := conn.NextReader()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read failed", "session", sess.ID, "error", err)
				reason = ReasonReadError
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		payload, ok, err := readMessage(r)
		if err != nil {
			s.logger.Debug("websocket read failed", "session", sess.ID, "error", err)
			reason = ReasonReadError
			return
		}
		if !ok {
			continue
		}

		reply := sess.Handle(strings.TrimSuffix(string(payload), "\n"))
		if reply.Text != "" {
			if err := write(websocket.TextMessage, []byte(reply.Text)); err != nil {
				s.logger.Debug("websocket write failed", "session", sess.ID, "error", err)
				reason = ReasonWriteError
				return
			}
		}
		if reply.Close {
			reason = closeReason(reply)
			write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
			return
		}
	}
}

// readMessage reads one message of at most maxLineBytes. A longer message is
// drained and dropped with ok false, the same as any other unknown input.
func readMessage(r io.Reader) (payload []byte, ok bool, err error) {
	payload, err = io.ReadAll(io.LimitReader(r, maxLineBytes+1))
	if err != nil {
		return nil, false, err
	}
	if len(payload) <= maxLineBytes {
		return payload, true, nil
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}
