// Package mud implements the multiplayer minesweeper server. Clients connect
// over plain TCP, SSH or WebSocket; every session reads and mutates the same
// board. Terminal sessions redraw whenever any session changes the board.
package mud

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"minesweeper/internal/board"
)

// BoomMessage is sent in place of the board when a dig hits a hazard.
const BoomMessage = "BOOM!\n"

// HelpMessage describes the line protocol.
const HelpMessage = "MESSAGE :== ( LOOK | DIG | FLAG | DEFLAG | HELP_REQ | BYE ) NEWLINE\n" +
	"LOOK     :== 'look'\n" +
	"DIG      :== 'dig' SPACE X SPACE Y\n" +
	"FLAG     :== 'flag' SPACE X SPACE Y\n" +
	"DEFLAG   :== 'deflag' SPACE X SPACE Y\n" +
	"HELP_REQ :== 'help'\n" +
	"BYE      :== 'bye'\n"

// WelcomeMessage is the first line every client receives.
func WelcomeMessage(players int64) string {
	return fmt.Sprintf("Welcome to Minesweeper.  %d people are playing including you.  Type 'help' for help.\n", players)
}

// Config holds server options.
type Config struct {
	// Debug keeps a session open after it digs a hazard.
	Debug bool
	// HistoryPath, if set, receives one JSON line per finished session.
	HistoryPath string
}

// Server owns the shared board and every live session.
type Server struct {
	board   *board.Board
	cfg     Config
	logger  *slog.Logger
	players atomic.Int64

	mu       sync.Mutex
	sessions []*Session
}

// NewServer creates a Server around an already-built board.
func NewServer(b *board.Board, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{board: b, cfg: cfg, logger: logger}
}

// Board returns the shared board.
func (s *Server) Board() *board.Board { return s.board }

// Debug reports whether hazards leave sessions connected.
func (s *Server) Debug() bool { return s.cfg.Debug }

// Players returns the number of connected clients.
func (s *Server) Players() int64 { return s.players.Load() }

// join registers sess and returns the player count including it.
func (s *Server) join(sess *Session) int64 {
	n := s.players.Add(1)
	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	s.mu.Unlock()
	s.logger.Info("session started",
		"session", sess.ID, "transport", sess.Transport, "remote", sess.Remote, "players", n)
	return n
}

// leave deregisters sess and records its summary.
func (s *Server) leave(sess *Session, reason string) {
	n := s.players.Add(-1)
	s.mu.Lock()
	for i, other := range s.sessions {
		if other == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.logger.Info("session ended",
		"session", sess.ID, "transport", sess.Transport, "reason", reason, "players", n)
	if s.cfg.HistoryPath != "" {
		saveSessionRecord(s.cfg.HistoryPath, sess.summary(reason), s.logger)
	}
}

// signalRender sends a non-blocking render signal to all sessions.
func (s *Server) signalRender() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		select {
		case sess.RenderCh <- struct{}{}:
		default:
		}
	}
}
