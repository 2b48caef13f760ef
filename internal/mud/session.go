package mud

import (
	"time"

	"minesweeper/internal/board"
	"minesweeper/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Transport names recorded on sessions and in the history log.
const (
	TransportTCP       = "tcp"
	TransportSSH       = "ssh"
	TransportTerminal  = "ssh-pty"
	TransportWebSocket = "websocket"
)

// maxMessages caps the status lines kept for the terminal view.
const maxMessages = 50

// Session holds all per-client state for one connection. Everything except
// RenderCh is owned by the goroutine serving the connection.
type Session struct {
	ID        uuid.UUID
	Transport string
	Remote    string
	Started   time.Time

	srv *Server

	// Per-session counters, flushed to the history log on exit.
	Digs    int
	Flags   int
	Deflags int
	Hazards int

	// Terminal view state; nil Screen for line-protocol sessions.
	Screen   tcell.Screen
	Renderer *render.Renderer
	CursorX  int
	CursorY  int
	Messages []string

	// Render trigger: any board mutation sends here; the view drains and redraws.
	RenderCh chan struct{}
}

// NewSession allocates a Session for a newly-connected client.
func (s *Server) NewSession(transport, remote string) *Session {
	return &Session{
		ID:        uuid.New(),
		Transport: transport,
		Remote:    remote,
		Started:   time.Now(),
		srv:       s,
		RenderCh:  make(chan struct{}, 1),
	}
}

// Reply is what a session sends back for one input line. An empty Text
// sends nothing; Close ends the session after Text is delivered.
type Reply struct {
	Text  string
	Close bool
}

// Handle executes one protocol line against the shared board.
func (sess *Session) Handle(line string) Reply {
	cmd, ok := ParseCommand(line)
	if !ok {
		return Reply{}
	}
	return sess.Execute(cmd)
}

// Execute applies an already-parsed command.
func (sess *Session) Execute(cmd Command) Reply {
	b := sess.srv.board
	switch cmd.Kind {
	case CmdLook:
		return Reply{Text: b.Render()}
	case CmdHelp:
		return Reply{Text: HelpMessage}
	case CmdBye:
		return Reply{Close: true}
	case CmdDig:
		sess.Digs++
		text, outcome := b.Dig(cmd.X, cmd.Y)
		sess.srv.signalRender()
		if outcome == board.Hazard {
			sess.Hazards++
			return Reply{Text: BoomMessage, Close: !sess.srv.cfg.Debug}
		}
		return Reply{Text: text}
	case CmdFlag:
		sess.Flags++
		text := b.Flag(cmd.X, cmd.Y)
		sess.srv.signalRender()
		return Reply{Text: text}
	case CmdDeflag:
		sess.Deflags++
		text := b.Deflag(cmd.X, cmd.Y)
		sess.srv.signalRender()
		return Reply{Text: text}
	}
	return Reply{}
}

// AddMessage appends a status line, capping at maxMessages entries.
func (sess *Session) AddMessage(msg string) {
	sess.Messages = append(sess.Messages, msg)
	if len(sess.Messages) > maxMessages {
		sess.Messages = sess.Messages[len(sess.Messages)-maxMessages:]
	}
}

// MoveCursor shifts the terminal cursor by (dx, dy), clamped to the board.
func (sess *Session) MoveCursor(dx, dy int) {
	n := sess.srv.board.Size()
	sess.CursorX = clamp(sess.CursorX+dx, 0, n-1)
	sess.CursorY = clamp(sess.CursorY+dy, 0, n-1)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// summary snapshots the session for the history log.
func (sess *Session) summary(reason string) SessionRecord {
	return SessionRecord{
		ID:        sess.ID.String(),
		Transport: sess.Transport,
		Remote:    sess.Remote,
		Started:   sess.Started,
		Ended:     time.Now(),
		Digs:      sess.Digs,
		Flags:     sess.Flags,
		Deflags:   sess.Deflags,
		Hazards:   sess.Hazards,
		Reason:    reason,
	}
}
