package mud

import (
	"strings"

	"minesweeper/internal/board"
	"minesweeper/internal/render"

	"github.com/gdamore/tcell/v2"
)

// RunTerminal is the per-session goroutine for PTY clients. It takes
// ownership of an initialized screen, reads keys, and redraws whenever any
// session changes the board. Blocks until the player quits or disconnects.
func (s *Server) RunTerminal(screen tcell.Screen, remote string) {
	sess := s.NewSession(TransportTerminal, remote)
	sess.Screen = screen
	sess.Renderer = render.NewRenderer(screen)
	n := s.join(sess)
	reason := ReasonQuit
	stop := make(chan struct{})
	defer func() {
		close(stop)
		screen.Fini()
		s.leave(sess, reason)
	}()
	sess.AddMessage(strings.TrimSuffix(WelcomeMessage(n), "\n"))
	screen.EnableMouse(tcell.MouseButtonEvents)

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-stop:
				return
			}
		}
	}()

	s.drawSession(sess)
	for {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				reason = ReasonEOF
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				s.drawSession(sess)
			case *tcell.EventKey:
				if r, done := s.handleKey(sess, keyToAction(ev), eventCh); done {
					reason = r
					return
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				if r, done := s.handleClick(sess, x, y, ev.Buttons(), eventCh); done {
					reason = r
					return
				}
			}

		case <-sess.RenderCh:
			s.drawSession(sess)
		}
	}
}

// handleKey applies one view action. done reports that the session should
// end, with reason saying why.
func (s *Server) handleKey(sess *Session, action Action, eventCh <-chan tcell.Event) (reason string, done bool) {
	switch action {
	case ActionNone:
		return "", false
	case ActionQuit:
		if confirmQuit(sess, eventCh) {
			return ReasonQuit, true
		}
	case ActionHelp:
		runHelp(sess, eventCh)
	case ActionLook:
		sess.Screen.Sync()
	case ActionDig:
		reply := sess.Execute(Command{Kind: CmdDig, X: sess.CursorX, Y: sess.CursorY})
		if reply.Text == BoomMessage {
			if reply.Close {
				showBoom(sess, eventCh)
				return ReasonHazard, true
			}
			sess.AddMessage("BOOM! (debug mode, still connected)")
		}
	case ActionToggleFlag:
		cmd := Command{Kind: CmdFlag, X: sess.CursorX, Y: sess.CursorY}
		if c, ok := s.board.Cell(sess.CursorX, sess.CursorY); ok && c.State == board.Marked {
			cmd.Kind = CmdDeflag
		}
		sess.Execute(cmd)
	default:
		sess.MoveCursor(actionToDelta(action))
	}
	s.drawSession(sess)
	return "", false
}

// handleClick moves the cursor to the cell under a mouse press, then digs it
// for the primary button or toggles its flag for the others. Presses outside
// the board are ignored.
func (s *Server) handleClick(sess *Session, sx, sy int, buttons tcell.ButtonMask, eventCh <-chan tcell.Event) (reason string, done bool) {
	var action Action
	switch {
	case buttons&tcell.Button1 != 0:
		action = ActionDig
	case buttons&(tcell.Button2|tcell.Button3) != 0:
		action = ActionToggleFlag
	default:
		return "", false
	}
	row, col, visible := sess.Renderer.Camera().ScreenToCell(sx, sy)
	if !visible || !s.board.InBounds(row, col) {
		return "", false
	}
	sess.CursorX, sess.CursorY = row, col
	return s.handleKey(sess, action, eventCh)
}

// drawSession renders the board and HUD for one terminal session.
func (s *Server) drawSession(sess *Session) {
	sess.Renderer.DrawBoard(s.board.Glyphs(), sess.CursorX, sess.CursorY)
	sess.Renderer.DrawHUD(render.StatusLine(sess.CursorX, sess.CursorY, s.Players(), s.cfg.Debug), sess.Messages)
}

var helpLines = []string{
	"── Movement ──────────────────────────",
	"  Arrow keys / hjkl   Move cursor",
	"",
	"── Actions ───────────────────────────",
	"  d / Space / Enter   Dig",
	"  f                   Flag / unflag",
	"  r                   Redraw",
	"  Left / right click  Dig / flag",
	"",
	"── Session ───────────────────────────",
	"  q / Esc             Disconnect",
	"  ?                   This help",
	"",
	"  [any key to close]",
}

// runHelp shows a keybinding reference overlay. Any key dismisses it.
func runHelp(sess *Session, eventCh <-chan tcell.Event) {
	for {
		drawBox(sess.Screen, " Controls ", helpLines, 42, bodyStyle)
		ev, ok := <-eventCh
		if !ok {
			return
		}
		switch ev.(type) {
		case *tcell.EventResize:
			sess.Screen.Sync()
		case *tcell.EventKey:
			return
		}
	}
}

// confirmQuit shows a "Really disconnect? (y/n)" prompt. Returns true if confirmed.
func confirmQuit(sess *Session, eventCh <-chan tcell.Event) bool {
	prompt := " Really disconnect? (y/n) "
	for {
		drawBox(sess.Screen, "", []string{prompt}, len([]rune(prompt))+4, hdrStyle)
		ev, ok := <-eventCh
		if !ok {
			return true // disconnected
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			sess.Screen.Sync()
		case *tcell.EventKey:
			switch ev.Rune() {
			case 'y', 'Y':
				return true
			default:
				return false
			}
		}
	}
}

// showBoom tells a player their dig hit a hazard and waits for any key
// before the session closes.
func showBoom(sess *Session, eventCh <-chan tcell.Event) {
	lines := []string{
		"BOOM!",
		"",
		"You dug up a mine.",
		"",
		"  [any key to disconnect]",
	}
	for {
		drawBox(sess.Screen, " Game over ", lines, 32, boomStyle)
		ev, ok := <-eventCh
		if !ok {
			return
		}
		switch ev.(type) {
		case *tcell.EventResize:
			sess.Screen.Sync()
		case *tcell.EventKey:
			return
		}
	}
}
