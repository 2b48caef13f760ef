package mud

import (
	"fmt"

	internalssh "minesweeper/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
)

// SSHHandler returns the gliderlabs handler for this server. Sessions
// without a PTY (ssh host, piped input) speak the line protocol; sessions
// with one get the terminal view. The handler blocks for the life of the
// session so the channel stays open.
func (s *Server) SSHHandler() gossh.Handler {
	return func(sess gossh.Session) {
		remote := sess.RemoteAddr().String()
		pty, winCh, hasPTY := sess.Pty()
		if !hasPTY {
			s.ServeLines(exitOnClose{sess}, TransportSSH, remote)
			return
		}

		screen, err := internalssh.NewScreen(sess, pty, winCh)
		if err != nil {
			s.logger.Warn("terminal setup failed", "remote", remote, "error", err)
			fmt.Fprintf(sess, "Terminal setup failed: %v\r\n", err)
			return
		}
		s.RunTerminal(screen, remote)
	}
}

// exitOnClose reports exit status 0 to the client when the line protocol
// closes the session, so `ssh host` returns cleanly.
type exitOnClose struct {
	gossh.Session
}

func (e exitOnClose) Close() error { return e.Exit(0) }
