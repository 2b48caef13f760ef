package mud

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// Reasons a session ends, as logged and recorded in the history.
const (
	ReasonBye        = "bye"
	ReasonHazard     = "hazard"
	ReasonEOF        = "eof"
	ReasonReadError  = "read error"
	ReasonWriteError = "write error"
	ReasonQuit       = "quit"
)

// maxLineBytes bounds a single protocol line.
const maxLineBytes = 64 * 1024

// Serve accepts connections on ln until ctx is cancelled, serving each on its
// own goroutine. It returns nil after cancellation and the accept error
// otherwise.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-done:
		}
	}()

	s.logger.Info("listening", "transport", TransportTCP, "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.ServeLines(conn, TransportTCP, conn.RemoteAddr().String())
	}
}

// ServeLines runs the line protocol over rw until the client leaves. It
// closes rw before returning.
func (s *Server) ServeLines(rw io.ReadWriteCloser, transport, remote string) {
	sess := s.NewSession(transport, remote)
	n := s.join(sess)
	reason := ReasonEOF
	defer func() {
		rw.Close()
		s.leave(sess, reason)
	}()

	if _, err := io.WriteString(rw, WelcomeMessage(n)); err != nil {
		reason = ReasonWriteError
		return
	}

	lines := newLineReader(rw)
	for {
		line, err := lines.next()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.logger.Debug("read failed", "session", sess.ID, "error", err)
				reason = ReasonReadError
			}
			return
		}
		reply := sess.Handle(line)
		if reply.Text != "" {
			if _, err := io.WriteString(rw, reply.Text); err != nil {
				s.logger.Debug("write failed", "session", sess.ID, "error", err)
				reason = ReasonWriteError
				return
			}
		}
		if reply.Close {
			reason = closeReason(reply)
			return
		}
	}
}

// lineReader splits a stream into newline-terminated lines. A line longer
// than maxLineBytes is dropped whole and reading resumes after its newline.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, maxLineBytes)}
}

// next returns the following line without its terminator. A final line with
// no newline is returned before io.EOF.
func (lr *lineReader) next() (string, error) {
	for {
		line, err := lr.r.ReadSlice('\n')
		switch {
		case err == nil:
			return string(line[:len(line)-1]), nil
		case errors.Is(err, bufio.ErrBufferFull):
			if err := lr.skipLine(); err != nil {
				return "", err
			}
		case errors.Is(err, io.EOF) && len(line) > 0:
			return string(line), nil
		default:
			return "", err
		}
	}
}

// skipLine discards input up to and including the next newline.
func (lr *lineReader) skipLine() error {
	for {
		_, err := lr.r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func closeReason(r Reply) string {
	if r.Text == BoomMessage {
		return ReasonHazard
	}
	return ReasonBye
}
