package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Fallback dimensions when the client reports a zero-sized window.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each PTY session gets its own SessionTty → tcell.Screen pair.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty.
// pty holds the initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		stopped: make(chan struct{}),
	}
}

// Read reads keyboard input from the SSH channel.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the SSH channel.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH session channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op; the channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop ends resize forwarding. The channel itself is closed by Close.
func (t *SessionTty) Stop() error {
	t.stopOnce.Do(func() { close(t.stopped) })
	return nil
}

// Drain is a no-op; SSH writes are not buffered locally.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ws := tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}
	if ws.Width <= 0 || ws.Height <= 0 {
		ws.Width, ws.Height = defaultWidth, defaultHeight
	}
	return ws, nil
}

// NotifyResize registers the callback tcell wants on every window change
// and forwards window-change requests until Stop or the channel closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.stopped:
				return
			case win, ok := <-t.winCh:
				if !ok {
					return
				}
				t.resize(win)
			}
		}
	}()
}

func (t *SessionTty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.cb
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
