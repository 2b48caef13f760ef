package mud

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionRecord summarises one finished session (connect → disconnect).
type SessionRecord struct {
	ID        string    `json:"id"`
	Transport string    `json:"transport"`
	Remote    string    `json:"remote"`
	Started   time.Time `json:"started"`
	Ended     time.Time `json:"ended"`
	Digs      int       `json:"digs"`
	Flags     int       `json:"flags"`
	Deflags   int       `json:"deflags"`
	Hazards   int       `json:"hazards"`
	Reason    string    `json:"reason"`
}

// historyMu keeps concurrent sessions from interleaving their lines.
var historyMu sync.Mutex

// saveSessionRecord appends rec as a single JSON line to path.
// Errors are logged but never affect the session.
func saveSessionRecord(path string, rec SessionRecord, logger *slog.Logger) {
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("history: cannot marshal JSON", "error", err)
		return
	}
	data = append(data, '\n')

	historyMu.Lock()
	defer historyMu.Unlock()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("history: cannot create dir", "path", path, "error", err)
			return
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("history: cannot open file", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		logger.Warn("history: write failed", "path", path, "error", err)
	}
}

// DefaultHistoryPath returns sessions.jsonl under $XDG_DATA_HOME/minesweeper,
// falling back to ~/.local/share.
func DefaultHistoryPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "minesweeper", "sessions.jsonl"), nil
}
