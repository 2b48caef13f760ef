// minesweeper-server runs a multiplayer minesweeper game: one shared board,
// any number of clients. Build:
//
//	go build -o minesweeper-server ./cmd/server
//
// Usage:
//
//	./minesweeper-server [-port 4444] [-debug] [-size N | -file PATH]
//	                     [-ssh-port 2222] [-key server_host_key]
//	                     [-ws-addr :8080] [-history PATH | -record]
//
// Connect with a line client, or over SSH for the terminal view:
//
//	nc localhost 4444
//	ssh -p 2222 localhost
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"minesweeper/internal/board"
	"minesweeper/internal/mud"
	internalssh "minesweeper/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
)

const (
	defaultPort = 4444
	defaultSize = 10
	portEnv     = "MINESWEEPER_PORT"
)

// config is the parsed command line.
type config struct {
	port     int
	debug    bool
	size     int
	file     string
	sshPort  int
	keyFile  string
	wsAddr   string
	history  string
	record   bool
	logLevel slog.Level
	seed     int64
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "minesweeper-server: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// parseConfig parses args. getenv supplies MINESWEEPER_PORT, which replaces
// the default port but not an explicit -port.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	var cfg config
	port := defaultPort
	if v := getenv(portEnv); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: not a number", portEnv, v)
		}
		port = p
	}

	fs := flag.NewFlagSet("minesweeper-server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.port, "port", port, "TCP port for the line protocol (env "+portEnv+")")
	fs.BoolVar(&cfg.debug, "debug", false, "Keep clients connected after they dig a mine")
	fs.IntVar(&cfg.size, "size", defaultSize, "Generate a random N×N board")
	fs.IntVar(&cfg.size, "s", defaultSize, "Shorthand for -size")
	fs.StringVar(&cfg.file, "file", "", "Load the board from a file of 0/1 rows")
	fs.StringVar(&cfg.file, "f", "", "Shorthand for -file")
	fs.IntVar(&cfg.sshPort, "ssh-port", 0, "SSH port (0 disables SSH)")
	fs.StringVar(&cfg.keyFile, "key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	fs.StringVar(&cfg.wsAddr, "ws-addr", "", "HTTP address for the websocket transport (empty disables)")
	fs.StringVar(&cfg.history, "history", "", "Append session summaries to this JSONL file")
	fs.BoolVar(&cfg.record, "record", false, "Append session summaries under $XDG_DATA_HOME/minesweeper")
	fs.Int64Var(&cfg.seed, "seed", 0, "Seed for random boards (0 uses the clock)")
	level := fs.String("log-level", "info", "Log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if (set["size"] || set["s"]) && cfg.file != "" {
		return cfg, errors.New("-size and -file are mutually exclusive")
	}
	if cfg.file == "" && cfg.size < 1 {
		return cfg, fmt.Errorf("board size must be positive, got %d", cfg.size)
	}
	if err := checkPort("port", cfg.port); err != nil {
		return cfg, err
	}
	if err := checkPort("ssh-port", cfg.sshPort); err != nil {
		return cfg, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(*level)); err != nil {
		return cfg, fmt.Errorf("-log-level: %w", err)
	}
	if cfg.record && cfg.history == "" {
		path, err := mud.DefaultHistoryPath()
		if err != nil {
			return cfg, fmt.Errorf("-record: %w", err)
		}
		cfg.history = path
	}
	return cfg, nil
}

func checkPort(name string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("-%s %d out of range", name, port)
	}
	return nil
}

// buildBoard loads cfg.file if set, otherwise generates a random board.
func buildBoard(cfg config) (*board.Board, error) {
	if cfg.file != "" {
		return board.Load(cfg.file)
	}
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return board.NewRandom(cfg.size, rand.New(rand.NewSource(seed)))
}

// run starts every configured listener and blocks until ctx is cancelled or
// one of them fails.
func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	b, err := buildBoard(cfg)
	if err != nil {
		return err
	}
	srv := mud.NewServer(b, mud.Config{Debug: cfg.debug, HistoryPath: cfg.history}, logger)
	logger.Info("board ready", "size", b.Size(), "debug", cfg.debug, "file", cfg.file)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errCh := make(chan error, 3)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	if cfg.sshPort != 0 {
		signer, err := internalssh.LoadOrCreateHostKey(cfg.keyFile, logger)
		if err != nil {
			return err
		}
		sshSrv := &gossh.Server{
			Addr:    fmt.Sprintf(":%d", cfg.sshPort),
			Handler: srv.SSHHandler(),
			// Accept PTY requests from any client.
			PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
			// No authentication: anyone may play.
			HostSigners: []gossh.Signer{signer},
		}
		defer sshSrv.Close()
		go func() {
			logger.Info("listening", "transport", mud.TransportSSH, "addr", sshSrv.Addr)
			if err := sshSrv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
				errCh <- fmt.Errorf("ssh: %w", err)
			}
		}()
	}

	if cfg.wsAddr != "" {
		httpSrv := &http.Server{
			Addr:              cfg.wsAddr,
			Handler:           srv.HTTPHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		defer httpSrv.Close()
		go func() {
			logger.Info("listening", "transport", mud.TransportWebSocket, "addr", cfg.wsAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down", "players", srv.Players())
		return nil
	case err := <-errCh:
		return err
	}
}
