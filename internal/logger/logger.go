// Package logger configures structured slog-based logging for the bot.
// Output goes to stdout and, when configured, to a log file; records carry
// a component attribute plus request correlation metadata taken from context.
package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/avlodventures/eventbot/internal/buildinfo"
)

// Options control logger initialization.
type Options struct {
	Level   string
	Format  string // "json" or "kv"; profile "debug"/"dev" defaults to kv
	Dir     string
	File    string
	Profile string
}

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	shutdowned bool

	logClosers []io.Closer
	levelVar   slog.LevelVar

	// L is the base logger shared by all components.
	L *slog.Logger

	// DB logs database-related events.
	DB *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
	// TWire logs Telegram wiring steps.
	TWire *slog.Logger
)

// Init configures the global structured logger. It may be called only once.
func Init(opts Options) error {
	var initErr error
	initOnce.Do(func() {
		levelVar.Set(selectLevel(opts.Level))

		writers := []io.Writer{os.Stdout}
		dir := strings.TrimSpace(opts.Dir)
		file := strings.TrimSpace(opts.File)
		if dir != "" && file != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Printf("logger: failed to create log dir %s: %v", dir, err)
			} else {
				path := filepath.Join(dir, file)
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					log.Printf("logger: failed to open log file %s: %v", path, err)
				} else {
					writers = append(writers, f)
					logClosers = append(logClosers, f)
				}
			}
		}

		out := &lockedWriter{w: io.MultiWriter(writers...)}
		hopts := &slog.HandlerOptions{Level: &levelVar}

		var handler slog.Handler
		if selectFormat(opts) == "kv" {
			handler = slog.NewTextHandler(out, hopts)
		} else {
			handler = slog.NewJSONHandler(out, hopts)
		}

		L = slog.New(handler)
		slog.SetDefault(L)
		wireComponents()
		logStartup(opts)
	})
	return initErr
}

func wireComponents() {
	DB = L.With("component", "db")
	MIG = L.With("component", "db.migrate")
	TG = L.With("component", "tg")
	TWire = L.With("component", "tg.wire")
}

func logStartup(opts Options) {
	L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
		slog.String("component", "app"),
		slog.String("event", "startup"),
		slog.String("go_version", runtime.Version()),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("cfg_profile", selectProfile(opts)),
	)
}

// Shutdown closes opened log sinks.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if shutdowned {
		return nil
	}
	shutdowned = true
	var last error
	for _, c := range logClosers {
		if err := c.Close(); err != nil {
			last = err
		}
	}
	return last
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	if L == nil {
		return nil
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}

func logAt(ctx context.Context, component string, level slog.Level, event string, attrs []slog.Attr) {
	logg := Component(component)
	if logg == nil {
		logg = FromContext(ctx)
	}
	if logg == nil {
		return
	}
	all := append(contextAttrs(ctx), attrs...)
	logg.LogAttrs(ctx, level, event, all...)
}

// Debug logs a debug-level event with component scope and context metadata.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logAt(ctx, component, slog.LevelDebug, event, attrs)
}

// Info logs an info-level event with component scope and context metadata.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logAt(ctx, component, slog.LevelInfo, event, attrs)
}

// Warn logs a warn-level event with component scope and context metadata.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logAt(ctx, component, slog.LevelWarn, event, attrs)
}

// Error logs an error-level event with component scope and context metadata.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logAt(ctx, component, slog.LevelError, event, attrs)
}

func selectLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func selectFormat(opts Options) string {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "kv", "text", "pretty":
		return "kv"
	case "json":
		return "json"
	}
	if strings.EqualFold(opts.Profile, "debug") || strings.EqualFold(opts.Profile, "dev") {
		return "kv"
	}
	return "json"
}

func selectProfile(opts Options) string {
	if profile := strings.TrimSpace(opts.Profile); profile != "" {
		return strings.ToLower(profile)
	}
	return "prod"
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
