package logger

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats. "pretty" is an alias for "console".
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// Logger carries a zerolog.Logger with the service and any component or
// request fields already attached.
type Logger struct {
	zl zerolog.Logger
}

// New writes to the configured output (stdout or stderr).
func New(cfg *Config, service string) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}
	return NewWithWriter(cfg, service, out)
}

// NewWithWriter writes to w. An unknown level falls back to info.
func NewWithWriter(cfg *Config, service string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var zc zerolog.Context
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zc = zerolog.New(consoleWriter(w, service, cfg.NoColor)).With()
	default:
		zc = zerolog.New(w).With().Str("service", service)
	}
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger().Level(level)}
}

// NewNop discards everything.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) with(key, val string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, val).Logger()}
}

// WithComponent tags every entry with component=name.
func (l *Logger) WithComponent(name string) *Logger { return l.with(FieldComponent, name) }

// WithContext adds the request ID from ctx. Without one it returns l.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.with(FieldRequestID, id)
	}
	return l
}

func (l *Logger) Debug(msg string, fields ...map[string]any) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]any)  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]any) { emit(l.zl.Error(), msg, fields) }

func emit(e *zerolog.Event, msg string, fields []map[string]any) {
	for _, m := range fields {
		e = e.Fields(m)
	}
	e.Msg(msg)
}

type requestIDKey struct{}

// ContextWithRequestID stores the request ID for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the stored request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

var global *Logger

// Init builds the process logger from cfg and sets zerolog's global level,
// which also decides gin's debug mode.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	global = New(cfg, cmp.Or(cfg.ServiceName, "authgate"))
}

// GetGlobalLogger returns the process logger, creating a console logger at
// info level if Init was never called.
func GetGlobalLogger() *Logger {
	if global == nil {
		cfg := &Config{}
		cfg.ApplyDefaults()
		global = New(cfg, "authgate")
	}
	return global
}

// WithComponent is GetGlobalLogger().WithComponent(name).
func WithComponent(name string) *Logger { return GetGlobalLogger().WithComponent(name) }

// WithContext is GetGlobalLogger().WithContext(ctx).
func WithContext(ctx context.Context) *Logger { return GetGlobalLogger().WithContext(ctx) }

var levelStyle = map[zerolog.Level]struct{ tag, color string }{
	zerolog.TraceLevel: {"TRC", "\033[90m"},
	zerolog.DebugLevel: {"DBG", "\033[36m"},
	zerolog.InfoLevel:  {"INF", "\033[32m"},
	zerolog.WarnLevel:  {"WRN", "\033[33m"},
	zerolog.ErrorLevel: {"ERR", "\033[31m"},
	zerolog.FatalLevel: {"FTL", "\033[35m"},
}

// consoleWriter prints "HH:MM:SS [SVC][INF] message key:value", where SVC
// is the first three letters of the service name.
func consoleWriter(w io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	paint := func(color, s string) string {
		if noColor {
			return s
		}
		return color + s + "\033[0m"
	}
	prefix := ""
	if len(service) >= 3 {
		prefix = paint("\033[34m", "["+strings.ToUpper(service[:3])+"]")
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
		FormatLevel: func(i any) string {
			name, _ := i.(string)
			level, err := zerolog.ParseLevel(name)
			style, ok := levelStyle[level]
			if err != nil || !ok {
				return prefix + "[" + strings.ToUpper(name) + "]"
			}
			return prefix + paint(style.color, "["+style.tag+"]")
		},
		FormatFieldName: func(i any) string { return fmt.Sprint(i) + ":" },
	}
}
