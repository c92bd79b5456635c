// Package logger embrulha o log/slog com o tratamento de nível usado pelos binários do site.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger é o logger estruturado compartilhado pelos pacotes.
type Logger struct {
	internal *slog.Logger
	level    *slog.LevelVar
}

// ParseLevel converte LOG_LEVEL em slog.Level. Valores desconhecidos viram info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New cria um logger texto escrevendo em w.
func New(level string, w io.Writer) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(level))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{internal: slog.New(handler), level: lvl}
}

// NewLogger cria um logger escrevendo em stderr.
func NewLogger(level string) *Logger {
	return New(level, os.Stderr)
}

// Discard devolve um logger que descarta tudo (testes).
func Discard() *Logger {
	return New("error", io.Discard)
}

// SetLevel troca o nível em tempo de execução.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// With devolve um logger que sempre inclui os atributos dados.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.With(args...), level: l.level}
}

func (l *Logger) Slog() *slog.Logger {
	return l.internal
}

func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.internal.ErrorContext(ctx, msg, args...)
}
