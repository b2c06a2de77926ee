package logx

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// Level define la severidad de un mensaje de log
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var (
	mu       sync.Mutex
	minLevel = LevelInfo
)

// SetLevel establece el nivel mínimo de log
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Fields son pares clave/valor adjuntos a una entrada de log
type Fields map[string]any

// Entry es un log con campos estructurados
type Entry struct {
	fields Fields
}

// WithFields crea una entrada con campos estructurados
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) Debug(msg string) { log(LevelDebug, msg, e.fields) }
func (e *Entry) Info(msg string)  { log(LevelInfo, msg, e.fields) }
func (e *Entry) Warn(msg string)  { log(LevelWarn, msg, e.fields) }
func (e *Entry) Error(msg string) { log(LevelError, msg, e.fields) }

func (e *Entry) Debugf(format string, args ...any) { log(LevelDebug, fmt.Sprintf(format, args...), e.fields) }
func (e *Entry) Infof(format string, args ...any)  { log(LevelInfo, fmt.Sprintf(format, args...), e.fields) }
func (e *Entry) Warnf(format string, args ...any)  { log(LevelWarn, fmt.Sprintf(format, args...), e.fields) }
func (e *Entry) Errorf(format string, args ...any) { log(LevelError, fmt.Sprintf(format, args...), e.fields) }

// Package-level helpers

func Debug(msg string) { log(LevelDebug, msg, nil) }
func Info(msg string)  { log(LevelInfo, msg, nil) }
func Warn(msg string)  { log(LevelWarn, msg, nil) }
func Error(msg string) { log(LevelError, msg, nil) }

func Debugf(format string, args ...any) { log(LevelDebug, fmt.Sprintf(format, args...), nil) }
func Infof(format string, args ...any)  { log(LevelInfo, fmt.Sprintf(format, args...), nil) }
func Warnf(format string, args ...any)  { log(LevelWarn, fmt.Sprintf(format, args...), nil) }
func Errorf(format string, args ...any) { log(LevelError, fmt.Sprintf(format, args...), nil) }

// Fatalf loguea y termina el proceso
func Fatalf(format string, args ...any) {
	log(LevelError, fmt.Sprintf(format, args...), nil)
	os.Exit(1)
}

func log(l Level, msg string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}

	line := fmt.Sprintf("%s | %-5s | %s", time.Now().Format("2006-01-02 15:04:05"), levelNames[l], msg)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, fields[k])
		}
	}
	fmt.Fprintln(os.Stderr, line)
}
