// Package logger provides namespaced debug logging controlled by the DEBUG
// environment variable.
//
// Each package declares its loggers once:
//
//	var log = logger.New("nightly:url")
//
// and the lines are only written when DEBUG enables the namespace. DEBUG is a
// comma-separated list of patterns. A trailing "*" matches any suffix and a
// leading "-" excludes matching namespaces:
//
//	DEBUG=*                        all loggers
//	DEBUG=nightly:*                everything under nightly
//	DEBUG=*,-bridgemoji:assets     all loggers except one
//
// Output always goes to stderr so it never mixes with command output.
package logger

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbb-tools/tbtools/pkg/styles"
	"github.com/tbb-tools/tbtools/pkg/tty"
)

// Logger writes debug lines for a single namespace.
type Logger struct {
	namespace string
	enabled   bool
	style     lipgloss.Style
	colored   bool

	mu   sync.Mutex
	out  io.Writer
	last time.Time
}

// New creates a logger for namespace. Whether it is enabled is decided once,
// from the value of DEBUG at creation time.
func New(namespace string) *Logger {
	color := styles.NamespaceColors[namespaceHash(namespace)%uint32(len(styles.NamespaceColors))]
	return &Logger{
		namespace: namespace,
		enabled:   isEnabled(namespace, os.Getenv("DEBUG")),
		style:     lipgloss.NewStyle().Bold(true).Foreground(color),
		colored:   tty.IsStderrTerminal(),
		out:       os.Stderr,
	}
}

// Enabled reports whether this logger writes anything.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf formats like fmt.Printf.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print concatenates its arguments like fmt.Sprint.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now

	ns := l.namespace
	if l.colored {
		ns = l.style.Render(ns)
	}
	fmt.Fprintf(l.out, "%s %s +%s\n", ns, msg, formatElapsed(elapsed))
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}

// isEnabled evaluates the DEBUG patterns for namespace. Exclusions win over
// inclusions regardless of their position in the list.
func isEnabled(namespace, debug string) bool {
	if debug == "" {
		return false
	}

	enabled := false
	for _, pattern := range strings.Split(debug, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if excluded, ok := strings.CutPrefix(pattern, "-"); ok {
			if matchPattern(namespace, excluded) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

func matchPattern(namespace, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(namespace, prefix)
	}
	return namespace == pattern
}

func namespaceHash(namespace string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	return h.Sum32()
}
