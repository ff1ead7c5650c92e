package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ANSI codes used when Colors is enabled.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// TextFormatter is a custom logrus formatter.
type TextFormatter struct {
	Colors           bool
	DisableTimestamp bool
	DisableComponent bool
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	// Map logrus level strings to shorter versions for consistency
	levelStr := entry.Level.String()
	if levelStr == "warning" {
		levelStr = "warn"
	}
	level := strings.ToUpper(levelStr)
	b.WriteString(fmt.Sprintf("[%s]", f.colorLevel(entry.Level, level)))

	if component, ok := entry.Data["component"]; ok && !f.DisableComponent {
		b.WriteString(fmt.Sprintf(" [%s]", f.color(colorCyan, fmt.Sprintf("%v", component))))
	}

	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		funcName := filepath.Base(entry.Caller.Function)
		b.WriteString(fmt.Sprintf(" [%s:%d %s]", fileName, entry.Caller.Line, funcName))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Append remaining fields in a stable order
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", key, entry.Data[key]))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (f *TextFormatter) color(code, s string) string {
	if !f.Colors {
		return s
	}
	return code + s + colorReset
}

func (f *TextFormatter) colorLevel(level logrus.Level, s string) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return f.color(colorRed, s)
	case logrus.WarnLevel:
		return f.color(colorYellow, s)
	case logrus.DebugLevel, logrus.TraceLevel:
		return f.color(colorGray, s)
	default:
		return s
	}
}
