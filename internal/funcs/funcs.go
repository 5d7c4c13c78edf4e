package funcs

import (
	"time"
	"unicode/utf8"
)

var TemplateFuncs = map[string]any{
	"formatTime": formatTime,
	"truncate":   truncate,
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
