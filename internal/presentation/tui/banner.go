package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Longboard banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Indigo to rose gradient.
	colors := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}
	lines := []string{
		" _                      _                         _",
		"| |    ___  _ __   __ _| |__   ___   __ _ _ __ __| |",
		"| |   / _ \\| '_ \\ / _` | '_ \\ / _ \\ / _` | '__/ _` |",
		"| |__| (_) | | | | (_| | |_) | (_) | (_| | | | (_| |",
		"|_____\\___/|_| |_|\\__, |_.__/ \\___/ \\__,_|_|  \\__,_|",
		"                  |___/",
	}
	fmt.Fprintln(w)
	for i, l := range lines {
		c := colors[min(i, len(colors)-1)]
		fmt.Fprintln(w, out.String(l).Foreground(out.Color(c)))
	}
	fmt.Fprintln(w)
}

// Warn colours a warning for w's terminal profile.
func Warn(w io.Writer, msg string) string {
	out := termenv.NewOutput(w)
	return out.String(msg).Foreground(out.Color("#fbbf24")).Bold().String()
}
