package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	` __  __ _           _ ____         __  __`,
	`|  \/  (_)_ __   __| | __ ) _   _ / _|/ _| ___ _ __`,
	`| |\/| | | '_ \ / _' |  _ \| | | | |_| |_ / _ \ '__|`,
	`| |  | | | | | | (_| | |_) | |_| |  _|  _|  __/ |`,
	`|_|  |_|_|_| |_|\__,_|____/ \__,_|_| |_|  \___|_|`,
}

// Teal to violet, one colour per line.
var bannerColors = []string{"#2dd4bf", "#38bdf8", "#818cf8", "#a78bfa", "#c084fc"}

// PrintBanner writes the ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
