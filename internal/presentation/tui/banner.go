package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Viveka ASCII banner with a violet gradient.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" __      __ _              _         ", "#818cf8"},
		{" \\ \\    / /(_)__   __ ___ | | __ __ _ ", "#a78bfa"},
		{"  \\ \\  / / | |\\ \\ / // _ \\| |/ // _` |", "#c084fc"},
		{"   \\ \\/ /  | | \\ V /|  __/|   <| (_| |", "#e879f9"},
		{"    \\__/   |_|  \\_/  \\___||_|\\_\\\\__,_|", "#f472b6"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
