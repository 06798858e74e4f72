package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the arbor ASCII banner with the library version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Indigo-to-rose gradient, one color per line
	s1 := termenv.String("            _               ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  __ _ _ __| |__   ___  _ __ ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" / _` | '__| '_ \\ / _ \\| '__|").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("| (_| | |  | |_) | (_) | |   ").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" \\__,_|_|  |_.__/ \\___/|_|   ").Foreground(p.Color("#f472b6"))
	ver := termenv.String("  v" + strings.TrimSpace(version)).Faint()

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(ver)
	fmt.Println()
}
