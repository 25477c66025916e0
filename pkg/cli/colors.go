package cli

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// colorLevel caches the detected color support: 0=none, 1=basic(16)
var (
	colorLevelOnce sync.Once
	colorLevelVal  int

	// NoColor forces colors off regardless of terminal detection.
	// Set by the -no-color flag before any output happens.
	NoColor bool
)

func detectColorLevel() int {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return 0
	}

	// Not a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return 0
	}

	if os.Getenv("TERM") == "dumb" {
		return 0
	}

	return 1
}

func colorsEnabled() bool {
	if NoColor {
		return false
	}
	colorLevelOnce.Do(func() { colorLevelVal = detectColorLevel() })
	return colorLevelVal > 0
}

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
)

func paint(code, s string) string {
	if !colorsEnabled() {
		return s
	}
	return code + s + ansiReset
}

func bold(s string) string  { return paint(ansiBold, s) }
func dim(s string) string   { return paint(ansiDim, s) }
func green(s string) string { return paint(ansiGreen, s) }
func red(s string) string   { return paint(ansiRed, s) }
func cyan(s string) string  { return paint(ansiCyan, s) }
