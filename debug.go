package hyperspace

import (
	"io"
	"log"
	"os"
	"time"
)

// logger receives diagnostics. It discards everything until debug output is
// enabled with SetDebugMode or redirected with SetLogOutput.
var logger = log.New(io.Discard, "[hyperspace] ", log.Ltime|log.Lmicroseconds)

// SetDebugMode routes diagnostics to stderr when enabled and discards them
// otherwise.
func SetDebugMode(enabled bool) {
	if enabled {
		logger.SetOutput(os.Stderr)
		return
	}
	logger.SetOutput(io.Discard)
}

// SetLogOutput routes diagnostics to w.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// debugStats holds per-frame timing. Only populated when the host is in
// debug mode.
type debugStats struct {
	introTime    time.Duration
	revealTime   time.Duration
	drawTime     time.Duration
	revealPixels int
	visibleStars int
}

// debugLog prints the frame stats.
func (h *Host) debugLog(stats debugStats) {
	if !h.debug {
		return
	}
	total := stats.introTime + stats.revealTime + stats.drawTime
	logger.Printf("intro: %v | reveal: %v | draw: %v | total: %v",
		stats.introTime, stats.revealTime, stats.drawTime, total)
	logger.Printf("stars visible: %d | reveal pixels: %d",
		stats.visibleStars, stats.revealPixels)
}

// countVisible counts stars marked visible by the last step.
func countVisible(stars []Star) int {
	n := 0
	for i := range stars {
		if stars[i].Visible {
			n++
		}
	}
	return n
}
