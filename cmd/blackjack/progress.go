package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"
)

// progressBar redraws a single-line bar as simulated rounds complete
type progressBar struct {
	mu      sync.Mutex
	w       io.Writer
	bar     progress.Model
	lastPct int
}

func newProgressBar(w io.Writer, noColor bool) *progressBar {
	opts := []progress.Option{progress.WithDefaultGradient(), progress.WithWidth(40)}
	if noColor {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	}
	return &progressBar{w: w, bar: progress.New(opts...), lastPct: -1}
}

// Update is safe to call from concurrent sessions
func (p *progressBar) Update(done, total int) {
	if total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pct := done * 100 / total
	if pct == p.lastPct {
		return
	}
	p.lastPct = pct
	fmt.Fprintf(p.w, "\r%s %d/%d rounds", p.bar.ViewAs(float64(done)/float64(total)), done, total)
}

func (p *progressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastPct >= 0 {
		fmt.Fprintln(p.w)
	}
}
