// ABOUTME: Rendering for the live solver monitor
// ABOUTME: Cost trend sparkline, elapsed/deadline bar, and wave/algorithm status line

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	costStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	barFillChar = "█"
	barVoidChar = "░"
)

func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			if m.debugf != nil {
				m.debugf("[PANIC] View panic: %v\n%s", r, string(debug.Stack()))
			}

			panic(r)
		}
	}()

	if m.quitting {
		return "Stopping...\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("tspsolver — %s", m.opts.AlgorithmName)))

	costStr := "∞"
	if m.bestCost < posInf {
		costStr = fmt.Sprintf("%.4f", m.bestCost)
	}

	fmt.Fprintf(&b, "Wave %-4d  Best cost: %s\n", m.wave, costStyle.Render(costStr))
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("Elapsed: %s / %.0fs", m.elapsed.Round(time.Second), m.opts.DeadlineSeconds)))

	b.WriteString(m.renderDeadlineBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderSparkline())

	if m.note != "" {
		fmt.Fprintf(&b, "\n\n%s\n", dimStyle.Render(m.note))
	}

	fmt.Fprintf(&b, "\n\n%s: %s\n", keys.Quit.Help().Key, keys.Quit.Help().Desc)

	return b.String()
}

func (m model) renderDeadlineBar() string {
	width := 40
	if m.width > 0 && m.width-10 < width {
		width = m.width - 10
	}
	if width < 5 {
		width = 5
	}

	frac := 0.0
	if m.opts.DeadlineSeconds > 0 {
		frac = m.elapsed.Seconds() / m.opts.DeadlineSeconds
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))

	return "[" + strings.Repeat(barFillChar, filled) + strings.Repeat(barVoidChar, width-filled) + "]"
}

// renderSparkline draws the incumbent cost trend as a one-line bar chart
// normalized to [min, max] of the recorded history.
func (m model) renderSparkline() string {
	if len(m.costHist) == 0 {
		return ""
	}

	const levels = "▁▂▃▄▅▆▇█"

	min, max := m.costHist[0], m.costHist[0]
	for _, c := range m.costHist {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	var b strings.Builder
	for _, c := range m.costHist {
		idx := 0
		if max > min {
			idx = int((c - min) / (max - min) * float64(len(levels)-1))
		}

		b.WriteRune([]rune(levels)[idx])
	}

	return dimStyle.Render("cost trend: ") + b.String()
}
