// ABOUTME: Bubble Tea Update() function for the live solver monitor
// ABOUTME: Handles window resize, quit keys, and incumbent/wave progress messages

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			m.cancel()

			return m, tea.Quit
		}

		return m, nil

	case Update:
		m.wave = msg.Wave
		m.elapsed = msg.Elapsed
		m.note = msg.Note

		if msg.Cost < m.bestCost {
			m.bestCost = msg.Cost
		}

		m.costHist = append(m.costHist, m.bestCost)
		if len(m.costHist) > maxHistory {
			m.costHist = m.costHist[len(m.costHist)-maxHistory:]
		}

		if msg.Done {
			return m, tea.Quit
		}

		return m, waitForUpdate(m.updateChan)
	}

	return m, nil
}
