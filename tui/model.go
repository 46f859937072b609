// ABOUTME: Terminal UI model and core state management for the live solver monitor
// ABOUTME: Bubble Tea model tracking incumbent cost, per-wave timing, and the deadline bar

// Package tui provides a live-monitoring terminal UI for the multi-start
// driver: an incumbent cost trend, per-wave status, and an elapsed/deadline
// bar.
package tui

import (
	"context"
	"math"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tspsolver/config"
)

// keyMap is the monitor's single key binding, kept as a bubbles/key map
// (rather than a bare string switch) so the quit key's help text renders
// consistently with the rest of the status line.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// Update is one progress sample pushed from the solve goroutine: either a
// completed wave or the final result.
type Update struct {
	Wave     int
	Elapsed  time.Duration
	Cost     float64
	Done     bool
	Note     string
	BestTour []int
}

// Options configures a Run call.
type Options struct {
	DeadlineSeconds float64
	AlgorithmName   string
}

// Solve is the function the TUI drives: it runs the search, reporting
// progress on updates. ctx is cancelled when the user quits the monitor.
type Solve func(ctx context.Context, updates chan<- Update)

const maxHistory = 200

// model holds the TUI state.
type model struct {
	opts         Options
	sharedConfig *config.SharedConfig
	solve        Solve
	debugf       func(string, ...interface{})

	ctx    context.Context //nolint:containedctx // framework owns the model lifecycle
	cancel context.CancelFunc

	updateChan chan Update

	startTime time.Time
	wave      int
	elapsed   time.Duration
	bestCost  float64
	note      string
	costHist  []float64

	quitting bool
	width    int
	height   int
}

// Run starts the Bubble Tea program driving solve and displaying its
// progress until the user quits or solve sends an update marked Done.
func Run(opts Options, sharedConfig *config.SharedConfig, solve Solve, debugf func(string, ...interface{})) error {
	ctx, cancel := context.WithCancel(context.Background())

	m := model{
		opts:         opts,
		sharedConfig: sharedConfig,
		solve:        solve,
		debugf:       debugf,
		ctx:          ctx,
		cancel:       cancel,
		updateChan:   make(chan Update, 16),
		startTime:    time.Now(),
		bestCost:     posInf,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	cancel()

	return err
}

var posInf = math.Inf(1)

func (m model) Init() tea.Cmd {
	return tea.Batch(m.startSolve(), waitForUpdate(m.updateChan))
}

// startSolve launches solve in a goroutine and returns a no-op command;
// solve reports exclusively through the update channel.
func (m model) startSolve() tea.Cmd {
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				if m.debugf != nil {
					m.debugf("[PANIC] solve panic: %v\n%s", r, string(debug.Stack()))
				}

				panic(r)
			}
		}()

		m.solve(m.ctx, m.updateChan)

		return nil
	}
}

// waitForUpdate waits for the next progress update and returns it as a
// Bubble Tea message.
func waitForUpdate(updateChan <-chan Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updateChan
		if !ok {
			return nil
		}

		return update
	}
}
