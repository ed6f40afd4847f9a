package tui

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/genforge/genforge/orchestrator"
)

type progressMsg struct {
	rowsSoFar, totalRows int
}

type progressDoneMsg struct {
	summary orchestrator.Summary
}

// progressModel renders a single progress bar tracking rows generated
// against the run's target row count.
type progressModel struct {
	bar      progress.Model
	fraction float64
	done     bool
	summary  orchestrator.Summary
}

func newProgressModel() progressModel {
	return progressModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case progressMsg:
		if msg.totalRows > 0 {
			m.fraction = float64(msg.rowsSoFar) / float64(msg.totalRows)
		} else {
			m.fraction = 1
		}
		return m, nil
	case progressDoneMsg:
		m.done = true
		m.summary = msg.summary
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	label := StateStyle("running").Render("generating")
	return fmt.Sprintf("%s\n%s\n", label, m.bar.ViewAs(m.fraction))
}

// ProgressReporter drives a progress bar for the duration of a generate
// run. Update is safe to call from the processor's own goroutine; it never
// blocks on the TUI and has no effect on generated data.
type ProgressReporter struct {
	program   *tea.Program
	totalRows int
	done      int32
	wg        sync.WaitGroup
}

// NewProgressReporter starts rendering a progress bar against totalRows.
func NewProgressReporter(totalRows int) *ProgressReporter {
	r := &ProgressReporter{totalRows: totalRows}
	r.program = tea.NewProgram(newProgressModel())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_, _ = r.program.Run()
	}()
	return r
}

// Update reports that rowsSoFar of totalRows have been generated. Intended
// to be passed directly as a Processor's progress callback.
func (r *ProgressReporter) Update(rowsSoFar, totalRows int) {
	if atomic.LoadInt32(&r.done) != 0 {
		return
	}
	r.program.Send(progressMsg{rowsSoFar: rowsSoFar, totalRows: totalRows})
}

// Finish reports the run's final summary and stops the bar.
func (r *ProgressReporter) Finish(summary orchestrator.Summary) {
	if !atomic.CompareAndSwapInt32(&r.done, 0, 1) {
		return
	}
	r.program.Send(progressDoneMsg{summary: summary})
	r.wg.Wait()
}

// Stop forcibly quits the TUI program if Finish was never called (e.g. the
// caller returned early on a config error before any progress arrived).
func (r *ProgressReporter) Stop() {
	if !atomic.CompareAndSwapInt32(&r.done, 0, 1) {
		return
	}
	r.program.Quit()
	r.wg.Wait()
}
