package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/controller"
	"github.com/Veraticus/fraudwatch/internal/history"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/Veraticus/fraudwatch/internal/service"
	"github.com/Veraticus/fraudwatch/internal/tui/components"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// notice is a one-line status message under the panels.
type notice struct {
	text  string
	isErr bool
}

// Model holds the main TUI state.
type Model struct {
	ctx          context.Context
	predictor    service.Predictor
	lastWarning  error
	store        *history.Store
	ctrl         *controller.Controller
	notice       notice
	theme        themes.Theme
	help         help.Model
	config       Config
	keymap       KeyMap
	spinner      spinner.Model
	amount       textinput.Model
	result       components.ResultPanelModel
	history      components.HistoryTableModel
	stats        components.StatsPanelModel
	focus        field
	width        int
	height       int
	showFullHelp bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	amount := textinput.New()
	amount.Placeholder = "e.g. 125.50"
	amount.Prompt = ""
	amount.CharLimit = 16
	amount.Width = 16
	amount.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:       ctx,
		predictor: cfg.Predictor,
		store:     cfg.History,
		ctrl:      controller.New(),
		theme:     cfg.Theme,
		help:      help.New(),
		config:    cfg,
		keymap:    DefaultKeyMap(),
		spinner:   spin,
		amount:    amount,
		result:    components.NewResultPanelModel(cfg.Theme),
		history:   components.NewHistoryTableModel(cfg.Theme),
		stats:     components.NewStatsPanelModel(cfg.Theme),
		focus:     fieldAmount,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.handleResize()

	return m
}

// Init loads cached history, then fetches the current history and starts
// listening for refresh warnings.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if m.store != nil {
		cmds = append(cmds,
			tea.Sequence(m.warmHistory(), m.refreshHistory()),
			waitForWarning(m.store),
		)
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case predictionResultMsg:
		return m.handlePrediction(msg)

	case historyUpdatedMsg:
		if m.store != nil {
			entries := m.store.Snapshot()
			m.history.SetEntries(entries)
			m.stats.SetEntries(entries)
			slog.Debug("History updated", "source", msg.source, "entries", m.history.Len())
		}
		return m, nil

	case historyWarningMsg:
		m.lastWarning = msg.err
		return m, waitForWarning(m.store)

	case exportDoneMsg:
		m.handleExport(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

// handleKey routes key presses. Global bindings win; the rest go to the
// focused form field.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Clear):
		m.ctrl.Clear()
		m.result.SetResult(nil)
		m.notice = notice{}
		m.syncAmount()
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m, m.setFocus(m.focus.next())

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.setFocus(m.focus.prev())

	case key.Matches(msg, m.keymap.ScrollUp):
		m.history.MoveUp(m.history.PageSize())
		return m, nil

	case key.Matches(msg, m.keymap.ScrollDown):
		m.history.MoveDown(m.history.PageSize())
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		if m.store == nil {
			return m, nil
		}
		return m, m.refreshHistory()

	case key.Matches(msg, m.keymap.ExportCSV):
		return m, exportHistory(m.config.ExportDir, m.history.Entries())

	case key.Matches(msg, m.keymap.ExportChart):
		return m, exportChart(m.config.ExportDir, m.history.Entries())
	}

	scenarios := preset.All()
	for i, binding := range m.keymap.Presets {
		if i < len(scenarios) && key.Matches(msg, binding) {
			return m.applyPreset(scenarios[i].Name)
		}
	}

	if m.focus == fieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		if value := m.amount.Value(); value != m.ctrl.Input().AmountText {
			if err := m.ctrl.SetField(model.FieldAmount, value); err != nil {
				common.LogDebug("Rejected amount edit", common.Fields{"error": err.Error()})
			}
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.showFullHelp = !m.showFullHelp
	case key.Matches(msg, m.keymap.Decrease):
		m.stepFocused(-1)
	case key.Matches(msg, m.keymap.Increase):
		m.stepFocused(1)
	}

	return m, nil
}

// submit starts a prediction for the current form.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, err := m.ctrl.Submit()
	if err != nil {
		return m.rejected(err), nil
	}

	m.notice = notice{}
	return m, tea.Batch(m.submitPrediction(sub), m.spinner.Tick)
}

// applyPreset fills the form from a quick-test scenario and submits it.
func (m Model) applyPreset(name string) (tea.Model, tea.Cmd) {
	sub, err := m.ctrl.ApplyPreset(name)
	m.syncAmount()
	if err != nil {
		return m.rejected(err), nil
	}

	m.notice = notice{text: fmt.Sprintf("%s Quick test: %s", themes.GetPresetIcon(name), name)}
	return m, tea.Batch(m.submitPrediction(sub), m.spinner.Tick)
}

// rejected records a submission the controller refused. Validation errors are
// surfaced by the controller itself.
func (m Model) rejected(err error) Model {
	switch {
	case errors.Is(err, common.ErrSubmitInFlight):
		m.notice = notice{text: "A prediction is already in progress."}
	case common.IsValidation(err):
		m.notice = notice{}
	default:
		m.notice = notice{text: err.Error(), isErr: true}
	}
	return m
}

// handlePrediction applies a response through the controller. Success kicks
// off a history refresh that the prediction flow does not wait for.
func (m Model) handlePrediction(msg predictionResultMsg) (tea.Model, tea.Cmd) {
	switch m.ctrl.Resolve(msg.seq, msg.result, msg.err) {
	case controller.ResolutionSucceeded:
		m.result.SetResult(m.ctrl.Result())
		if m.store != nil {
			return m, m.refreshHistory()
		}

	case controller.ResolutionFailed:
		common.LogError(m.ctrl.Err(), "Prediction failed", common.Fields{"seq": msg.seq})

	case controller.ResolutionDiscarded:
		slog.Debug("Dropping prediction response after clear", "seq", msg.seq)

	case controller.ResolutionIgnored:
		slog.Debug("Ignoring unexpected prediction response", "seq", msg.seq)
	}

	return m, nil
}

func (m *Model) handleExport(msg exportDoneMsg) {
	if msg.err != nil {
		common.LogError(msg.err, "Export failed", common.Fields{"kind": msg.kind})
		m.notice = notice{text: fmt.Sprintf("Export %s failed: %v", msg.kind, msg.err), isErr: true}
		return
	}
	m.notice = notice{text: fmt.Sprintf("Saved %s to %s", msg.kind, msg.path)}
}

// setFocus moves focus to f. Only the amount field takes text input.
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	if f == fieldAmount {
		return m.amount.Focus()
	}
	m.amount.Blur()
	return nil
}

func (m *Model) stepFocused(delta int) {
	f := m.focus
	if err := m.ctrl.Edit(func(in *model.TransactionInput) error {
		return f.step(in, delta)
	}); err != nil {
		common.LogDebug("Rejected field edit", common.Fields{"field": f.label(), "error": err.Error()})
	}
}

// syncAmount copies the controller's amount into the text input after the
// form was changed programmatically.
func (m *Model) syncAmount() {
	m.amount.SetValue(m.ctrl.Input().AmountText)
	m.amount.CursorEnd()
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	left, right := m.columnWidths()
	if right == 0 {
		m.result.Resize(left - 4)
	} else {
		m.result.Resize(right - 4)
	}

	m.help.Width = m.width
	// Panel border and padding take 6 columns.
	m.history.Resize(m.width-6, max(m.height/3, 5))
	m.stats.Resize(m.width - 6)
}

// Controller exposes the workflow state for tests and the CLI.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}
