package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbonfocus/internal/footprint"
)

// CalculatorState represents the current state of the calculator TUI.
type CalculatorState int

const (
	// CalculatorStateEditing indicates the user is adjusting inputs.
	CalculatorStateEditing CalculatorState = iota
	// CalculatorStateCalculating indicates a calculation is in flight.
	CalculatorStateCalculating
	// CalculatorStateQuitting indicates the application is exiting.
	CalculatorStateQuitting
)

// Row indexes of the input form.
const (
	RowCountry = iota
	RowDistance
	RowElectricity
	RowWaste
	RowMeals
	rowCount
)

// Default dimensions for the calculator model.
const (
	calculatorDefaultWidth  = 80
	calculatorDefaultHeight = 24
	inputLabelWidth         = 34
)

// CalculateFunc computes a footprint for the model. It runs inside a tea.Cmd.
type CalculateFunc func(context.Context, footprint.Input) (footprint.Result, error)

// calculateMsg is sent when a calculation completes. generation is the
// input generation the calculation was started for.
type calculateMsg struct {
	generation int
	result     footprint.Result
	err        error
}

// CalculatorModel is the Bubble Tea model for the interactive calculator.
type CalculatorModel struct {
	ctx context.Context

	countries  []string
	countryIdx int
	input      footprint.Input

	focusedRow int
	editMode   bool
	editErr    string
	textInput  textinput.Model

	result    *footprint.Result
	err       error
	state     CalculatorState
	precision int

	// generation increments on every input change; results for an older
	// generation are dropped.
	generation int

	width  int
	height int

	calculateFn CalculateFunc
}

// NewCalculatorModel creates a calculator over countries, starting from
// initial. A nil calculateFn uses footprint.Calculate.
//
// If initial.Country is not in countries the first country is selected.
func NewCalculatorModel(
	ctx context.Context,
	countries []string,
	initial footprint.Input,
	precision int,
	calculateFn CalculateFunc,
) *CalculatorModel {
	if calculateFn == nil {
		calculateFn = func(_ context.Context, in footprint.Input) (footprint.Result, error) {
			return footprint.Calculate(in)
		}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 12

	m := &CalculatorModel{
		ctx:         ctx,
		countries:   countries,
		input:       initial,
		textInput:   ti,
		state:       CalculatorStateEditing,
		precision:   precision,
		width:       calculatorDefaultWidth,
		height:      calculatorDefaultHeight,
		calculateFn: calculateFn,
	}

	m.countryIdx = 0
	for i, c := range countries {
		if c == initial.Country {
			m.countryIdx = i
			break
		}
	}
	if len(countries) > 0 {
		m.input.Country = countries[m.countryIdx]
	}

	m.input, _ = footprint.Bounds.Clamp(m.input)
	return m
}

// Init initializes the model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case calculateMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.state = CalculatorStateEditing
		if msg.err != nil {
			m.err = msg.err
			m.result = nil
			return m, nil
		}
		m.err = nil
		res := msg.result
		m.result = &res
		return m, nil

	case tea.KeyMsg:
		if m.editMode {
			return m.handleEditModeKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input while navigating the form.
//
//nolint:exhaustive // Only handling relevant key types for navigation.
func (m *CalculatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit

	case tea.KeyUp:
		m.moveFocus(-1)
	case tea.KeyDown, tea.KeyTab:
		m.moveFocus(1)
	case tea.KeyLeft:
		m.adjust(-1)
	case tea.KeyRight:
		m.adjust(1)

	case tea.KeyEnter:
		if m.focusedRow == RowCountry {
			m.adjust(1)
			return m, nil
		}
		return m, m.openEditor()

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = CalculatorStateQuitting
			return m, tea.Quit
		case "c":
			return m, m.submit()
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		case "h":
			m.adjust(-1)
		case "l":
			m.adjust(1)
		}
	}

	return m, nil
}

// handleEditModeKey routes keys to the text input until Enter or Esc.
//
//nolint:exhaustive // Only handling keys that end editing.
func (m *CalculatorModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit

	case tea.KeyEnter:
		if err := m.commitEdit(m.textInput.Value()); err != nil {
			m.editErr = err.Error()
			return m, nil
		}
		m.closeEditor()
		return m, nil

	case tea.KeyEsc:
		m.closeEditor()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *CalculatorModel) moveFocus(delta int) {
	m.focusedRow = (m.focusedRow + delta + rowCount) % rowCount
}

// adjust moves the focused value by one step in direction dir, staying
// within bounds. The country row cycles through the list.
func (m *CalculatorModel) adjust(dir int) {
	b := footprint.Bounds
	step := float64(dir)

	switch m.focusedRow {
	case RowCountry:
		if len(m.countries) == 0 {
			return
		}
		m.countryIdx = (m.countryIdx + dir + len(m.countries)) % len(m.countries)
		m.input.Country = m.countries[m.countryIdx]
	case RowDistance:
		m.input.DailyDistanceKm = b.DistanceKm.Clamp(m.input.DailyDistanceKm + step*b.DistanceKm.Step)
	case RowElectricity:
		m.input.MonthlyElectricityKWh = b.ElectricityKWh.Clamp(m.input.MonthlyElectricityKWh + step*b.ElectricityKWh.Step)
	case RowWaste:
		m.input.WeeklyWasteKg = b.WasteKg.Clamp(m.input.WeeklyWasteKg + step*b.WasteKg.Step)
	case RowMeals:
		m.input.MealsPerDay = int(b.Meals.Clamp(float64(m.input.MealsPerDay) + step*b.Meals.Step))
	}

	m.invalidate()
}

func (m *CalculatorModel) openEditor() tea.Cmd {
	m.editMode = true
	m.editErr = ""
	m.textInput.SetValue("")
	m.textInput.Placeholder = m.fieldValue(m.focusedRow)
	return m.textInput.Focus()
}

func (m *CalculatorModel) closeEditor() {
	m.editMode = false
	m.editErr = ""
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// commitEdit parses raw into the focused field, clamped to its bounds.
// An empty value keeps the current one.
func (m *CalculatorModel) commitEdit(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	b := footprint.Bounds
	if m.focusedRow == RowMeals {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("meals must be a whole number, got %q", raw)
		}
		m.input.MealsPerDay = int(b.Meals.Clamp(float64(n)))
		m.invalidate()
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %q", raw)
	}

	switch m.focusedRow {
	case RowDistance:
		m.input.DailyDistanceKm = b.DistanceKm.Clamp(v)
	case RowElectricity:
		m.input.MonthlyElectricityKWh = b.ElectricityKWh.Clamp(v)
	case RowWaste:
		m.input.WeeklyWasteKg = b.WasteKg.Clamp(v)
	}
	m.invalidate()
	return nil
}

// invalidate drops a result that no longer matches the inputs, along with
// any calculation still in flight.
func (m *CalculatorModel) invalidate() {
	m.generation++
	m.result = nil
	m.err = nil
	if m.state == CalculatorStateCalculating {
		m.state = CalculatorStateEditing
	}
}

// submit starts a calculation for the current inputs.
func (m *CalculatorModel) submit() tea.Cmd {
	m.state = CalculatorStateCalculating

	// Capture values so the command does not read model fields concurrently.
	ctx := m.ctx
	in := m.input
	fn := m.calculateFn
	gen := m.generation

	return func() tea.Msg {
		res, err := fn(ctx, in)
		return calculateMsg{generation: gen, result: res, err: err}
	}
}

func (m *CalculatorModel) fieldValue(row int) string {
	switch row {
	case RowCountry:
		return m.input.Country
	case RowDistance:
		return strconv.FormatFloat(m.input.DailyDistanceKm, 'f', -1, 64)
	case RowElectricity:
		return strconv.FormatFloat(m.input.MonthlyElectricityKWh, 'f', -1, 64)
	case RowWaste:
		return strconv.FormatFloat(m.input.WeeklyWasteKg, 'f', -1, 64)
	case RowMeals:
		return strconv.Itoa(m.input.MealsPerDay)
	}
	return ""
}

// View renders the current view.
func (m *CalculatorModel) View() string {
	if m.state == CalculatorStateQuitting {
		return ""
	}

	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	sb.WriteString(titleStyle.Render("Personal Carbon Calculator"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderForm())
	sb.WriteString("\n")

	switch {
	case m.state == CalculatorStateCalculating:
		sb.WriteString(RenderLoadingIndicator())
		sb.WriteString("\n\n")
	case m.err != nil:
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorError).Render("Error: " + m.err.Error()))
		sb.WriteString("\n\n")
	case m.result != nil:
		sb.WriteString(RenderResult(*m.result, m.precision, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString(RenderCalculatorHelp(m.editMode))
	return sb.String()
}

func (m *CalculatorModel) renderForm() string {
	labels := [rowCount]string{
		RowCountry:     "Country",
		RowDistance:    "Daily commute distance (km)",
		RowElectricity: "Monthly electricity (kWh)",
		RowWaste:       "Waste generated per week (kg)",
		RowMeals:       "Meals per day",
	}

	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	focusStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	var sb strings.Builder
	for row := range rowCount {
		focused := row == m.focusedRow

		if focused {
			sb.WriteString(focusStyle.Render(IconFocus + " "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", inputLabelWidth, labels[row])))

		switch {
		case focused && m.editMode:
			sb.WriteString(m.textInput.View())
			sb.WriteString(IconCursor)
		case focused:
			sb.WriteString(focusStyle.Render(fmt.Sprintf("%s %s %s", IconArrowLeft, m.fieldValue(row), IconArrowRight)))
		default:
			sb.WriteString(valueStyle.Render(m.fieldValue(row)))
		}
		sb.WriteString("\n")
	}

	if m.editErr != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorError).Render("  " + m.editErr))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderCalculatorHelp renders the keyboard shortcut help text.
func RenderCalculatorHelp(editing bool) string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	shortcuts := []string{
		"↑/↓: Navigate",
		"←/→: Adjust",
		"Enter: Type value",
		"c: Calculate",
		"q: Quit",
	}
	if editing {
		shortcuts = []string{"Enter: Apply", "Esc: Cancel"}
	}

	return helpStyle.Render(strings.Join(shortcuts, " | "))
}

// Input returns the current form values.
func (m *CalculatorModel) Input() footprint.Input { return m.input }

// Result returns the last successful result, or nil if none is current.
func (m *CalculatorModel) Result() *footprint.Result { return m.result }

// State returns the current state.
func (m *CalculatorModel) State() CalculatorState { return m.state }

// FocusedRow returns the index of the focused row.
func (m *CalculatorModel) FocusedRow() int { return m.focusedRow }

// Err returns the last calculation error.
func (m *CalculatorModel) Err() error { return m.err }
