package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// operation is one calculation offered by the explorer.
type operation struct {
	name   string
	params []paramInfo
	run    func(e *eos.EquationOfState, values []string) (string, error)
}

type paramInfo struct {
	name    string
	unit    string
	initial string
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

type exploreModel struct {
	err      error
	eos      *eos.EquationOfState
	filename string
	result   string
	ops      []operation
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type loadedMsg struct {
	err error
	eos *eos.EquationOfState
}

type resultMsg struct {
	err    error
	result string
}

func newExploreModel(filename string) *exploreModel {
	return &exploreModel{
		filename: filename,
		ops:      operations(),
		state:    stateSelectOp,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return m.load
}

func (m *exploreModel) load() tea.Msg {
	e, err := loadModel(m.filename)
	return loadedMsg{err: err, eos: e}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				if m.eos == nil {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.evaluate

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		m.err = msg.err
		m.eos = msg.eos

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *exploreModel) prepareInputs() {
	op := m.ops[m.selected]
	m.inputs = make([]textinput.Model, len(op.params))
	for i, p := range op.params {
		ti := textinput.New()
		ti.Placeholder = p.unit
		ti.Prompt = p.name + ": "
		ti.Width = 40
		ti.SetValue(p.initial)
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *exploreModel) evaluate() tea.Msg {
	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = input.Value()
	}
	out, err := m.ops[m.selected].run(m.eos, values)
	return resultMsg{result: out, err: err}
}

func (m *exploreModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.eos == nil {
		return "Loading model..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("FeOs Explorer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d components)", m.eos.Components()))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select a calculation:\n\n")
		for i, op := range m.ops {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatOp(op)))
			} else {
				b.WriteString("  " + formatOp(op))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("%s\n\n", nameStyle.Render(op.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(unitStyle.Render(op.params[i].unit))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter evaluate • esc back"))

	case stateShowResult:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("%s:\n\n", nameStyle.Render(op.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatOp(op operation) string {
	var params []string
	for _, p := range op.params {
		params = append(params, p.name)
	}
	return nameStyle.Render(op.name) + "(" + unitStyle.Render(strings.Join(params, ", ")) + ")"
}

func render(rows []row) (string, error) {
	var b strings.Builder
	if err := writeRows(&b, rows); err != nil {
		return "", err
	}
	return b.String(), nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(name).Value(s).Cause(err).Detail("not a number").Build()
	}
	return v, nil
}

func parseOrder(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(name).Value(s).Cause(err).Detail("not an integer").Build()
	}
	return v, nil
}

// tdx builds a state from temperature, density and molefracs inputs.
func tdx(e *eos.EquationOfState, values []string) (*eos.State, error) {
	t, err := parseFloat("temperature", values[0])
	if err != nil {
		return nil, err
	}
	rho, err := parseFloat("density", values[1])
	if err != nil {
		return nil, err
	}
	x, err := parseFloats(values[2])
	if err != nil {
		return nil, err
	}
	return eos.NewBuilder(e).
		Temperature(si.Kelvin(t)).
		Density(si.MolPerCubicMeter(rho)).
		Molefracs(x).
		Build()
}

func operations() []operation {
	temperature := paramInfo{"temperature", "K", "300"}
	density := paramInfo{"density", "mol/m³", "1000"}
	molefracs := paramInfo{"molefracs", "comma-separated", ""}

	return []operation{
		{
			name: "state at T, p, n",
			params: []paramInfo{
				temperature,
				{"pressure", "bar", "1"},
				{"moles", "mol, comma-separated", ""},
				{"phase", "liquid | vapor | empty", ""},
			},
			run: func(e *eos.EquationOfState, values []string) (string, error) {
				t, err := parseFloat("temperature", values[0])
				if err != nil {
					return "", err
				}
				p, err := parseFloat("pressure", values[1])
				if err != nil {
					return "", err
				}
				n, err := parseFloats(values[2])
				if err != nil {
					return "", err
				}
				if n == nil && e.Components() == 1 {
					n = []float64{1}
				}
				s, err := eos.NewBuilder(e).
					Temperature(si.Kelvin(t)).
					Pressure(si.Bar(p)).
					Moles(n).
					Phase(feos.ParsePhaseHint(values[3])).
					Build()
				if err != nil {
					return "", err
				}
				rows, err := properties(s)
				if err != nil {
					return "", err
				}
				return render(rows)
			},
		},
		{
			name:   "state at T, ρ, x",
			params: []paramInfo{temperature, density, molefracs},
			run: func(e *eos.EquationOfState, values []string) (string, error) {
				s, err := tdx(e, values)
				if err != nil {
					return "", err
				}
				rows, err := properties(s)
				if err != nil {
					return "", err
				}
				return render(rows)
			},
		},
		{
			name: "residual derivative",
			params: []paramInfo{
				temperature, density, molefracs,
				{"order in T", "integer", "0"},
				{"order in ρ", "integer", "1"},
			},
			run: func(e *eos.EquationOfState, values []string) (string, error) {
				s, err := tdx(e, values)
				if err != nil {
					return "", err
				}
				oT, err := parseOrder("order in T", values[3])
				if err != nil {
					return "", err
				}
				oRho, err := parseOrder("order in ρ", values[4])
				if err != nil {
					return "", err
				}
				v, err := s.ResidualDerivative(oT, oRho)
				if err != nil {
					return "", err
				}
				return num(v) + " " + derivativeUnit([2]int{oT, oRho}), nil
			},
		},
		{
			name:   "all derivatives",
			params: []paramInfo{temperature, density, molefracs},
			run: func(e *eos.EquationOfState, values []string) (string, error) {
				s, err := tdx(e, values)
				if err != nil {
					return "", err
				}
				return render(derivatives(s, eos.Orders()))
			},
		},
	}
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "interactive property explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.Unsupported(errors.PhaseBoundary, "explore needs an interactive terminal")
			}
			if modelFile == "" {
				return errors.FieldMissing(errors.PhaseParse, nil, "--model")
			}
			p := tea.NewProgram(newExploreModel(modelFile), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
