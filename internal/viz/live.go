package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/leachsim/internal/leach"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveModel steps the column one time row per tick and renders the
// current profile as a color strip.
type LiveModel struct {
	grid    leach.Grid
	params  leach.Params
	stepper *leach.Stepper

	conc    leach.Profile
	biomass leach.Profile
	nextC   leach.Profile
	nextB   leach.Profile

	initConc    float64
	initBiomass float64

	step    int
	gas     float64
	scale   float64
	fps     int
	running bool
	err     error
}

func NewLive(grid leach.Grid, p leach.Params, initConc, initBiomass float64, fps int) LiveModel {
	m := LiveModel{
		grid:        grid,
		params:      p,
		stepper:     leach.NewStepper(grid, p),
		initConc:    initConc,
		initBiomass: initBiomass,
		fps:         fps,
		running:     true,
	}
	m.reset()
	return m
}

func (m *LiveModel) reset() {
	m.conc = make(leach.Profile, m.grid.Nx)
	m.biomass = make(leach.Profile, m.grid.Nx)
	for i := range m.conc {
		m.conc[i] = m.initConc
		m.biomass[i] = m.initBiomass
	}
	m.nextC = make(leach.Profile, m.grid.Nx)
	m.nextB = make(leach.Profile, m.grid.Nx)
	m.step = 0
	m.gas = 0
	m.scale = m.initConc
	if m.scale == 0 {
		m.scale = 1
	}
	m.err = nil
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil && m.step < m.grid.Steps-1 {
			delta, err := m.stepper.Step(m.step+1, m.conc, m.biomass, m.nextC, m.nextB)
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.conc, m.nextC = m.nextC, m.conc
				m.biomass, m.nextB = m.nextB, m.biomass
				m.gas += delta
				m.step++
				for _, v := range m.conc {
					if v > m.scale {
						m.scale = v
					}
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("leachsim live"))
	sb.WriteString("\n")
	sb.WriteString(ProfileBar(m.conc, m.scale, 40))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}
	row("day", fmt.Sprintf("%.1f / %.1f", float64(m.step)*m.grid.Dt, m.grid.Duration))
	row("surface", fmt.Sprintf("%.2f mg/L", m.conc[0]))
	row("base", fmt.Sprintf("%.2f mg/L", m.conc[len(m.conc)-1]))
	row("biogas", fmt.Sprintf("%.2f L", m.gas))

	if m.err != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("unstable: %v", m.err)))
		sb.WriteString("\n")
	} else if m.step >= m.grid.Steps-1 {
		sb.WriteString(valueStyle.Render("done"))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	sb.WriteString("\n")
	return sb.String()
}
