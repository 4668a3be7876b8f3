package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/forecast-terminal/internal/forecast"
	"github.com/ngmaloney/forecast-terminal/internal/models"
	"github.com/ngmaloney/forecast-terminal/internal/spots"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading   AppState = iota // Generating a forecast
	StateDisplay                   // Showing the forecast for the current spot
	StateSpotList                  // Choosing from saved spots
	StateSpotInput                 // Typing a new spot name
	StateError                     // Error state
)

var errNoSpotStore = errors.New("saved spots are not available")

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	// Services
	forecasts *forecast.Service
	spots     *spots.Service
	location  *time.Location
	now       func() time.Time

	// Data
	forecast *models.ForecastData
	days     []string
	dayIndex int
	cursor   int

	// Widgets
	spinner   spinner.Model
	spotList  list.Model
	spotInput textinput.Model
	saved     []models.Spot
}

// NewModel creates a new application model. spotSvc may be nil, in which
// case saved spots are disabled.
func NewModel(svc *forecast.Service, spotSvc *spots.Service, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "Spot name (e.g. Playa de la Malvarrosa, Spain)..."
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:     StateLoading,
		forecasts: svc,
		spots:     spotSvc,
		location:  loc,
		now:       time.Now,
		spinner:   s,
		spotInput: ti,
	}
}

// Init starts the first forecast
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchForecast(m.forecasts))
}

// Forecast returns the forecast currently on display, if any.
func (m Model) Forecast() *models.ForecastData { return m.forecast }

// State returns the current application state.
func (m Model) State() AppState { return m.state }

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateSpotList {
			m.spotList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case forecastFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("generating forecast: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.setForecast(msg.data)
		m.state = StateDisplay
		return m, nil

	case spotsFetchedMsg:
		// Don't leave the spinner while a forecast is still being generated
		if m.state == StateLoading {
			return m, nil
		}
		if msg.err != nil {
			m.err = fmt.Errorf("loading saved spots: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.saved = msg.spots
		m.spotList = createSpotList(msg.spots, m.width-4, m.height-8)
		m.state = StateSpotList
		return m, nil

	case spotSavedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("adding spot: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		return m.switchSpot(msg.spot.Name)

	case spotDeletedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("deleting spot: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		return m, fetchSavedSpots(m.spots)
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateDisplay:
			return m.handleDisplay(keyMsg)

		case StateSpotList:
			return m.handleSpotList(keyMsg)

		case StateSpotInput:
			return m.handleSpotInput(keyMsg)

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			// Any other key returns to the forecast, or retries if there is none
			m.err = nil
			if m.forecast == nil {
				m.state = StateLoading
				return m, tea.Batch(m.spinner.Tick, fetchForecast(m.forecasts))
			}
			m.state = StateDisplay
			return m, nil

		case StateLoading:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
		}
	}

	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSpotList:
		m.spotList, cmd = m.spotList.Update(msg)
	case StateSpotInput:
		m.spotInput, cmd = m.spotInput.Update(msg)
	}

	return m, cmd
}

func (m *Model) setForecast(data *models.ForecastData) {
	m.forecast = data
	m.days = data.DailyForecasts.Days()
	if m.dayIndex >= len(m.days) {
		m.dayIndex = 0
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.dayEntries())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) dayEntries() []models.ForecastEntry {
	if len(m.days) == 0 {
		return nil
	}
	return m.forecast.Day(m.days[m.dayIndex])
}

// regenerate starts a fresh forecast for the current spot.
func (m Model) regenerate() (tea.Model, tea.Cmd) {
	m.state = StateLoading
	return m, tea.Batch(m.spinner.Tick, fetchForecast(m.forecasts))
}

func (m Model) switchSpot(name string) (tea.Model, tea.Cmd) {
	m.forecasts = m.forecasts.ForSpot(name)
	m.forecast = nil
	m.days = nil
	m.dayIndex = 0
	m.cursor = 0
	return m.regenerate()
}

// handleDisplay handles keyboard input in display state
func (m Model) handleDisplay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit

	case "r":
		return m.regenerate()

	case "tab":
		if len(m.days) > 0 {
			m.dayIndex = (m.dayIndex + 1) % len(m.days)
			m.clampCursor()
		}
		return m, nil

	case "shift+tab":
		if len(m.days) > 0 {
			m.dayIndex = (m.dayIndex - 1 + len(m.days)) % len(m.days)
			m.clampCursor()
		}
		return m, nil

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "right", "l":
		if m.cursor < len(m.dayEntries())-1 {
			m.cursor++
		}
		return m, nil

	case "p":
		if m.spots == nil {
			m.err = errNoSpotStore
			m.state = StateError
			return m, nil
		}
		return m, fetchSavedSpots(m.spots)

	case "a":
		if m.spots == nil {
			m.err = errNoSpotStore
			m.state = StateError
			return m, nil
		}
		m.state = StateSpotInput
		m.spotInput.SetValue("")
		m.spotInput.Focus()
		return m, textinput.Blink
	}

	// 1-9 jump straight to a day
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.days) {
		m.dayIndex = n - 1
		m.clampCursor()
	}
	return m, nil
}

// handleSpotList handles keyboard input in the saved spot list
func (m Model) handleSpotList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Keys are passed straight to the list while filtering
	if m.spotList.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			if item, ok := m.spotList.SelectedItem().(spotItem); ok {
				return m.switchSpot(item.spot.Name)
			}
			return m, nil
		case "esc":
			m.state = StateDisplay
			return m, nil
		case "d":
			if item, ok := m.spotList.SelectedItem().(spotItem); ok {
				return m, deleteSpot(m.spots, item.spot.Name)
			}
			return m, nil
		case "a":
			m.state = StateSpotInput
			m.spotInput.SetValue("")
			m.spotInput.Focus()
			return m, textinput.Blink
		case "q":
			return m, tea.Quit
		}
	}

	m.spotList, cmd = m.spotList.Update(msg)
	return m, cmd
}

// handleSpotInput handles keyboard input while naming a new spot
func (m Model) handleSpotInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.spotInput.Value())
		if name == "" {
			return m, nil
		}
		m.spotInput.Blur()
		return m, saveSpot(m.spots, name)
	case tea.KeyEsc:
		m.spotInput.Blur()
		m.state = StateDisplay
		if m.forecast == nil {
			return m.regenerate()
		}
		return m, nil
	}

	m.spotInput, cmd = m.spotInput.Update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateSpotList:
		return m.viewSpotList()
	case StateSpotInput:
		return m.viewSpotInput()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := fmt.Sprintf("%s Generating forecast for %s...", m.spinner.View(), m.forecasts.Generator().SpotName())
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		titleStyle.Render("🌊 Forecast Terminal"),
		"",
		status,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		errorTitleStyle.Render("✗ Error"),
		"",
		errorMsg,
		"",
		helpStyle.Render("Press any key to continue • Q: Quit"),
	)
}

// viewSpotList renders the saved spot selection list
func (m Model) viewSpotList() string {
	var body string
	if len(m.saved) == 0 {
		body = mutedStyle.Render("No saved spots yet. Press A to add one.")
	} else {
		body = m.spotList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🌊 Saved Spots"),
		"",
		body,
		helpStyle.Render("↑/↓: Navigate • Enter: Select • D: Delete • A: Add • Esc: Back • Q: Quit"),
	)
}

// viewSpotInput renders the new spot prompt
func (m Model) viewSpotInput() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🌊 New Spot"),
		mutedStyle.Render("The forecast is synthetic; the name is only a label."),
		"",
		inputBoxStyle.Render(m.spotInput.View()),
		helpStyle.Render("Enter: Save and show • Esc: Cancel • Ctrl+C: Quit"),
	)
}

// viewDisplay renders the forecast for the selected day
func (m Model) viewDisplay() string {
	if m.forecast == nil {
		return "No forecast loaded"
	}

	var sections []string

	header := titleStyle.Render("🌊 "+m.forecast.SpotName) + "  " +
		mutedStyle.Render("generated "+humanize.RelTime(m.forecast.GeneratedAt, m.now(), "ago", "from now"))
	sections = append(sections, header, "", m.renderTabs())

	entries := m.dayEntries()
	if len(entries) == 0 {
		sections = append(sections, mutedStyle.Render("No entries for this day"))
	} else {
		if m.width >= desktopMinWidth {
			sections = append(sections, renderTable(entries, m.location, m.cursor))
		} else {
			sections = append(sections, renderCards(entries, m.location, m.cursor, m.width))
		}
		sections = append(sections,
			entryTooltip(entries[m.cursor], m.location),
			sectionHeaderStyle.Render("Viento y olas"),
			renderChart(entries, m.location, m.width),
		)
	}

	help := helpStyle.Render("Tab/1-5: Day • ←/→: Hour • R: Regenerate • P: Saved spots • A: Add spot • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.days))
	for i, key := range m.days {
		label := DayLabel(key, i)
		if i == m.dayIndex {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
