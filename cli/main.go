package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	guestTable  table.Model
	itemTable   table.Model
	resultTable table.Model
	stats       *Stats
	spinner     spinner.Model
	textInput   textinput.Model
	client      *ApiClient
	loading     bool
	currentView string
	error       string
	lastBudget  float64
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Plan Party", desc: "Find the best guest list and menu for a budget"},
		item{title: "Manage Guests", desc: "View and manage the guest pool"},
		item{title: "Menu Catalog", desc: "View available foods and drinks"},
		item{title: "Statistics", desc: "Aggregate stats for the last optimization"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Fête Party Planner"

	guestTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Intimacy", Width: 10},
			{Title: "Rated Items", Width: 12},
			{Title: "Dietary", Width: 22},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	itemTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Item", Width: 24},
			{Title: "Category", Width: 10},
			{Title: "Unit Cost", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	resultTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Guests", Width: 30},
			{Title: "Menu", Width: 34},
			{Title: "Cost", Width: 9},
			{Title: "Happiness", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ti := textinput.New()
	ti.Placeholder = "Budget in dollars, e.g. 150"
	ti.CharLimit = 12
	ti.Width = 30

	return Model{
		mainMenu:    mainMenu,
		guestTable:  guestTable,
		itemTable:   itemTable,
		resultTable: resultTable,
		spinner:     s,
		textInput:   ti,
		client:      NewApiClient(),
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.textInput.Focused() {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Plan Party":
						m.currentView = "budget"
						m.error = ""
						m.textInput.SetValue("")
						m.textInput.Focus()
						return m, nil
					case "Manage Guests":
						m.currentView = "guests"
						return m, fetchGuests(m.client)
					case "Menu Catalog":
						m.currentView = "items"
						return m, fetchItems(m.client)
					case "Statistics":
						m.currentView = "stats"
						return m, fetchStats(m.client)
					}
				}
			} else if m.currentView == "budget" && m.textInput.Focused() {
				budget, err := strconv.ParseFloat(strings.TrimSpace(m.textInput.Value()), 64)
				if err != nil || budget <= 0 {
					m.error = "Enter a positive budget"
					return m, nil
				}
				m.lastBudget = budget
				m.currentView = "optimizing"
				m.loading = true
				m.error = ""
				m.textInput.Blur()
				return m, tea.Batch(m.spinner.Tick, runOptimize(m.client, budget))
			}
		case "esc":
			if m.currentView == "results" {
				m.currentView = "budget"
				m.textInput.Focus()
				return m, nil
			} else if m.currentView != "main" {
				m.currentView = "main"
				m.textInput.Blur()
				m.error = ""
			}
		case "g":
			if m.currentView == "guests" {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, generateGuests(m.client, 5))
			}
		case "d":
			if m.currentView == "guests" {
				row := m.guestTable.SelectedRow()
				if row != nil {
					return m, deleteGuest(m.client, row[0])
				}
			}
		}
	case guestsMsg:
		m.loading = false
		m.guestTable.SetRows(guestRows(msg.guests))
		return m, nil
	case itemsMsg:
		m.loading = false
		m.itemTable.SetRows(itemRows(msg.items))
		return m, nil
	case optimizeMsg:
		m.loading = false
		m.currentView = "results"
		m.resultTable.SetRows(resultRows(msg.result.Recommendations))
		m.stats = msg.result.Stats
		return m, nil
	case statsMsg:
		m.loading = false
		m.stats = msg.stats
		return m, nil
	case errorMsg:
		m.loading = false
		if m.currentView == "optimizing" {
			m.currentView = "budget"
			m.textInput.Focus()
		}
		m.error = msg.err
		return m, nil
	case confirmMsg:
		m.error = successStyle.Render(msg.message)
		return m, fetchGuests(m.client)
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "guests":
		m.guestTable, cmd = m.guestTable.Update(msg)
	case "items":
		m.itemTable, cmd = m.itemTable.Update(msg)
	case "results":
		m.resultTable, cmd = m.resultTable.Update(msg)
	case "budget":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "guests":
		help := "\nPress 'g' to generate 5 random guests, 'd' to delete the selected guest, 'esc' to go back\n"
		if m.error != "" {
			help += m.error + "\n"
		}
		return docStyle.Render(titleStyle.Render("Guest Pool") + "\n\n" + m.guestTable.View() + help)
	case "items":
		help := "\nPress 'esc' to go back\n"
		return docStyle.Render(titleStyle.Render("Menu Catalog") + "\n\n" + m.itemTable.View() + help)
	case "budget":
		help := "\nPress 'enter' to run, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Plan Party") + "\n\n" +
			"How much do you want to spend?\n\n" + m.textInput.View() + "\n" + help)
	case "optimizing":
		return docStyle.Render(titleStyle.Render("Plan Party") + "\n\n" +
			m.spinner.View() + fmt.Sprintf(" Evaluating guest and menu combinations for $%.2f...", m.lastBudget))
	case "results":
		view := titleStyle.Render("Recommendations") + "\n\n" + m.resultTable.View() + "\n"
		if m.stats != nil {
			view += "\n" + infoStyle.Render(fmt.Sprintf("%d feasible plans found", m.stats.Total)) + "\n"
		}
		view += "\nPress 'esc' to try another budget\n"
		return docStyle.Render(view)
	case "stats":
		return docStyle.Render(statsView(m.stats, m.error))
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type guestsMsg struct {
	guests []Guest
}

type itemsMsg struct {
	items []MenuItem
}

type optimizeMsg struct {
	result *OptimizeResponse
}

type statsMsg struct {
	stats *Stats
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// Commands

func fetchGuests(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		guests, err := client.GetGuests()
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return guestsMsg{guests: guests}
	}
}

func fetchItems(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetItems()
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return itemsMsg{items: items}
	}
}

func runOptimize(client *ApiClient, budget float64) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Optimize(budget, 10)
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return optimizeMsg{result: result}
	}
}

func fetchStats(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.GetStats()
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return statsMsg{stats: stats}
	}
}

func generateGuests(client *ApiClient, count int) tea.Cmd {
	return func() tea.Msg {
		if err := client.GenerateGuests(count); err != nil {
			return errorMsg{err: err.Error()}
		}
		return confirmMsg{message: fmt.Sprintf("Generated %d guests", count)}
	}
}

func deleteGuest(client *ApiClient, name string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteGuest(name); err != nil {
			return errorMsg{err: err.Error()}
		}
		return confirmMsg{message: "Deleted " + name}
	}
}

// Row builders

func guestRows(guests []Guest) []table.Row {
	rows := make([]table.Row, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, table.Row{
			g.Name,
			strconv.Itoa(g.Intimacy),
			strconv.Itoa(len(g.Preferences)),
			strings.Join(g.DietaryTags, ", "),
		})
	}
	return rows
}

func itemRows(items []MenuItem) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{
			it.Name,
			it.Category,
			fmt.Sprintf("$%.2f", it.UnitCost),
		})
	}
	return rows
}

func resultRows(recs []Recommendation) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strings.Join(r.GuestNames, ", "),
			strings.Join(r.SelectedItems, ", "),
			fmt.Sprintf("$%.2f", r.TotalCost),
			fmt.Sprintf("%.3f", r.Happiness),
		})
	}
	return rows
}

func statsView(stats *Stats, errText string) string {
	view := titleStyle.Render("Statistics") + "\n\n"
	if errText != "" {
		view += errorStyle.Render(errText) + "\n\nPress 'esc' to go back\n"
		return view
	}
	if stats == nil {
		view += "No optimization has run yet.\n\nPress 'esc' to go back\n"
		return view
	}
	view += fmt.Sprintf("Feasible plans: %d\n\n", stats.Total)
	view += fmt.Sprintf("Cost:          mean $%.2f  min $%.2f  max $%.2f  (std %.2f)\n",
		stats.Cost.Mean, stats.Cost.Min, stats.Cost.Max, stats.Cost.StdDev)
	view += fmt.Sprintf("Satisfaction:  mean %.2f  min %.2f  max %.2f\n",
		stats.Satisfaction.Mean, stats.Satisfaction.Min, stats.Satisfaction.Max)
	view += fmt.Sprintf("Avg intimacy:  %.2f\n", stats.IntimacyMean)
	view += fmt.Sprintf("Guests/plan:   mean %.1f  min %d  max %d  mode %d\n",
		stats.Guests.Mean, stats.Guests.Min, stats.Guests.Max, stats.Guests.Mode)
	view += "\nPress 'esc' to go back\n"
	return view
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
