package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/edgar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// lookupCompleted carries the result of a ticker lookup back into Update.
type lookupCompleted struct {
	Company *domain.Company
	Filings []domain.Filing
	Err     error
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// input is the ticker entry field.
	input textinput.Model

	// company is the most recently resolved company.
	company *domain.Company

	// filings holds the current query results.
	filings []domain.Filing

	// searching indicates a lookup is in flight.
	searching bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Enter ticker symbol (e.g. AAPL)..."
	ti.Focus()
	ti.CharLimit = 12
	ti.Width = 30

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: styles.DefaultStyles(),
		input:  ti,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("edgar - SEC Filings"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit

		case tea.KeyEsc:
			a.company = nil
			a.filings = nil
			a.err = nil
			a.input.SetValue("")
			return a, nil

		case tea.KeyEnter:
			ticker := a.input.Value()
			if ticker == "" {
				return a, nil
			}
			a.searching = true
			return a, a.performLookup(ticker)
		}

	case lookupCompleted:
		a.searching = false
		if msg.Err != nil {
			a.company = nil
			a.filings = nil
			a.err = msg.Err
			return a, nil
		}
		a.company = msg.Company
		a.filings = msg.Filings
		a.err = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// performLookup resolves the ticker and queries its most recent filings.
func (a *App) performLookup(ticker string) tea.Cmd {
	return func() tea.Msg {
		company, err := a.ports.Filings.LookupCompany(a.ctx, ticker)
		if err != nil {
			return lookupCompleted{Err: err}
		}

		filings, err := a.ports.Filings.ListFilings(a.ctx, company.CIK, domain.DefaultFilingFilter())
		if err != nil {
			return lookupCompleted{Err: err}
		}

		return lookupCompleted{Company: company, Filings: filings}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	sections := make([]string, 0, 8)

	sections = append(sections, a.styles.Title.Render("edgar"), "")

	label := a.styles.Subtitle.Render("Ticker: ")
	field := a.styles.InputField.Render(a.input.View())
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, label, field), "")

	switch {
	case a.searching:
		sections = append(sections, a.styles.Muted.Render("Looking up..."))

	case a.err != nil:
		sections = append(sections, a.styles.Error.Render("Error: "+a.err.Error()))

	case a.company != nil:
		header := fmt.Sprintf("%s (CIK %s)", a.company.Name, a.company.CIK)
		sections = append(sections, a.styles.Subtitle.Render(header), "")
		sections = append(sections, a.renderFilings())
	}

	sections = append(sections, "", a.styles.Help.Render("enter: look up • esc: clear • ctrl+c: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilings renders the result table.
func (a *App) renderFilings() string {
	if len(a.filings) == 0 {
		return a.styles.Muted.Render("No filings found.")
	}

	rows := make([]string, 0, len(a.filings)+1)
	rows = append(rows, a.styles.Muted.Render(
		fmt.Sprintf("%-12s  %-6s  %s", "DATE", "FORM", "ACCESSION #")))

	for i := range a.filings {
		rows = append(rows, a.styles.Normal.Render(fmt.Sprintf("%-12s  %-6s  %s",
			a.filings[i].DateString(), a.filings[i].FormType, a.filings[i].AccessionNumber)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Company returns the most recently resolved company.
func (a *App) Company() *domain.Company {
	return a.company
}

// Filings returns the current query results.
func (a *App) Filings() []domain.Filing {
	return a.filings
}

// Err returns the current error, if any.
func (a *App) Err() error {
	return a.err
}
