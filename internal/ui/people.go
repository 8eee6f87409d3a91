package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/holocron/internal/api"
	"github.com/thesavant42/holocron/internal/directory"
	"github.com/thesavant42/holocron/internal/models"
)

// PeopleModel is the TUI model for the people directory. The controller is
// only touched from Update; fetches run in commands and come back as messages.
type PeopleModel struct {
	PageState

	ctrl      *directory.Controller
	logger    *log.Logger
	ctx       context.Context
	startPage int
	exportDir string // markdown exports land here

	table     table.Model
	textInput textinput.Model
	spinner   spinner.Model

	viewMode  peopleViewMode
	inputMode peopleInputMode
	inputPrev string // restored when input is cancelled

	visible []models.Person
	colors  []models.Color
}

type peopleViewMode int

const (
	peopleViewTable  peopleViewMode = iota // Record table
	peopleViewInput                        // Editing search or a filter
	peopleViewDetail                       // Detail overlay for the selected record
)

type peopleInputMode int

const (
	peopleInputSearch peopleInputMode = iota
	peopleInputHomeworld
	peopleInputFilm
	peopleInputSpecies
)

func (i peopleInputMode) label() string {
	switch i {
	case peopleInputHomeworld:
		return "Homeworld"
	case peopleInputFilm:
		return "Film"
	case peopleInputSpecies:
		return "Species"
	default:
		return "Search"
	}
}

func (i peopleInputMode) field() models.FilterField {
	switch i {
	case peopleInputHomeworld:
		return models.FilterHomeworld
	case peopleInputFilm:
		return models.FilterFilm
	case peopleInputSpecies:
		return models.FilterSpecies
	default:
		return ""
	}
}

// Messages
type pageRequestMsg struct {
	page int
}

type pageLoadedMsg struct {
	res directory.PageResult
}

type enrichedMsg struct {
	res directory.EnrichmentResult
}

type detailLoadedMsg struct {
	res directory.DetailResult
}

// NewPeopleModel creates the directory model. Nothing is fetched until Init.
func NewPeopleModel(ctx context.Context, ctrl *directory.Controller, logger *log.Logger, startPage int, exportDir string) PeopleModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if startPage < 1 {
		startPage = 1
	}
	if exportDir == "" {
		exportDir = "."
	}

	layout := DefaultLayout()

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = layout.InnerWidth - 20

	return PeopleModel{
		PageState: NewPageState(layout),
		ctrl:      ctrl,
		logger:    logger,
		ctx:       ctx,
		startPage: startPage,
		exportDir: exportDir,
		table:     InitTable(CalculateColumns(PeopleColumns(), layout.TableWidth), nil, layout),
		textInput: ti,
		spinner:   NewAppSpinner(),
	}
}

// Init implements tea.Model
func (m PeopleModel) Init() tea.Cmd {
	start := m.startPage
	return tea.Batch(
		StandardInit(),
		m.spinner.Tick,
		func() tea.Msg { return pageRequestMsg{page: start} },
	)
}

// Update implements tea.Model
func (m PeopleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.table.SetHeight(m.Layout.TableHeight)
			m.table.SetColumns(CalculateColumns(PeopleColumns(), m.Layout.TableWidth))
			m.textInput.Width = m.Layout.InnerWidth - 20
			m.refreshTable()
		}
		return m, nil

	case spinner.TickMsg:
		m.ClearExpiredStatus(time.Now())
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageRequestMsg:
		cmd := m.requestPage(msg.page)
		return m, cmd

	case pageLoadedMsg:
		if !m.ctrl.ApplyPage(msg.res) {
			if api.IsNotFound(m.ctrl.Err()) {
				m.SetStatus(fmt.Sprintf("No page %d", m.ctrl.Page()), StatusDuration)
			}
			m.refreshTable()
			return m, nil
		}
		m.refreshTable()
		m.table.SetCursor(0)
		cmd := m.enrich()
		return m, cmd

	case enrichedMsg:
		if m.ctrl.ApplyEnrichment(msg.res) {
			m.refreshTable()
		}
		return m, nil

	case detailLoadedMsg:
		m.ctrl.ApplyDetail(msg.res)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m PeopleModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case peopleViewInput:
		return m.handleInputKeys(msg)
	case peopleViewDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleTableKeys(msg)
	}
}

func (m PeopleModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if quit, cmd := HandleQuitKeys(key); quit {
		m.Quitting = true
		return m, cmd
	}

	switch key {
	case "/":
		return m.openInput(peopleInputSearch)
	case "h":
		return m.openInput(peopleInputHomeworld)
	case "f":
		return m.openInput(peopleInputFilm)
	case "s":
		return m.openInput(peopleInputSpecies)

	case "c":
		m.ctrl.ClearFilters()
		m.refreshTable()
		m.SetStatus("Filters cleared", StatusDuration)
		return m, nil

	case "enter":
		return m.openDetail()

	case "n", "right":
		if m.ctrl.Loading() || !m.ctrl.HasNextPage() {
			return m, nil
		}
		cmd := m.requestPage(m.ctrl.Page() + 1)
		return m, cmd

	case "p", "left":
		if m.ctrl.Loading() || !m.ctrl.HasPrevPage() {
			return m, nil
		}
		cmd := m.requestPage(m.ctrl.Page() - 1)
		return m, cmd

	case "r":
		cmd := m.requestPage(m.ctrl.Page())
		return m, cmd

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		if n == m.ctrl.Page() && m.ctrl.Err() == nil {
			return m, nil
		}
		cmd := m.requestPage(n)
		return m, cmd

	case "e":
		m.exportVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PeopleModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.closeInput()
		return m, nil

	case "esc":
		m.applyInput(m.inputPrev)
		m.closeInput()
		return m, nil

	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}

	// Filters apply as the user types
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyInput(m.textInput.Value())
	return m, cmd
}

func (m PeopleModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "backspace":
		m.ctrl.Deselect()
		m.viewMode = peopleViewTable
		return m, nil

	case "i":
		if sel := m.ctrl.Selected(); sel != nil {
			imageURL := ImageURL(sel.Name)
			if err := openURL(imageURL); err != nil {
				m.logger.Warn("Failed to open image", "url", imageURL, "error", err)
				m.SetStatus(fmt.Sprintf("Could not open browser: %v", err), StatusDuration)
			} else {
				m.SetStatus("Opened "+imageURL, StatusDuration)
			}
		}
		return m, nil

	case "q", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// =============================================================================
// Commands
// =============================================================================

// requestPage starts loading page n. Out-of-range requests only set a status.
func (m *PeopleModel) requestPage(n int) tea.Cmd {
	req, err := m.ctrl.BeginPageLoad(m.ctx, n)
	if err != nil {
		m.SetStatus(fmt.Sprintf("No page %d (pages 1-%d)", n, m.ctrl.TotalPages()), StatusDuration)
		return nil
	}
	m.viewMode = peopleViewTable

	ctrl := m.ctrl
	return func() tea.Msg {
		return pageLoadedMsg{res: ctrl.FetchPage(req)}
	}
}

func (m *PeopleModel) enrich() tea.Cmd {
	req := m.ctrl.BeginEnrichment()
	ctrl := m.ctrl
	return func() tea.Msg {
		return enrichedMsg{res: ctrl.Enrich(req)}
	}
}

func (m PeopleModel) openDetail() (tea.Model, tea.Cmd) {
	if m.ctrl.Loading() || m.ctrl.Err() != nil {
		return m, nil
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return m, nil
	}

	req := m.ctrl.Select(m.ctx, m.visible[cursor])
	m.viewMode = peopleViewDetail

	ctrl := m.ctrl
	return m, func() tea.Msg {
		return detailLoadedMsg{res: ctrl.FetchDetail(req)}
	}
}

func (m PeopleModel) openInput(mode peopleInputMode) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.inputPrev = m.currentInputValue()
	m.viewMode = peopleViewInput

	m.textInput.Prompt = mode.label() + ": "
	m.textInput.Placeholder = "substring, case-insensitive"
	m.textInput.SetValue(m.inputPrev)
	m.textInput.CursorEnd()
	cmd := m.textInput.Focus()
	return m, cmd
}

func (m *PeopleModel) closeInput() {
	m.textInput.Blur()
	m.viewMode = peopleViewTable
}

func (m *PeopleModel) currentInputValue() string {
	f := m.ctrl.Filter()
	if m.inputMode == peopleInputSearch {
		return f.Search
	}
	return f.Get(m.inputMode.field())
}

func (m *PeopleModel) applyInput(value string) {
	if m.inputMode == peopleInputSearch {
		m.ctrl.SetSearchTerm(value)
	} else {
		m.ctrl.SetFilter(m.inputMode.field(), value)
	}
	m.refreshTable()
}

func (m *PeopleModel) exportVisible() {
	if m.ctrl.Loading() || m.ctrl.Err() != nil {
		m.SetStatus("Nothing to export", StatusDuration)
		return
	}
	filename, err := ExportVisibleToMarkdown(m.exportDir, m.visible, m.ctrl.Color, m.ctrl.Page(), m.ctrl.TotalPages(), m.ctrl.Filter())
	if err != nil {
		m.logger.Error("Markdown export failed", "error", err)
		m.SetStatus(fmt.Sprintf("Export failed: %v", err), StatusDuration)
		return
	}
	m.logger.Info("Exported page", "file", filename, "records", len(m.visible))
	m.SetStatus(fmt.Sprintf("Exported %d records to %s", len(m.visible), filename), StatusDuration)
}

// refreshTable recomputes the visible set and the table rows
func (m *PeopleModel) refreshTable() {
	m.visible = m.ctrl.Visible()
	m.colors = make([]models.Color, len(m.visible))

	rows := make([]table.Row, len(m.visible))
	for i, p := range m.visible {
		m.colors[i] = m.ctrl.Color(p.Name)
		rows[i] = table.Row{
			p.Name,
			"●",
			p.Height,
			p.Mass,
			p.BirthYear,
			strconv.Itoa(len(p.Films)),
			FormatDateAdded(p.Created),
		}
	}
	m.table.SetRows(rows)

	// SetCursor on an empty table leaves the cursor at -1
	if c := m.table.Cursor(); c < 0 {
		m.table.SetCursor(0)
	} else if c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model
func (m PeopleModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ViewHeaderWithSubtitle("Star Wars Directory", m.subtitle(), m.Layout.ContentWidth))
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	switch {
	case m.ctrl.Loading():
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(AccentStyle.Render(fmt.Sprintf("Loading page %d...", m.ctrl.Page())))
	case m.ctrl.Err() != nil:
		b.WriteString(StatusMsgStyle.Render(directory.LoadErrorMessage))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("Press r to retry."))
	case m.viewMode == peopleViewDetail:
		b.WriteString(m.renderDetailView())
	case len(m.visible) == 0:
		b.WriteString(DimStyle.Render("No matching records"))
	default:
		b.WriteString(RenderRecordTable(m.table, m.Layout, m.colors))
	}

	if !m.ctrl.Loading() && m.ctrl.Err() == nil {
		b.WriteString("\n\n")
		b.WriteString(RenderPagination(m.ctrl.PageUnits(), m.ctrl.HasPrevPage(), m.ctrl.HasNextPage()))
	}

	if m.HasStatus() {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render(m.StatusMsg))
	}

	content := PadContentToHeight(b.String(), m.Layout.ViewportHeight-5)
	return BuildTwoBoxView(content, m.getHelpText(), m.Layout)
}

func (m PeopleModel) subtitle() string {
	total := m.ctrl.TotalPages()
	if total == 0 {
		return fmt.Sprintf("page %d", m.ctrl.Page())
	}
	return fmt.Sprintf("page %d of %d | %d of %d shown", m.ctrl.Page(), total, len(m.visible), len(m.ctrl.Records()))
}

func (m PeopleModel) renderFilterBar() string {
	if m.viewMode == peopleViewInput {
		return m.textInput.View()
	}

	f := m.ctrl.Filter()
	parts := []string{
		filterPart("Search", f.Search),
		filterPart("Homeworld", f.Homeworld),
		filterPart("Film", f.Film),
		filterPart("Species", f.Species),
	}
	return strings.Join(parts, "  ")
}

func filterPart(label, value string) string {
	if value == "" {
		return RenderDim(label + ": -")
	}
	return RenderDim(label+": ") + AccentStyle.Render(value)
}

func (m PeopleModel) renderDetailView() string {
	sel := m.ctrl.Selected()
	if sel == nil {
		return DimStyle.Render("No record selected")
	}

	color := m.ctrl.Color(sel.Name)
	labelWidth := 12
	row := func(label, value string) string {
		return RenderDim(padToWidth(label, labelWidth)) + RenderNormal(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(RecordStyle(color).Bold(true).Render(sel.Name))
	b.WriteString("\n\n")
	b.WriteString(row("Height", FormatHeight(sel.Height)))
	b.WriteString(row("Mass", FormatMass(sel.Mass)))
	b.WriteString(row("Date added", FormatDateAdded(sel.Created)))
	b.WriteString(row("Films", strconv.Itoa(len(sel.Films))))
	b.WriteString(row("Birth year", sel.BirthYear))
	b.WriteString(row("Image", ImageURL(sel.Name)))

	if planet := m.ctrl.Detail(); planet != nil {
		b.WriteString("\n")
		b.WriteString(RenderTitle("Homeworld"))
		b.WriteString("\n")
		b.WriteString(row("Name", planet.Name))
		b.WriteString(row("Terrain", planet.Terrain))
		b.WriteString(row("Climate", planet.Climate))
		b.WriteString(row("Population", planet.Population))
	} else if m.ctrl.DetailErr() == nil && sel.Homeworld != "" {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(RenderDim("Resolving homeworld..."))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(string(color))).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m PeopleModel) getHelpText() string {
	switch m.viewMode {
	case peopleViewInput:
		return "Enter: keep | Esc: cancel"
	case peopleViewDetail:
		return "i: open image | Esc: close | q: quit"
	default:
		return "Enter: details | /: search | h/f/s: filter | c: clear | n/p/1-9: page | r: reload | e: export | q: quit"
	}
}

// RunPeopleBrowser runs the directory TUI until the user quits
func RunPeopleBrowser(ctx context.Context, ctrl *directory.Controller, logger *log.Logger, startPage int, exportDir string) error {
	model := NewPeopleModel(ctx, ctrl, logger, startPage, exportDir)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("directory browser failed: %w", err)
	}
	return nil
}
