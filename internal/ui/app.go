package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"notebeat/internal/config"
	"notebeat/internal/periodic"
	"notebeat/internal/stats"
	"notebeat/internal/utils"
	"notebeat/internal/vault"
	"notebeat/internal/version"
)

type noteItem struct {
	name   string
	title  string
	folder string
	kind   periodic.Kind
	date   time.Time
}

type retroItem struct {
	label string
	date  time.Time
	notes []string
}

type Model struct {
	// layout
	width, height int

	// time & tz
	loc *time.Location
	now time.Time

	// data
	loading bool
	err     error
	summary stats.Summary
	size    int64
	recent  []noteItem
	retro   []retroItem

	// plumbing
	cfg        config.Config
	vlt        *vault.Vault
	classifier *periodic.Classifier
	watcher    *vault.Watcher

	spin   spinner.Model
	status string
	st     style
}

type style struct {
	topBar    lipgloss.Style
	statusBar lipgloss.Style

	panelTitle  lipgloss.Style
	borderDim   lipgloss.Style
	textDim     lipgloss.Style
	textBold    lipgloss.Style
	streakBig   lipgloss.Style
	streakWarn  lipgloss.Style
	noteName    lipgloss.Style
	folderLabel lipgloss.Style
	theme       Theme
}

func Run(cfg config.Config) error {
	if strings.TrimSpace(cfg.Vault) == "" {
		return fmt.Errorf("no vault configured: set vault in the config file or NOTEBEAT_VAULT")
	}

	loc := cfg.Location()
	v := vault.New(cfg.Vault, cfg.Extension)
	cls := periodic.NewClassifier(cfg.Formats, loc)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))

	m := Model{
		loc:        loc,
		now:        time.Now().In(loc),
		loading:    true,
		cfg:        cfg,
		vlt:        v,
		classifier: cls,
		spin:       sp,
		st: style{
			topBar:    lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true).Padding(0, 1),
			statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Background(lipgloss.Color("#313244")).Padding(0, 1),

			panelTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")).Bold(true),
			borderDim:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#585b70")).Padding(0, 1),
			textDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")),
			textBold:    lipgloss.NewStyle().Bold(true),
			streakBig:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
			streakWarn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAB387")),
			noteName:    lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
			folderLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
			theme:       DefaultTheme,
		},
	}

	// Live refresh is best effort; the dashboard still works without it.
	if w, err := v.Watch(); err == nil {
		m.watcher = w
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return runErr
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickNow(), m.spin.Tick, m.loadDashboardCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// ---------- messages & commands ----------

type tickMsg struct{ now time.Time }

type dashboardLoadedMsg struct {
	summary stats.Summary
	size    int64
	recent  []noteItem
	retro   []retroItem
	err     error
}

type vaultChangedMsg struct{}

func tickNow() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return tickMsg{now: time.Now()} })
}

func waitForChange(w *vault.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return vaultChangedMsg{}
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	vlt, cls, loc := m.vlt, m.classifier, m.loc
	now, locale, lookbacks := m.now, m.cfg.Locale, m.cfg.Retro.Lookbacks
	return func() tea.Msg {
		notes, err := vlt.Scan()
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		var classified []periodic.Classified
		var items []noteItem
		for _, n := range notes {
			c, ok := cls.Classify(n.Name)
			if !ok {
				continue
			}
			classified = append(classified, c)
			items = append(items, noteItem{
				name:   n.Name,
				title:  n.Title,
				folder: n.Folder,
				kind:   c.Kind,
				date:   c.Date,
			})
		}

		sort.Slice(items, func(i, j int) bool {
			if !items[i].date.Equal(items[j].date) {
				return items[i].date.After(items[j].date)
			}
			return items[i].name > items[j].name
		})

		summary := stats.Summarize(classified, now, locale)
		retro := buildRetro(items, lookbacks, now, loc)
		if len(items) > 12 {
			items = items[:12]
		}
		return dashboardLoadedMsg{
			summary: summary,
			size:    vault.TotalSize(notes),
			recent:  items,
			retro:   retro,
		}
	}
}

// buildRetro collects the daily notes that existed each configured span ago.
func buildRetro(items []noteItem, lookbacks []string, now time.Time, loc *time.Location) []retroItem {
	byDay := make(map[string][]string)
	for _, it := range items {
		if it.kind != periodic.KindDay {
			continue
		}
		key := it.date.Format("2006-01-02")
		byDay[key] = append(byDay[key], it.name)
	}

	var out []retroItem
	for _, lb := range lookbacks {
		date, err := utils.ParseLookback(lb, now, loc)
		if err != nil {
			continue
		}
		out = append(out, retroItem{
			label: utils.FormatLookback(lb),
			date:  date,
			notes: byDay[date.Format("2006-01-02")],
		})
	}
	return out
}

// ---------- update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = "refreshing"
			return m, m.loadDashboardCmd()
		}
		return m, nil

	case tickMsg:
		m.now = msg.now.In(m.loc)
		return m, tickNow()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case vaultChangedMsg:
		m.loading = true
		m.status = "vault changed"
		cmds := []tea.Cmd{m.loadDashboardCmd(), m.spin.Tick}
		if m.watcher != nil {
			cmds = append(cmds, waitForChange(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.size = msg.size
			m.recent = msg.recent
			m.retro = msg.retro
			m.status = fmt.Sprintf("%d notes", msg.summary.Total)
		}
		return m, nil
	}

	return m, nil
}

// ---------- view ----------

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	top := m.st.topBar.Render(fmt.Sprintf("%s  %s", version.GetShortVersion(), m.st.textDim.Render(m.cfg.Vault)))

	var body string
	switch {
	case m.err != nil:
		body = m.st.borderDim.Width(m.width - 4).Render(
			m.st.theme.Error.Render("error: ") + m.err.Error())
	case m.loading && m.summary.Total == 0:
		body = m.st.borderDim.Width(m.width - 4).Render(m.spin.View() + " scanning vault...")
	default:
		left := m.renderSummaryPane()
		right := m.renderRecentPane()
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, left, right),
			m.renderRetroPane(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, body, m.statusBar())
}

func (m Model) renderSummaryPane() string {
	w := m.width/2 - 3
	var b strings.Builder

	b.WriteString(m.st.panelTitle.Render("Streak"))
	b.WriteString("\n\n")

	streakStyle := m.st.streakBig
	if m.summary.Streak == 0 {
		streakStyle = m.st.streakWarn
	}
	b.WriteString(streakStyle.Render(fmt.Sprintf("  %d day(s)", m.summary.Streak)))
	b.WriteString("\n\n")

	if m.summary.LastDay.IsZero() {
		b.WriteString(m.st.textDim.Render("  no daily notes yet"))
	} else {
		b.WriteString(m.st.textDim.Render("  last daily note: "))
		b.WriteString(m.summary.LastDay.Format("2006-01-02"))
		if m.summary.SinceLast != "" {
			b.WriteString(m.st.textDim.Render(" (" + m.summary.SinceLast + ")"))
		}
	}
	b.WriteString("\n\n")

	for _, kind := range []periodic.Kind{periodic.KindDay, periodic.KindWeek, periodic.KindMonth, periodic.KindQuarter, periodic.KindYear} {
		n := m.summary.PerKind[kind]
		if n == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %d\n",
			m.st.theme.KindStyle(kind.String()).Render(fmt.Sprintf("%-8s", kind.String())), n))
	}

	b.WriteString("\n")
	b.WriteString(m.st.textDim.Render(fmt.Sprintf("  %d notes · %s", m.summary.Total, humanize.Bytes(uint64(m.size)))))

	return m.st.borderDim.Width(w).Render(b.String())
}

func (m Model) renderRecentPane() string {
	w := m.width/2 - 3
	var b strings.Builder

	b.WriteString(m.st.panelTitle.Render("Recent"))
	b.WriteString("\n\n")

	if len(m.recent) == 0 {
		b.WriteString(m.st.textDim.Render("  nothing classified yet"))
	}
	for _, it := range m.recent {
		display := it.name
		if it.title != "" && it.title != it.name {
			display = fmt.Sprintf("%s (%s)", it.name, it.title)
		}
		line := fmt.Sprintf("  %s %s %s",
			m.st.textDim.Render(it.date.Format("2006-01-02")),
			m.st.theme.KindStyle(it.kind.String()).Render(fmt.Sprintf("%-7s", it.kind.String())),
			m.st.noteName.Render(display))
		if it.folder != "" {
			line += " " + m.st.folderLabel.Render("["+it.folder+"]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.st.borderDim.Width(w).Render(b.String())
}

func (m Model) renderRetroPane() string {
	w := m.width - 4
	var b strings.Builder

	b.WriteString(m.st.panelTitle.Render("On this day"))
	b.WriteString("\n\n")

	if len(m.retro) == 0 {
		b.WriteString(m.st.textDim.Render("  no lookbacks configured"))
	}
	for _, r := range m.retro {
		b.WriteString(fmt.Sprintf("  %s %s  ",
			m.st.textBold.Render(fmt.Sprintf("%-12s", r.label)),
			m.st.textDim.Render(r.date.Format("2006-01-02"))))
		if len(r.notes) == 0 {
			b.WriteString(m.st.textDim.Render("no note"))
		} else {
			b.WriteString(m.st.theme.KindDay.Render(strings.Join(r.notes, ", ")))
		}
		b.WriteString("\n")
	}

	return m.st.borderDim.Width(w).Render(b.String())
}

func (m Model) statusBar() string {
	left := m.status
	if m.loading {
		left = m.spin.View() + " " + left
	}
	right := "q quit · r refresh"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return m.st.statusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
