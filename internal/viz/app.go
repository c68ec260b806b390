package viz

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/layout"
	"github.com/san-kum/latviz/internal/resolver"
	"github.com/san-kum/latviz/internal/selection"
)

const (
	defaultWidth  = 120
	defaultHeight = 36
	sidebarWidth  = 66
	minPlotWidth  = 20
	minPlotHeight = 5
	// colPixels is the number of layout pixels behind one terminal column.
	colPixels = 8

	stripRow  = 1
	markerRow = 2
	plotRow   = 3
)

// Options configures an App.
type Options struct {
	Title   string
	Policy  layout.Policy
	Periods int // super periods selectable with the digit keys
	Theme   string
	Logger  *log.Logger
}

// App is the interactive lattice viewer.
type App struct {
	title   string
	lat     *lattice.Lattice
	res     *resolver.Resolver
	sel     *selection.Machine
	policy  layout.Policy
	periods int
	theme   Theme
	log     *log.Logger

	width, height int
	strip         layout.Result
	plot          Plot
	summary       []format.Row
	summaryTitle  string
	status        string
	showHelp      bool
}

func NewApp(r *resolver.Resolver, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := App{
		title:   opts.Title,
		lat:     r.Lattice(),
		res:     r,
		sel:     selection.New(r),
		policy:  opts.Policy,
		periods: opts.Periods,
		theme:   GetTheme(opts.Theme),
		log:     logger,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	a.relayout()
	return a
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.relayout()
	case tea.MouseMsg:
		a.handleMouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "?":
			a.showHelp = !a.showHelp
		case "t":
			a.theme = NextTheme(a.theme)
		case "esc":
			a.sel.Clear()
			a.status = ""
		case "left", "h":
			a.step(-1)
		case "right", "l":
			a.step(1)
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			a.setSuperperiod(int(msg.String()[0] - '0'))
		}
	}
	return a, nil
}

// click converts a mouse event to a selection click. ok is false for
// events that are not button presses.
func (a App) click(msg tea.MouseMsg) (selection.Click, bool) {
	if msg.Action != tea.MouseActionPress {
		return selection.Click{}, false
	}
	var btn selection.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		btn = selection.ButtonPrimary
	case tea.MouseButtonRight:
		btn = selection.ButtonSecondary
	case tea.MouseButtonMiddle:
		btn = selection.ButtonMiddle
	default:
		return selection.Click{}, false
	}

	y := msg.Y
	if a.showHelp {
		y -= strings.Count(helpText, "\n") + 1
	}
	c := selection.Click{Button: btn}
	if y >= stripRow && y < plotRow+a.plot.Top+a.plot.Rows {
		c.X, c.InPlot = a.plot.ColumnToS(msg.X)
	}
	return c, true
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	c, ok := a.click(msg)
	if !ok {
		return
	}
	a.apply(c)
}

func (a *App) apply(c selection.Click) {
	changed, err := a.sel.Handle(c)
	if err != nil {
		a.status = err.Error()
		a.log.Warn("selection failed", "s", c.X, "err", err)
		return
	}
	if changed {
		a.status = ""
		if idx, ok := a.sel.ElementIndex(); ok {
			a.log.Debug("selected", "s", c.X, "index", idx)
		} else {
			a.log.Debug("selection cleared")
		}
	}
}

// step moves the selection to the neighbouring element in the window.
func (a *App) step(dir int) {
	active := a.lat.ActiveElements()
	if len(active) == 0 {
		return
	}
	first, last := active[0].Index, active[len(active)-1].Index

	idx, ok := a.sel.ElementIndex()
	switch {
	case !ok && dir > 0:
		idx = first
	case !ok:
		idx = last
	case dir > 0:
		idx = min(idx+1, last)
	default:
		cur := a.lat.GlobalStart(idx)
		for idx > first && a.lat.GlobalStart(idx) >= cur {
			idx--
		}
	}
	a.apply(selection.Click{X: a.lat.GlobalStart(idx), InPlot: true, Button: selection.ButtonPrimary})
}

func (a *App) setSuperperiod(n int) {
	if n == 0 {
		a.lat.ClearWindow()
	} else {
		if n > a.periods {
			return
		}
		start, end := lattice.Superperiod(a.lat.Length(), n, a.periods)
		if err := a.lat.SetWindow(start, end); err != nil {
			a.status = err.Error()
			return
		}
	}
	a.log.Debug("window changed", "superperiod", n)
	a.sel.Clear()
	a.status = ""
	a.relayout()
}

// relayout recomputes everything that depends on the terminal size or the
// active window.
func (a *App) relayout() {
	area := max(a.width-sidebarWidth-2, minPlotWidth+8)
	height := max(a.height-plotRow-4, minPlotHeight)

	// The label gutter is only known after rendering.
	p, err := BetaPlot(a.res, area-8, height)
	if err == nil {
		p, err = BetaPlot(a.res, max(area-p.Offset-1, minPlotWidth), height)
	}
	if err != nil {
		a.plot, a.strip = Plot{}, layout.Result{}
		a.status = err.Error()
		return
	}
	a.plot = p

	strip, err := layout.Strip(a.lat, p.Width*colPixels, a.policy)
	if err != nil {
		a.strip = layout.Result{}
		a.status = err.Error()
		return
	}
	a.strip = strip

	a.summaryTitle = a.res.SummaryTitle()
	if fields, err := a.res.Summary(); err == nil {
		a.summary = format.Rows(fields)
	} else {
		a.summary = nil
		a.status = err.Error()
	}
}

func (a App) View() string {
	st := newStyles(a.theme)

	view := a.sel.View()
	var main strings.Builder
	main.WriteString(st.header.Render(a.title) + "\n")
	main.WriteString(renderStrip(a.strip, a.plot) + "\n")
	main.WriteString(renderMarker(a.plot, view.Marker, view.HasMarker, st.marker) + "\n")
	main.WriteString(a.plot.Text)

	var side strings.Builder
	side.WriteString(st.header.Render(a.summaryTitle) + "\n")
	writeRows(&side, st, a.summary)
	side.WriteString(st.section.Render(resolver.TitleElement) + "\n")
	writeRows(&side, st, view.Fields)
	writeRows(&side, st, view.Info)
	if a.status != "" {
		side.WriteString("\n" + st.err.Render(a.status) + "\n")
	}
	side.WriteString("\n" + st.muted.Render(Separator(sidebarWidth-6)) + "\n")
	side.WriteString(st.help.Render("click:select  right-click:clear  h/l:step  0-9:period  t:theme  ?:help  q:quit"))

	out := lipgloss.JoinHorizontal(lipgloss.Top, main.String(), st.sidebar.Width(sidebarWidth).Render(side.String()))
	if a.showHelp {
		return helpText + "\n" + out
	}
	return out
}

func writeRows(b *strings.Builder, st styles, rows []format.Row) {
	for _, r := range rows {
		b.WriteString(st.label.Render(fmt.Sprintf("%-29s", r.Name)) + st.value.Render(r.Text) + "\n")
	}
}

const helpText = `
╔══════════════════════════════════════════╗
║            KEYBOARD SHORTCUTS            ║
╠══════════════════════════════════════════╣
║  Left click  - Select element under s    ║
║  Right click - Clear selection           ║
║  H / Left    - Previous element          ║
║  L / Right   - Next element              ║
║  1-9         - Show one super period     ║
║  0           - Show the whole ring       ║
║  Esc         - Clear selection           ║
║  T           - Cycle themes              ║
║  ?           - Toggle this help          ║
║  Q           - Quit                      ║
╚══════════════════════════════════════════╝`

// Run starts the viewer on the alternate screen with mouse reporting.
func Run(app App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
