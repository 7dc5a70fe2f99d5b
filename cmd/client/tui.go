package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/yitech/candlesleek/chart"
	"github.com/yitech/candlesleek/controller"
	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/parser"
	"github.com/yitech/candlesleek/render"
	"github.com/yitech/candlesleek/surface/cell"
	"github.com/yitech/candlesleek/viewport"
)

// ── styles ────────────────────────────────────────────────────────────────────

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22d3ee"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#aaaaaa"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5"))
	formatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
)

const (
	headerRows = 1
	footerRows = 1

	// panStep is the keyboard pan distance in cells.
	panStep = 8
)

var errNoFile = errors.New("no csv file given: pass a path or set CANDLES_FILE")

const csvExample = `timestamp,open,high,low,close
2025-11-13T15:29:00+05:30,133.65,134.75,131.95,133.25
2025-11-13T15:28:00+05:30,132.30,133.80,131.00,133.25`

// ── messages ──────────────────────────────────────────────────────────────────

type loadedMsg struct {
	candles []candle.Candle
	size    int64
	err     error
}

// ── model ─────────────────────────────────────────────────────────────────────

// frame caches the last rendered chart until the controller reports a change.
type frame struct {
	dirty bool
	out   string
}

type model struct {
	path  string
	theme render.Theme

	ctrl    *controller.Controller
	surface *cell.Surface
	frame   *frame

	size int64
	err  error

	width  int
	height int
}

func newModel(path string, theme render.Theme) model {
	f := &frame{dirty: true}
	return model{
		path:    path,
		theme:   theme,
		ctrl:    controller.New(chart.Geometry{PixelRatio: 1}, func() { f.dirty = true }),
		surface: cell.New(),
		frame:   f,
	}
}

// ── Init / Update / View ──────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return loadFile(m.path)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.SetGeometry(m.geometry())
		slog.Debug("resize", "width", msg.Width, "height", msg.Height)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			slog.Warn("load failed", "file", m.path, "error", msg.err)
			m.err = msg.err
			if !m.ctrl.HasData() {
				m.frame.dirty = true
			}
			return m, nil
		}
		m.err = nil
		m.size = msg.size
		m.ctrl.Set(msg.candles)
		m.ctrl.SetGeometry(m.geometry())
		slog.Info("file loaded", "file", m.path, "candles", len(msg.candles), "size", humanize.Bytes(uint64(msg.size)))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		m.ctrl.PointerLeave()
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	if !m.ctrl.HasData() {
		return m.renderEmpty()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderChart())
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render("[q] quit  [r] reset  [o] reload  [←/→] pan  [+/-] zoom  drag: pan  wheel: zoom (over prices: price zoom)"))
	return b.String()
}

// ── input ─────────────────────────────────────────────────────────────────────

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.ctrl.ResetView()
	case "o":
		return m, loadFile(m.path)
	case "left", "h":
		m.ctrl.Pan(panStep)
	case "right", "l":
		m.ctrl.Pan(-panStep)
	case "+", "=":
		m.ctrl.ZoomAt(m.plotX(), viewport.ZoomIn)
	case "-", "_":
		m.ctrl.ZoomAt(m.plotX(), viewport.ZoomOut)
	case "esc":
		m.ctrl.PointerLeave()
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X)
	y := float64(msg.Y - headerRows)

	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.Wheel(x, -1)
		case tea.MouseButtonWheelDown:
			m.ctrl.Wheel(x, 1)
		}
		return
	}

	// header and footer rows are outside the drawing surface
	if y < 0 || y >= m.ctrl.Geometry().Height {
		m.ctrl.PointerLeave()
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// loadFile parses off the event loop; the result lands as one loadedMsg.
func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return loadedMsg{err: errNoFile}
		}
		candles, err := parser.LoadFile(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		var size int64
		if fi, err := os.Stat(path); err == nil {
			size = fi.Size()
		}
		return loadedMsg{candles: candles, size: size}
	}
}

// geometry sizes the chart surface to the terminal, leaving room for the
// header and footer and for the widest price label on the left.
func (m model) geometry() chart.Geometry {
	chartH := max(0, m.height-headerRows-footerRows)
	return chart.Geometry{
		Width:      float64(m.width),
		Height:     float64(chartH),
		PixelRatio: 1,
		Padding: chart.Padding{
			Top:    1,
			Right:  2,
			Bottom: 2,
			Left:   m.priceAxisWidth(),
		},
	}
}

func (m model) priceAxisWidth() float64 {
	f := m.ctrl.Frame()
	lo, hi, ok := candle.PriceRange(f.Candles)
	if !ok {
		return 11
	}
	// headroom can push labels past the data range; allow one extra digit
	w := max(len(strconv.FormatFloat(hi, 'f', 2, 64)), len(strconv.FormatFloat(lo, 'f', 2, 64))) + 1
	return float64(max(8, w) + int(m.theme.Metrics.PriceLabelGap) + 1)
}

func (m model) plotX() float64 {
	return m.ctrl.Geometry().PlotRect().X + 1
}

// ── header ────────────────────────────────────────────────────────────────────

func (m model) renderHeader() string {
	v := m.ctrl.View()
	parts := []string{
		titleStyle.Render("candlesleek"),
		headerStyle.Render(filepath.Base(m.path)),
		headerStyle.Render(humanize.Comma(int64(m.ctrl.Len())) + " candles"),
		headerStyle.Render(humanize.Bytes(uint64(m.size))),
		headerStyle.Render(fmt.Sprintf("time x%.2f  price x%.2f", v.Scale, v.PriceScale)),
	}
	if c, ok := m.ctrl.Hovered(); ok {
		parts = append(parts, headerStyle.Render(c.DisplayTime))
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	return strings.Join(parts, "  ")
}

// ── chart ─────────────────────────────────────────────────────────────────────

func (m model) renderChart() string {
	if m.frame.dirty {
		m.ctrl.Render(m.surface, m.theme)
		m.frame.out = m.surface.String()
		m.frame.dirty = false
	}
	return m.frame.out
}

// ── empty state ───────────────────────────────────────────────────────────────

func (m model) renderEmpty() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("candlesleek"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Open a CSV to visualize candlestick charts: candlesleek-client prices.csv"))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Required columns: timestamp, open, high, low, close"))
	b.WriteString("\n")
	b.WriteString(formatStyle.Render(csvExample))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("⚠ " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(footerStyle.Render("[o] reload  [q] quit"))
	return b.String()
}
