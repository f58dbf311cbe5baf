package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/posts"
	"github.com/matzehuels/orbitcards/pkg/render"
	"github.com/matzehuels/orbitcards/pkg/render/styles"
	"github.com/matzehuels/orbitcards/pkg/scene"
)

const (
	cellWidth   = 8.0  // viewport pixels per terminal column
	cellHeight  = 16.0 // viewport pixels per terminal row
	chromeRows  = 2    // status and help lines below the scene
	previewTick = 100 * time.Millisecond
)

var (
	previewTextColor   = lipgloss.Color("#333333")
	previewAvatarStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewHelp        = "scroll/j add card · tab select · ⏎/click open · q quit"
)

// previewCommand creates the preview command for the interactive terminal view.
func (c *CLI) previewCommand() *cobra.Command {
	var sopts sceneOpts

	cmd := &cobra.Command{
		Use:   "preview [posts.json]",
		Short: "Interactive terminal preview of the scene",
		Long: `Interactive terminal preview of the scene.

The terminal window is the viewport: one column is 8 pixels and one row 16.
Resizing the terminal re-lays out the cards, scrolling the mouse wheel (or
pressing j) adds the next card, and clicking a card shows the link it opens.
Scroll and resize go through the same throttles as a live page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				sopts.posts = args[0]
			}
			cfg, err := c.loadConfig(cmd, &sopts)
			if err != nil {
				return err
			}
			list, err := c.loadPosts(sopts.posts)
			if err != nil {
				return err
			}
			// Logs would tear the alternate screen.
			c.SetLogLevel(LogError)
			ctrl, stage := c.newScene(cfg)
			m := newPreviewModel(cmd.Context(), cfg, ctrl, stage, list)

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(previewModel); ok && fm.lastLink != "" {
				printInfo("Last opened %s", StyleLink.Render(fm.lastLink))
			}
			return nil
		},
	}

	sopts.register(cmd)
	return cmd
}

// =============================================================================
// previewModel - Interactive scene
// =============================================================================

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(previewTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// previewModel drives a scene controller from terminal events and draws
// the stage's frame.
type previewModel struct {
	ctx   context.Context
	cfg   config.Config
	ctrl  *scene.Controller
	stage *render.Stage
	posts []posts.Post

	cols, rows int
	selected   int
	status     string
	lastLink   string
}

func newPreviewModel(ctx context.Context, cfg config.Config, ctrl *scene.Controller, stage *render.Stage, list []posts.Post) previewModel {
	return previewModel{ctx: ctx, cfg: cfg, ctrl: ctrl, stage: stage, posts: list}
}

func (m previewModel) Init() tea.Cmd {
	return tick()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, max(1, msg.Height-chromeRows)
		m.resize()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down", " ", "pgdown":
			m.scroll()
		case "tab", "right", "l":
			m.selectBy(1)
		case "shift+tab", "left", "h":
			m.selectBy(-1)
		case "enter":
			link, err := m.ctrl.Click(m.ctx, m.selected)
			m.clicked(link, err)
		}
	case tea.MouseMsg:
		switch {
		case msg.Button == tea.MouseButtonWheelDown || msg.Button == tea.MouseButtonWheelUp:
			m.scroll()
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			m.clickAt(msg.X, msg.Y)
		}
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m *previewModel) viewport() (float64, float64) {
	return float64(m.cols) * cellWidth, float64(m.rows) * cellHeight
}

func (m *previewModel) resize() {
	w, h := m.viewport()
	if !m.ctrl.Loaded() {
		n, err := loadScene(m.ctx, m.ctrl, m.cfg, m.posts)
		if err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		m.status = fmt.Sprintf("placed %d cards at %.0fx%.0f", n, w, h)
		return
	}
	ok, err := m.ctrl.Resize(m.ctx, w, h)
	switch {
	case err != nil:
		m.status = errors.UserMessage(err)
	case !ok:
		m.status = "resize throttled"
	default:
		m.status = fmt.Sprintf("relaid out at %.0fx%.0f", w, h)
	}
}

func (m *previewModel) scroll() {
	card, ok := m.ctrl.Scroll(m.ctx)
	switch {
	case !ok:
		m.status = "scroll throttled"
	case card == nil:
		m.status = "no room for the next card"
	default:
		m.status = "added " + card.Post.Title
	}
	m.selectBy(0)
}

func (m *previewModel) selectBy(d int) {
	n := len(m.ctrl.Cards())
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = ((m.selected+d)%n + n) % n
}

// clickAt clicks the topmost card under the terminal cell (x,y).
func (m *previewModel) clickAt(x, y int) {
	px, py := (float64(x)+0.5)*cellWidth, (float64(y)+0.5)*cellHeight
	f := m.stage.Frame()
	for i := len(f.Cards) - 1; i >= 0; i-- {
		r := f.Cards[i].Rect
		if px < r.X || px > r.Right() || py < r.Y || py > r.Bottom() {
			continue
		}
		id, err := uuid.Parse(f.Cards[i].ID)
		if err != nil {
			return
		}
		link, err := m.ctrl.ClickCard(m.ctx, id)
		m.clicked(link, err)
		return
	}
}

func (m *previewModel) clicked(link string, err error) {
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.lastLink = link
	m.status = "open " + link
}

func (m previewModel) View() string {
	if m.cols == 0 {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(drawFrame(m.stage.Frame(), m.cols, m.rows, m.selected))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(styles.Truncate(m.status, m.cols)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(styles.Truncate(previewHelp, m.cols)))
	return b.String()
}

// =============================================================================
// Drawing
// =============================================================================

// drawFrame renders f onto a cols×rows grid. selected is the index of the
// highlighted live card.
func drawFrame(f render.Frame, cols, rows, selected int) string {
	c := newCanvas(cols, rows)
	drawAvatar(c, f)
	for _, v := range f.Exiting {
		drawCard(c, v, false)
	}
	for i, v := range f.Cards {
		drawCard(c, v, i == selected)
	}
	return c.String()
}

func drawAvatar(c *canvas, f render.Frame) {
	center, size := f.Avatar()
	if size <= 0 {
		return
	}
	st := c.addStyle(previewAvatarStyle)
	r := size / 2
	x0, x1 := int((center.X-r)/cellWidth), int((center.X+r)/cellWidth)
	y0, y1 := int((center.Y-r)/cellHeight), int((center.Y+r)/cellHeight)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := (float64(x)+0.5)*cellWidth, (float64(y)+0.5)*cellHeight
			if math.Hypot(px-center.X, py-center.Y) <= r {
				c.set(x, y, '░', st)
			}
		}
	}
}

func drawCard(c *canvas, v render.CardView, selected bool) {
	x0 := int(math.Floor(v.Rect.X / cellWidth))
	y0 := int(math.Floor(v.Rect.Y / cellHeight))
	x1 := max(x0+2, int(math.Ceil(v.Rect.Right()/cellWidth))-1)
	y1 := max(y0+2, int(math.Ceil(v.Rect.Bottom()/cellHeight))-1)

	bg := lipgloss.Color(v.Style.Background.Hex())
	fill := lipgloss.NewStyle().Background(bg).Foreground(previewTextColor)
	border := fill.Foreground(lipgloss.Color(v.Style.Border.Hex()))
	if selected {
		border = border.Foreground(colorCyan).Bold(true)
	}
	if v.Exiting {
		fill, border = fill.Faint(true), border.Faint(true)
	}
	fs, bs := c.addStyle(fill), c.addStyle(border)
	c.box(x0, y0, x1, y1, bs, fs)

	inner := x1 - x0 - 1
	lines := y1 - y0 - 1
	if inner < 3 || lines < 1 {
		return
	}
	title := styles.Wrap(v.Title, inner, max(1, lines-1))
	for i, line := range title {
		c.text(x0+1, y0+1+i, line, inner, c.addStyle(fill.Bold(true)))
	}
	if lines > len(title) && v.Date != "" {
		c.text(x0+1, y1-1, styles.Truncate(v.Date, inner), inner, fs)
	}
}
