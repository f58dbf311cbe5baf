package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/render"
	"github.com/matzehuels/orbitcards/pkg/render/styles"
)

const cardCSS = `
    .card { transform-box: fill-box; transform-origin: center; transition: transform 0.3s ease, filter 0.3s ease; }
    .card-rect { stroke-width: 2; }
    .card-title { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; font-weight: 600; fill: #333; }
    .card-date { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; fill: #666; }
    .avatar { fill: #eee; stroke: #fff; stroke-width: 4; }
    a { cursor: pointer; }`

const floatCSS = `
    @keyframes float {
      0%, 100% { transform: translate(0, 0) rotate(0deg); }
      25% { transform: translate(var(--float-x1), var(--float-y1)) rotate(var(--rotate-1)); }
      50% { transform: translate(var(--float-x2), var(--float-y2)) rotate(var(--rotate-2)); }
      75% { transform: translate(var(--float-x3), var(--float-y3)) rotate(var(--rotate-3)); }
    }
    .card { animation: float 20s ease-in-out infinite; }
    .card:hover { animation-play-state: paused; transform: scale(1.05); filter: url(#glow); }
    @keyframes exit {
      from { transform: translateY(0); opacity: 1; }
      to { transform: translateY(100vh); opacity: 0; }
    }
    .card.exiting { animation: exit 0.5s ease-in forwards; pointer-events: none; }`

const (
	cardRadius    = 10.0
	titleMaxLines = 3
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static     bool
	avatar     string
	background string
	guides     bool
}

func WithStatic() SVGOption                 { return func(r *svgRenderer) { r.static = true } }
func WithAvatarImage(href string) SVGOption { return func(r *svgRenderer) { r.avatar = href } }
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }
func WithGuides() SVGOption                 { return func(r *svgRenderer) { r.guides = true } }

// RenderSVG draws f as a standalone SVG document sized to the viewport.
func RenderSVG(f render.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := f.Params

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		p.Width, p.Height, p.Width, p.Height)

	renderDefs(&buf, p)
	renderStyle(&buf, r.static)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))

	if r.guides {
		renderGuides(&buf, p)
	}
	renderAvatar(&buf, p, r.avatar)
	for _, c := range f.Cards {
		renderCard(&buf, c)
	}
	if !r.static {
		for _, c := range f.Exiting {
			renderCard(&buf, c)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{background: "#fafafa"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderDefs(buf *bytes.Buffer, p geometry.Params) {
	c := p.Center
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="shadow" x="-20%" y="-20%" width="140%" height="140%">` +
		`<feDropShadow dx="0" dy="4" stdDeviation="6" flood-opacity="0.15"/></filter>` + "\n")
	buf.WriteString(`    <filter id="glow" x="-30%" y="-30%" width="160%" height="160%">` +
		`<feDropShadow dx="0" dy="0" stdDeviation="10" flood-color="#fff" flood-opacity="0.9"/></filter>` + "\n")
	fmt.Fprintf(buf, `    <clipPath id="avatar-clip"><circle cx="%.1f" cy="%.1f" r="%.1f"/></clipPath>`+"\n",
		c.X, c.Y, p.AvatarSize/2)
	buf.WriteString("  </defs>\n")
}

func renderStyle(buf *bytes.Buffer, static bool) {
	css := cardCSS
	if !static {
		css += floatCSS
	}
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", css)
}

func renderGuides(buf *bytes.Buffer, p geometry.Params) {
	c, b := p.Center, p.Bounds()
	for _, e := range []geometry.Ellipse{p.Outer, p.Inner} {
		fmt.Fprintf(buf, `  <ellipse class="guide" cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="none" stroke="#bbb" stroke-dasharray="6 4"/>`+"\n",
			c.X, c.Y, e.RX, e.RY)
	}
	fmt.Fprintf(buf, `  <rect class="guide" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#ddd" stroke-dasharray="2 4"/>`+"\n",
		b.X, b.Y, b.W, b.H)
}

func renderAvatar(buf *bytes.Buffer, p geometry.Params, href string) {
	c, r := p.Center, p.AvatarSize/2
	if href != "" {
		box := p.AvatarBox()
		fmt.Fprintf(buf, `  <image href="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" clip-path="url(#avatar-clip)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			styles.EscapeXML(href), box.X, box.Y, box.W, box.H)
		fmt.Fprintf(buf, `  <circle class="avatar" cx="%.1f" cy="%.1f" r="%.1f" fill="none"/>`+"\n", c.X, c.Y, r)
		return
	}
	fmt.Fprintf(buf, `  <circle class="avatar" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", c.X, c.Y, r)
}

func renderCard(buf *bytes.Buffer, c render.CardView) {
	class := "card"
	if c.Exiting {
		class += " exiting"
	}
	styles.WrapURL(buf, c.Link, func() {
		fmt.Fprintf(buf, `  <g class="%s" id="card-%s" style="%s">`+"\n", class, c.ID, c.Style.CSSVars())
		fmt.Fprintf(buf, `    <rect class="card-rect" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" filter="url(#shadow)"/>`+"\n",
			c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, cardRadius, c.Style.Background.Hex(), c.Style.Border.Hex())
		renderCardText(buf, c)
		buf.WriteString("  </g>\n")
	})
}

func renderCardText(buf *bytes.Buffer, c render.CardView) {
	w := c.Rect.W
	pad := styles.Padding(w)
	titleSize, dateSize := styles.TitleSize(w), styles.DateSize(w)
	x := c.Rect.X + pad
	y := c.Rect.Y + pad + titleSize

	for _, line := range styles.WrapTitle(c.Title, w, titleMaxLines) {
		fmt.Fprintf(buf, `    <text class="card-title" x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
			x, y, titleSize, styles.EscapeXML(line))
		y += titleSize * 1.25
	}
	if c.Date != "" {
		fmt.Fprintf(buf, `    <text class="card-date" x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
			x, c.Rect.Bottom()-pad, dateSize, styles.EscapeXML(c.Date))
	}
}
