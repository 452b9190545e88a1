package ui

import (
	"time"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/scramble"
)

// NavItem is one navigation link.
type NavItem struct {
	Link   config.NavLink
	Label  *Label
	Hover  *scramble.Hover
	Bounds Rect
}

// Nav is the row of navigation links along the top edge. Each link scrambles
// while hovered and plays one staggered intro scramble after mounting.
type Nav struct {
	items  []*NavItem
	theme  Theme
	active string
}

// NewNav creates the links and schedules their intros, introStep apart.
func NewNav(links []config.NavLink, timers scramble.Timers, hover, introStep time.Duration, theme Theme, opts ...scramble.Option) *Nav {
	n := &Nav{theme: theme}
	for i, link := range links {
		label := NewLabel(link.Label)
		h := scramble.NewHover(scramble.New(label, timers, opts...), hover)
		h.ScheduleIntro(time.Duration(i) * introStep)
		n.items = append(n.items, &NavItem{Link: link, Label: label, Hover: h})
	}
	return n
}

// Items returns the links in order.
func (n *Nav) Items() []*NavItem {
	return n.items
}

// SetActive highlights the link that leads to variant.
func (n *Nav) SetActive(variant string) {
	n.active = variant
}

// Layout right-aligns the links in a row at the top of a window width wide.
// Widths are measured from the original text so scrambling never moves a link.
func (n *Nav) Layout(width float64, measure MeasureFunc) {
	pad := n.theme.Padding
	gap := pad * 2
	height := float64(n.theme.NavFontSize) + pad

	x := width - pad
	for i := len(n.items) - 1; i >= 0; i-- {
		it := n.items[i]
		w := measure(it.Hover.Scrambler().OriginalText(), n.theme.NavFontSize)
		x -= w
		it.Bounds = Rect{X: x, Y: pad / 2, W: w, H: height}
		x -= gap
	}
}

// Hover updates every link from the pointer position. inside is false when
// the pointer has left the window.
func (n *Nav) Hover(x, y float64, inside bool) {
	for _, it := range n.items {
		it.Hover.SetHovered(inside && it.Bounds.Contains(x, y))
	}
}

// Hit returns the link under (x, y).
func (n *Nav) Hit(x, y float64) (config.NavLink, bool) {
	for _, it := range n.items {
		if it.Bounds.Contains(x, y) {
			return it.Link, true
		}
	}
	return config.NavLink{}, false
}

// Draw renders the links.
func (n *Nav) Draw(r *Renderer) {
	for _, it := range n.items {
		color := n.theme.NavColor
		if it.Link.Variant != "" && it.Link.Variant == n.active {
			color = n.theme.NavActive
		}
		r.DrawText(it.Label.Text(), it.Bounds.X, it.Bounds.Y+n.theme.Padding/2, n.theme.NavFontSize, color)
	}
}

// Close cancels every pending scramble.
func (n *Nav) Close() {
	for _, it := range n.items {
		it.Hover.Close()
	}
}
