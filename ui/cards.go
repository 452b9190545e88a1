package ui

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/scramble"
	"github.com/catyyy/hp-catyyy/systems"
)

// Card is one floating info card. Its body is shown only while hovered.
type Card struct {
	Config config.CardConfig
	Title  *Label
	Hover  *scramble.Hover
	Bounds Rect
}

// Connector links a card to the particle nearest its centre.
type Connector struct {
	Card     int
	From, To r2.Vec
}

// Cards manages the floating cards on the about page.
type Cards struct {
	cards  []*Card
	theme  Theme
	active int

	width, height float64
	points        []r2.Vec
}

// NewCards creates the cards. Titles scramble for duration while hovered.
func NewCards(cfgs []config.CardConfig, timers scramble.Timers, duration time.Duration, theme Theme, opts ...scramble.Option) *Cards {
	c := &Cards{theme: theme, active: -1}
	for _, cfg := range cfgs {
		label := NewLabel(cfg.Title)
		c.cards = append(c.cards, &Card{
			Config: cfg,
			Title:  label,
			Hover:  scramble.NewHover(scramble.New(label, timers, opts...), duration),
		})
	}
	return c
}

// Cards returns the cards in order.
func (c *Cards) Cards() []*Card {
	return c.cards
}

// Active returns the hovered card index, or -1.
func (c *Cards) Active() int {
	return c.active
}

// SetPoints stores the latest particle snapshot.
func (c *Cards) SetPoints(points []r2.Vec) {
	c.points = points
}

// Layout places each card at its fractional position in a width x height
// window. The hovered card grows to show its body.
func (c *Cards) Layout(width, height float64) {
	c.width, c.height = width, height
	for i, card := range c.cards {
		c.layoutCard(i, card)
	}
}

func (c *Cards) layoutCard(i int, card *Card) {
	t := c.theme
	h := t.Padding*2 + float64(t.CardTitleSize)
	if i == c.active {
		h += t.LineHeight/2 + t.LineHeight*float64(len(card.Config.Lines))
	}
	card.Bounds = Rect{
		X: card.Config.Left * c.width,
		Y: card.Config.Top * c.height,
		W: t.CardWidth,
		H: h,
	}
}

// Hover updates card state from the pointer. Only the last card under the
// pointer (the one drawn on top) counts as hovered.
func (c *Cards) Hover(x, y float64, inside bool) {
	next := -1
	if inside {
		for i, card := range c.cards {
			if card.Bounds.Contains(x, y) {
				next = i
			}
		}
	}
	if next == c.active {
		return
	}

	prev := c.active
	c.active = next
	if prev >= 0 {
		c.cards[prev].Hover.SetHovered(false)
		c.layoutCard(prev, c.cards[prev])
	}
	if next >= 0 {
		c.cards[next].Hover.SetHovered(true)
		c.layoutCard(next, c.cards[next])
	}
}

// Connectors returns one line per card from its centre to the nearest
// particle. Empty without a snapshot.
func (c *Cards) Connectors() []Connector {
	if len(c.points) == 0 {
		return nil
	}
	out := make([]Connector, 0, len(c.cards))
	for i, card := range c.cards {
		from := card.Bounds.Center()
		idx, ok := systems.NearestPoint(c.points, from)
		if !ok {
			continue
		}
		out = append(out, Connector{Card: i, From: from, To: c.points[idx]})
	}
	return out
}

// Draw renders connectors first, then the cards.
func (c *Cards) Draw(r *Renderer) {
	t := c.theme
	for _, conn := range c.Connectors() {
		r.DrawLine(conn.From, conn.To, 1, t.Connector)
		r.DrawDot(conn.To, 3, t.Accent)
	}

	for i, card := range c.cards {
		active := i == c.active
		accent := t.AccentWidth
		titleColor := t.TitleColor
		if active {
			accent++
			titleColor = t.Accent
		}
		r.DrawPanel(card.Bounds, accent)

		x := card.Bounds.X + t.Padding
		y := card.Bounds.Y + t.Padding
		r.DrawText(card.Title.Text(), x, y, t.CardTitleSize, titleColor)
		if !active {
			continue
		}
		y += float64(t.CardTitleSize) + t.LineHeight/2
		for _, line := range card.Config.Lines {
			r.DrawText(line, x, y, t.FontSize, t.CardText)
			y += t.LineHeight
		}
	}
}

// Close cancels pending scrambles.
func (c *Cards) Close() {
	for _, card := range c.cards {
		card.Hover.Close()
	}
}
