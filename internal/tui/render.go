package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/VinEdw/mastermind-pvp/internal/game"
	"github.com/VinEdw/mastermind-pvp/internal/palette"
)

const (
	originX   = 4
	originY   = 1
	slotWidth = 3
)

// Layout maps board elements to screen cells.
type Layout struct {
	Slots, Colors, Guesses int
}

// LayoutFor returns the layout of g's board.
func LayoutFor(g *game.Game) Layout {
	r := g.Rules()
	return Layout{Slots: r.Slots, Colors: r.Colors, Guesses: r.Guesses}
}

func (l Layout) rowY(row int) int { return originY + row }
func (l Layout) solutionY() int { return originY + l.Guesses + 1 }
func (l Layout) panelY() int { return l.solutionY() + 2 }
func (l Layout) statusY() int { return l.panelY() + 2 }
func (l Layout) slotX(i int) int { return originX + i*slotWidth }
func (l Layout) feedbackX() int { return l.slotX(l.Slots) + 1 }
func (l Layout) buttonX() int { return l.slotX(l.Colors) + 1 }
func (l Layout) within(x, i int) bool { return x >= l.slotX(i) && x < l.slotX(i)+slotWidth-1 }

// Hit decodes a click at (x, y) on the current row or the color panel.
func (l Layout) Hit(x, y, currentRow int) Action {
	switch {
	case currentRow != game.NoRow && y == l.rowY(currentRow):
		for i := 0; i < l.Slots; i++ {
			if l.within(x, i) {
				return Action{Kind: ActSelect, Slot: i}
			}
		}
	case y == l.panelY():
		ids := game.Palette(l.Colors)
		for i, c := range ids {
			if l.within(x, i) {
				return Action{Kind: ActPlace, Color: c}
			}
		}
		if x >= l.buttonX() && x < l.buttonX()+len(" Check ") {
			return Action{Kind: ActCheck}
		}
	}
	return Action{}
}

// ActionForKey decodes a key press.
func ActionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActQuit}
	case tcell.KeyLeft:
		return Action{Kind: ActLeft}
	case tcell.KeyRight:
		return Action{Kind: ActRight}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return Action{Kind: ActClear}
	case tcell.KeyEnter:
		return Action{Kind: ActCheck}
	case tcell.KeyRune:
		return ActionForRune(ev.Rune())
	}
	return Action{}
}

// ActionForRune decodes typed characters: digits place colors, q quits.
func ActionForRune(r rune) Action {
	switch {
	case r >= '0' && r <= '9':
		return Action{Kind: ActPlace, Color: game.Color(string(r))}
	case r == 'q':
		return Action{Kind: ActQuit}
	}
	return Action{}
}

var (
	styleText  = tcell.StyleDefault
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDark  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLight = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Draw renders the board. The caller calls Show.
func Draw(s tcell.Screen, b *Board) {
	s.Clear()
	g := b.Game()
	l := LayoutFor(g)
	st := g.State()
	rows := g.Rows()

	for r := 0; r < l.Guesses; r++ {
		y := l.rowY(r)
		switch {
		case r < len(rows):
			drawSequence(s, l, y, rows[r].Guess, -1)
			drawFeedback(s, l, y, rows[r].Feedback)
		case r == st.Row:
			drawText(s, originX-2, y, ">", styleText)
			drawSequence(s, l, y, b.Draft(), b.Selected())
		default:
			drawSequence(s, l, y, make(game.Sequence, l.Slots), -1)
		}
	}

	if sol, ok := g.Solution(); ok {
		drawSequence(s, l, l.solutionY(), sol, -1)
	} else {
		for i := 0; i < l.Slots; i++ {
			drawText(s, l.slotX(i), l.solutionY(), "??", styleDim)
		}
	}

	drawSequence(s, l, l.panelY(), game.Palette(l.Colors), -1)
	label := " Check "
	if st.Finished {
		label = " Reset "
	}
	drawText(s, l.buttonX(), l.panelY(), label, styleText.Reverse(true))

	drawText(s, originX, l.statusY(), b.Status(), styleText)
	drawText(s, originX, l.statusY()+1, "digits: place  ←/→: move  ⌫: clear  enter: check  q: quit", styleDim)
}

func drawSequence(s tcell.Screen, l Layout, y int, seq game.Sequence, selected int) {
	tbl := palette.Standard()
	for i, c := range seq {
		x := l.slotX(i)
		style := styleDim
		text := "··"
		if c != game.Empty {
			hex, _ := tbl.Hex(string(c))
			style = tcell.StyleDefault.Background(tcell.GetColor(hex)).Foreground(tcell.ColorBlack)
			text = " " + string(c)
		}
		if i == selected {
			style = style.Underline(true).Bold(true)
		}
		drawText(s, x, y, text, style)
	}
}

func drawFeedback(s tcell.Screen, l Layout, y int, fb game.Feedback) {
	x := l.feedbackX()
	for _, p := range fb.Pegs() {
		if p == game.PegDark {
			s.SetContent(x, y, '●', nil, styleDark)
		} else {
			s.SetContent(x, y, '○', nil, styleLight)
		}
		x++
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
