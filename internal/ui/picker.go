// Package ui renders the suggestion engine in a terminal using tcell. It is
// a deliberately thin adapter: every key and mouse event is translated into
// one engine call, and every frame is drawn from the engine's Snapshot. The
// picker holds no interaction state of its own beyond the typed runes.
package ui

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/corey/typeahead/internal/app"
	"github.com/corey/typeahead/internal/domain/interact"
	"github.com/corey/typeahead/internal/ports"
)

// ErrCancelled is returned by Run when the user aborts without committing.
var ErrCancelled = errors.New("cancelled")

// listRow is the screen row where the suggestion list starts (row 0 is the
// prompt, row 1 a separator).
const listRow = 2

// Picker is an interactive terminal front end over the engine.
type Picker struct {
	engine  *app.Engine
	prompt  string
	input   []rune
	updates chan app.Snapshot

	committed chan string
}

// NewPicker builds a picker and the engine it drives. The cfg hooks are
// owned by the picker; callers supply Options, History, and Source.
func NewPicker(cfg app.EngineConfig, prompt string) *Picker {
	p := &Picker{
		prompt:    prompt,
		updates:   make(chan app.Snapshot, 64),
		committed: make(chan string, 1),
	}
	cfg.OnUpdate = func(snap app.Snapshot) {
		select {
		case p.updates <- snap:
		default:
			// Drop; the next frame draws from Snapshot() anyway.
		}
	}
	cfg.OnSearch = func(value string) {
		select {
		case p.committed <- value:
		default:
		}
	}
	p.engine = app.NewEngine(cfg)
	return p
}

// Run owns the terminal until the user commits a value or cancels.
func (p *Picker) Run() (string, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return "", err
	}
	if err := screen.Init(); err != nil {
		return "", err
	}
	defer screen.Fini()
	defer p.engine.Close()

	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	p.draw(screen, p.engine.Snapshot())

	for {
		select {
		case value := <-p.committed:
			return value, nil

		case snap := <-p.updates:
			p.draw(screen, snap)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventMouse:
				if done := p.handleMouse(ev); done {
					continue
				}
			case *tcell.EventKey:
				if cancelled := p.handleKey(ev); cancelled {
					return "", ErrCancelled
				}
			}
			p.draw(screen, p.engine.Snapshot())
		}
	}
}

// handleKey translates one key event into an engine call. Returns true when
// the user cancelled.
func (p *Picker) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if !p.engine.Snapshot().Open {
			return true
		}
		p.engine.Escape()
	case tcell.KeyDown, tcell.KeyCtrlN:
		p.engine.MoveDown()
	case tcell.KeyUp, tcell.KeyCtrlP:
		p.engine.MoveUp()
	case tcell.KeyHome:
		p.engine.Home()
	case tcell.KeyEnd:
		p.engine.End()
	case tcell.KeyEnter:
		p.engine.Enter()
	case tcell.KeyTab:
		// No focus to move in a full-screen picker; an unintercepted Tab
		// is simply ignored.
		p.engine.Tab()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
			p.engine.Input(string(p.input))
		}
	case tcell.KeyCtrlU:
		p.input = nil
		p.engine.Input("")
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
		p.engine.Input(string(p.input))
	}
	return false
}

// handleMouse maps a primary-button click onto a row commit or an
// outside-the-list dismiss.
func (p *Picker) handleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return true // ignore movement and other buttons
	}
	snap := p.engine.Snapshot()
	_, y := ev.Position()
	row := y - listRow
	if snap.Open && row >= 0 && row < len(snap.Items) {
		p.engine.ClickRow(row)
	} else {
		p.engine.ClickOutside()
	}
	return false
}

func (p *Picker) draw(screen tcell.Screen, snap app.Snapshot) {
	screen.Clear()
	width, height := screen.Size()

	promptStyle := tcell.StyleDefault.Bold(true)
	drawText(screen, 0, 0, promptStyle, p.prompt)
	px := runewidth.StringWidth(p.prompt)
	drawText(screen, px, 0, tcell.StyleDefault, string(p.input))
	if snap.Loading {
		drawText(screen, width-1, 0, tcell.StyleDefault.Foreground(tcell.ColorYellow), "…")
	}

	drawText(screen, 0, 1, tcell.StyleDefault.Foreground(tcell.ColorGray), repeat('─', width))

	if snap.Open {
		for i, item := range snap.Items {
			y := listRow + i
			if y >= height-1 {
				break
			}
			style := tcell.StyleDefault
			switch {
			case item.Source == ports.FromError:
				style = style.Foreground(tcell.ColorRed)
			case i == snap.ActiveIndex:
				style = style.Reverse(true)
			}
			label := item.Value
			if item.Source == ports.FromHistory {
				label += "  ⟲"
			}
			drawText(screen, 1, y, style, label)
		}
	}

	status := snap.Announce
	if snap.Validity != interact.Valid {
		status += "  [" + string(snap.Validity) + "]"
	}
	drawText(screen, 0, height-1, tcell.StyleDefault.Foreground(tcell.ColorGray), status)

	screen.ShowCursor(px+runewidth.StringWidth(string(p.input)), 0)
	screen.Show()
}

// drawText writes s starting at (x, y), advancing by display width.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func repeat(r rune, n int) string {
	if n < 0 {
		n = 0
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
