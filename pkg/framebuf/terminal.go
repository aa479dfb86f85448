package framebuf

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TerminalSink renders frames into a terminal using half-block cells,
// two frame pixels per character cell. It lets the screen layouts be
// eyeballed over SSH without the panel attached.
type TerminalSink struct {
	screen tcell.Screen

	mu     sync.Mutex
	closed bool
}

// NewTerminalSink initialises the terminal. onQuit is invoked once when
// the user presses q, Escape or Ctrl+C inside the preview.
func NewTerminalSink(onQuit func()) (*TerminalSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &TerminalSink{screen: screen}
	go t.pollEvents(onQuit)
	return t, nil
}

func (t *TerminalSink) pollEvents(onQuit func()) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				if onQuit != nil {
					onQuit()
				}
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// WriteFrame samples the frame down to the terminal size and paints it
// with upper half-block runes, foreground for the top pixel of each
// cell and background for the bottom.
func (t *TerminalSink) WriteFrame(img *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}

	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topY := (row * 2) * h / (rows * 2)
			botY := (row*2 + 1) * h / (rows * 2)
			x := col * w / cols

			top := img.RGBAAt(b.Min.X+x, b.Min.Y+topY)
			bot := img.RGBAAt(b.Min.X+x, b.Min.Y+botY)

			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			t.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *TerminalSink) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}
