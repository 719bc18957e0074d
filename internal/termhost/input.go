package termhost

import "github.com/gdamore/tcell/v2"

// Events forwards screen events to a buffered channel so a ticker loop can
// select on input. The goroutine ends when the screen is finalized.
func Events(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// IsQuitKey reports whether a key press should end the demo: Esc, Ctrl-C or q.
func IsQuitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}
