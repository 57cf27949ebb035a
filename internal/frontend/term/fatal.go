package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zapcore"
)

// fatalHook restores the terminal before a fatal log exits the process,
// then repeats the message on stderr where the player can see it.
type fatalHook struct {
	mu     sync.Mutex
	screen tcell.Screen
	out    io.Writer
	exit   func(int)
}

var _ zapcore.CheckWriteHook = (*fatalHook)(nil)

func newFatalHook() *fatalHook {
	return &fatalHook{out: os.Stderr, exit: os.Exit}
}

func (h *fatalHook) attach(screen tcell.Screen) {
	h.mu.Lock()
	h.screen = screen
	h.mu.Unlock()
}

// release hands the screen back and returns it, or nil if already released.
func (h *fatalHook) release() tcell.Screen {
	h.mu.Lock()
	defer h.mu.Unlock()
	screen := h.screen
	h.screen = nil
	return screen
}

func (h *fatalHook) OnWrite(entry *zapcore.CheckedEntry, fields []zapcore.Field) {
	if screen := h.release(); screen != nil {
		screen.Fini()
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	if len(enc.Fields) > 0 {
		fmt.Fprintf(h.out, "pong: fatal: %s %v\n", entry.Message, enc.Fields)
	} else {
		fmt.Fprintf(h.out, "pong: fatal: %s\n", entry.Message)
	}
	h.exit(1)
}
