package pong

import "fmt"

type ModeKind int

const (
	ModePaused ModeKind = iota
	ModePlaying
	ModeScored
)

func (k ModeKind) String() string {
	switch k {
	case ModePaused:
		return "paused"
	case ModePlaying:
		return "playing"
	case ModeScored:
		return "scored"
	}
	return fmt.Sprintf("ModeKind(%d)", int(k))
}

// Mode is the top-level game state. Scorer is only meaningful in ModeScored.
type Mode struct {
	Kind   ModeKind
	Scorer PlayerId
}

func (m Mode) String() string {
	if m.Kind == ModeScored {
		return fmt.Sprintf("scored(%d)", int(m.Scorer))
	}
	return m.Kind.String()
}

type eventKind int

const (
	eventStart eventKind = iota
	eventPause
	eventContinue
	eventReset
	eventScored
)

type event struct {
	kind   eventKind
	player PlayerId
}

// next returns the mode that follows ev, or false when ev does not apply.
func (m Mode) next(ev event) (Mode, bool) {
	switch {
	case m.Kind == ModePaused && ev.kind == eventStart:
		return Mode{Kind: ModePlaying}, true
	case m.Kind == ModePlaying && ev.kind == eventPause:
		return Mode{Kind: ModePaused}, true
	case m.Kind == ModePlaying && ev.kind == eventScored:
		return Mode{Kind: ModeScored, Scorer: ev.player}, true
	case m.Kind == ModeScored && ev.kind == eventContinue:
		return Mode{Kind: ModePlaying}, true
	case m.Kind == ModeScored && ev.kind == eventReset:
		return Mode{Kind: ModePaused}, true
	}
	return m, false
}
