// Package sound provides the effect player notified when the snake eats.
// Playback is best effort: callers log a failed Play and carry on.
package sound

import (
	"fmt"
	"io"
)

// Effect identifies a sound cue.
type Effect int

const (
	EffectEat Effect = iota
)

func (e Effect) String() string {
	switch e {
	case EffectEat:
		return "eat"
	default:
		return "unknown"
	}
}

// Player plays sound effects.
type Player interface {
	Play(e Effect) error
}

// Bell rings the terminal bell on the given writer (a local terminal or an
// SSH session).
type Bell struct {
	w io.Writer
}

// NewBell creates a Bell that writes to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play writes the BEL control character.
func (b *Bell) Play(e Effect) error {
	if b.w == nil {
		return fmt.Errorf("sound: no output for %s effect", e)
	}
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("sound: cannot play %s effect: %w", e, err)
	}
	return nil
}

// Mute discards every effect.
type Mute struct{}

// Play does nothing.
func (Mute) Play(Effect) error { return nil }

var (
	_ Player = (*Bell)(nil)
	_ Player = Mute{}
)
