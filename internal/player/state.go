package player

import (
	"fmt"
	"strings"
)

// Status is the playback status of a sequencer.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "idle":
		*s = StatusIdle
	case "playing":
		*s = StatusPlaying
	default:
		return fmt.Errorf("unknown status %q", string(text))
	}
	return nil
}

// Cause names the operation that produced a transition.
type Cause string

const (
	CausePlay      Cause = "play"
	CauseReplay    Cause = "replay"
	CauseAdvance   Cause = "advance"
	CauseFinish    Cause = "finish"
	CauseJump      Cause = "jump"
	CauseCancel    Cause = "cancel"
	CauseShowFinal Cause = "show_final"
)

// Snapshot is the observable playback state.
type Snapshot struct {
	Stage         int    `json:"stage"`
	Status        Status `json:"status"`
	HasPlayedOnce bool   `json:"has_played_once"`
	Cause         Cause  `json:"cause,omitempty"`
}

// Playing reports whether the snapshot is mid-playback.
func (s Snapshot) Playing() bool {
	return s.Status == StatusPlaying
}

// Subscriber receives every transition of a sequencer.
type Subscriber interface {
	OnTransition(Snapshot)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(Snapshot)

// OnTransition implements Subscriber.
func (f SubscriberFunc) OnTransition(s Snapshot) {
	f(s)
}
