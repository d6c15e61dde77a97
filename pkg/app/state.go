package app

import (
	"fmt"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateFetching
	StateDisplaying
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateFetching:
		return "fetching"
	case StateDisplaying:
		return "displaying"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// RefreshState is owned by the refresh loop. LastObservedHour is -1 until the first refresh.
type RefreshState struct {
	LastObservedHour int
	LastRefresh      time.Time
}
