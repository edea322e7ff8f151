package resource

import "fmt"

// Handle is an opaque reference to a registry entry. The low 32 bits hold
// the slot index plus one, the high 32 bits the slot generation.
// Handle 0 is reserved and always invalid.
type Handle uint64

func makeHandle(index int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func (h Handle) index() int { return int(uint32(h)) - 1 }

func (h Handle) generation() uint32 { return uint32(h >> 32) }

func (h Handle) String() string {
	if h == 0 {
		return "null"
	}
	return fmt.Sprintf("#%d.%d", h.index(), h.generation())
}

// Kind tags what a handle refers to.
type Kind uint32

const (
	KindEOS Kind = iota + 1
	KindState
	KindParameters
)

func (k Kind) String() string {
	switch k {
	case KindEOS:
		return "equation of state"
	case KindState:
		return "state"
	case KindParameters:
		return "parameters"
	default:
		return fmt.Sprintf("kind(%d)", uint32(k))
	}
}

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
)

func (t EventType) String() string {
	if t == EventReleased {
		return "released"
	}
	return "created"
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup on release.
type Dropper interface {
	Drop()
}
