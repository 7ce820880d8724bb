package core

import (
	"fmt"
	"sync"
)

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Resized/resolution changed from the OS. Data is *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint64
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	nextID     uint64
	registered map[SystemEventCode][]registeredEvent
}

var eventState *eventSystemState

func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	if eventState == nil {
		return ErrNotInitialized
	}
	eventState = nil
	return nil
}

// EventRegister subscribes onEvent to code and returns a handle usable with
// EventUnregister.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) (uint64, error) {
	if eventState == nil {
		return 0, ErrNotInitialized
	}
	if code < 0 || code >= MAX_MESSAGE_CODES {
		return 0, fmt.Errorf("event code %d out of range", code)
	}
	if onEvent == nil {
		return 0, fmt.Errorf("nil callback for event code %d", code)
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	eventState.nextID++
	id := eventState.nextID
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{id: id, callback: onEvent})
	return id, nil
}

// EventUnregister returns false if no listener with that handle exists.
func EventUnregister(code SystemEventCode, id uint64) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	events := eventState.registered[code]
	for i := range events {
		if events[i].id == id {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire delivers the event to listeners in registration order. If a
// handler returns true the event is considered handled and is not passed on
// to any more listeners.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.RLock()
	events := append([]registeredEvent(nil), eventState.registered[context.Type]...)
	eventState.mu.RUnlock()

	for _, e := range events {
		if e.callback(context) {
			return true
		}
	}
	return false
}
