package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEventSystem(t *testing.T) {
	t.Helper()
	require.True(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })
}

func TestEventFireStopsAtFirstHandler(t *testing.T) {
	withEventSystem(t)

	var calls []string
	_, err := EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls = append(calls, "first")
		return true
	})
	require.NoError(t, err)
	_, err = EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool {
		calls = append(calls, "second")
		return false
	})
	require.NoError(t, err)

	handled := EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: &KeyEvent{KeyCode: KEY_ESCAPE}})
	assert.True(t, handled)
	assert.Equal(t, []string{"first"}, calls)
}

func TestEventDataIsDelivered(t *testing.T) {
	withEventSystem(t)

	var got *SystemEvent
	_, err := EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		got, _ = ctx.Data.(*SystemEvent)
		return false
	})
	require.NoError(t, err)

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480}}))
	require.NotNil(t, got)
	assert.Equal(t, uint32(640), got.WindowWidth)
	assert.Equal(t, uint32(480), got.WindowHeight)
}

func TestEventUnregister(t *testing.T) {
	withEventSystem(t)

	fired := 0
	id, err := EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool {
		fired++
		return true
	})
	require.NoError(t, err)

	assert.True(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))
	assert.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Zero(t, fired)
}

func TestEventSystemNotInitialized(t *testing.T) {
	_, err := EventRegister(EVENT_CODE_RESIZED, func(EventContext) bool { return true })
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
	assert.ErrorIs(t, EventSystemShutdown(), ErrNotInitialized)
}

func TestEventRegisterRejectsBadInput(t *testing.T) {
	withEventSystem(t)

	_, err := EventRegister(MAX_MESSAGE_CODES, func(EventContext) bool { return true })
	assert.Error(t, err)
	_, err = EventRegister(EVENT_CODE_RESIZED, nil)
	assert.Error(t, err)
}
