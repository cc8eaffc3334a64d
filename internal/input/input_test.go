package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestManager_EnterNotifiesOnce(t *testing.T) {
	m := NewManager(zerolog.Nop())
	assert.Equal(t, ModeNormal, m.Mode())

	var changes []string
	m.OnChange(func(old, new Mode) {
		changes = append(changes, old.String()+">"+new.String())
	})

	m.Enter(ModeInsert)
	m.Enter(ModeInsert) // no-op
	m.Enter(ModeNormal)

	assert.Equal(t, []string{"normal>insert", "insert>normal"}, changes)
}

func TestFilter_RoutesByMode(t *testing.T) {
	m := NewManager(zerolog.Nop())
	f := NewFilter(m, zerolog.Nop())

	var normalKeys, insertKeys []rune
	f.SetHandler(ModeNormal, HandlerFunc(func(ev KeyEvent) bool {
		normalKeys = append(normalKeys, ev.Rune)
		return true
	}))
	f.SetHandler(ModeInsert, HandlerFunc(func(ev KeyEvent) bool {
		insertKeys = append(insertKeys, ev.Rune)
		return false
	}))

	assert.True(t, f.Filter(KeyEvent{Rune: 'j'}))
	m.Enter(ModeInsert)
	assert.False(t, f.Filter(KeyEvent{Rune: 'x'}))

	assert.Equal(t, []rune{'j'}, normalKeys)
	assert.Equal(t, []rune{'x'}, insertKeys)
}

func TestFilter_RemoveStopsDispatch(t *testing.T) {
	m := NewManager(zerolog.Nop())
	f := NewFilter(m, zerolog.Nop())

	called := false
	f.SetHandler(ModeNormal, HandlerFunc(func(KeyEvent) bool {
		called = true
		return true
	}))

	f.Remove()
	f.Remove() // idempotent
	assert.False(t, f.Filter(KeyEvent{Rune: 'q'}))
	assert.False(t, called)
}

func TestFilter_NoHandlerFallsThrough(t *testing.T) {
	m := NewManager(zerolog.Nop())
	f := NewFilter(m, zerolog.Nop())
	assert.False(t, f.Filter(KeyEvent{Rune: 'j'}))
}
