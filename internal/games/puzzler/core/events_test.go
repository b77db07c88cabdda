package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got []string
	unsubA := bus.Subscribe(func(Event) { got = append(got, "a") })
	bus.Subscribe(func(Event) { got = append(got, "b") })

	bus.Emit(Highlight{})
	unsubA()
	bus.Emit(Highlight{})

	assert.Equal(t, []string{"a", "b", "b"}, got)
}

func TestBusUnsubscribeDuringEmit(t *testing.T) {
	bus := NewBus()
	calls := 0
	var unsub func()
	unsub = bus.Subscribe(func(Event) {
		calls++
		unsub()
	})
	bus.Subscribe(func(Event) { calls++ })

	bus.Emit(Highlight{})
	bus.Emit(Highlight{})
	assert.Equal(t, 3, calls)
}

func TestRecorderLimit(t *testing.T) {
	rec := NewRecorder(2)
	rec.Emit(Highlight{Cell: C(0, 0)})
	rec.Emit(Highlight{Cell: C(1, 0)})
	rec.Emit(Highlight{Cell: C(2, 0)})

	assert.Equal(t, []Event{Highlight{Cell: C(1, 0)}, Highlight{Cell: C(2, 0)}}, rec.Drain())
	assert.Zero(t, rec.Len())
}
