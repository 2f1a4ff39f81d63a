package event

type Listener interface {
	OnEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Bus fans events out to its listeners synchronously, in subscription order.
// Each controller owns its own bus.
type Bus struct {
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(listener Listener) {
	b.listeners = append(b.listeners, listener)
}

func (b *Bus) Emit(e Event) {
	for _, listener := range b.listeners {
		listener.OnEvent(e)
	}
}
