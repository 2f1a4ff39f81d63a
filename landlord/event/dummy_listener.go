package event

type DummyListener struct {
	receivedEvents []Event
}

func NewDummyListener() *DummyListener {
	return &DummyListener{receivedEvents: make([]Event, 0)}
}

func (l *DummyListener) ReceivedEvents() []Event {
	return l.receivedEvents
}

func (l *DummyListener) OnEvent(e Event) {
	l.receivedEvents = append(l.receivedEvents, e)
}

// Actions lists the actions of the received events in order.
func (l *DummyListener) Actions() []Action {
	actions := make([]Action, 0, len(l.receivedEvents))
	for _, e := range l.receivedEvents {
		actions = append(actions, e.Action())
	}
	return actions
}
