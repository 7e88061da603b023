package event

type DummyListener struct {
	receivedPayloads []Event
}

func NewDummyListener() *DummyListener {
	return &DummyListener{receivedPayloads: make([]Event, 0)}
}

func (l *DummyListener) ReceivedPayloads() []Event {
	return l.receivedPayloads
}

func (l *DummyListener) OnEvent(_ *Log, e Event) {
	l.receivedPayloads = append(l.receivedPayloads, e)
}
