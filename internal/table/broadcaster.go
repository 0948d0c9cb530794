package table

type Broadcaster interface {
	Broadcast(action string, data interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, interface{}) {}
