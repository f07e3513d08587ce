package publish

// FakePublisher records published messages for tests.
type FakePublisher struct {
	Messages []Message

	// PublishErr, when set, is returned by every Publish call.
	PublishErr error

	Closed bool
}

// Publish records the message.
func (f *FakePublisher) Publish(msg Message) error {
	if f.PublishErr != nil {
		return f.PublishErr
	}
	f.Messages = append(f.Messages, msg)
	return nil
}

// Close marks the publisher closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// TopicPayload returns the payload of the first message published on topic,
// or "" if none was.
func (f *FakePublisher) TopicPayload(topic string) string {
	for _, msg := range f.Messages {
		if msg.Topic == topic {
			return msg.Payload
		}
	}
	return ""
}
