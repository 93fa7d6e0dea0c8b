package event

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/jetstream"
	"concert-purchase/model"
	"context"
	"fmt"
)

var subjectByEventType = map[string]string{
	constant.EventTypeTicketCreated: constant.SubjectTicketCreated,
}

// Sender publishes domain events to the queue stream.
type Sender struct {
	Publisher jetstream.Publisher
}

func NewSender(publisher jetstream.Publisher) *Sender {
	return &Sender{Publisher: publisher}
}

func (s *Sender) SendEvent(ctx context.Context, event model.Event) error {
	subject, ok := subjectByEventType[event.EventType]
	if !ok {
		return fmt.Errorf("no subject for event type %q", event.EventType)
	}

	return common.PublishMessage(ctx, s.Publisher, subject, event)
}
