package model

type Event struct {
	EventType string `json:"event_type"`
	EntityId  int32  `json:"entity_id"`
}

type SendEmailEventMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
