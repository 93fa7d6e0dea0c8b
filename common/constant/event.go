package constant

const (
	QueueStreamName = "concert_purchase_queue_stream"
)

const (
	AllWildcard    = "events.>"
	TicketWildcard = "events.ticket.>"
	EmailWildcard  = "events.email.>"

	SubjectTicketCreated = "events.ticket.created"
	SubjectSendEmail     = "events.email.send"
)

const (
	EventTypeTicketCreated = "TicketCreated"
)
