package constant

const (
	ConcertTicketProviderKey = "concert:%d:ticket_provider"
)
