package constant

// Ticket management providers, stored in concerts.ticket_provider.
const (
	ProviderSql         = "sql"
	ProviderExternalApi = "external_api"
)

// Outbound dependencies guarded by their own circuit breaker.
const (
	DependencyPaymentGateway   = "payment-gateway"
	DependencyTicketManagement = "ticket-management"
)
