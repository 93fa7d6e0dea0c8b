package model

type Concert struct {
	Id                      int32   `json:"id"`
	Title                   string  `json:"title"`
	Artist                  string  `json:"artist"`
	IsVisible               bool    `json:"is_visible"`
	Price                   float64 `json:"price"`
	TicketProvider          string  `json:"ticket_provider"`
	TicketProviderConcertId string  `json:"ticket_provider_concert_id,omitempty"`
}

type Customer struct {
	Id    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
