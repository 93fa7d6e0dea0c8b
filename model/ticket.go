package model

type ReserveStatus string

const (
	ReserveStatusSuccess                   ReserveStatus = "Success"
	ReserveStatusNotEnoughTicketsRemaining ReserveStatus = "NotEnoughTicketsRemaining"
	ReserveStatusConcertNotFound           ReserveStatus = "ConcertNotFound"
)

type ReserveTicketsRequest struct {
	ConcertId  int32
	UserId     string
	Count      int32
	CustomerId int32
	// ExternalConcertId addresses the concert on a remote backend.
	ExternalConcertId string
}

type ReserveTicketsResult struct {
	Status        ReserveStatus `json:"status"`
	TicketIds     []int32       `json:"ticket_ids,omitempty"`
	TicketNumbers []string      `json:"ticket_numbers,omitempty"`
}

type TicketCountResponse struct {
	ConcertId int32 `json:"concert_id"`
	Count     int64 `json:"count"`
}

type TicketSoldResponse struct {
	ConcertId int32 `json:"concert_id"`
	HaveSold  bool  `json:"have_sold"`
}

// Remote ticket management wire format.

type RemoteReserveRequest struct {
	ConcertId string `json:"concert_id"`
	UserId    string `json:"user_id"`
	Count     int32  `json:"count"`
}

type RemoteReserveResponse struct {
	Status        ReserveStatus `json:"status"`
	TicketNumbers []string      `json:"ticket_numbers"`
}

type RemoteCountResponse struct {
	Count int64 `json:"count"`
}

type RemoteSoldResponse struct {
	HaveSold bool `json:"have_sold"`
}
