package model

type PreAuthStatus string

const (
	PreAuthStatusFundsOnHold       PreAuthStatus = "FundsOnHold"
	PreAuthStatusInsufficientFunds PreAuthStatus = "InsufficientFunds"
	PreAuthStatusNotAValidCard     PreAuthStatus = "NotAValidCard"
)

type CaptureStatus string

const (
	CaptureStatusSuccessful        CaptureStatus = "CaptureSuccessful"
	CaptureStatusInvalidHoldCode   CaptureStatus = "InvalidHoldCode"
	CaptureStatusInvalidHoldAmount CaptureStatus = "InvalidHoldAmount"
)

type VoidStatus string

const (
	VoidStatusVoided          VoidStatus = "HoldVoided"
	VoidStatusInvalidHoldCode VoidStatus = "InvalidHoldCode"
)

type LineItem struct {
	ConcertId   int32   `json:"concert_id"`
	TicketCount int32   `json:"ticket_count"`
	UnitPrice   float64 `json:"unit_price"`
}

type PreAuthRequest struct {
	Amount         float64        `json:"amount"`
	PaymentDetails PaymentDetails `json:"payment_details"`
	LineItems      []LineItem     `json:"line_items"`
}

type PreAuthResult struct {
	HoldCode string        `json:"hold_code"`
	Status   PreAuthStatus `json:"status"`
}

type CaptureRequest struct {
	HoldCode string  `json:"hold_code"`
	Amount   float64 `json:"amount"`
}

type CaptureResult struct {
	ConfirmationNumber string        `json:"confirmation_number"`
	Status             CaptureStatus `json:"status"`
}

type VoidRequest struct {
	HoldCode string `json:"hold_code"`
}

type VoidResult struct {
	Status VoidStatus `json:"status"`
}
