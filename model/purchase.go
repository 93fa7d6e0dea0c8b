package model

type PurchaseStatus string

const (
	PurchaseStatusSuccess         PurchaseStatus = "Success"
	PurchaseStatusUnableToProcess PurchaseStatus = "UnableToProcess"
	// PurchaseStatusCaptureFailed means tickets were reserved but the held
	// funds could not be captured.
	PurchaseStatusCaptureFailed PurchaseStatus = "CaptureFailed"
)

// FailureReason classifies a purchase that did not succeed.
type FailureReason string

const (
	FailureReasonValidation              FailureReason = "validation"
	FailureReasonNotFound                FailureReason = "not_found"
	FailureReasonPaymentDeclined         FailureReason = "payment_declined"
	FailureReasonReservationInsufficient FailureReason = "reservation_insufficient"
	FailureReasonReservationFailed       FailureReason = "reservation_failed"
	FailureReasonCaptureFailed           FailureReason = "capture_failed"
	FailureReasonDependencyUnavailable   FailureReason = "dependency_unavailable"
	FailureReasonInternal                FailureReason = "internal"
)

type PaymentDetails struct {
	Name                string `json:"name" validate:"required,max=100"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"required,max=20"`
	NameOnCard          string `json:"name_on_card" validate:"required,max=70"`
	CardNumber          string `json:"card_number" validate:"required,len=16,numeric,startswith=4"`
	SecurityCode        string `json:"security_code" validate:"required,len=3,numeric"`
	ExpirationMonthYear string `json:"expiration_month_year" validate:"required,mmyy"`
	Address             string `json:"address,omitempty" validate:"max=100"`
	City                string `json:"city,omitempty" validate:"max=50"`
	Region              string `json:"region,omitempty" validate:"max=50"`
	PostalCode          string `json:"postal_code,omitempty" validate:"max=10"`
	Country             string `json:"country,omitempty" validate:"max=50"`
}

type PurchaseTicketsRequest struct {
	UserId                    string          `json:"user_id" validate:"required"`
	PaymentDetails            *PaymentDetails `json:"payment_details" validate:"required"`
	ConcertIdsAndTicketCounts map[int32]int32 `json:"concert_ids_and_ticket_counts" validate:"required,min=1,dive,keys,gt=0,endkeys,gt=0"`
}

type PurchaseTicketsResult struct {
	Status        PurchaseStatus      `json:"status"`
	Reason        FailureReason       `json:"reason,omitempty"`
	ErrorMessages map[string][]string `json:"error_messages,omitempty"`
}

func (r PurchaseTicketsResult) Succeeded() bool {
	return r.Status == PurchaseStatusSuccess
}
