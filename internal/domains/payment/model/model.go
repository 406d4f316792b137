package model

import (
	"furk/shared/model"
)

const (
	EntityName = "payment"
	TableName  = "payments"
)

const (
	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldInvoiceID  = "invoice_id"
	FieldInvoiceURL = "invoice_url"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusExpired = "expired"
	StatusFailed  = "failed"
)

// Terminal reports whether the status can no longer change. The poll loop
// stops on the first terminal status it sees.
func Terminal(status string) bool {
	return status == StatusPaid || status == StatusExpired || status == StatusFailed
}

type Payment struct {
	ID         string  `db:"id"`
	BookingID  string  `db:"booking_id"`
	InvoiceID  string  `db:"invoice_id"`
	InvoiceURL string  `db:"invoice_url"`
	Amount     float64 `db:"amount"`
	Status     string  `db:"status"`
	model.Metadata
}
