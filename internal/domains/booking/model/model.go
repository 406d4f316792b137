package model

import (
	"time"

	"furk/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldMerchantID    = "merchant_id"
	FieldCustomerID    = "customer_id"
	FieldServiceID     = "service_id"
	FieldPetID         = "pet_id"
	FieldRequestedAt   = "requested_at"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldRemarks       = "remarks"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionStart    = "start"
	ActionComplete = "complete"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusExpired = "expired"
	PaymentStatusFailed  = "failed"
)

// NextStatus resolves an action against the booking lifecycle. The happy
// path is pending -> confirmed -> in_progress -> completed; cancellation is
// only reachable from confirmed. Completed and cancelled are terminal.
func NextStatus(current, action string) (string, bool) {
	switch {
	case current == StatusPending && action == ActionConfirm:
		return StatusConfirmed, true
	case current == StatusConfirmed && action == ActionCancel:
		return StatusCancelled, true
	case current == StatusConfirmed && action == ActionStart:
		return StatusInProgress, true
	case current == StatusInProgress && action == ActionComplete:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// AllowedActions lists the transitions available from a status, in the order
// the action buttons render.
func AllowedActions(status string) []string {
	switch status {
	case StatusPending:
		return []string{ActionConfirm}
	case StatusConfirmed:
		return []string{ActionCancel, ActionStart}
	case StatusInProgress:
		return []string{ActionComplete}
	default:
		return nil
	}
}

type Booking struct {
	ID            string     `db:"id"`
	MerchantID    string     `db:"merchant_id"`
	CustomerID    string     `db:"customer_id"`
	ServiceID     string     `db:"service_id"`
	PetID         *string    `db:"pet_id"`
	RequestedAt   time.Time  `db:"requested_at"`
	StartTime     *time.Time `db:"start_time"`
	EndTime       *time.Time `db:"end_time"`
	Status        string     `db:"status"`
	PaymentStatus string     `db:"payment_status"`
	Remarks       string     `db:"remarks"`
	ServiceName   *string    `db:"service_name"  table:"services" column:"name"`
	ServicePrice  *float64   `db:"service_price" table:"services" column:"price"`
	CustomerName  *string    `db:"customer_name" table:"users"    column:"full_name"`
	CustomerEmail *string    `db:"customer_email" table:"users"   column:"email"`
	PetName       *string    `db:"pet_name"      table:"pets"     column:"name"`
	PetSpecies    *string    `db:"pet_species"   table:"pets"     column:"species"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN services ON services.id = bookings.service_id " +
		"LEFT JOIN users ON users.id = bookings.customer_id " +
		"LEFT JOIN pets ON pets.id = bookings.pet_id"
}
