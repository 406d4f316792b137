package dto

import (
	"github.com/google/uuid"

	"furk/internal/domains/payment/model"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID   string  `json:"booking_id"  validate:"required,uuid"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=255"`
}

func (r *CreatePaymentRequest) ToModel(invoiceID, invoiceURL, username string) model.Payment {
	return model.Payment{
		ID:         uuid.NewString(),
		BookingID:  r.BookingID,
		InvoiceID:  invoiceID,
		InvoiceURL: invoiceURL,
		Amount:     r.Amount,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// CallbackRequest is the gateway's webhook body. Status arrives in the
// gateway's vocabulary and is mapped before it touches anything.
type CallbackRequest struct {
	InvoiceID string `json:"id"     validate:"required"`
	Status    string `json:"status" validate:"required"`
}

type PaymentResponse struct {
	ID         string  `json:"id"`
	BookingID  string  `json:"booking_id"`
	InvoiceID  string  `json:"invoice_id"`
	InvoiceURL string  `json:"invoice_url"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

func (r *PaymentResponse) FromModel(mod model.Payment) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.InvoiceID = mod.InvoiceID
	r.InvoiceURL = mod.InvoiceURL
	r.Amount = mod.Amount
	r.Status = mod.Status
}
