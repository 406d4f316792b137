package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=../mocks/gateway_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/otel"
	"furk/internal/domains/payment/model"
	"furk/shared/constant"
	"furk/shared/failure"
)

// Invoice is the gateway's view of a payment: an id to poll, a url to send
// the payer to, and the current status mapped to our own vocabulary.
type Invoice struct {
	ID     string
	URL    string
	Status string
}

type CreateInvoiceRequest struct {
	ExternalID  string
	Amount      float64
	PayerEmail  string
	Description string
}

type Gateway interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (Invoice, error)
}

type gatewayImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	return &gatewayImpl{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		otel:   otel,
	}
}

type invoicePayload struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Amount     float64 `json:"amount"`
	InvoiceURL string  `json:"invoice_url"`
	Status     string  `json:"status"`
}

func (g *gatewayImpl) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (res Invoice, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.CreateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := map[string]any{
		"external_id":      req.ExternalID,
		"amount":           req.Amount,
		"payer_email":      req.PayerEmail,
		"description":      req.Description,
		"invoice_duration": g.cfg.External.Payment.InvoiceExpirySec,
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return res, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.External.Payment.APIEndpoint+"/v2/invoices", bytes.NewReader(encoded))
	if err != nil {
		return res, fmt.Errorf("failed to build invoice request: %w", err)
	}

	httpReq.SetBasicAuth(g.cfg.External.Payment.APIKey, "")
	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	payload, err := g.do(httpReq)
	if err != nil {
		return res, err
	}

	if payload.ID == "" {
		return res, failure.InternalError(fmt.Errorf("payment gateway returned an empty invoice id"))
	}

	return fromPayload(payload), nil
}

func (g *gatewayImpl) GetInvoice(ctx context.Context, invoiceID string) (res Invoice, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.GetInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.External.Payment.APIEndpoint+"/v2/invoices/"+invoiceID, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build invoice request: %w", err)
	}

	httpReq.SetBasicAuth(g.cfg.External.Payment.APIKey, "")

	payload, err := g.do(httpReq)
	if err != nil {
		return res, err
	}

	return fromPayload(payload), nil
}

func (g *gatewayImpl) do(req *http.Request) (payload invoicePayload, err error) {
	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("payment gateway request failed")

		return payload, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return payload, failure.InternalError(fmt.Errorf("payment gateway responded with %s", resp.Status))
	}

	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return payload, nil
}

func fromPayload(payload invoicePayload) Invoice {
	return Invoice{
		ID:     payload.ID,
		URL:    payload.InvoiceURL,
		Status: MapStatus(payload.Status),
	}
}

// MapStatus folds the gateway's status vocabulary into ours. SETTLED and
// PAID both count as paid.
func MapStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "PAID", "SETTLED":
		return model.StatusPaid
	case "EXPIRED":
		return model.StatusExpired
	case "FAILED":
		return model.StatusFailed
	default:
		return model.StatusPending
	}
}
