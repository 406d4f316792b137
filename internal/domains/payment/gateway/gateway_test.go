package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furk/config"
	"furk/infras/otel/mocks"
	"furk/internal/domains/payment/gateway"
	"furk/internal/domains/payment/model"
)

func newGateway(t *testing.T, handler http.HandlerFunc) gateway.Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.External.Payment.APIEndpoint = srv.URL
	cfg.External.Payment.APIKey = "test-key"
	cfg.External.Payment.InvoiceExpirySec = 3600

	return gateway.New(cfg, mocks.NewOtel())
}

func TestGatewayCreateInvoice(t *testing.T) {
	t.Run("posts invoice and maps the response", func(t *testing.T) {
		gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/invoices", r.URL.Path)

			user, _, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "test-key", user)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "bk-1", body["external_id"])
			assert.InDelta(t, 3600, body["invoice_duration"], 0.01)

			json.NewEncoder(w).Encode(map[string]any{
				"id":          "inv-1",
				"invoice_url": "https://pay.example.com/inv-1",
				"status":      "PENDING",
			})
		})

		invoice, err := gw.CreateInvoice(context.Background(), gateway.CreateInvoiceRequest{
			ExternalID: "bk-1",
			Amount:     150000,
			PayerEmail: "customer@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "inv-1", invoice.ID)
		assert.Equal(t, model.StatusPending, invoice.Status)
	})

	t.Run("rejects empty invoice id", func(t *testing.T) {
		gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "PENDING"})
		})

		_, err := gw.CreateInvoice(context.Background(), gateway.CreateInvoiceRequest{ExternalID: "bk-1", Amount: 1})

		assert.Error(t, err)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := gw.CreateInvoice(context.Background(), gateway.CreateInvoiceRequest{ExternalID: "bk-1", Amount: 1})

		assert.Error(t, err)
	})
}

func TestGatewayGetInvoice(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/invoices/inv-1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"id":          "inv-1",
			"invoice_url": "https://pay.example.com/inv-1",
			"status":      "SETTLED",
		})
	})

	invoice, err := gw.GetInvoice(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, invoice.Status)
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, model.StatusPaid, gateway.MapStatus("PAID"))
	assert.Equal(t, model.StatusPaid, gateway.MapStatus("SETTLED"))
	assert.Equal(t, model.StatusExpired, gateway.MapStatus("EXPIRED"))
	assert.Equal(t, model.StatusFailed, gateway.MapStatus("FAILED"))
	assert.Equal(t, model.StatusPending, gateway.MapStatus("PENDING"))
	assert.Equal(t, model.StatusPending, gateway.MapStatus("SOMETHING_NEW"))
}
