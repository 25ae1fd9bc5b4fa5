package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turmapay/turmapay/internal/config"
)

const (
	sandboxBaseURL    = "https://sandbox.asaas.com/api/v3"
	productionBaseURL = "https://api.asaas.com/v3"
)

var ErrMissingAPIKey = errors.New("asaas_api_key_missing")

// Client is a thin HTTP client for the Asaas billing API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a client from application config. The base URL is
// fixed per environment.
func NewClient(cfg config.Config) *Client {
	baseURL := sandboxBaseURL
	if cfg.AsaasEnvironment == config.AsaasEnvProduction {
		baseURL = productionBaseURL
	}

	timeout := time.Duration(cfg.AsaasTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.AsaasAPIKey),
		client:  &http.Client{Timeout: timeout},
	}
}

// newClientForTest points the client at a local test server.
func newClientForTest(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (Customer, error) {
	var out Customer
	if err := c.doRequest(ctx, http.MethodPost, "/customers", req, &out); err != nil {
		return Customer{}, err
	}
	if out.ID == "" {
		return Customer{}, errors.New("asaas_response_invalid")
	}
	return out, nil
}

// FindCustomerByCpf looks a customer up by tax id. Returns nil when the
// provider has no match.
func (c *Client) FindCustomerByCpf(ctx context.Context, cpf string) (*Customer, error) {
	cpf = strings.TrimSpace(cpf)
	if cpf == "" {
		return nil, errors.New("asaas_cpf_required")
	}

	var out customerListResponse
	path := "/customers?" + url.Values{"cpfCnpj": {cpf}}.Encode()
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

func (c *Client) CreateSubscription(ctx context.Context, req SubscriptionRequest) (Subscription, error) {
	var out Subscription
	if err := c.doRequest(ctx, http.MethodPost, "/subscriptions", req, &out); err != nil {
		return Subscription{}, err
	}
	if out.ID == "" {
		return Subscription{}, errors.New("asaas_response_invalid")
	}
	return out, nil
}

func (c *Client) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) (Subscription, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return Subscription{}, errors.New("asaas_subscription_id_required")
	}

	var out Subscription
	err := c.doRequest(ctx, http.MethodPut, "/subscriptions/"+subscriptionID, subscriptionStatusRequest{Status: status}, &out)
	if err != nil {
		return Subscription{}, err
	}
	return out, nil
}

func (c *Client) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return errors.New("asaas_subscription_id_required")
	}
	return c.doRequest(ctx, http.MethodDelete, "/subscriptions/"+subscriptionID, nil, nil)
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return Payment{}, errors.New("asaas_payment_id_required")
	}

	var out Payment
	if err := c.doRequest(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out); err != nil {
		return Payment{}, err
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	var bodyReader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("access_token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Errors []ErrorItem `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Items = payload.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
