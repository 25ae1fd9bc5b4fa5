package asaas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateCustomer(t *testing.T) {
	var gotToken string
	var gotBody CustomerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customers" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotToken = r.Header.Get("access_token")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_000001","name":"Maria Souza","cpfCnpj":"52998224725"}`))
	}))
	defer srv.Close()

	client := newClientForTest(srv.URL, "key_test")
	customer, err := client.CreateCustomer(context.Background(), CustomerRequest{
		Name:    "Maria Souza",
		Email:   "maria@example.com",
		CpfCnpj: "52998224725",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.ID != "cus_000001" {
		t.Fatalf("expected cus_000001, got %s", customer.ID)
	}
	if gotToken != "key_test" {
		t.Fatalf("expected access_token header, got %q", gotToken)
	}
	if gotBody.CpfCnpj != "52998224725" {
		t.Fatalf("expected cpf in body, got %q", gotBody.CpfCnpj)
	}
}

func TestCreateCustomerProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"invalid_cpfCnpj","description":"CPF already in use"}]}`))
	}))
	defer srv.Close()

	client := newClientForTest(srv.URL, "key_test")
	_, err := client.CreateCustomer(context.Background(), CustomerRequest{Name: "x", Email: "x@x.com", CpfCnpj: "1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsDuplicateCustomer(err) {
		t.Fatalf("expected duplicate customer error, got %v", err)
	}
}

func TestFindCustomerByCpf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("cpfCnpj") != "52998224725" {
			t.Fatalf("expected cpfCnpj query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"cus_000002","cpfCnpj":"52998224725"}],"totalCount":1}`))
	}))
	defer srv.Close()

	client := newClientForTest(srv.URL, "key_test")
	customer, err := client.FindCustomerByCpf(context.Background(), "52998224725")
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}
	if customer == nil || customer.ID != "cus_000002" {
		t.Fatalf("expected cus_000002, got %+v", customer)
	}
}

func TestFindCustomerByCpfNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"totalCount":0}`))
	}))
	defer srv.Close()

	client := newClientForTest(srv.URL, "key_test")
	customer, err := client.FindCustomerByCpf(context.Background(), "52998224725")
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}
	if customer != nil {
		t.Fatalf("expected nil customer, got %+v", customer)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	var sub Subscription
	if err := json.Unmarshal([]byte(`{"id":"sub_1","value":149.90,"status":"ACTIVE"}`), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sub.Value != 14990 {
		t.Fatalf("expected 14990 cents, got %d", sub.Value)
	}

	encoded, err := json.Marshal(SubscriptionRequest{Customer: "cus_1", Value: 14990})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `"value":149.90`; !strings.Contains(string(encoded), want) {
		t.Fatalf("expected %s in %s", want, encoded)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := newClientForTest("http://localhost:1", "")
	_, err := client.GetPayment(context.Background(), "pay_1")
	if err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
