package testdata

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// Test tokens understood by FakeStripe.
const (
	TokenVisa            = "tok_visa"
	TokenChargeDeclined  = "tok_chargeDeclined"
	declinedSourceID     = "card_declined"
	declinedChargeID     = "ch_declined"
	declinedErrorPayload = `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined.","charge":"` + declinedChargeID + `"}}`
)

// StripeCall is one request received by FakeStripe.
type StripeCall struct {
	Method string
	Path   string
	Form   url.Values
}

// FakeStripe is an in-memory stand-in for the customers, sources, charges and refunds endpoints.
type FakeStripe struct {
	Server *httptest.Server

	mu    sync.Mutex
	seq   int
	calls []StripeCall
}

func NewFakeStripe() *FakeStripe {
	f := &FakeStripe{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/customers", f.createCustomer)
	mux.HandleFunc("GET /v1/customers/{id}", f.getCustomer)
	mux.HandleFunc("POST /v1/customers/{id}/sources", f.createSource)
	mux.HandleFunc("POST /v1/charges", f.createCharge)
	mux.HandleFunc("POST /v1/refunds", f.createRefund)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.mu.Lock()
		f.calls = append(f.calls, StripeCall{Method: r.Method, Path: r.URL.Path, Form: r.PostForm})
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	return f
}

func (f *FakeStripe) Close() {
	f.Server.Close()
}

func (f *FakeStripe) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Calls returns the received requests matching method and path.
func (f *FakeStripe) Calls(method, path string) []StripeCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []StripeCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeStripe) nextID(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s_%d", prefix, f.seq)
}

func (f *FakeStripe) createCustomer(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, fmt.Sprintf(`{"id":%q,"object":"customer","email":%q}`, f.nextID("cus"), r.PostForm.Get("email")))
}

func (f *FakeStripe) getCustomer(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, fmt.Sprintf(`{"id":%q,"object":"customer"}`, r.PathValue("id")))
}

func (f *FakeStripe) createSource(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	id, last4 := f.nextID("card"), "4242"
	switch {
	case r.PostForm.Get("source") == TokenChargeDeclined:
		id, last4 = declinedSourceID, "0002"
	case cardNumber(r.PostForm) != "":
		number := cardNumber(r.PostForm)
		last4 = number[len(number)-4:]
	}

	respond(w, http.StatusOK, fmt.Sprintf(
		`{"id":%q,"object":"card","brand":"Visa","last4":%q,"exp_month":7,"exp_year":2030,"customer":%q}`,
		id, last4, customerID,
	))
}

func (f *FakeStripe) createCharge(w http.ResponseWriter, r *http.Request) {
	if r.PostForm.Get("source") == declinedSourceID {
		respond(w, http.StatusPaymentRequired, declinedErrorPayload)
		return
	}

	respond(w, http.StatusOK, fmt.Sprintf(
		`{"id":%q,"object":"charge","amount":%s,"currency":%q,"status":"succeeded","balance_transaction":%q}`,
		f.nextID("ch"), r.PostForm.Get("amount"), r.PostForm.Get("currency"), f.nextID("txn"),
	))
}

func (f *FakeStripe) createRefund(w http.ResponseWriter, r *http.Request) {
	amount := r.PostForm.Get("amount")
	if amount == "" {
		amount = "0"
	}
	respond(w, http.StatusOK, fmt.Sprintf(
		`{"id":%q,"object":"refund","amount":%s,"charge":%q,"status":"succeeded"}`,
		f.nextID("re"), amount, r.PostForm.Get("charge"),
	))
}

// cardNumber reads a raw card number sent either nested under source or card.
func cardNumber(form url.Values) string {
	if n := form.Get("source[number]"); len(n) >= 4 {
		return n
	}
	if n := form.Get("card[number]"); len(n) >= 4 {
		return n
	}
	return ""
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Request-Id", "req_fake")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
