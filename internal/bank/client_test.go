package bank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

// staticTokens — источник токена с изменяемым значением.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string {
	return s.token
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *staticTokens) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := &staticTokens{token: "test-token"}
	return NewClient(server.URL, 5*time.Second, tokens), tokens
}

func TestLoginReturnsRawTokenBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		r.ParseForm()
		if got := r.PostForm.Get("name"); got != "alice" {
			t.Errorf("name = %q, ожидалось %q", got, "alice")
		}
		if got := r.PostForm.Get("password"); got != "secret" {
			t.Errorf("password = %q, ожидалось %q", got, "secret")
		}
		w.Write([]byte("token-value-42\n"))
	})

	token, err := client.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login() вернул ошибку: %v", err)
	}
	if token != "token-value-42" {
		t.Errorf("Login() = %q, ожидалось %q", token, "token-value-42")
	}
}

func TestLoginRejectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), "alice", "wrong")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("ожидалась AuthError, получено %T: %v", err, err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, ожидалось %d", authErr.StatusCode, http.StatusUnauthorized)
	}
}

func TestTransferSendsFormBody(t *testing.T) {
	var form url.Values
	var tokenParam string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transfer" {
			t.Errorf("путь = %q, ожидалось /transfer", r.URL.Path)
		}
		tokenParam = r.URL.Query().Get("token")
		r.ParseForm()
		form = r.PostForm
	})

	err := client.Transfer(context.Background(), "VN480630512753392800", "12.50", "LUNCH", false)
	if err != nil {
		t.Fatalf("Transfer() вернул ошибку: %v", err)
	}

	if tokenParam != "test-token" {
		t.Errorf("token = %q, ожидалось %q", tokenParam, "test-token")
	}
	want := map[string]string{
		"toIban":      "VN480630512753392800",
		"amount":      "12.50",
		"description": "LUNCH",
		"offRecord":   "0",
	}
	for key, value := range want {
		if got := form.Get(key); got != value {
			t.Errorf("%s = %q, ожидалось %q", key, got, value)
		}
	}
}

func TestTransferOffRecordFlag(t *testing.T) {
	var offRecord string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		offRecord = r.PostForm.Get("offRecord")
	})

	if err := client.Transfer(context.Background(), "VN1", "1.00", "X", true); err != nil {
		t.Fatalf("Transfer() вернул ошибку: %v", err)
	}
	if offRecord != "1" {
		t.Errorf("offRecord = %q, ожидалось %q", offRecord, "1")
	}
}

func TestTransferRejectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.Transfer(context.Background(), "VN1", "1.00", "X", false)

	var rejected *TransferRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("ожидалась TransferRejectedError, получено %T: %v", err, err)
	}
	if rejected.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, ожидалось %d", rejected.StatusCode, http.StatusForbidden)
	}
}

func TestQueryIbanNameKnownRecipient(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("iban"); got != "VN1" {
			t.Errorf("iban = %q, ожидалось %q", got, "VN1")
		}
		w.Write([]byte(`{"name":"Alice"}`))
	})

	name, err := client.QueryIbanName(context.Background(), "VN1")
	if err != nil {
		t.Fatalf("QueryIbanName() вернул ошибку: %v", err)
	}
	if name != "Alice" {
		t.Errorf("name = %q, ожидалось %q", name, "Alice")
	}
}

func TestQueryIbanNameUnknownRecipient(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":null}`))
	})

	name, err := client.QueryIbanName(context.Background(), "VN-UNKNOWN")
	if err != nil {
		t.Fatalf("неизвестный получатель не должен быть ошибкой: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, ожидалась пустая строка", name)
	}
}

func TestTokenReadAtCallTime(t *testing.T) {
	var seen []string
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("token"))
		w.Write([]byte(`{}`))
	})

	client.AccountSummary(context.Background())
	tokens.token = "renewed-token"
	client.AccountSummary(context.Background())

	if len(seen) != 2 || seen[0] != "test-token" || seen[1] != "renewed-token" {
		t.Errorf("токены запросов = %v, ожидались [test-token renewed-token]", seen)
	}
}

func TestGetRejectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.AccountSummary(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("ожидалась AuthError, получено %T: %v", err, err)
	}
}

func TestTransactionsCustomQueryNormalizesDates(t *testing.T) {
	var query url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"results":[],"total":0}`))
	})

	filter := model.Filter{
		From:        time.Date(2026, 3, 5, 14, 30, 11, 0, time.UTC),
		To:          time.Date(2026, 3, 20, 9, 15, 0, 0, time.UTC),
		SearchTerms: "lunch",
	}
	if _, err := client.TransactionsCustom(context.Background(), filter, 3); err != nil {
		t.Fatalf("TransactionsCustom() вернул ошибку: %v", err)
	}

	if got := query.Get("fromDate"); got != "2026-03-05T00:00:00.000Z" {
		t.Errorf("fromDate = %q, ожидалось %q", got, "2026-03-05T00:00:00.000Z")
	}
	if got := query.Get("toDate"); got != "2026-03-20T23:59:59.000Z" {
		t.Errorf("toDate = %q, ожидалось %q", got, "2026-03-20T23:59:59.000Z")
	}
	if got := query.Get("searchTerms"); got != "lunch" {
		t.Errorf("searchTerms = %q, ожидалось %q", got, "lunch")
	}
	if got := query.Get("page"); got != "3" {
		t.Errorf("page = %q, ожидалось %q", got, "3")
	}
}

func TestNetworkErrorWrapsTransportFailure(t *testing.T) {
	tokens := &staticTokens{token: "t"}
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, tokens)

	_, err := client.AccountSummary(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("ожидалась NetworkError, получено %T: %v", err, err)
	}
	if netErr.Unwrap() == nil {
		t.Error("NetworkError не оборачивает исходную ошибку")
	}
}
