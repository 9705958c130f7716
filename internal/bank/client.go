package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

// TokenSource отдает актуальный токен в момент вызова. Клиент намеренно
// не хранит копию: после логина все последующие запросы должны сразу
// использовать новый токен.
type TokenSource interface {
	Token() string
}

// Client — HTTP-клиент банковского API. Все операции — обычные
// запрос/ответ с ограниченным таймаутом, без постоянного соединения.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Login обменивает имя и пароль на токен. Тело ответа — сырой текст
// токена, не JSON; любой не-200 считается отказом в авторизации.
func (c *Client) Login(ctx context.Context, name, password string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: "login", Err: err}
	}
	return strings.TrimSpace(string(body)), nil
}

// AccountSummary запрашивает полный снимок счета.
func (c *Client) AccountSummary(ctx context.Context) (*model.AccountSummary, error) {
	var summary model.AccountSummary
	q := url.Values{}
	if err := c.getJSON(ctx, "/accountsummary", q, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// QueryIbanName переводит IBAN в отображаемое имя получателя.
// Пустая строка без ошибки означает, что сервер имени не знает.
func (c *Client) QueryIbanName(ctx context.Context, iban string) (string, error) {
	var payload struct {
		Name *string `json:"name"`
	}
	q := url.Values{}
	q.Set("iban", iban)
	if err := c.getJSON(ctx, "/queryIbanName", q, &payload); err != nil {
		return "", err
	}
	if payload.Name == nil {
		return "", nil
	}
	return *payload.Name, nil
}

// Transfer выполняет мутирующий запрос перевода. Сумма приходит уже
// отформатированной строкой: точность — зона ответственности машины
// состояний перевода, а не транспорта.
func (c *Client) Transfer(ctx context.Context, toIban, amount, description string, offRecord bool) error {
	form := url.Values{}
	form.Set("toIban", toIban)
	form.Set("amount", amount)
	form.Set("description", description)
	if offRecord {
		form.Set("offRecord", "1")
	} else {
		form.Set("offRecord", "0")
	}

	q := url.Values{}
	q.Set("token", c.tokens.Token())
	endpoint := c.baseURL + "/transfer?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "transfer", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransferRejectedError{Reason: "server refused the transfer", StatusCode: resp.StatusCode}
	}
	return nil
}

// TransactionsCustom возвращает одну страницу истории по фильтру.
func (c *Client) TransactionsCustom(ctx context.Context, f model.Filter, page int) (*model.TransactionPage, error) {
	var result model.TransactionPage
	q := filterQuery(f)
	q.Set("page", fmt.Sprintf("%d", page))
	if err := c.getJSON(ctx, "/transactionsCustom", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TransactionsCustomStats возвращает агрегаты по категориям.
func (c *Client) TransactionsCustomStats(ctx context.Context, f model.Filter) (map[string]model.CategoryTotals, error) {
	result := make(map[string]model.CategoryTotals)
	if err := c.getJSON(ctx, "/transactionsCustomStats", filterQuery(f), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TransactionsByDay возвращает разреженные дневные корзины.
func (c *Client) TransactionsByDay(ctx context.Context, f model.Filter) ([]model.DayAmount, error) {
	var result []model.DayAmount
	if err := c.getJSON(ctx, "/transactionsByDay", filterQuery(f), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// getJSON выполняет GET с токеном, взятым в момент вызова, и декодирует
// JSON-ответ. Не-200 трактуется как отказ в авторизации.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst interface{}) error {
	q.Set("token", c.tokens.Token())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &AuthError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to parse response of %s: %w", path, err)
	}
	return nil
}

// filterQuery переводит фильтр в параметры запроса. Границы периода
// нормализуются к 00:00:00 и 23:59:59 своего календарного дня и
// отправляются как ISO-8601 в UTC.
func filterQuery(f model.Filter) url.Values {
	q := url.Values{}
	q.Set("fromDate", isoDayStart(f.From))
	q.Set("toDate", isoDayEnd(f.To))
	q.Set("searchTerms", f.SearchTerms)
	return q
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func isoDayStart(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.UTC().Format(isoMillis)
}

func isoDayEnd(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
	return d.UTC().Format(isoMillis)
}
