// Package client talks to the PFMS API on behalf of the terminal UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnauthorized is returned when the API rejects the session token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the message and offending field of a failed request.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	return e.Message
}

type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

type NewTransaction struct {
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}

type Totals struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type Budget struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Month       string          `json:"month"`
	CapAmount   decimal.Decimal `json:"cap_amount"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	Utilization decimal.Decimal `json:"utilization"`
}

type Goal struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	CurrentAmount      decimal.Decimal `json:"current_amount"`
	TargetDate         *string         `json:"target_date"`
	IsCompleted        bool            `json:"is_completed"`
	ProgressPercentage float64         `json:"progress_percentage"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token sent with every later request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}

	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

func (c *Client) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	if err := c.do(ctx, http.MethodGet, "/api/v1/transactions/totals", nil, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) Transactions(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := c.do(ctx, http.MethodGet, "/api/v1/transactions/", nil, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (c *Client) AddTransaction(ctx context.Context, tx NewTransaction) (*Transaction, error) {
	var created Transaction
	if err := c.do(ctx, http.MethodPost, "/api/v1/transactions/", tx, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/transactions/"+id.String(), nil, nil)
}

func (c *Client) Budgets(ctx context.Context, month string) ([]Budget, error) {
	var budgets []Budget
	if err := c.do(ctx, http.MethodGet, "/api/v1/budgets/?month="+url.QueryEscape(month), nil, &budgets); err != nil {
		return nil, err
	}

	return budgets, nil
}

func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, http.MethodGet, "/api/v1/goals/", nil, &goals); err != nil {
		return nil, err
	}

	return goals, nil
}

func (c *Client) Contribute(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Goal, error) {
	var g Goal

	body := map[string]decimal.Decimal{"amount": amount}
	if err := c.do(ctx, http.MethodPut, "/api/v1/goals/"+id.String()+"/contribute", body, &g); err != nil {
		return nil, err
	}

	return &g, nil
}

// Import uploads the CSV file at path.
func (c *Client) Import(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/transactions/import/", &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res ImportResult
	if err := c.send(req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// DownloadStatement saves the statement for month into dir and returns the
// written path.
func (c *Client) DownloadStatement(ctx context.Context, month, format, dir string) (string, error) {
	q := url.Values{"month": {month}, "format": {format}}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/export/?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, filename(resp, month, format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

func filename(resp *http.Response, month, format string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			return filepath.Base(params["filename"])
		}
	}

	return fmt.Sprintf("statement_%s.%s", month, format)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	return &APIError{Status: resp.StatusCode, Message: body.Error, Field: body.Field}
}
