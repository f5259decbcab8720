package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
)

const clientTimeout = 10 * time.Second

// stockQuoteResponse is the quote document returned by the market data API.
// latestPrice is decoded as json.Number so the exact decimal representation
// survives into arithmetic.
type stockQuoteResponse struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	LatestPrice json.Number `json:"latestPrice"`
}

// Client fetches quotes from an IEX-style market data HTTP API
// (GET {base}/stock/{symbol}/quote).
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	token      string
}

// NewClient creates a quote client for the given API base URL. A nil
// httpClient gets a default with a request timeout.
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientTimeout}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, token: token}
}

// Lookup fetches the current quote for a symbol.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)

	endpoint := fmt.Sprintf("%s/stock/%s/quote", c.baseURL, url.PathEscape(symbol))
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("building request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.ErrNoSuchSecurity
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var doc stockQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("decoding response: %w", err))
	}

	return quoteFromResponse(symbol, doc)
}

// quoteFromResponse validates a response document and converts it to a Quote.
func quoteFromResponse(symbol string, doc stockQuoteResponse) (*Quote, error) {
	if doc.Symbol == "" || doc.CompanyName == "" || doc.LatestPrice == "" {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("incomplete quote for %s", symbol))
	}

	price, err := decimal.NewFromString(doc.LatestPrice.String())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("parsing price for %s: %w", symbol, err))
	}
	if !price.IsPositive() {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("non-positive price for %s", symbol))
	}

	return &Quote{
		Symbol: NormalizeSymbol(doc.Symbol),
		Name:   doc.CompanyName,
		Price:  price,
	}, nil
}
