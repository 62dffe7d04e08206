package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// catalogQuery returns the fixed query parameters for the catalog endpoint.
func catalogQuery(page, perPage int) url.Values {
	query := url.Values{}
	query.Set("market", "STOCKS")
	query.Set("active", "true")
	query.Set("page", strconv.Itoa(page))
	query.Set("perpage", strconv.Itoa(perPage))
	return query
}

// CountTickers asks the catalog for the total number of active instruments.
// The item payload of this call is discarded; only the count matters.
func (c *Client) CountTickers(ctx context.Context) (int, error) {
	var resp TickersResponse
	if err := c.get(ctx, "/v2/reference/tickers", catalogQuery(1, 1), &resp); err != nil {
		return 0, fmt.Errorf("count tickers: %w", err)
	}

	if resp.Count < 0 {
		return 0, fmt.Errorf("count tickers: negative count %d", resp.Count)
	}

	return resp.Count, nil
}

// GetTickersPage fetches one page of the instrument catalog.
func (c *Client) GetTickersPage(ctx context.Context, page, perPage int) ([]APITicker, error) {
	var resp TickersResponse
	if err := c.get(ctx, "/v2/reference/tickers", catalogQuery(page, perPage), &resp); err != nil {
		return nil, fmt.Errorf("get tickers page %d: %w", page, err)
	}

	return resp.Tickers, nil
}

// GetCompany fetches descriptive metadata for a single symbol.
func (c *Client) GetCompany(ctx context.Context, symbol string) (*APICompany, error) {
	var resp APICompany
	if err := c.get(ctx, "/v1/meta/symbols/"+url.PathEscape(symbol)+"/company", nil, &resp); err != nil {
		return nil, fmt.Errorf("get company %s: %w", symbol, err)
	}

	return &resp, nil
}
