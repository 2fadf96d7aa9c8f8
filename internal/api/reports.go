package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type ReportAPI interface {
	SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error)
}

var _ ReportAPI = (*Client)(nil)

func (c *Client) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	var report model.SalesReport
	if err := c.do(ctx, http.MethodGet, "/reports/sales?"+q.Encode(), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
