package vitibrasil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"
	"vitibrasil-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "http://vitibrasil.cnpuv.embrapa.br/index.php"

var (
	ErrSourceUnavailable = fmt.Errorf("source portal unavailable")
	ErrTimeout           = fmt.Errorf("source portal timed out")
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// per-request timeout, defaults to 30s
	Timeout time.Duration
}

type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a portal client. Every request carries a timeout so
// a stalled portal cannot hold a request open, and a circuit breaker
// fails fast once the portal has been down for a while; both surface
// as fetch errors the caller handles like any other.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")

	telemetry.InstrumentResty(client, "scrapers/vitibrasil/http")

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:     "vitibrasil-portal",
		Interval: time.Minute,
		Timeout:  time.Minute * 2,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("portal circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		http:    client,
		breaker: breaker,
	}
}

// FetchPage issues the single GET for (domain, year, subOption) and
// returns the raw page. One round trip, no retries; retry policy, if
// any, belongs to the caller. subOption is ignored for domains without
// option codes.
func (c *Client) FetchPage(ctx context.Context, domain Domain, year int, subOption int) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("domain", domain.String()),
		attribute.Int("year", year),
		attribute.Int("sub_option", subOption),
	)

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req := c.http.R().
			SetContext(ctx).
			SetQueryParam("opcao", domain.pageCode()).
			SetQueryParam("ano", strconv.Itoa(year))
		if domain.HasOptions() {
			req.SetQueryParam("subopcao", fmt.Sprintf("subopt_%02d", subOption))
		}

		res, err := req.Get("")
		if err != nil {
			return nil, err
		}
		if res.IsError() {
			return nil, fmt.Errorf("portal returned %s", res.Status())
		}
		return res.Body(), nil
	})
	if err != nil {
		err = classifyFetchError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	return body, nil
}

func classifyFetchError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit open", ErrSourceUnavailable)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
}

// scrapeRows runs the fetch -> parse -> normalize chain. Individual
// rows that fail normalization are dropped; a page whose rows all fail
// is indistinguishable from a wrong table and reported as such.
func scrapeRows[T any](
	ctx context.Context,
	c *Client,
	domain Domain,
	year int,
	subOption int,
	normalize func(RawRow) (T, error),
) ([]T, error) {
	page, err := c.FetchPage(ctx, domain, year, subOption)
	if err != nil {
		return nil, err
	}

	raw, err := ParseTable(ctx, domain, page)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(raw))
	dropped := 0
	for _, row := range raw {
		rec, err := normalize(row)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		slog.DebugContext(ctx, "dropped unparsable rows",
			"domain", domain.String(), "year", year, "dropped", dropped)
	}
	if len(raw) > 0 && len(records) == 0 {
		return nil, fmt.Errorf(
			"%w: all %d rows failed normalization",
			ErrUnexpectedLayout, len(raw),
		)
	}

	return records, nil
}

func (c *Client) Production(ctx context.Context, year int) ([]ProductionRecord, error) {
	return scrapeRows(ctx, c, DomainProduction, year, 0, func(row RawRow) (ProductionRecord, error) {
		return NormalizeProduction(year, row)
	})
}

func (c *Client) Processing(ctx context.Context, year int, option Option) ([]ProcessingRecord, error) {
	return scrapeRows(ctx, c, DomainProcessing, year, option.Code, func(row RawRow) (ProcessingRecord, error) {
		return NormalizeProcessing(year, option.Label, row)
	})
}

func (c *Client) Commercialization(ctx context.Context, year int) ([]CommercializationRecord, error) {
	return scrapeRows(ctx, c, DomainCommercialization, year, 0, func(row RawRow) (CommercializationRecord, error) {
		return NormalizeCommercialization(year, row)
	})
}

func (c *Client) Import(ctx context.Context, year int, option Option) ([]ImportRecord, error) {
	return scrapeRows(ctx, c, DomainImport, year, option.Code, func(row RawRow) (ImportRecord, error) {
		return NormalizeImport(year, option.Label, row)
	})
}

func (c *Client) Export(ctx context.Context, year int, option Option) ([]ExportRecord, error) {
	return scrapeRows(ctx, c, DomainExport, year, option.Code, func(row RawRow) (ExportRecord, error) {
		return NormalizeExport(year, option.Label, row)
	})
}
