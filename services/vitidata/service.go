package vitidata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"vitibrasil-backend/lib/textutil"
	"vitibrasil-backend/lib/vitibrasil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/vitidata")

type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
)

// Result is the envelope every query returns regardless of which path
// served it. Success is false only when the cache path itself failed;
// a live failure silently degrades to cached data.
type Result[T any] struct {
	Success bool   `json:"success"`
	Total   int    `json:"total"`
	Data    []T    `json:"data"`
	Source  Source `json:"source"`
	Error   string `json:"error,omitempty"`
}

type YearRangeError struct {
	Domain vitibrasil.Domain
	Year   int
	Min    int
	Max    int
}

func (e *YearRangeError) Error() string {
	return fmt.Sprintf(
		"year %d out of range for %s, accepted range is [%d, %d]",
		e.Year, e.Domain, e.Min, e.Max,
	)
}

func checkYear(domain vitibrasil.Domain, year int) error {
	min, max := domain.YearRange()
	if year < min || year > max {
		return &YearRangeError{Domain: domain, Year: year, Min: min, Max: max}
	}
	return nil
}

type Options struct {
	// diagnostics sink for fallbacks and dropped rows,
	// defaults to slog.Default()
	Logger *slog.Logger
}

// Service answers one domain query per call: scrape the portal, and on
// any failure in the fetch/parse/normalize chain re-run the query
// against the cache. Results are request-scoped, nothing is memoized.
type Service struct {
	client *vitibrasil.Client
	store  Store
	log    *slog.Logger
}

func NewService(client *vitibrasil.Client, store Store, opts Options) Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return Service{
		client: client,
		store:  store,
		log:    log,
	}
}

// matchFold is the text-dimension predicate both paths share: an
// empty filter matches everything, otherwise case-insensitive
// substring containment. The store filters through it too, so a
// cache-served query matches exactly what a live one would.
func matchFold(value, filter string) bool {
	return filter == "" || textutil.ContainsFold(value, filter)
}

// runQuery is the two-state fallback shared by all five domains:
// a live attempt, and on any error a single cache re-execution. There
// is no retry and no third tier; a cache failure is the hard error.
func runQuery[T any](
	ctx context.Context,
	s Service,
	domain vitibrasil.Domain,
	live func(context.Context) ([]T, error),
	match func(T) bool,
	cached func(context.Context) ([]T, error),
) Result[T] {
	span := trace.SpanFromContext(ctx)

	records, err := live(ctx)
	if err == nil {
		filtered := make([]T, 0, len(records))
		for _, rec := range records {
			if match(rec) {
				filtered = append(filtered, rec)
			}
		}
		span.SetAttributes(attribute.String("source", string(SourceLive)))
		return Result[T]{
			Success: true,
			Total:   len(filtered),
			Data:    filtered,
			Source:  SourceLive,
		}
	}

	span.RecordError(err)
	if errors.Is(err, vitibrasil.ErrUnexpectedLayout) {
		// either the site changed or the parameters selected the
		// wrong table, worth a louder signal than a network blip
		s.log.ErrorContext(ctx, "portal page layout not recognized, serving from cache",
			"domain", domain.String(), "err", err)
	} else {
		s.log.WarnContext(ctx, "live fetch failed, serving from cache",
			"domain", domain.String(), "err", err)
	}

	records, err = cached(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "cache fallback failed")
		s.log.ErrorContext(ctx, "cache fallback failed",
			"domain", domain.String(), "err", err)
		return Result[T]{
			Success: false,
			Data:    []T{},
			Source:  SourceCache,
			Error:   err.Error(),
		}
	}
	if records == nil {
		records = []T{}
	}

	span.SetAttributes(attribute.String("source", string(SourceCache)))
	return Result[T]{
		Success: true,
		Total:   len(records),
		Data:    records,
		Source:  SourceCache,
	}
}

type ProductionQuery struct {
	Year     int
	Category string
	Product  string
}

func (s Service) Production(ctx context.Context, q ProductionQuery) (Result[vitibrasil.ProductionRecord], error) {
	ctx, span := tracer.Start(ctx, "Production")
	defer span.End()
	span.SetAttributes(attribute.Int("year", q.Year))

	err := checkYear(vitibrasil.DomainProduction, q.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ProductionRecord]{}, err
	}

	return runQuery(ctx, s, vitibrasil.DomainProduction,
		func(ctx context.Context) ([]vitibrasil.ProductionRecord, error) {
			return s.client.Production(ctx, q.Year)
		},
		func(rec vitibrasil.ProductionRecord) bool {
			return matchFold(rec.Category, q.Category) && matchFold(rec.Product, q.Product)
		},
		func(ctx context.Context) ([]vitibrasil.ProductionRecord, error) {
			return s.store.SelectProduction(ctx, q.Year, ProductionFilters{
				Category: q.Category,
				Product:  q.Product,
			})
		},
	), nil
}

type ProcessingQuery struct {
	Year int
	// Product selects the portal sub-option and is mandatory
	Product string
	Group   string
	Cultive string
}

func (s Service) Processing(ctx context.Context, q ProcessingQuery) (Result[vitibrasil.ProcessingRecord], error) {
	ctx, span := tracer.Start(ctx, "Processing")
	defer span.End()
	span.SetAttributes(attribute.Int("year", q.Year))

	opt, err := vitibrasil.ResolveOption(vitibrasil.DomainProcessing, q.Product)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ProcessingRecord]{}, err
	}
	err = checkYear(vitibrasil.DomainProcessing, q.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ProcessingRecord]{}, err
	}

	return runQuery(ctx, s, vitibrasil.DomainProcessing,
		func(ctx context.Context) ([]vitibrasil.ProcessingRecord, error) {
			return s.client.Processing(ctx, q.Year, opt)
		},
		func(rec vitibrasil.ProcessingRecord) bool {
			return matchFold(rec.GroupName, q.Group) && matchFold(rec.Cultive, q.Cultive)
		},
		func(ctx context.Context) ([]vitibrasil.ProcessingRecord, error) {
			// filter the cache by the canonical label, not the raw
			// input, so accented spellings behave like the live path
			return s.store.SelectProcessing(ctx, q.Year, ProcessingFilters{
				Group:   q.Group,
				Cultive: q.Cultive,
				Product: opt.Label,
			})
		},
	), nil
}

type CommercializationQuery struct {
	Year    int
	Group   string
	Product string
}

func (s Service) Commercialization(ctx context.Context, q CommercializationQuery) (Result[vitibrasil.CommercializationRecord], error) {
	ctx, span := tracer.Start(ctx, "Commercialization")
	defer span.End()
	span.SetAttributes(attribute.Int("year", q.Year))

	err := checkYear(vitibrasil.DomainCommercialization, q.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.CommercializationRecord]{}, err
	}

	return runQuery(ctx, s, vitibrasil.DomainCommercialization,
		func(ctx context.Context) ([]vitibrasil.CommercializationRecord, error) {
			return s.client.Commercialization(ctx, q.Year)
		},
		func(rec vitibrasil.CommercializationRecord) bool {
			return matchFold(rec.GroupName, q.Group) && matchFold(rec.Product, q.Product)
		},
		func(ctx context.Context) ([]vitibrasil.CommercializationRecord, error) {
			return s.store.SelectCommercialization(ctx, q.Year, CommercializationFilters{
				Group:   q.Group,
				Product: q.Product,
			})
		},
	), nil
}

type TradeQuery struct {
	Year int
	// Product selects the portal sub-option and is mandatory
	Product string
	Country string
}

func (s Service) Import(ctx context.Context, q TradeQuery) (Result[vitibrasil.ImportRecord], error) {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()
	span.SetAttributes(attribute.Int("year", q.Year))

	opt, err := vitibrasil.ResolveOption(vitibrasil.DomainImport, q.Product)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ImportRecord]{}, err
	}
	err = checkYear(vitibrasil.DomainImport, q.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ImportRecord]{}, err
	}

	return runQuery(ctx, s, vitibrasil.DomainImport,
		func(ctx context.Context) ([]vitibrasil.ImportRecord, error) {
			return s.client.Import(ctx, q.Year, opt)
		},
		func(rec vitibrasil.ImportRecord) bool {
			return matchFold(rec.Country, q.Country)
		},
		func(ctx context.Context) ([]vitibrasil.ImportRecord, error) {
			return s.store.SelectImport(ctx, q.Year, TradeFilters{
				Country: q.Country,
				Product: opt.Label,
			})
		},
	), nil
}

func (s Service) Export(ctx context.Context, q TradeQuery) (Result[vitibrasil.ExportRecord], error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()
	span.SetAttributes(attribute.Int("year", q.Year))

	opt, err := vitibrasil.ResolveOption(vitibrasil.DomainExport, q.Product)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ExportRecord]{}, err
	}
	err = checkYear(vitibrasil.DomainExport, q.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result[vitibrasil.ExportRecord]{}, err
	}

	return runQuery(ctx, s, vitibrasil.DomainExport,
		func(ctx context.Context) ([]vitibrasil.ExportRecord, error) {
			return s.client.Export(ctx, q.Year, opt)
		},
		func(rec vitibrasil.ExportRecord) bool {
			return matchFold(rec.Country, q.Country)
		},
		func(ctx context.Context) ([]vitibrasil.ExportRecord, error) {
			return s.store.SelectExport(ctx, q.Year, TradeFilters{
				Country: q.Country,
				Product: opt.Label,
			})
		},
	), nil
}
