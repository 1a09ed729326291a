package vitidata

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"vitibrasil-backend/lib/vitibrasil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Refresher owns the write side of the cache: it sweeps every domain,
// year and sub-option and replaces the corresponding cache slice with
// whatever the portal currently serves. The query service never
// writes; if the Refresher is not running, the cache simply stays at
// its last ingested state.
type Refresher struct {
	client *vitibrasil.Client
	store  Store
	log    *slog.Logger
}

func NewRefresher(client *vitibrasil.Client, store Store, opts Options) Refresher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return Refresher{
		client: client,
		store:  store,
		log:    log,
	}
}

// Run sweeps once immediately, then on every tick. Sweep failures are
// logged and the worker keeps going; a partially refreshed cache is
// still a valid cache.
func (r Refresher) Run(ctx context.Context, interval time.Duration) {
	err := r.RefreshAll(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "cache refresh sweep incomplete", "err", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.RefreshAll(ctx)
			if err != nil {
				r.log.WarnContext(ctx, "cache refresh sweep incomplete", "err", err)
			}
		}
	}
}

// RefreshAll walks every (domain, year, option) page once. Individual
// page failures are collected, not fatal: years the portal can still
// serve get refreshed even when others are broken.
func (r Refresher) RefreshAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RefreshAll")
	defer span.End()

	var errlist []error
	record := func(domain vitibrasil.Domain, year int, err error) {
		if err == nil {
			return
		}
		errlist = append(errlist, err)
		span.AddEvent("page refresh failed")
		r.log.DebugContext(ctx, "page refresh failed",
			"domain", domain.String(), "year", year, "err", err)
	}

	for _, domain := range []vitibrasil.Domain{
		vitibrasil.DomainProduction,
		vitibrasil.DomainProcessing,
		vitibrasil.DomainCommercialization,
		vitibrasil.DomainImport,
		vitibrasil.DomainExport,
	} {
		min, max := domain.YearRange()
		for year := min; year <= max; year++ {
			if ctx.Err() != nil {
				return errors.Join(append(errlist, ctx.Err())...)
			}
			record(domain, year, r.refreshPage(ctx, domain, year))
		}
	}

	span.SetAttributes(attribute.Int("failures", len(errlist)))
	if len(errlist) > 0 {
		span.SetStatus(codes.Error, "sweep incomplete")
	}
	return errors.Join(errlist...)
}

func (r Refresher) refreshPage(ctx context.Context, domain vitibrasil.Domain, year int) error {
	switch domain {
	case vitibrasil.DomainProduction:
		records, err := r.client.Production(ctx, year)
		if err != nil {
			return err
		}
		return r.store.ReplaceProductionYear(ctx, year, records)

	case vitibrasil.DomainCommercialization:
		records, err := r.client.Commercialization(ctx, year)
		if err != nil {
			return err
		}
		return r.store.ReplaceCommercializationYear(ctx, year, records)

	case vitibrasil.DomainProcessing:
		var errlist []error
		for _, label := range vitibrasil.OptionLabels(domain) {
			opt, err := vitibrasil.ResolveOption(domain, label)
			if err != nil {
				return err
			}
			records, err := r.client.Processing(ctx, year, opt)
			if err == nil {
				err = r.store.ReplaceProcessingYear(ctx, year, opt.Label, records)
			}
			if err != nil {
				errlist = append(errlist, err)
			}
		}
		return errors.Join(errlist...)

	case vitibrasil.DomainImport:
		var errlist []error
		for _, label := range vitibrasil.OptionLabels(domain) {
			opt, err := vitibrasil.ResolveOption(domain, label)
			if err != nil {
				return err
			}
			records, err := r.client.Import(ctx, year, opt)
			if err == nil {
				err = r.store.ReplaceImportYear(ctx, year, opt.Label, records)
			}
			if err != nil {
				errlist = append(errlist, err)
			}
		}
		return errors.Join(errlist...)

	case vitibrasil.DomainExport:
		var errlist []error
		for _, label := range vitibrasil.OptionLabels(domain) {
			opt, err := vitibrasil.ResolveOption(domain, label)
			if err != nil {
				return err
			}
			records, err := r.client.Export(ctx, year, opt)
			if err == nil {
				err = r.store.ReplaceExportYear(ctx, year, opt.Label, records)
			}
			if err != nil {
				errlist = append(errlist, err)
			}
		}
		return errors.Join(errlist...)
	}

	return nil
}
