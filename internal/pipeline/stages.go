package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lcrown/tickerdata/internal/api"
	"github.com/lcrown/tickerdata/internal/model"
)

// listAll fetches every catalog page through a bounded worker pool and
// concatenates the results. Any page failure aborts the listing; a partial
// catalog is never returned. Each worker writes only its own result slot,
// so the fan-in needs no locking.
func (p *Pipeline) listAll(ctx context.Context, count int) ([]api.APITicker, error) {
	pages := pageCount(count, p.cfg.PageSize)
	if pages == 0 {
		return nil, nil
	}

	results := make([][]api.APITicker, pages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i := 0; i < pages; i++ {
		i := i
		g.Go(func() error {
			items, err := p.client.GetTickersPage(ctx, i+1, p.cfg.PageSize)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]api.APITicker, 0, count)
	for _, page := range results {
		all = append(all, page...)
	}
	return all, nil
}

// enrich fetches detail metadata for every summary through a second bounded
// worker pool. A symbol whose detail call returns an HTTP error status or an
// undecodable body is dropped and logged; detail availability is best-effort
// per symbol. After the fan-in, records the detail endpoint marks inactive
// are filtered out; the detail record's active flag wins over the summary's.
func (p *Pipeline) enrich(ctx context.Context, summaries []api.APITicker) ([]model.Ticker, error) {
	if len(summaries) == 0 {
		return nil, nil
	}

	results := make([]*model.Ticker, len(summaries))
	var missed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, s := range summaries {
		i, s := i, s
		g.Go(func() error {
			company, err := p.client.GetCompany(ctx, s.Ticker)
			if err != nil {
				if !isItemMiss(err) {
					return err
				}
				p.logger.Debug("no detail for symbol", "symbol", s.Ticker, "err", err)
				missed.Add(1)
				return nil
			}
			if company.Symbol == "" {
				p.logger.Debug("detail missing symbol field", "symbol", s.Ticker)
				missed.Add(1)
				return nil
			}

			t := company.ToModel()
			results[i] = &t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := missed.Load(); n > 0 {
		p.logger.Info("detail fetches missed", "missed", n)
	}

	records := make([]model.Ticker, 0, len(summaries))
	for _, t := range results {
		if t == nil || !t.Active {
			continue
		}
		records = append(records, *t)
	}
	return records, nil
}

// isItemMiss reports whether err is a per-symbol miss (HTTP error status or
// malformed body) rather than a failure that should abort the phase.
func isItemMiss(err error) bool {
	var apiErr *api.APIError
	var decErr *api.DecodeError
	return errors.As(err, &apiErr) || errors.As(err, &decErr)
}

// persist upserts every record through a bounded worker pool, retrying each
// record on store failure after a fixed cooldown. A record is never silently
// dropped: it is stored, or the phase fails.
func (p *Pipeline) persist(ctx context.Context, records []model.Ticker) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var persisted atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.PersistConcurrency)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			if err := p.persistOne(ctx, rec); err != nil {
				return err
			}
			persisted.Add(1)
			return nil
		})
	}

	err := g.Wait()
	return int(persisted.Load()), err
}

// persistOne retries a single record's upsert until it succeeds, the retry
// ceiling is hit, or the context is cancelled. PersistMaxRetries of 0 retries
// until cancellation.
func (p *Pipeline) persistOne(ctx context.Context, rec model.Ticker) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			p.logger.Warn("save failed, cooling down",
				"symbol", rec.Symbol,
				"attempt", attempt,
				"cooldown", p.cfg.PersistCooldown,
				"err", lastErr,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.cfg.PersistCooldown):
			}
		}

		err := p.store.Upsert(ctx, rec)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		lastErr = err
		if p.cfg.PersistMaxRetries > 0 && attempt >= p.cfg.PersistMaxRetries {
			return fmt.Errorf("save %s: retries exhausted after %d attempts: %w", rec.Symbol, attempt+1, lastErr)
		}
	}
}
