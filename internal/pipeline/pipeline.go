package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lcrown/tickerdata/internal/api"
	"github.com/lcrown/tickerdata/internal/model"
)

// Stage identifies where a run currently is, or where it stopped.
type Stage string

const (
	StageCounting   Stage = "counting"
	StageListing    Stage = "listing"
	StageEnriching  Stage = "enriching"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// TickerStore persists enriched ticker records.
type TickerStore interface {
	Upsert(ctx context.Context, t model.Ticker) error
}

// Config holds pipeline settings.
type Config struct {
	PageSize           int           // Catalog page size (default: 50)
	Concurrency        int           // Max in-flight requests per phase (default: 20)
	PersistConcurrency int           // Max in-flight saves (default: Concurrency)
	PersistMaxRetries  int           // Save retries per record; 0 = retry until cancelled
	PersistCooldown    time.Duration // Wait between save attempts (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:        50,
		Concurrency:     20,
		PersistCooldown: 30 * time.Second,
	}
}

// Summary reports aggregate counts for one run.
type Summary struct {
	RunID     uuid.UUID
	Stage     Stage
	Counted   int // Instruments the catalog reported
	Listed    int // Summaries collected across all pages
	Enriched  int // Active records after detail fetch and filtering
	Persisted int // Records stored
	Duration  time.Duration
}

// Pipeline ingests the instrument catalog: count, list, enrich, persist.
type Pipeline struct {
	cfg    Config
	client *api.Client
	store  TickerStore
	logger *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config, client *api.Client, store TickerStore, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.PersistConcurrency <= 0 {
		cfg.PersistConcurrency = cfg.Concurrency
	}
	if cfg.PersistCooldown <= 0 {
		cfg.PersistCooldown = def.PersistCooldown
	}

	return &Pipeline{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger,
	}
}

// Run executes one full ingestion pass. Stages run strictly in sequence and
// each stage consumes the prior stage's complete output. There is no
// checkpointing: a failed run is re-executed from the count.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.New()}
	start := time.Now()
	logger := p.logger.With("run_id", sum.RunID)

	fail := func(err error) (Summary, error) {
		stage := sum.Stage
		sum.Stage = StageFailed
		sum.Duration = time.Since(start)
		return sum, fmt.Errorf("%s: %w", stage, err)
	}

	sum.Stage = StageCounting
	count, err := p.client.CountTickers(ctx)
	if err != nil {
		return fail(err)
	}
	sum.Counted = count
	logger.Info("catalog counted", "count", count)

	sum.Stage = StageListing
	summaries, err := p.listAll(ctx, count)
	if err != nil {
		return fail(err)
	}
	sum.Listed = len(summaries)
	logger.Info("listing complete",
		"pages", pageCount(count, p.cfg.PageSize),
		"tickers", len(summaries),
	)

	sum.Stage = StageEnriching
	records, err := p.enrich(ctx, summaries)
	if err != nil {
		return fail(err)
	}
	sum.Enriched = len(records)
	logger.Info("enrichment complete",
		"active", len(records),
		"dropped", len(summaries)-len(records),
	)

	sum.Stage = StagePersisting
	persisted, err := p.persist(ctx, records)
	sum.Persisted = persisted
	if err != nil {
		return fail(err)
	}
	logger.Info("persistence complete", "persisted", persisted)

	sum.Stage = StageDone
	sum.Duration = time.Since(start)
	logger.Info("run complete",
		"counted", sum.Counted,
		"listed", sum.Listed,
		"enriched", sum.Enriched,
		"persisted", sum.Persisted,
		"duration", sum.Duration,
	)

	return sum, nil
}

// pageCount returns ceil(count/pageSize).
func pageCount(count, pageSize int) int {
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
