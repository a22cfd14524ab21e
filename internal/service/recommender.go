package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"foodrec/internal/catalog"
	"foodrec/internal/domain"
	"foodrec/internal/encoder"
	"foodrec/internal/metrics"
	"foodrec/internal/query"
	"foodrec/internal/vectorstore"
	"foodrec/internal/vectorstore/memory"
)

// Options configures a Recommender.
type Options struct {
	TopK               int
	MaxFeatures        int
	DefaultDescription string
	Logger             *zap.Logger
}

// Recommender owns the frozen pipeline state: catalog, statistics, fitted
// encoder and similarity index. It is built once and shared read-only.
type Recommender struct {
	catalog *catalog.Catalog
	stats   *catalog.Stats
	encoder *encoder.State
	index   vectorstore.Index
	synth   *query.Synthesizer
	topK    int
	logger  *zap.Logger
}

// NewRecommender fits the encoder over c and indexes every encoded record.
func NewRecommender(c *catalog.Catalog, opts Options) (*Recommender, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		return nil, domain.ErrEmptyCatalog
	}
	start := time.Now()
	st, err := encoder.Fit(c, encoder.Options{MaxFeatures: opts.MaxFeatures})
	if err != nil {
		return nil, fmt.Errorf("fit encoder: %w", err)
	}
	idx, err := memory.Build(st.TransformAll(c.Records()))
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	stats := catalog.NewStats(c)
	synth := query.NewSynthesizer(stats, opts.DefaultDescription)
	if err := synth.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCatalog, err)
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = vectorstore.DefaultTopK
	}
	l := st.Layout()
	log.Info("recommender ready",
		zap.Int("records", c.Len()),
		zap.Int("dimension", st.Dimension()),
		zap.Int("vocabulary", l.TextWidth),
		zap.Int("categories", l.CategoryWidth),
		zap.Int("nutrients", l.NumericWidth),
		zap.Duration("elapsed", time.Since(start)),
	)
	metrics.CatalogRecords.Set(float64(c.Len()))
	return &Recommender{
		catalog: c,
		stats:   stats,
		encoder: st,
		index:   idx,
		synth:   synth,
		topK:    topK,
		logger:  log,
	}, nil
}

// Recommend runs synthesize, transform and search for one request and
// returns the ranked batch, closest first.
func (r *Recommender) Recommend(req domain.Request) ([]domain.Recommendation, error) {
	start := time.Now()
	recs, err := r.recommend(req)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecommendRequestsTotal.WithLabelValues(req.Goal.Slug(), req.Diet.Slug(), status).Inc()
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.logger.Debug("recommend rejected", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("recommend",
		zap.String("goal", req.Goal.Slug()),
		zap.String("diet", req.Diet.Slug()),
		zap.String("category", req.Category),
		zap.Int("results", len(recs)),
	)
	return recs, nil
}

func (r *Recommender) recommend(req domain.Request) ([]domain.Recommendation, error) {
	rec, err := r.synth.Synthesize(req.Goal, req.Diet, req.Category, req.Description)
	if err != nil {
		return nil, err
	}
	hits, err := r.index.Search(r.encoder.Transform(rec), r.topK)
	if err != nil {
		return nil, err
	}
	return r.Resolve(hits), nil
}

// Resolve attaches catalog records to hits, preserving order.
func (r *Recommender) Resolve(hits []domain.Hit) []domain.Recommendation {
	out := make([]domain.Recommendation, len(hits))
	for i, h := range hits {
		out[i] = domain.Recommendation{Hit: h, Record: r.catalog.Record(h.Index)}
	}
	return out
}

// Categories returns the sorted distinct catalog categories for shell pickers.
func (r *Recommender) Categories() []string { return r.catalog.Categories() }

// Catalog returns the underlying catalog.
func (r *Recommender) Catalog() *catalog.Catalog { return r.catalog }

// Encoder returns the frozen encoder state.
func (r *Recommender) Encoder() *encoder.State { return r.encoder }

// TopK is the per-query neighbour count.
func (r *Recommender) TopK() int { return r.topK }

// NewSession starts an empty session bound to r.
func (r *Recommender) NewSession() *Session { return newSession(r) }
