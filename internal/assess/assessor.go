package assess

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
	"github.com/sells-group/taxrisk-cli/internal/refdata"
)

// ReferenceSource supplies the current reference snapshot. refdata.Cache
// satisfies it; tests inject a fixed snapshot.
type ReferenceSource interface {
	Snapshot() *refdata.Snapshot
}

// Assessor evaluates the criterion catalogue against taxpayer snapshots.
// Collaborators are injected once at construction; evaluation itself is
// pure and side-effect free.
type Assessor struct {
	cat  *catalogue.Catalogue
	refs ReferenceSource
	lang string
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithLanguage selects the locale for detail and recommendation texts.
func WithLanguage(lang string) Option {
	return func(a *Assessor) { a.lang = lang }
}

// NewAssessor validates the catalogue once and wires the reference source.
// A broken catalogue is a deployment problem and fails construction.
func NewAssessor(cat *catalogue.Catalogue, refs ReferenceSource, opts ...Option) (*Assessor, error) {
	if cat == nil {
		return nil, eris.New("assess: nil catalogue")
	}
	if err := cat.Validate(); err != nil {
		return nil, eris.Wrap(err, "assess: catalogue")
	}
	if refs == nil {
		return nil, eris.New("assess: nil reference source")
	}
	a := &Assessor{cat: cat, refs: refs, lang: catalogue.DefaultLang}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// CatalogueVersion reports the version criteria are evaluated from.
func (a *Assessor) CatalogueVersion() string {
	return a.cat.Version
}

// Catalogue exposes the validated criterion catalogue.
func (a *Assessor) Catalogue() *catalogue.Catalogue {
	return a.cat
}

// Assess runs every criterion against the snapshot and aggregates the
// results. Criteria are independent pure computations over immutable
// inputs, so they run in parallel; aggregation is the only join point.
// The returned assessment is always complete: sparse or malformed input
// degrades individual criteria to NO_DATA, never the whole run.
func (a *Assessor) Assess(ctx context.Context, snap *model.TaxpayerSnapshot) (*model.Assessment, error) {
	if snap == nil {
		return nil, eris.New("assess: nil snapshot")
	}
	refSnap := a.refs.Snapshot()
	if refSnap == nil {
		return nil, eris.New("assess: reference source returned no snapshot")
	}

	started := time.Now()
	criteria := a.cat.Criteria
	results := make([]model.CriterionResult, len(criteria))

	g, _ := errgroup.WithContext(ctx)
	for i := range criteria {
		i := i
		g.Go(func() error {
			def := &criteria[i]
			results[i] = AttachEvidence(Evaluate(def, snap, refSnap), def, snap, a.lang)
			return nil
		})
	}
	// Evaluators cannot fail; the group is only the join point.
	_ = g.Wait()

	total, max, level, categories := Aggregate(results)

	assessment := &model.Assessment{
		ID:               uuid.NewString(),
		TaxpayerRef:      snap.TaxpayerRef,
		PeriodRef:        snap.PeriodRef,
		AssessedAt:       time.Now().UTC(),
		CatalogueVersion: a.cat.Version,
		RefDataVersion:   refSnap.Version,
		RefDataAsOf:      refSnap.UpdatedAt,
		Criteria:         results,
		Categories:       categories,
		TotalScore:       total,
		MaxScore:         max,
		RiskLevel:        level,
	}
	assessment.Summary = Summarize(results, total, level)

	zap.L().Info("assess: assessment complete",
		zap.String("taxpayer", snap.TaxpayerRef),
		zap.String("period", snap.PeriodRef),
		zap.Float64("total_score", total),
		zap.String("risk_level", string(level)),
		zap.Int("failed", assessment.FailedCount(model.SeverityInfo)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return assessment, nil
}

// Feed derives the deduplicated finding feed for an assessment.
func (a *Assessor) Feed(assessment *model.Assessment) []model.FeedItem {
	return Classify(assessment, a.cat, a.lang)
}
