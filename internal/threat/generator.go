package threat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mark-chris/tmgen/internal/rules"
)

// ErrNilElement is returned when generation is asked for a nil element
var ErrNilElement = errors.New("element is nil")

// Observer receives one call per completed generation
type Observer interface {
	ObserveGeneration(mode Mode, m Methodology, threats int, elapsed time.Duration)
}

// Generator derives candidate threats for diagram elements. It holds only
// read-only state and is safe for concurrent use.
type Generator struct {
	catalogs    *rules.Catalogs
	evaluator   rules.Evaluator
	logger      *zap.Logger
	observer    Observer
	concurrency int
}

// Option configures a Generator
type Option func(*Generator)

// WithCatalogs replaces the embedded rule catalogs
func WithCatalogs(cs *rules.Catalogs) Option {
	return func(g *Generator) { g.catalogs = cs }
}

// WithEvaluator replaces the bundled rule evaluator
func WithEvaluator(e rules.Evaluator) Option {
	return func(g *Generator) { g.evaluator = e }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithObserver sets the generation observer, typically a metrics recorder
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// WithConcurrency bounds the number of elements generated in parallel by
// GenerateDiagram
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.concurrency = n }
}

// NewGenerator creates a generator using the embedded catalogs and the
// native evaluator unless overridden
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		evaluator:   rules.NewNativeEvaluator(),
		logger:      zap.NewNop(),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.catalogs == nil {
		g.catalogs = rules.DefaultCatalogs()
	}
	if g.concurrency < 1 {
		g.concurrency = 1
	}
	return g
}

// Catalogs returns the catalogs used by the generator
func (g *Generator) Catalogs() *rules.Catalogs {
	return g.catalogs
}

// GeneratePerElement returns the generic threats for the element's type
// under the requested methodology
func (g *Generator) GeneratePerElement(ctx context.Context, el *Element, requested string) ([]Threat, error) {
	if el == nil {
		return nil, ErrNilElement
	}

	start := time.Now()
	m := ResolveMethodology(requested)

	threats, err := g.run(ctx, PerElementFacts(el, m), g.catalogs.PerElement)
	if err != nil {
		return nil, fmt.Errorf("per-element generation: %w", err)
	}

	g.done(ModePerElement, m, el, threats, start)
	return threats, nil
}

// GenerateByContext returns the threats suggested by the element's
// properties, named in the requested methodology's vocabulary
func (g *Generator) GenerateByContext(ctx context.Context, el *Element, requested string) ([]Threat, error) {
	if el == nil {
		return nil, ErrNilElement
	}

	start := time.Now()
	m := ResolveMethodology(requested)

	threats, err := g.run(ctx, ContextFacts(el, m), g.catalogs.Context)
	if err != nil {
		return nil, fmt.Errorf("context generation: %w", err)
	}
	threats = Normalize(threats, m)

	g.done(ModeContext, m, el, threats, start)
	return threats, nil
}

// Generate dispatches to the pipeline selected by mode
func (g *Generator) Generate(ctx context.Context, el *Element, requested string, mode Mode) ([]Threat, error) {
	switch mode {
	case ModePerElement:
		return g.GeneratePerElement(ctx, el, requested)
	case ModeContext:
		return g.GenerateByContext(ctx, el, requested)
	default:
		return nil, fmt.Errorf("unknown generation mode %q", mode)
	}
}

func (g *Generator) run(ctx context.Context, facts rules.Facts, catalog *rules.Catalog) ([]Threat, error) {
	matched, err := g.evaluator.Evaluate(ctx, facts, catalog.Rules())
	if err != nil {
		return nil, err
	}

	threats := make([]Threat, len(matched))
	for i, t := range matched {
		threats[i] = Threat(t)
	}
	return threats, nil
}

func (g *Generator) done(mode Mode, m Methodology, el *Element, threats []Threat, start time.Time) {
	elapsed := time.Since(start)

	g.logger.Debug("threats generated",
		zap.String("mode", string(mode)),
		zap.String("methodology", string(m)),
		zap.String("element_type", string(el.Attributes.Type)),
		zap.String("element_id", el.ID),
		zap.Int("threats", len(threats)),
		zap.Duration("elapsed", elapsed),
	)

	if g.observer != nil {
		g.observer.ObserveGeneration(mode, m, len(threats), elapsed)
	}
}
