package threat

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Diagram is a set of elements modelled under one methodology
type Diagram struct {
	Title       string    `yaml:"title,omitempty" json:"title,omitempty"`
	DiagramType string    `yaml:"diagramType" json:"diagramType"`
	Elements    []Element `yaml:"elements" json:"elements" validate:"required,min=1,dive"`
}

// ElementThreats holds the threats generated for one diagram element
type ElementThreats struct {
	ElementID   string      `yaml:"elementId,omitempty" json:"elementId,omitempty"`
	ElementName string      `yaml:"elementName,omitempty" json:"elementName,omitempty"`
	ElementType ElementType `yaml:"elementType" json:"elementType"`
	Threats     []Threat    `yaml:"threats" json:"threats"`
}

// GenerateDiagram generates threats for every element of the diagram
// concurrently. Results keep the diagram's element order. The first
// failure cancels the remaining work and is returned.
func (g *Generator) GenerateDiagram(ctx context.Context, d *Diagram, mode Mode) ([]ElementThreats, error) {
	if d == nil {
		return nil, fmt.Errorf("diagram is nil")
	}

	results := make([]ElementThreats, len(d.Elements))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i := range d.Elements {
		el := &d.Elements[i]
		eg.Go(func() error {
			threats, err := g.Generate(egCtx, el, d.DiagramType, mode)
			if err != nil {
				return fmt.Errorf("element %d (%s): %w", i, el.ID, err)
			}
			results[i] = ElementThreats{
				ElementID:   el.ID,
				ElementName: el.Name,
				ElementType: el.Attributes.Type,
				Threats:     threats,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
