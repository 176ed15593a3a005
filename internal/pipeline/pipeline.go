// Package pipeline turns a set of documented resources into declarations in
// a dependency-safe emission order.
//
// A run has strict phases: every field of every resource is normalized before
// the dependency graph is built, so fields may name resources documented later
// in the input. The run either completes or returns the first error; partial
// output is never returned.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"schema-generator/internal/decl"
	"schema-generator/internal/depgraph"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/resource"
	"schema-generator/internal/typedesc"
)

// Pipeline runs the normalize, order and declare stages.
type Pipeline struct {
	log      logr.Logger
	isScalar func(token string) bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Stage progress is logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithScalars sets the predicate telling which scalar tokens have a known
// mapping. Check reports the others; Run passes every token through.
func WithScalars(isScalar func(token string) bool) Option {
	return func(p *Pipeline) {
		p.isScalar = isScalar
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: logr.Discard()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run normalizes every field of set, orders the resources and maps their
// declarations. Field types of set are resolved in place.
func (p *Pipeline) Run(set *resource.Set) (*decl.Document, error) {
	if set == nil {
		return nil, errors.New("nil resource set")
	}

	if err := set.Normalize(); err != nil {
		return nil, fmt.Errorf("normalizing resources: %w", err)
	}

	for _, r := range set.Resources() {
		p.log.V(1).Info("resource normalized", "resource", r.Name, "fields", len(r.Fields))

		for _, f := range r.Fields {
			if f.Type.IsSelf() {
				p.log.V(1).Info("self reference", "resource", r.Name, "field", f.Name)
			}
		}
	}

	g, err := depgraph.Build(set)
	if err != nil {
		return nil, fmt.Errorf("building dependency graph: %w", err)
	}

	p.log.V(1).Info("dependency graph built", "resources", len(g.Nodes()), "edges", g.EdgeCount())

	order, err := g.Order()
	if err != nil {
		return nil, fmt.Errorf("ordering resources: %w", err)
	}

	p.log.V(1).Info("emission order", "order", order)

	doc := &decl.Document{Schemas: make([]decl.Schema, 0, len(order))}

	for _, name := range order {
		schema, err := decl.MapResource(set.Get(name))
		if err != nil {
			return nil, fmt.Errorf("declaring resources: %w", err)
		}

		doc.Schemas = append(doc.Schemas, schema)
	}

	return doc, nil
}

// Check reports every problem of set instead of stopping at the first one.
// It leaves set untouched.
func (p *Pipeline) Check(set *resource.Set) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if set == nil {
		res.AddError(diagnostic.CodeParseError, errors.New("nil resource set"), "", "")
		return res
	}

	known := set.Known()
	check := resource.NewSet()

	for _, r := range set.Resources() {
		if len(r.Fields) == 0 {
			res.AddWarning(diagnostic.CodeNoFields, "resource has no fields", r.Name, "")
		}

		// Resources are unique in set, so Add cannot fail.
		copied, _ := check.Add(r.Name)

		for _, f := range r.Fields {
			d, err := typedesc.Normalize(f.RawType, typedesc.Context{
				Resource: r.Name,
				Field:    f.Name,
				Known:    known,
			})
			if err != nil {
				res.AddError(diagnostic.CodeParseError, err, r.Name, f.Name)
				continue
			}

			p.reportScalars(res, d, r.Name, f.Name)

			if err := copied.AddField(f.Name, f.RawType, f.Description); err != nil {
				res.AddError(diagnostic.CodeParseError, err, r.Name, f.Name)
			}
		}
	}

	if res.HasErrors() {
		// Dropped fields could hide or fake a cycle.
		return res
	}

	if _, err := p.Run(check); err != nil {
		var terr *depgraph.TopologyError
		if errors.As(err, &terr) {
			res.AddError(diagnostic.CodeTopologyError, terr, "", "")
		} else {
			res.AddError(diagnostic.CodeParseError, err, "", "")
		}
	}

	return res
}

func (p *Pipeline) reportScalars(res *diagnostic.Diagnostics, d *typedesc.Descriptor, resourceName, field string) {
	if p.isScalar == nil {
		return
	}

	if d.Kind == typedesc.KindCollection {
		d = d.Elem
	}

	if d.Kind == typedesc.KindScalar && !p.isScalar(d.Name) {
		res.AddInfo(diagnostic.CodeUnknownScalar,
			fmt.Sprintf("type %q has no known mapping and is passed through", d.Name), resourceName, field)
	}
}
