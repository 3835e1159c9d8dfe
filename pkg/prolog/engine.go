// Package prolog is the public facade of the resolution engine: it glues
// the interner, parser, compiler and resolver together behind a small
// Engine type, mirroring spec.md §6's external interface one-to-one.
package prolog

import (
	"context"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/gitrdm/sldprolog/internal/compile"
	"github.com/gitrdm/sldprolog/internal/config"
	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/parser"
	"github.com/gitrdm/sldprolog/internal/resolve"
)

//go:embed builtins.pl
var builtinsSource string

// Engine wraps an Interner, a resolve.KnowledgeBase, a compile.Compiler
// and an EngineConfig (SPEC_FULL.md §4.6).
type Engine struct {
	in       *interner.Interner
	compiler *compile.Compiler
	kb       *resolve.KnowledgeBase
	resolver *resolve.Resolver
	cfg      config.EngineConfig
	log      hclog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithConfig applies a fully decoded EngineConfig.
func WithConfig(cfg config.EngineConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger overrides the engine's structured logger.
func WithLogger(log hclog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMaxResolutionDepth bounds the number of clause-resolution steps a
// single query may take before failing with a ResourceError; zero (the
// default) is unbounded.
func WithMaxResolutionDepth(n int) Option {
	return func(e *Engine) { e.cfg.MaxResolutionDepth = n }
}

// WithTraceOnBacktrack turns on Debug-level logging of every backtrack
// step and choice point exhaustion.
func WithTraceOnBacktrack(on bool) Option {
	return func(e *Engine) { e.cfg.TraceOnBacktrack = on }
}

// New builds an Engine and loads builtins.pl into it via Reset.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		if e.cfg.LogLevel != "" {
			e.log = e.cfg.Logger()
		} else {
			e.log = hclog.NewNullLogger()
		}
	}

	e.in = interner.New()
	e.kb = resolve.NewKnowledgeBase()
	e.compiler = compile.New(e.in)
	e.resolver = resolve.NewResolver(e.kb, e.in, e.log)
	e.resolver.MaxDepth = e.cfg.MaxResolutionDepth
	e.resolver.TraceOnBacktrack = e.cfg.TraceOnBacktrack

	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Compile rewrites a parsed Sentence into a CompiledClause (spec.md §6).
func (e *Engine) Compile(s *parser.Sentence) (*compile.CompiledClause, error) {
	return e.compiler.Compile(s.Clause)
}

// Load adds a compiled program clause to the knowledge base (spec.md §6).
// It is an error to Load a compiled query.
func (e *Engine) Load(cc *compile.CompiledClause) error {
	if cc.IsQuery {
		return errors.New("prolog: cannot load a query as a program clause")
	}
	e.kb.Add(cc)
	return nil
}

// Reset clears the knowledge base and reloads the builtins.pl library
// (spec.md §6): the file at EngineConfig.BuiltinsPath when that is set,
// otherwise the embedded copy.
func (e *Engine) Reset() error {
	e.kb.Clear()
	if e.cfg.BuiltinsPath != "" {
		f, err := os.Open(e.cfg.BuiltinsPath)
		if err != nil {
			return errors.Wrap(err, "prolog: opening builtins library")
		}
		defer f.Close()
		return e.consult(f)
	}
	return e.consult(strings.NewReader(builtinsSource))
}

// Consult parses, compiles and loads every clause read from r. Clauses
// that parse but fail to compile or load are collected with
// github.com/hashicorp/go-multierror, so every such error in a file is
// reported at once rather than stopping at the first (spec.md §7). A
// parse error ends reading at that point; it is returned together with
// any errors collected before it, and the clauses loaded before it stay
// loaded.
func (e *Engine) Consult(r io.Reader) error {
	return e.consult(r)
}

func (e *Engine) consult(r io.Reader) error {
	p, err := parser.New(e.in, r)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for p.PeekAndConsumeMore() {
		s, err := p.Next()
		if err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		if s == nil {
			break
		}
		cc, err := e.compiler.Compile(s.Clause)
		if err != nil {
			e.log.Warn("discarding clause", "line", s.Line, "error", err)
			errs = multierror.Append(errs, errors.Wrapf(err, "line %d", s.Line))
			continue
		}
		if err := e.Load(cc); err != nil {
			e.log.Warn("discarding clause", "line", s.Line, "error", err)
			errs = multierror.Append(errs, errors.Wrapf(err, "line %d", s.Line))
		}
	}
	return errs.ErrorOrNil()
}

// ParseQuery parses a single "?- Goal." sentence using the engine's own
// interner, so the resulting Sentence can be passed straight to Resolve.
func (e *Engine) ParseQuery(src string) (*parser.Sentence, error) {
	p, err := parser.New(e.in, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	s, err := p.Next()
	if err != nil {
		return nil, err
	}
	if s == nil || s.Clause.Head != nil {
		return nil, errors.New("prolog: ParseQuery requires a \"?- Goal.\" sentence")
	}
	return s, nil
}

// Resolve compiles query and starts a depth-first search for a
// refutation, returning a SolutionIterator (spec.md §6).
func (e *Engine) Resolve(ctx context.Context, query *parser.Sentence) (*SolutionIterator, error) {
	cc, err := e.compiler.Compile(query.Clause)
	if err != nil {
		return nil, err
	}
	if !cc.IsQuery {
		return nil, errors.New("prolog: Resolve requires a query sentence")
	}
	return &SolutionIterator{it: e.resolver.Resolve(cc), in: e.in}, nil
}

// SolutionIterator yields, for each proof, the bindings of a query's
// free non-anonymous variables (spec.md §6). It is not safe for
// concurrent use by multiple goroutines (spec.md §5).
type SolutionIterator struct {
	it *resolve.SolutionIterator
	in *interner.Interner
}

// Next advances to the next solution. ok is false once the search space
// is exhausted.
func (s *SolutionIterator) Next(ctx context.Context) (Solution, bool, error) {
	sol, ok, err := s.it.Next(ctx)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make(Solution, len(sol))
	for i, b := range sol {
		out[i] = Binding{Name: b.Name, Term: PrintTerm{t: b.Value, in: s.in}}
	}
	return out, true, nil
}
