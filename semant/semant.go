// Package semant validates the class hierarchy of a COOL program and builds
// the type registry the expression checker works from.
package semant

import (
	"github.com/google/uuid"

	"github.com/Yumenio/cool-compiler-2021/ast"
)

type SemanticAnalyser struct {
	ctx   *Context
	diags *Diagnostics
	opts  []Option
}

func NewSemanticAnalyser(opts ...Option) *SemanticAnalyser {
	return &SemanticAnalyser{
		ctx:   NewContext(),
		diags: &Diagnostics{},
		opts:  opts,
	}
}

// Errors returns the rendered diagnostics in the order they were found.
func (sa *SemanticAnalyser) Errors() []string {
	return sa.diags.Strings()
}

func (sa *SemanticAnalyser) Diagnostics() []Diagnostic {
	return sa.diags.Items()
}

// Context exposes the populated registry to later phases.
func (sa *SemanticAnalyser) Context() *Context {
	return sa.ctx
}

// Analyze registers the declared class names and runs the hierarchy pass.
// Each call starts from a fresh registry and diagnostics list, replacing the
// results of the previous call.
func (sa *SemanticAnalyser) Analyze(program *ast.Program) {
	sa.ctx = NewContext()
	sa.diags = &Diagnostics{}

	o := newOptions(sa.opts)
	logger := o.Logger.With("run", uuid.NewString())
	opts := append(append([]Option{}, sa.opts...), WithLogger(logger))

	b := NewTypeBuilder(sa.ctx, sa.diags, opts...)
	b.stage("collect", func() {
		Collect(program, sa.ctx, sa.diags)
	})
	b.Visit(program)

	for _, d := range sa.diags.Items() {
		o.Metrics.CountDiagnostic(string(d.Category))
	}
	o.Metrics.CountRun(sa.diags.Len() == 0, len(program.Classes))

	logger.Debug("semantic analysis finished",
		"classes", len(program.Classes),
		"diagnostics", sa.diags.Len(),
	)
}
