package semant

import (
	"fmt"
	"time"

	"github.com/Yumenio/cool-compiler-2021/ast"
)

// TypeBuilder fills the registry from the class declarations and then runs
// the hierarchy validators over the result.
type TypeBuilder struct {
	ctx     *Context
	diags   *Diagnostics
	opts    Options
	current *Type
}

func NewTypeBuilder(ctx *Context, diags *Diagnostics, opts ...Option) *TypeBuilder {
	return &TypeBuilder{ctx: ctx, diags: diags, opts: newOptions(opts)}
}

// Build populates ctx from program and validates the resulting hierarchy.
// ctx must already hold a record for every declared class (see Collect).
// Every problem is appended to diags; the pass always runs to completion.
func Build(program *ast.Program, ctx *Context, diags *Diagnostics, opts ...Option) {
	NewTypeBuilder(ctx, diags, opts...).Visit(program)
}

func (b *TypeBuilder) Visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		b.visitProgram(n)
	case *ast.Class:
		b.visitClass(n)
	case *ast.Attribute:
		b.visitAttribute(n)
	case *ast.Method:
		b.visitMethod(n)
	default:
		panic(fmt.Sprintf("semant: unexpected node %T", node))
	}
}

func (b *TypeBuilder) visitProgram(program *ast.Program) {
	classes := declarations(program, b.ctx)

	b.stage("declare", func() {
		bindIntrinsics(b.ctx)
		for _, class := range classes {
			b.Visit(class)
		}
	})

	b.stage("heritage", func() {
		name, cyclic := NewHeritageGraph(b.ctx).FindCycle()
		if !cyclic {
			return
		}
		var pos ast.Position
		for _, class := range classes {
			if class.Name.Value == name {
				pos = class.Pos()
				break
			}
		}
		b.diags.Add(CategoryCyclic, pos, "cyclic heritage is not allowed (class %s)", name)
	})

	b.stage("entry", func() {
		CheckEntryPoint(program, b.ctx, b.diags, b.opts.StrictMain)
	})

	b.stage("override", func() {
		CheckOverrides(program, b.ctx, b.diags, b.opts.AllowCompatibleOverrides)
	})
}

func (b *TypeBuilder) visitClass(class *ast.Class) {
	name := class.Name.Value
	t, err := b.ctx.Lookup(name)
	if err != nil {
		b.diags.AddError(class.Pos(), err)
		b.current = nil
		return
	}
	b.current = t

	if class.Parent == nil {
		t.SetParent(mustLookup(b.ctx, ObjectClass))
	} else {
		parentName := class.Parent.Value
		if forbiddenParents[parentName] {
			b.diags.Add(CategoryType, class.Pos(), "class %s cannot inherit from %s", name, parentName)
		}
		// The parent is set even when forbidden so later walks never meet
		// an unset link.
		parent, err := b.ctx.Lookup(parentName)
		if err != nil {
			b.diags.AddError(class.Pos(), err)
		} else {
			t.SetParent(parent)
		}
	}

	for _, feature := range class.Features {
		b.Visit(feature)
	}
}

func (b *TypeBuilder) visitAttribute(attr *ast.Attribute) {
	if b.current == nil {
		return
	}
	typ := b.resolve(attr.Type.Value, attr.Pos())
	if _, err := b.current.DefineAttribute(attr.Name.Value, typ); err != nil {
		b.diags.AddError(attr.Pos(), err)
	}
}

func (b *TypeBuilder) visitMethod(method *ast.Method) {
	if b.current == nil {
		return
	}
	paramNames := make([]string, 0, len(method.Formals))
	paramTypes := make([]*Type, 0, len(method.Formals))
	for _, formal := range method.Formals {
		paramNames = append(paramNames, formal.Name.Value)
		paramTypes = append(paramTypes, b.resolve(formal.Type.Value, method.Pos()))
	}
	returnType := b.resolve(method.Type.Value, method.Pos())

	if _, err := b.current.DefineMethod(method.Name.Value, paramNames, paramTypes, returnType); err != nil {
		b.diags.AddError(method.Pos(), err)
	}
}

// resolve reports an unknown type name and stands in ErrorType for it, so
// the declaration is still registered.
func (b *TypeBuilder) resolve(name string, pos ast.Position) *Type {
	t, err := b.ctx.Lookup(name)
	if err != nil {
		b.diags.AddError(pos, err)
		return b.ctx.ErrorType()
	}
	return t
}

func (b *TypeBuilder) stage(name string, fn func()) {
	start := time.Now()
	before := b.diags.Len()
	fn()
	elapsed := time.Since(start)

	b.opts.Metrics.ObserveStage(name, elapsed)
	b.opts.Logger.Debug("semant stage finished",
		"stage", name,
		"duration", elapsed,
		"diagnostics", b.diags.Len()-before,
	)
}
