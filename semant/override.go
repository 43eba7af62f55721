package semant

import (
	"fmt"

	"github.com/Yumenio/cool-compiler-2021/ast"
)

// OverrideChecker is the second pass over the declarations. It needs every
// parent link in place, so it only runs once the TypeBuilder has finished.
type OverrideChecker struct {
	ctx             *Context
	diags           *Diagnostics
	allowCompatible bool
	current         *Type
}

func NewOverrideChecker(ctx *Context, diags *Diagnostics, allowCompatible bool) *OverrideChecker {
	return &OverrideChecker{ctx: ctx, diags: diags, allowCompatible: allowCompatible}
}

// CheckOverrides reports attributes and methods that reuse a name already
// declared by an ancestor.
func CheckOverrides(program *ast.Program, ctx *Context, diags *Diagnostics, allowCompatible bool) {
	NewOverrideChecker(ctx, diags, allowCompatible).Visit(program)
}

func (oc *OverrideChecker) Visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		for _, class := range declarations(n, oc.ctx) {
			oc.Visit(class)
		}
	case *ast.Class:
		t, err := oc.ctx.Lookup(n.Name.Value)
		if err != nil {
			// Already reported by the builder.
			oc.current = nil
			return
		}
		oc.current = t
		for _, feature := range n.Features {
			oc.Visit(feature)
		}
	case *ast.Attribute:
		oc.visitAttribute(n)
	case *ast.Method:
		oc.visitMethod(n)
	default:
		panic(fmt.Sprintf("semant: unexpected node %T", node))
	}
}

// An attribute name introduced by an ancestor can never be declared again,
// whatever its type.
func (oc *OverrideChecker) visitAttribute(attr *ast.Attribute) {
	if oc.current == nil {
		return
	}
	name := attr.Name.Value
	if _, owner := oc.ctx.InheritedAttribute(oc.current, name); owner != nil {
		oc.diags.Add(CategoryAttribute, attr.Pos(), "attribute %s is already defined in %s", name, owner.Name)
	}
}

// Any inherited method with the same name is reported unless it is the
// class's own record. Identical signatures are only accepted when
// allowCompatible is set.
func (oc *OverrideChecker) visitMethod(method *ast.Method) {
	if oc.current == nil {
		return
	}
	name := method.Name.Value
	own := oc.current.Method(name)
	inherited, owner := oc.ctx.InheritedMethod(oc.current, name)
	if inherited == nil || inherited == own {
		return
	}
	if oc.allowCompatible && inherited.SameSignature(own) {
		return
	}
	oc.diags.Add(CategoryMethod, method.Pos(), "method %s is already defined in %s", name, owner.Name)
}
