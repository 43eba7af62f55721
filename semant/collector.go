package semant

import "github.com/Yumenio/cool-compiler-2021/ast"

// Collect registers an empty record for every class declared in program.
// Redefining a basic class or declaring the same name twice is reported;
// the first declaration keeps the name.
func Collect(program *ast.Program, ctx *Context, diags *Diagnostics) {
	for _, class := range program.Classes {
		name := class.Name.Value
		if t, err := ctx.Lookup(name); err == nil && t.Builtin {
			diags.Add(CategorySemantic, class.Pos(), "basic class %s cannot be redefined", name)
			continue
		}
		if _, err := ctx.Register(name); err != nil {
			diags.AddError(class.Pos(), err)
		}
	}
}

// declarations returns the classes the later passes should visit: the first
// declaration of each user class name, in source order.
func declarations(program *ast.Program, ctx *Context) []*ast.Class {
	seen := make(map[string]bool, len(program.Classes))
	classes := make([]*ast.Class, 0, len(program.Classes))
	for _, class := range program.Classes {
		name := class.Name.Value
		if seen[name] {
			continue
		}
		seen[name] = true
		if t, err := ctx.Lookup(name); err == nil && t.Builtin {
			continue
		}
		classes = append(classes, class)
	}
	return classes
}
