package semant

import "github.com/Yumenio/cool-compiler-2021/ast"

const (
	mainClass  = "Main"
	mainMethod = "main"
)

// CheckEntryPoint requires a class Main declaring its own method main.
// The method's arity is only checked when strict is set. Diagnostics point
// at the Main declaration in program, or at its main method.
func CheckEntryPoint(program *ast.Program, ctx *Context, diags *Diagnostics, strict bool) {
	var main *Type
	for _, t := range ctx.Types() {
		if t.Name == mainClass {
			main = t
			break
		}
	}
	if main == nil {
		diags.Add(CategoryProgram, ast.Position{}, "the program doesn't have a type Main")
		return
	}

	classPos, methodPos := mainPositions(program, ctx)
	for _, m := range main.Methods() {
		if m.Name != mainMethod {
			continue
		}
		if strict && len(m.ParamNames) > 0 {
			diags.Add(CategoryMainType, methodPos, "method Main.main must not take parameters")
		}
		return
	}
	diags.Add(CategoryMainType, classPos, "type Main does not have a main method")
}

// mainPositions finds the Main declaration and its first main method. The
// method position falls back to the class position.
func mainPositions(program *ast.Program, ctx *Context) (class, method ast.Position) {
	if program == nil {
		return
	}
	for _, decl := range declarations(program, ctx) {
		if decl.Name.Value != mainClass {
			continue
		}
		class, method = decl.Pos(), decl.Pos()
		for _, f := range decl.Features {
			if m, ok := f.(*ast.Method); ok && m.Name.Value == mainMethod {
				method = m.Pos()
				break
			}
		}
		return
	}
	return
}
