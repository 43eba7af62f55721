package semant

import (
	"fmt"

	"github.com/Yumenio/cool-compiler-2021/ast"
)

// Category tags every diagnostic. The tag is the first token of the
// rendered message.
type Category string

const (
	CategorySemantic  Category = "SemanticError"
	CategoryType      Category = "TypeError"
	CategoryCyclic    Category = "CyclicError"
	CategoryProgram   Category = "ProgramError"
	CategoryMainType  Category = "MainTypeError"
	CategoryAttribute Category = "AttributeError"
	CategoryMethod    Category = "MethodError"
)

type Diagnostic struct {
	Category Category
	Message  string
	Pos      ast.Position
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s (at %s)", d.Category, d.Message, d.Pos)
	}
	return fmt.Sprintf("%s: %s", d.Category, d.Message)
}

// Diagnostics is the append-only sink shared by every stage.
type Diagnostics struct {
	items []Diagnostic
}

func (d *Diagnostics) Add(category Category, pos ast.Position, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// AddError records a registry failure (lookup or redefinition).
func (d *Diagnostics) AddError(pos ast.Position, err error) {
	d.Add(CategorySemantic, pos, "%s", err.Error())
}

func (d *Diagnostics) Len() int { return len(d.items) }

func (d *Diagnostics) Items() []Diagnostic { return d.items }

func (d *Diagnostics) Strings() []string {
	out := make([]string, len(d.items))
	for i, item := range d.items {
		out[i] = item.String()
	}
	return out
}

// Count returns how many diagnostics carry the given category.
func (d *Diagnostics) Count(category Category) int {
	n := 0
	for _, item := range d.items {
		if item.Category == category {
			n++
		}
	}
	return n
}
