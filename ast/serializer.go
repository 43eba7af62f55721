package ast

import "strings"

// Serialize renders the program as COOL class outlines, one class per
// declaration, bodies elided.
func Serialize(program *Program) string {
	if program == nil {
		return ""
	}
	var result strings.Builder
	for i, class := range program.Classes {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(SerializeNode(class))
		result.WriteString("\n")
	}
	return result.String()
}

// SerializeNode converts a single declaration into its outline form.
func SerializeNode(node Node) string {
	if node == nil {
		return ""
	}

	switch n := node.(type) {
	case *Program:
		return Serialize(n)
	case *Class:
		var result strings.Builder
		result.WriteString("class ")
		result.WriteString(n.Name.Value)
		if n.Parent != nil {
			result.WriteString(" inherits ")
			result.WriteString(n.Parent.Value)
		}
		result.WriteString(" {")
		for _, f := range n.Features {
			result.WriteString("\n    ")
			result.WriteString(SerializeNode(f))
		}
		if len(n.Features) > 0 {
			result.WriteString("\n")
		}
		result.WriteString("};")
		return result.String()
	case *Attribute:
		return n.Name.Value + " : " + n.Type.Value + ";"
	case *Method:
		var result strings.Builder
		result.WriteString(n.Name.Value)
		result.WriteString("(")
		for i, formal := range n.Formals {
			if i > 0 {
				result.WriteString(", ")
			}
			result.WriteString(formal.Name.Value)
			result.WriteString(" : ")
			result.WriteString(formal.Type.Value)
		}
		result.WriteString(") : ")
		result.WriteString(n.Type.Value)
		result.WriteString(";")
		return result.String()
	default:
		return "unknown node"
	}
}
