package semant

import "fmt"

// Names of the classes every program gets for free.
const (
	ObjectClass = "Object"
	IntClass    = "Int"
	StringClass = "String"
	BoolClass   = "Bool"
	IOClass     = "IO"
	SelfType    = "SELF_TYPE"

	errorTypeName = "<error>"
)

// TypeID addresses a Type inside its Context. Parent links are stored as
// TypeIDs, never as pointers.
type TypeID int

// NoType marks an unset parent link.
const NoType TypeID = -1

type Attribute struct {
	Name string
	Type TypeID
}

type Method struct {
	Name       string
	ParamNames []string
	ParamTypes []TypeID
	ReturnType TypeID
}

// SameSignature reports whether both methods take the same parameter types
// and return the same type. Parameter names are not compared.
func (m *Method) SameSignature(other *Method) bool {
	if m == nil || other == nil {
		return false
	}
	if m.ReturnType != other.ReturnType || len(m.ParamTypes) != len(other.ParamTypes) {
		return false
	}
	for i, t := range m.ParamTypes {
		if other.ParamTypes[i] != t {
			return false
		}
	}
	return true
}

// Type is the registry record of one class.
type Type struct {
	ID      TypeID
	Name    string
	Builtin bool

	parent     TypeID
	attributes []*Attribute
	methods    []*Method
}

func (t *Type) ParentID() TypeID { return t.parent }

func (t *Type) SetParent(parent *Type) {
	if parent == nil {
		t.parent = NoType
		return
	}
	t.parent = parent.ID
}

func (t *Type) Attributes() []*Attribute { return t.attributes }
func (t *Type) Methods() []*Method       { return t.methods }

// Attribute returns the attribute declared by t itself, ignoring ancestors.
func (t *Type) Attribute(name string) *Attribute {
	for _, a := range t.attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Method returns the method declared by t itself, ignoring ancestors.
func (t *Type) Method(name string) *Method {
	for _, m := range t.methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (t *Type) DefineAttribute(name string, typ *Type) (*Attribute, error) {
	if t.Attribute(name) != nil {
		return nil, &DefinitionError{Kind: "attribute", Name: name, Owner: t.Name}
	}
	attr := &Attribute{Name: name, Type: typ.ID}
	t.attributes = append(t.attributes, attr)
	return attr, nil
}

func (t *Type) DefineMethod(name string, paramNames []string, paramTypes []*Type, returnType *Type) (*Method, error) {
	if t.Method(name) != nil {
		return nil, &DefinitionError{Kind: "method", Name: name, Owner: t.Name}
	}
	m := &Method{
		Name:       name,
		ParamNames: paramNames,
		ParamTypes: make([]TypeID, len(paramTypes)),
		ReturnType: returnType.ID,
	}
	for i, p := range paramTypes {
		m.ParamTypes[i] = p.ID
	}
	t.methods = append(t.methods, m)
	return m, nil
}

// LookupError is returned when a type name is not registered.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("type %q is not defined", e.Name)
}

// DefinitionError is returned when a class, attribute or method name is
// registered twice in the same scope.
type DefinitionError struct {
	Kind  string // "class", "attribute" or "method"
	Name  string
	Owner string
}

func (e *DefinitionError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("%s %q is already defined", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %q is already defined in %s", e.Kind, e.Name, e.Owner)
}

// Context is the type registry of one compilation unit. Types live in an
// arena and are addressed by TypeID; registration order is preserved.
type Context struct {
	arena  []*Type
	byName map[string]TypeID
	order  []TypeID

	errorType *Type
}

// NewContext returns a registry holding empty records for the basic classes
// and SELF_TYPE. Intrinsic methods and the basic parent links are bound by
// the TypeBuilder.
func NewContext() *Context {
	c := &Context{byName: make(map[string]TypeID)}
	for _, name := range []string{ObjectClass, IntClass, StringClass, BoolClass, IOClass, SelfType} {
		t, _ := c.Register(name)
		t.Builtin = true
	}
	c.errorType = c.alloc(errorTypeName)
	c.errorType.Builtin = true
	return c
}

func (c *Context) alloc(name string) *Type {
	t := &Type{ID: TypeID(len(c.arena)), Name: name, parent: NoType}
	c.arena = append(c.arena, t)
	return t
}

// Register adds an empty record for name.
func (c *Context) Register(name string) (*Type, error) {
	if _, ok := c.byName[name]; ok {
		return nil, &DefinitionError{Kind: "class", Name: name}
	}
	t := c.alloc(name)
	c.byName[name] = t.ID
	c.order = append(c.order, t.ID)
	return t, nil
}

// Lookup returns the record registered under name or a *LookupError.
func (c *Context) Lookup(name string) (*Type, error) {
	id, ok := c.byName[name]
	if !ok {
		return nil, &LookupError{Name: name}
	}
	return c.arena[id], nil
}

// Type returns the record for id, or nil for NoType and unknown ids.
func (c *Context) Type(id TypeID) *Type {
	if id < 0 || int(id) >= len(c.arena) {
		return nil
	}
	return c.arena[id]
}

func (c *Context) Parent(t *Type) *Type {
	if t == nil {
		return nil
	}
	return c.Type(t.parent)
}

// TypeName returns the name behind id; unset ids render as "<none>".
func (c *Context) TypeName(id TypeID) string {
	if t := c.Type(id); t != nil {
		return t.Name
	}
	return "<none>"
}

// ErrorType is the sentinel substituted for unresolved type names. It is
// not reachable through Lookup or Types.
func (c *Context) ErrorType() *Type { return c.errorType }

func (c *Context) IsErrorType(t *Type) bool { return t != nil && t == c.errorType }

// Types returns every registered type in registration order.
func (c *Context) Types() []*Type {
	types := make([]*Type, 0, len(c.order))
	for _, id := range c.order {
		types = append(types, c.arena[id])
	}
	return types
}

// Ancestors returns the parent chain of t, nearest first, excluding t.
// The walk stops at the first repeated type so cyclic hierarchies terminate.
func (c *Context) Ancestors(t *Type) []*Type {
	var chain []*Type
	seen := map[TypeID]bool{t.ID: true}
	for p := c.Parent(t); p != nil && !seen[p.ID]; p = c.Parent(p) {
		seen[p.ID] = true
		chain = append(chain, p)
	}
	return chain
}

// InheritedAttribute finds the nearest ancestor of t declaring name.
func (c *Context) InheritedAttribute(t *Type, name string) (*Attribute, *Type) {
	for _, a := range c.Ancestors(t) {
		if attr := a.Attribute(name); attr != nil {
			return attr, a
		}
	}
	return nil, nil
}

// InheritedMethod finds the nearest ancestor of t declaring name.
func (c *Context) InheritedMethod(t *Type, name string) (*Method, *Type) {
	for _, a := range c.Ancestors(t) {
		if m := a.Method(name); m != nil {
			return m, a
		}
	}
	return nil, nil
}
