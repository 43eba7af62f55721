// Package ast holds the declaration-level syntax tree consumed by the
// semantic passes. Method bodies are not represented: they belong to the
// expression checker, which runs after the class hierarchy is validated.
package ast

import "fmt"

// Position is a 1-based source location. The zero value means unknown.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Column > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%d", p.Line)
}

// Node is implemented by the four node kinds only: *Program, *Class,
// *Attribute and *Method. The unexported marker keeps the set closed.
type Node interface {
	Pos() Position
	node()
}

// Feature is an attribute or method declared inside a class body.
type Feature interface {
	Node
	featureNode()
}

type TypeIdentifier struct {
	Position Position
	Value    string
}

type ObjectIdentifier struct {
	Position Position
	Value    string
}

type Program struct {
	Classes []*Class
}

func (p *Program) Pos() Position {
	if len(p.Classes) > 0 {
		return p.Classes[0].Pos()
	}
	return Position{}
}
func (p *Program) node() {}

type Class struct {
	Position Position
	Name     *TypeIdentifier
	Parent   *TypeIdentifier // nil when the declaration has no inherits clause
	Features []Feature
}

func (c *Class) Pos() Position { return c.Position }
func (c *Class) node()         {}

// ParentName returns the declared parent, or "" when none was given.
func (c *Class) ParentName() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.Value
}

type Attribute struct {
	Position Position
	Name     *ObjectIdentifier
	Type     *TypeIdentifier
}

func (a *Attribute) Pos() Position { return a.Position }
func (a *Attribute) node()         {}
func (a *Attribute) featureNode()  {}

type Method struct {
	Position Position
	Name     *ObjectIdentifier
	Formals  []*Formal
	Type     *TypeIdentifier // declared return type
}

func (m *Method) Pos() Position { return m.Position }
func (m *Method) node()         {}
func (m *Method) featureNode()  {}

// Formal is a single method parameter. It is part of a Method, not a node
// kind of its own.
type Formal struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
}

// Helpers for building trees by hand (tests, importer).

func NewClass(name, parent string, features ...Feature) *Class {
	c := &Class{Name: &TypeIdentifier{Value: name}, Features: features}
	if parent != "" {
		c.Parent = &TypeIdentifier{Value: parent}
	}
	return c
}

func NewAttribute(name, typ string) *Attribute {
	return &Attribute{
		Name: &ObjectIdentifier{Value: name},
		Type: &TypeIdentifier{Value: typ},
	}
}

func NewMethod(name, returnType string, formals ...*Formal) *Method {
	return &Method{
		Name:    &ObjectIdentifier{Value: name},
		Formals: formals,
		Type:    &TypeIdentifier{Value: returnType},
	}
}

func NewFormal(name, typ string) *Formal {
	return &Formal{
		Name: &ObjectIdentifier{Value: name},
		Type: &TypeIdentifier{Value: typ},
	}
}
