// Package importer loads AST documents produced by the front end. A
// document may import sibling documents; their classes come first in the
// resulting program.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Yumenio/cool-compiler-2021/ast"
)

type ModuleInfo struct {
	Name     string
	FilePath string
	Imports  []string
	Classes  []*ast.Class
}

type Importer struct {
	processedModules map[string]*ModuleInfo
	order            []string // file paths, imports before importers
	moduleStack      []string // absolute paths being loaded, for circular import detection
}

func New() *Importer {
	return &Importer{
		processedModules: make(map[string]*ModuleInfo),
		moduleStack:      make([]string, 0),
	}
}

// ProcessFile loads filePath and everything it imports, transitively, and
// returns the combined program.
func (i *Importer) ProcessFile(filePath string) (*ast.Program, error) {
	absolutePath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	if _, err := i.processModule(absolutePath); err != nil {
		return nil, err
	}

	program := &ast.Program{}
	for _, path := range i.order {
		program.Classes = append(program.Classes, i.processedModules[path].Classes...)
	}
	return program, nil
}

// Modules returns the loaded modules, imports before importers.
func (i *Importer) Modules() []*ModuleInfo {
	modules := make([]*ModuleInfo, 0, len(i.order))
	for _, path := range i.order {
		modules = append(modules, i.processedModules[path])
	}
	return modules
}

func (i *Importer) processModule(filePath string) (*ModuleInfo, error) {
	if info, exists := i.processedModules[filePath]; exists {
		return info, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	moduleName := doc.Module
	if moduleName == "" {
		base := filepath.Base(filePath)
		moduleName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if i.isInStack(filePath) {
		return nil, fmt.Errorf("circular import detected for module %s (%s)", moduleName, filePath)
	}

	classes, err := doc.classes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	moduleInfo := &ModuleInfo{
		Name:     moduleName,
		FilePath: filePath,
		Imports:  doc.Imports,
		Classes:  classes,
	}

	i.moduleStack = append(i.moduleStack, filePath)
	defer func() { i.moduleStack = i.moduleStack[:len(i.moduleStack)-1] }()

	dir := filepath.Dir(filePath)
	for _, imp := range doc.Imports {
		if _, err := i.processModule(importPath(dir, imp)); err != nil {
			return nil, err
		}
	}

	i.processedModules[filePath] = moduleInfo
	i.order = append(i.order, filePath)

	return moduleInfo, nil
}

// importPath resolves an import relative to the importing document. Imports
// without an extension refer to YAML documents.
func importPath(dir, imp string) string {
	if filepath.Ext(imp) == "" {
		imp += ".yaml"
	}
	if filepath.IsAbs(imp) {
		return imp
	}
	return filepath.Join(dir, imp)
}

func (i *Importer) isInStack(filePath string) bool {
	for _, p := range i.moduleStack {
		if p == filePath {
			return true
		}
	}
	return false
}

// Document is the on-disk form of one module. JSON documents decode too,
// YAML being a superset.
type Document struct {
	Module  string     `yaml:"module"`
	Imports []string   `yaml:"imports"`
	Classes []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name     string       `yaml:"name"`
	Inherits string       `yaml:"inherits"`
	Line     int          `yaml:"line"`
	Column   int          `yaml:"column"`
	Features []featureDoc `yaml:"features"`
}

type featureDoc struct {
	Attribute string      `yaml:"attribute"`
	Method    string      `yaml:"method"`
	Type      string      `yaml:"type"`
	Formals   []formalDoc `yaml:"formals"`
	Line      int         `yaml:"line"`
	Column    int         `yaml:"column"`
}

type formalDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Decode parses a document. Unknown keys are rejected; an empty input is an
// empty module.
func Decode(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// Program converts the document's own classes, ignoring its imports.
func (d *Document) Program() (*ast.Program, error) {
	classes, err := d.classes()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Classes: classes}, nil
}

func (d *Document) classes() ([]*ast.Class, error) {
	classes := make([]*ast.Class, 0, len(d.Classes))
	for ci, c := range d.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("class #%d has no name", ci+1)
		}
		pos := ast.Position{Line: c.Line, Column: c.Column}
		class := &ast.Class{
			Position: pos,
			Name:     &ast.TypeIdentifier{Position: pos, Value: c.Name},
		}
		if c.Inherits != "" {
			class.Parent = &ast.TypeIdentifier{Position: pos, Value: c.Inherits}
		}
		for fi, f := range c.Features {
			feature, err := f.feature()
			if err != nil {
				return nil, fmt.Errorf("class %s, feature #%d: %w", c.Name, fi+1, err)
			}
			class.Features = append(class.Features, feature)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

func (f featureDoc) feature() (ast.Feature, error) {
	pos := ast.Position{Line: f.Line, Column: f.Column}
	switch {
	case f.Attribute != "" && f.Method != "":
		return nil, errors.New("feature is both an attribute and a method")
	case f.Type == "":
		return nil, errors.New("feature has no type")
	case f.Attribute != "":
		if len(f.Formals) > 0 {
			return nil, fmt.Errorf("attribute %s has formals", f.Attribute)
		}
		return &ast.Attribute{
			Position: pos,
			Name:     &ast.ObjectIdentifier{Position: pos, Value: f.Attribute},
			Type:     &ast.TypeIdentifier{Position: pos, Value: f.Type},
		}, nil
	case f.Method != "":
		method := &ast.Method{
			Position: pos,
			Name:     &ast.ObjectIdentifier{Position: pos, Value: f.Method},
			Type:     &ast.TypeIdentifier{Position: pos, Value: f.Type},
		}
		for _, formal := range f.Formals {
			if formal.Name == "" || formal.Type == "" {
				return nil, fmt.Errorf("method %s has an incomplete formal", f.Method)
			}
			method.Formals = append(method.Formals, &ast.Formal{
				Name: &ast.ObjectIdentifier{Position: pos, Value: formal.Name},
				Type: &ast.TypeIdentifier{Position: pos, Value: formal.Type},
			})
		}
		return method, nil
	default:
		return nil, errors.New("feature is neither an attribute nor a method")
	}
}
