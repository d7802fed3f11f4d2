package gen

import (
	"fmt"
	"strings"

	"github.com/discokit/disco-gen/pkg/discovery"
)

// RefKind tells reference sites how to spell a resolved type.
type RefKind int

const (
	// refComposite covers maps, slices, aliases, and any: already nilable,
	// referenced bare.
	refComposite RefKind = iota
	// refStruct covers named struct types, held through pointers everywhere.
	refStruct
	// refScalar covers primitives, which optional fields hold through
	// pointers but sequence elements hold bare.
	refScalar
)

// TypeRef is the resolved Go rendering of one schema node.
type TypeRef struct {
	Expr string
	Kind RefKind
}

// Field returns the type expression for an optional field position.
func (t TypeRef) Field() string {
	if t.Kind == refStruct || t.Kind == refScalar {
		return "*" + t.Expr
	}
	return t.Expr
}

// Elem returns the type expression for a slice or map element position.
func (t TypeRef) Elem() string {
	if t.Kind == refStruct {
		return "*" + t.Expr
	}
	return t.Expr
}

// Decl is one synthesized type declaration, ready to print.
type Decl struct {
	Name string
	Code string
}

// Resolver computes Go types for schema nodes. It carries the document so
// $ref resolution can consult the top-level schema registry, and nothing
// else: every call returns its synthesized declarations to the caller, so
// emission order is exactly the caller's call order.
type Resolver struct {
	doc *discovery.Document
}

// NewResolver returns a resolver over the document's schema registry.
func NewResolver(doc *discovery.Document) *Resolver {
	return &Resolver{doc: doc}
}

// Resolve computes the type for one schema node. name is the declaration
// name the node takes if its shape requires one; declarations come back in
// first-discovered order, children before the declarations that use them.
func (r *Resolver) Resolve(s *discovery.Schema, name string) (TypeRef, []Decl, error) {
	kind, err := s.Kind()
	if err != nil {
		return TypeRef{}, nil, fmt.Errorf("%s: %w", name, ErrSchemaMissingTypeOrRef)
	}

	switch kind {
	case discovery.KindReference:
		return r.resolveRef(s.Ref), nil, nil
	case discovery.KindMap:
		return r.resolveMap(s, name)
	case discovery.KindStruct:
		return r.resolveStruct(s, name)
	case discovery.KindOpaque:
		return r.resolveOpaque(s, name)
	case discovery.KindArray:
		return r.resolveArray(s, name)
	case discovery.KindPrimitive:
		return TypeRef{Expr: primitiveExpr(s.Type), Kind: refScalar}, nil, nil
	default: // discovery.KindAny
		return TypeRef{Expr: "any", Kind: refComposite}, nil, nil
	}
}

// resolveRef renders a $ref through the schema registry: struct referents
// are reached through pointers, alias referents bare. A ref to a name the
// registry does not know is treated as a struct, so the dangling name
// surfaces when the generated unit is compiled.
func (r *Resolver) resolveRef(ref string) TypeRef {
	name := NormalizeType(ref)
	target, ok := r.doc.Schemas[ref]
	if !ok {
		return TypeRef{Expr: name, Kind: refStruct}
	}
	kind, err := target.Kind()
	if err == nil && (kind == discovery.KindStruct || kind == discovery.KindReference) {
		return TypeRef{Expr: name, Kind: refStruct}
	}
	return TypeRef{Expr: name, Kind: refComposite}
}

// resolveMap emits a map alias. The element schema resolves under the
// sibling name <name>Item, so inline element objects (or arrays of them)
// synthesize that named type first.
func (r *Resolver) resolveMap(s *discovery.Schema, name string) (TypeRef, []Decl, error) {
	elem, decls, err := r.Resolve(s.AdditionalProperties, itemName(name))
	if err != nil {
		return TypeRef{}, nil, err
	}

	var b strings.Builder
	writeDeclComment(&b, name, s.Description)
	fmt.Fprintf(&b, "type %s map[string]%s\n", name, elem.Elem())
	decls = append(decls, Decl{Name: name, Code: b.String()})
	return TypeRef{Expr: name, Kind: refComposite}, decls, nil
}

// resolveStruct emits a struct declaration: one optional field per
// property in lexicographic key order, each tagged with its exact wire
// key. Inline property objects synthesize <name>_<Field> declarations.
func (r *Resolver) resolveStruct(s *discovery.Schema, name string) (TypeRef, []Decl, error) {
	var decls []Decl
	var b strings.Builder
	writeDeclComment(&b, name, s.Description)
	fmt.Fprintf(&b, "type %s struct {\n", name)

	for i, key := range sortedKeys(s.Properties) {
		prop := s.Properties[key]
		fieldName, _ := NormalizeField(key)

		ref, childDecls, err := r.Resolve(prop, nestedName(name, key))
		if err != nil {
			return TypeRef{}, nil, err
		}
		decls = append(decls, childDecls...)

		if prop.Description != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			writeFieldComment(&b, fieldName, prop.Description)
		}
		fmt.Fprintf(&b, "\t%s %s `json:\"%s,omitempty\"`\n", fieldName, ref.Field(), key)
	}

	b.WriteString("}\n")
	decls = append(decls, Decl{Name: name, Code: b.String()})
	return TypeRef{Expr: name, Kind: refStruct}, decls, nil
}

// resolveOpaque aliases an object with no declared shape to an untyped
// JSON object. This is a deliberate fallback, not an error.
func (r *Resolver) resolveOpaque(s *discovery.Schema, name string) (TypeRef, []Decl, error) {
	var b strings.Builder
	writeDeclComment(&b, name, s.Description)
	fmt.Fprintf(&b, "type %s map[string]any\n", name)
	return TypeRef{Expr: name, Kind: refComposite}, []Decl{{Name: name, Code: b.String()}}, nil
}

// resolveArray renders a sequence. The items schema resolves under the
// same candidate name, so an inline item object becomes the declaration
// the context already names.
func (r *Resolver) resolveArray(s *discovery.Schema, name string) (TypeRef, []Decl, error) {
	if s.Items == nil {
		return TypeRef{}, nil, fmt.Errorf("%s: %w", name, ErrArrayMissingItems)
	}
	item, decls, err := r.Resolve(s.Items, name)
	if err != nil {
		return TypeRef{}, nil, err
	}
	return TypeRef{Expr: "[]" + item.Elem(), Kind: refComposite}, decls, nil
}

// ResolveTopLevel renders the declarations for one named top-level schema.
// Shapes that cannot form a declaration are fatal.
func (r *Resolver) ResolveTopLevel(rawName string, s *discovery.Schema) ([]Decl, error) {
	name := NormalizeType(rawName)
	kind, err := s.Kind()
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", rawName, ErrSchemaMissingTypeOrRef)
	}

	switch kind {
	case discovery.KindStruct, discovery.KindMap, discovery.KindOpaque:
		_, decls, err := r.Resolve(s, name)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", rawName, err)
		}
		return decls, nil

	case discovery.KindReference:
		var b strings.Builder
		writeDeclComment(&b, name, s.Description)
		fmt.Fprintf(&b, "type %s = %s\n", name, r.resolveRef(s.Ref).Expr)
		return []Decl{{Name: name, Code: b.String()}}, nil

	case discovery.KindArray:
		// Root-only rule: inline items synthesize a sibling <name>Item
		// type and the named schema aliases a sequence of it.
		if s.Items == nil {
			return nil, fmt.Errorf("schema %q: %w", rawName, ErrArrayMissingItems)
		}
		item, decls, err := r.Resolve(s.Items, itemName(name))
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", rawName, err)
		}
		var b strings.Builder
		writeDeclComment(&b, name, s.Description)
		fmt.Fprintf(&b, "type %s []%s\n", name, item.Elem())
		return append(decls, Decl{Name: name, Code: b.String()}), nil

	default: // KindPrimitive, KindAny
		return nil, fmt.Errorf("schema %q (type %q): %w", rawName, s.Type, ErrUnknownTopLevelSchemaType)
	}
}

// primitiveExpr maps a discovery primitive to its Go type.
func primitiveExpr(t string) string {
	switch t {
	case "string":
		return "string"
	case "integer":
		return "int64"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	}
	return "any"
}
