package gen

import (
	"sort"

	"github.com/discokit/disco-gen/pkg/utils"
)

// Role says what kind of identifier a raw key is being normalized into.
// Both roles produce exported UpperCamel names, since generated fields must
// be exported to marshal; the role decides which reserved names apply.
type Role int

const (
	// RoleField normalizes a property or parameter key into a field name.
	RoleField Role = iota
	// RoleType normalizes a schema name into a type name.
	RoleType
)

// reservedTypeNames collide with identifiers every generated unit declares
// or with universe names generated code relies on.
var reservedTypeNames = map[string]bool{
	"Type":  true,
	"Error": true,
}

// Normalize maps a raw wire key to a valid exported Go identifier. The
// second result reports whether the identifier differs from the wire key,
// i.e. whether serialization needs an explicit key mapping to round-trip.
//
// The mapping is deterministic: the same raw key always yields the same
// identifier, so output is stable across runs.
func Normalize(raw string, role Role) (string, bool) {
	if raw == "self" {
		// "self" is reserved in several client hosts; keep the historical
		// escaped form.
		return "SelfRef", true
	}

	name := utils.ToPascalCase(raw)
	if name == "" {
		name = "Value"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "N" + name
	}
	if role == RoleType && reservedTypeNames[name] {
		name = "Custom_" + name
	}
	return name, name != raw
}

// NormalizeField is shorthand for Normalize with RoleField.
func NormalizeField(raw string) (string, bool) {
	return Normalize(raw, RoleField)
}

// NormalizeType is shorthand for the identifier of Normalize with RoleType.
func NormalizeType(raw string) string {
	name, _ := Normalize(raw, RoleType)
	return name
}

// nestedName builds the deterministic name of a type synthesized under a
// parent declaration: the parent's type name joined to the UpperCamel field
// key with an underscore.
func nestedName(parent, rawField string) string {
	field, _ := NormalizeField(rawField)
	return parent + "_" + field
}

// itemName builds the name of the element type synthesized for a map alias
// or a top-level array alias.
func itemName(base string) string {
	return base + "Item"
}

// flattenedName linearizes a resource path into a binding name prefix:
// each segment UpperCamel, joined with underscores. True tree nesting is
// not reflected beyond this linearization, so unrelated branches can
// flatten to the same prefix.
func flattenedName(parent, rawSegment string) string {
	seg, _ := NormalizeField(rawSegment)
	if parent == "" {
		return seg
	}
	return parent + "_" + seg
}

// bindingName names the callable for a method under a flattened resource.
func bindingName(flattened, rawMethod string) string {
	m, _ := NormalizeField(rawMethod)
	if flattened == "" {
		return m
	}
	return flattened + "_" + m
}

// paramsTypeName names the parameter struct for a binding.
func paramsTypeName(binding string) string {
	return binding + "Parameters"
}

// sortedKeys returns the map's keys in lexicographic order, giving every
// walk over a document map a deterministic emission order.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
