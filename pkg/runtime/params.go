package runtime

import (
	"net/url"
	"regexp"
	"strconv"
)

// Parameterizable is implemented by generated parameter types. The three
// methods form a static accessor table: the generator emits them as plain
// switches over the declared wire names, so dispatch never reflects over
// struct fields at runtime.
type Parameterizable interface {
	// QueryParameters returns the wire names of the query parameters,
	// in the order they were declared in the generated type.
	QueryParameters() []string
	// PathParameters returns the wire names of the path parameters.
	PathParameters() []string
	// FieldValues returns the formatted values for one wire name. Absent
	// fields report false; repeated parameters report one value per element.
	// A nil receiver reports every name absent.
	FieldValues(name string) ([]string, bool)
}

var pathPlaceholder = regexp.MustCompile(`\{([^}]+)\}`)

// ExpandPath substitutes each {name} placeholder in the path template with
// the matching field value. A placeholder without a bound value fails with
// MissingPathParameterError before any request is made.
func ExpandPath(template string, p Parameterizable) (string, error) {
	var missing *MissingPathParameterError
	expanded := pathPlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if p != nil {
			if vals, ok := p.FieldValues(name); ok && len(vals) > 0 {
				return url.PathEscape(vals[0])
			}
		}
		if missing == nil {
			missing = &MissingPathParameterError{Name: name}
		}
		return m
	})
	if missing != nil {
		return "", missing
	}
	return expanded, nil
}

// BuildQuery collects whichever query fields are present into URL values.
// Repeated parameters contribute one pair per element.
func BuildQuery(p Parameterizable) url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	for _, name := range p.QueryParameters() {
		vals, ok := p.FieldValues(name)
		if !ok {
			continue
		}
		for _, v := range vals {
			q.Add(name, v)
		}
	}
	return q
}

// Pointer constructors for optional fields of generated types.

// String returns a pointer to the given string value.
func String(v string) *string { return &v }

// Int64 returns a pointer to the given int64 value.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to the given float64 value.
func Float64(v float64) *float64 { return &v }

// Bool returns a pointer to the given bool value.
func Bool(v bool) *bool { return &v }

// Wire formatting helpers used by generated accessor tables.

// FormatInt64 formats an int64 parameter value.
func FormatInt64(v int64) string { return strconv.FormatInt(v, 10) }

// FormatFloat64 formats a float64 parameter value.
func FormatFloat64(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatBool formats a bool parameter value.
func FormatBool(v bool) string { return strconv.FormatBool(v) }
