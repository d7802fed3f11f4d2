package runtime

import (
	"errors"
	"testing"
)

// fakeParams mirrors the accessor-table shape of generated parameter types.
type fakeParams struct {
	ID         *string
	MaxResults *int64
	Fields     []string
}

func (p *fakeParams) QueryParameters() []string {
	return []string{"fields", "maxResults"}
}

func (p *fakeParams) PathParameters() []string {
	return []string{"id"}
}

func (p *fakeParams) FieldValues(name string) ([]string, bool) {
	if p == nil {
		return nil, false
	}
	switch name {
	case "id":
		if p.ID == nil {
			return nil, false
		}
		return []string{*p.ID}, true
	case "maxResults":
		if p.MaxResults == nil {
			return nil, false
		}
		return []string{FormatInt64(*p.MaxResults)}, true
	case "fields":
		if len(p.Fields) == 0 {
			return nil, false
		}
		return p.Fields, true
	default:
		return nil, false
	}
}

func TestExpandPath(t *testing.T) {
	id := "abc/123"
	p := &fakeParams{ID: &id}

	got, err := ExpandPath("books/{id}", p)
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != "books/abc%2F123" {
		t.Errorf("ExpandPath = %q, expected escaped id segment", got)
	}

	plain, err := ExpandPath("books", p)
	if err != nil || plain != "books" {
		t.Errorf("ExpandPath without placeholders = %q, %v", plain, err)
	}
}

func TestExpandPathMissing(t *testing.T) {
	_, err := ExpandPath("books/{id}", &fakeParams{})
	var missing *MissingPathParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPathParameterError, got %v", err)
	}
	if missing.Name != "id" {
		t.Errorf("missing name = %q, expected id", missing.Name)
	}

	if _, err := ExpandPath("books/{id}", nil); err == nil {
		t.Error("expected error for nil params with placeholder")
	}

	_, err = ExpandPath("books/{id}", (*fakeParams)(nil))
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPathParameterError for a nil struct, got %v", err)
	}
}

func TestBuildQuery(t *testing.T) {
	max := int64(25)
	p := &fakeParams{MaxResults: &max, Fields: []string{"a", "b"}}

	q := BuildQuery(p)
	if got := q.Get("maxResults"); got != "25" {
		t.Errorf("maxResults = %q, expected 25", got)
	}
	if got := q["fields"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("fields = %v, expected [a b]", got)
	}
	if _, present := q["id"]; present {
		t.Error("path parameter leaked into query values")
	}

	empty := BuildQuery(&fakeParams{})
	if len(empty) != 0 {
		t.Errorf("absent fields produced query values: %v", empty)
	}
	if len(BuildQuery(nil)) != 0 {
		t.Error("nil params produced query values")
	}
	if len(BuildQuery((*fakeParams)(nil))) != 0 {
		t.Error("nil params struct produced query values")
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got      string
		expected string
	}{
		{FormatInt64(42), "42"},
		{FormatInt64(-7), "-7"},
		{FormatFloat64(1.5), "1.5"},
		{FormatBool(true), "true"},
		{FormatBool(false), "false"},
	}
	for _, test := range tests {
		if test.got != test.expected {
			t.Errorf("formatted %q, expected %q", test.got, test.expected)
		}
	}
}

func TestPointerHelpers(t *testing.T) {
	if *String("x") != "x" {
		t.Error("String round-trip failed")
	}
	if *Int64(9) != 9 {
		t.Error("Int64 round-trip failed")
	}
	if *Float64(2.5) != 2.5 {
		t.Error("Float64 round-trip failed")
	}
	if *Bool(true) != true {
		t.Error("Bool round-trip failed")
	}
}
