package discovery

import (
	"testing"
)

func TestSchemaKind(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		want    SchemaKind
		wantErr bool
	}{
		{"ref", &Schema{Ref: "Book"}, KindReference, false},
		{"ref wins over type", &Schema{Ref: "Book", Type: "object"}, KindReference, false},
		{"map", &Schema{Type: "object", AdditionalProperties: &Schema{Type: "string"}}, KindMap, false},
		{"map wins over properties", &Schema{Type: "object", AdditionalProperties: &Schema{Type: "string"}, Properties: map[string]*Schema{"a": {Type: "string"}}}, KindMap, false},
		{"struct", &Schema{Type: "object", Properties: map[string]*Schema{"a": {Type: "string"}}}, KindStruct, false},
		{"struct without object type", &Schema{Properties: map[string]*Schema{"a": {Type: "string"}}}, KindStruct, false},
		{"opaque object", &Schema{Type: "object"}, KindOpaque, false},
		{"array", &Schema{Type: "array", Items: &Schema{Type: "string"}}, KindArray, false},
		{"array without items still classifies", &Schema{Type: "array"}, KindArray, false},
		{"string", &Schema{Type: "string"}, KindPrimitive, false},
		{"integer", &Schema{Type: "integer"}, KindPrimitive, false},
		{"number", &Schema{Type: "number"}, KindPrimitive, false},
		{"boolean", &Schema{Type: "boolean"}, KindPrimitive, false},
		{"any", &Schema{Type: "any"}, KindAny, false},
		{"empty", &Schema{}, 0, true},
		{"unknown type", &Schema{Type: "blob"}, 0, true},
	}

	for _, test := range tests {
		got, err := test.schema.Kind()
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: Kind() = %v, expected error", test.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: Kind() error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: Kind() = %v, expected %v", test.name, got, test.want)
		}
	}
}

func TestParameterAsSchema(t *testing.T) {
	p := &Parameter{Type: "string", Location: "query"}
	s := p.AsSchema()
	if s.Type != "string" {
		t.Errorf("AsSchema type = %q, expected %q", s.Type, "string")
	}

	rep := &Parameter{Type: "string", Location: "query", Repeated: true}
	s = rep.AsSchema()
	if s.Type != "array" {
		t.Fatalf("repeated AsSchema type = %q, expected %q", s.Type, "array")
	}
	if s.Items == nil || s.Items.Type != "string" {
		t.Errorf("repeated AsSchema items = %+v, expected string items", s.Items)
	}

	arr := &Parameter{Type: "array", Items: &Parameter{Type: "integer"}}
	s = arr.AsSchema()
	if s.Type != "array" || s.Items == nil || s.Items.Type != "integer" {
		t.Errorf("array AsSchema = %+v, expected array of integer", s)
	}
}

func TestParameterInPath(t *testing.T) {
	if (&Parameter{Location: "path"}).InPath() != true {
		t.Error("path parameter not recognized")
	}
	if (&Parameter{Location: "query"}).InPath() {
		t.Error("query parameter reported as path")
	}
	if (&Parameter{}).InPath() {
		t.Error("location-less parameter reported as path")
	}
}

func TestResolvedBaseURL(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"baseUrl", Document{BaseURL: "https://books.example.com/v1/"}, "https://books.example.com/v1/"},
		{"rootUrl + servicePath", Document{RootURL: "https://books.example.com/", ServicePath: "v1/"}, "https://books.example.com/v1/"},
		{"baseUrl wins", Document{BaseURL: "https://a.example.com/", RootURL: "https://b.example.com/", ServicePath: "v2/"}, "https://a.example.com/"},
	}

	for _, test := range tests {
		if got := test.doc.ResolvedBaseURL(); got != test.want {
			t.Errorf("%s: ResolvedBaseURL() = %q, expected %q", test.name, got, test.want)
		}
	}
}
