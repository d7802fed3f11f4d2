package gen

import (
	_ "embed"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/discokit/disco-gen/pkg/discovery"
	"github.com/discokit/disco-gen/pkg/utils"
)

//go:embed templates/unit.go.gotmpl
var unitTemplate string

// DefaultRuntimeImport is the dispatch package generated units import when
// Options does not name another one.
const DefaultRuntimeImport = "github.com/discokit/disco-gen/pkg/runtime"

// Options configure a single generation run.
type Options struct {
	// PackageName overrides the generated package name. Defaults to the
	// document's service name, sanitized into a valid identifier.
	PackageName string
	// RuntimeImport overrides the import path of the dispatch package.
	RuntimeImport string
}

// Generator turns a discovery document into one self-contained Go source
// unit.
type Generator struct {
	opts Options
}

// NewGenerator creates a generator with the given options.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate renders the complete source unit for doc. Generation is
// all-or-nothing: any unresolvable schema or method aborts the run and
// nothing is returned.
//
// The unit is laid out in a fixed order so identical documents produce
// byte-identical output: file header, named types in lexicographic schema
// order, method bindings in depth-first resource order, and the service
// entry point last.
func (g *Generator) Generate(doc *discovery.Document) ([]byte, error) {
	baseURL := doc.ResolvedBaseURL()
	if baseURL == "" {
		return nil, fmt.Errorf("document %q declares no baseUrl or rootUrl", doc.Name)
	}

	pkg := g.opts.PackageName
	if pkg == "" {
		pkg = doc.Name
	}
	pkg = utils.SanitizePackageName(pkg)

	runtimeImport := g.opts.RuntimeImport
	if runtimeImport == "" {
		runtimeImport = DefaultRuntimeImport
	}

	r := NewResolver(doc)

	var schemas strings.Builder
	for _, key := range sortedKeys(doc.Schemas) {
		decls, err := r.ResolveTopLevel(key, doc.Schemas[key])
		if err != nil {
			return nil, err
		}
		for _, d := range decls {
			schemas.WriteString(d.Code)
			schemas.WriteString("\n")
		}
	}

	var methods strings.Builder
	if err := writeResource(r, &methods, "", doc.Methods, doc.Resources); err != nil {
		return nil, err
	}

	funcMap := template.FuncMap{
		"packageName": func() string { return pkg },
		"apiTitle": func() string {
			if doc.Title != "" {
				return doc.Title
			}
			return doc.Name
		},
	}
	for k, v := range sprig.FuncMap() {
		funcMap[k] = v
	}

	tmpl, err := template.New("unit.go.gotmpl").Funcs(funcMap).Parse(unitTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit template: %w", err)
	}

	var out strings.Builder
	data := map[string]any{
		"Name":          doc.Name,
		"Version":       doc.Version,
		"BaseURL":       baseURL,
		"RuntimeImport": runtimeImport,
		"HasMethods":    methods.Len() > 0,
		"Schemas":       schemas.String(),
		"Methods":       methods.String(),
	}
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("failed to execute unit template: %w", err)
	}

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

// writeResource emits the bindings of one resource node and recurses into
// its sub-resources, both in lexicographic key order. Each method's
// parameter type lands immediately before its callable.
func writeResource(r *Resolver, b *strings.Builder, flattened string, methods map[string]*discovery.Method, resources map[string]*discovery.Resource) error {
	for _, key := range sortedKeys(methods) {
		bi, err := buildBinding(r, flattened, key, methods[key])
		if err != nil {
			return err
		}
		for _, d := range bi.decls {
			b.WriteString(d.Code)
			b.WriteString("\n")
		}
		writeBinding(b, bi)
		b.WriteString("\n")
	}
	for _, key := range sortedKeys(resources) {
		res := resources[key]
		if err := writeResource(r, b, flattenedName(flattened, key), res.Methods, res.Resources); err != nil {
			return err
		}
	}
	return nil
}

// formatComment formats a description as Go comment lines, handling
// multiline input.
func formatComment(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			result = append(result, "//")
		} else {
			result = append(result, "// "+line)
		}
	}
	return strings.Join(result, "\n")
}

// writeDeclComment writes the doc comment for a top-level declaration,
// leading with the declared name.
func writeDeclComment(b *strings.Builder, name, desc string) {
	if desc == "" {
		return
	}
	b.WriteString(formatComment(name + ": " + desc))
	b.WriteString("\n")
}

// writeFieldComment is writeDeclComment indented one level, for struct
// fields.
func writeFieldComment(b *strings.Builder, name, desc string) {
	if desc == "" {
		return
	}
	for _, line := range strings.Split(formatComment(name+": "+desc), "\n") {
		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
