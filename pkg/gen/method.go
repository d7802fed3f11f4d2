package gen

import (
	"fmt"
	"strings"

	"github.com/discokit/disco-gen/pkg/discovery"
)

// paramField carries one declared method parameter through emission.
type paramField struct {
	wire    string
	goName  string
	expr    string
	inPath  bool
	inQuery bool
	desc    string
}

// binding is everything the emitter prints for one method: the optional
// parameter type declaration and the callable itself.
type binding struct {
	name       string
	httpMethod string
	path       string
	desc       string
	paramsType string   // empty when the method declares no parameters
	request    *TypeRef // nil when the method declares no request schema
	response   *TypeRef // nil when the method declares no response schema
	decls      []Decl
}

// buildBinding assembles the binding for one method under a flattened
// resource prefix.
func buildBinding(r *Resolver, flattened, rawMethod string, m *discovery.Method) (binding, error) {
	b := binding{
		name:       bindingName(flattened, rawMethod),
		httpMethod: m.HTTPMethod,
		path:       m.Path,
		desc:       m.Description,
	}

	if len(m.Parameters) > 0 {
		b.paramsType = paramsTypeName(b.name)
		decl, err := buildParamsType(r, b.paramsType, m)
		if err != nil {
			return binding{}, fmt.Errorf("method %s: %w", b.name, err)
		}
		b.decls = append(b.decls, decl)
	}

	if m.Request != nil && m.Request.Ref != "" {
		ref := r.resolveRef(m.Request.Ref)
		b.request = &ref
	}
	if m.Response != nil && m.Response.Ref != "" {
		ref := r.resolveRef(m.Response.Ref)
		b.response = &ref
	}
	return b, nil
}

// buildParamsType synthesizes the parameter struct for one method: one
// optional field per parameter in lexicographic key order, plus the
// accessor table the runtime dispatches through.
func buildParamsType(r *Resolver, typeName string, m *discovery.Method) (Decl, error) {
	keys := sortedKeys(m.Parameters)
	fields := make([]paramField, 0, len(keys))
	var children []Decl
	for _, key := range keys {
		p := m.Parameters[key]
		goName, _ := NormalizeField(key)

		ref, kids, err := r.Resolve(p.AsSchema(), nestedName(typeName, key))
		if err != nil {
			return Decl{}, fmt.Errorf("parameter %q: %w", key, err)
		}
		children = append(children, kids...)

		fields = append(fields, paramField{
			wire:    key,
			goName:  goName,
			expr:    ref.Field(),
			inPath:  p.InPath(),
			inQuery: !p.InPath() && (p.Location == "" || p.Location == discovery.LocationQuery),
			desc:    p.Description,
		})
	}

	var b strings.Builder
	for _, kid := range children {
		b.WriteString(kid.Code)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "// %s holds the parameters for %s. Every field is\n", typeName, strings.TrimSuffix(typeName, "Parameters"))
	b.WriteString("// optional; zero values mean the parameter is not sent.\n")
	fmt.Fprintf(&b, "type %s struct {\n", typeName)
	for i, f := range fields {
		if f.desc != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			writeFieldComment(&b, f.goName, f.desc)
		}
		fmt.Fprintf(&b, "\t%s %s `json:\"%s,omitempty\"`\n", f.goName, f.expr, f.wire)
	}
	b.WriteString("}\n\n")

	writeNameList(&b, typeName, "QueryParameters", filterWires(fields, func(f paramField) bool { return f.inQuery }))
	b.WriteString("\n")
	writeNameList(&b, typeName, "PathParameters", filterWires(fields, func(f paramField) bool { return f.inPath }))
	b.WriteString("\n")
	writeFieldValues(&b, typeName, fields)

	return Decl{Name: typeName, Code: b.String()}, nil
}

func filterWires(fields []paramField, keep func(paramField) bool) []string {
	var wires []string
	for _, f := range fields {
		if keep(f) {
			wires = append(wires, f.wire)
		}
	}
	return wires
}

// writeNameList emits one of the wire-name sequence methods.
func writeNameList(b *strings.Builder, typeName, method string, wires []string) {
	fmt.Fprintf(b, "func (p *%s) %s() []string {\n", typeName, method)
	if len(wires) == 0 {
		b.WriteString("\treturn nil\n}\n")
		return
	}
	quoted := make([]string, len(wires))
	for i, w := range wires {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	fmt.Fprintf(b, "\treturn []string{%s}\n}\n", strings.Join(quoted, ", "))
}

// writeFieldValues emits the accessor table: a switch from wire name to
// the formatted values of the matching field, so dispatch never inspects
// the struct reflectively. Bindings hand the parameter struct to the
// runtime as-is, so the table starts with a nil-receiver guard that
// reports every name absent.
func writeFieldValues(b *strings.Builder, typeName string, fields []paramField) {
	fmt.Fprintf(b, "func (p *%s) FieldValues(name string) ([]string, bool) {\n", typeName)
	b.WriteString("\tif p == nil {\n\t\treturn nil, false\n\t}\n")
	if len(fields) == 0 {
		b.WriteString("\treturn nil, false\n}\n")
		return
	}
	b.WriteString("\tswitch name {\n")
	for _, f := range fields {
		fmt.Fprintf(b, "\tcase %q:\n", f.wire)
		writeAccessorCase(b, f)
	}
	b.WriteString("\t}\n\treturn nil, false\n}\n")
}

// writeAccessorCase emits the body of one accessor switch case. Parameter
// schemas are scalars or repeated scalars; any other shape reports absent.
func writeAccessorCase(b *strings.Builder, f paramField) {
	field := "p." + f.goName
	switch f.expr {
	case "*string":
		fmt.Fprintf(b, "\t\tif %s == nil {\n\t\t\treturn nil, false\n\t\t}\n", field)
		fmt.Fprintf(b, "\t\treturn []string{*%s}, true\n", field)
	case "*int64", "*float64", "*bool":
		fmt.Fprintf(b, "\t\tif %s == nil {\n\t\t\treturn nil, false\n\t\t}\n", field)
		fmt.Fprintf(b, "\t\treturn []string{runtime.%s(*%s)}, true\n", formatFunc(f.expr), field)
	case "[]string":
		fmt.Fprintf(b, "\t\tif len(%s) == 0 {\n\t\t\treturn nil, false\n\t\t}\n", field)
		fmt.Fprintf(b, "\t\treturn %s, true\n", field)
	case "[]int64", "[]float64", "[]bool":
		fmt.Fprintf(b, "\t\tif len(%s) == 0 {\n\t\t\treturn nil, false\n\t\t}\n", field)
		fmt.Fprintf(b, "\t\tvals := make([]string, len(%s))\n", field)
		fmt.Fprintf(b, "\t\tfor i, v := range %s {\n\t\t\tvals[i] = runtime.%s(v)\n\t\t}\n", field, formatFunc(f.expr))
		b.WriteString("\t\treturn vals, true\n")
	default:
		b.WriteString("\t\treturn nil, false\n")
	}
}

func formatFunc(expr string) string {
	switch strings.TrimLeft(expr, "*[]") {
	case "int64":
		return "FormatInt64"
	case "float64":
		return "FormatFloat64"
	default:
		return "FormatBool"
	}
}

// writeBinding emits the callable for one method. Every shape funnels into
// the runtime's Do with nils for the parts the method does not declare.
func writeBinding(b *strings.Builder, bi binding) {
	if bi.desc != "" {
		writeDeclComment(b, bi.name, bi.desc)
	}

	args := []string{"ctx context.Context"}
	if bi.request != nil {
		args = append(args, "body "+bi.request.Field())
	}
	if bi.paramsType != "" {
		args = append(args, "parameters *"+bi.paramsType)
	}

	bodyArg := "nil"
	if bi.request != nil {
		bodyArg = "body"
	}
	paramsArg := "nil"
	if bi.paramsType != "" {
		paramsArg = "parameters"
	}

	if bi.response == nil {
		fmt.Fprintf(b, "func (s *Service) %s(%s) error {\n", bi.name, strings.Join(args, ", "))
		fmt.Fprintf(b, "\treturn s.client.Do(ctx, %q, %q, %s, %s, nil)\n}\n",
			bi.httpMethod, bi.path, paramsArg, bodyArg)
		return
	}

	fmt.Fprintf(b, "func (s *Service) %s(%s) (%s, error) {\n", bi.name, strings.Join(args, ", "), bi.response.Field())
	fmt.Fprintf(b, "\tvar out %s\n", bi.response.Expr)
	fmt.Fprintf(b, "\tif err := s.client.Do(ctx, %q, %q, %s, %s, &out); err != nil {\n\t\treturn nil, err\n\t}\n",
		bi.httpMethod, bi.path, paramsArg, bodyArg)
	if bi.response.Kind == refStruct {
		b.WriteString("\treturn &out, nil\n}\n")
	} else {
		b.WriteString("\treturn out, nil\n}\n")
	}
}
