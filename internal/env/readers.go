package env

import (
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/confgraph/internal/resource"
)

// ReadSource parses a resource into a property source. The format is taken
// from the argument when given, otherwise from the location's extension.
// JSON documents go through the YAML reader, which accepts them.
func ReadSource(name string, res resource.Resource, format string) (Source, error) {
	rc, err := res.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open property source %s: %w", res.Name(), err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read property source %s: %w", res.Name(), err)
	}

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(res.Name()), ".")
	}

	switch strings.ToLower(format) {
	case "properties":
		return parseProperties(name, string(content))
	case "yaml", "yml", "json":
		return parseYAML(name, content)
	case "hcl":
		return parseHCL(name, res.Name(), content)
	default:
		return nil, fmt.Errorf("unsupported property source format %q for %s", format, res.Name())
	}
}

// parseProperties handles simple key=value (or key: value) line files with
// # and ! comments. Line continuations are not supported.
func parseProperties(name, content string) (*MapSource, error) {
	values := make(map[string]any)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			return nil, fmt.Errorf("property source %q: line %q has no separator", name, line)
		}
		key := strings.TrimSpace(line[:sep])
		if key == "" {
			return nil, fmt.Errorf("property source %q: line %q has an empty key", name, line)
		}
		values[key] = strings.TrimSpace(line[sep+1:])
	}
	return NewMapSource(name, values), nil
}

func parseYAML(name string, content []byte) (*MapSource, error) {
	var values map[string]any
	if err := yaml.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("failed to parse property source %q: %w", name, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return NewMapSource(name, values), nil
}

// parseHCL reads an attributes-only HCL document. Expressions are evaluated
// without a context, so only literals and constant expressions are allowed.
func parseHCL(name, filename string, content []byte) (*MapSource, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse property source %q: %w", name, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read property source %q: %w", name, diags)
	}

	values := make(map[string]any)
	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate attribute %q in property source %q: %w", attrName, name, diags)
		}
		values[attrName] = ctyToGo(val)
	}
	return NewMapSource(name, values), nil
}

func ctyToGo(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, ctyToGo(elem))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			out[key.AsString()] = ctyToGo(elem)
		}
		return out
	default:
		return v.GoString()
	}
}
