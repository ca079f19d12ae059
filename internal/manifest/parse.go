package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/meta"
)

// rootSchema accepts the two top-level declaration forms.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "unit", LabelNames: []string{"name"}},
		{Type: "annotation", LabelNames: []string{"name"}},
	},
}

// unitBodySchema describes the body of a unit or annotation block.
var unitBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "extends"},
		{Name: "implements"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "annotate", LabelNames: []string{"type"}},
		{Type: "method", LabelNames: []string{"name"}},
		{Type: "unit", LabelNames: []string{"name"}},
	},
}

// methodBodySchema describes the body of a method block.
var methodBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "returns"},
		{Name: "abstract"},
	},
}

func parseFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*meta.Descriptor, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing unit declarations from file.", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		return nil, append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
	}

	content, diags := hclFile.Body.Content(rootSchema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	var descriptors []*meta.Descriptor
	for _, block := range content.Blocks {
		kind := meta.KindUnit
		if block.Type == "annotation" {
			kind = meta.KindAnnotation
		}
		d, diags := parseUnitBlock(block, "", kind, filePath)
		allDiags = append(allDiags, diags...)
		if diags.HasErrors() {
			continue
		}
		descriptors = append(descriptors, d)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}
	logger.Debug("Successfully parsed unit declarations.", "count", len(descriptors))
	return descriptors, nil
}

func parseUnitBlock(block *hcl.Block, enclosing string, kind meta.Kind, filePath string) (*meta.Descriptor, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics

	name := block.Labels[0]
	if name == "" {
		return nil, append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unit name must not be empty",
			Subject:  &block.DefRange,
		})
	}
	if enclosing != "" {
		if strings.Contains(name, ".") {
			return nil, append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Nested unit name must be unqualified",
				Detail:   fmt.Sprintf("Member %q of %q is qualified automatically; drop the dots.", name, enclosing),
				Subject:  &block.DefRange,
			})
		}
		name = meta.MemberName(enclosing, name)
	}

	body, diags := block.Body.Content(unitBodySchema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	d := &meta.Descriptor{
		Name:    name,
		Kind:    kind,
		Methods: make(map[string]meta.MethodSpec),
		// Non-nil so the declared order is authoritative even for units
		// without methods.
		DeclaredMethods: []string{},
		Source:          filePath,
	}

	if attr, exists := body.Attributes["extends"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &d.Extends)...)
	}
	if attr, exists := body.Attributes["implements"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &d.Implements)...)
	}
	// description is accepted for documentation but not modeled.

	for _, inner := range body.Blocks {
		switch inner.Type {
		case "annotate":
			ann, diags := parseAnnotateBlock(inner)
			allDiags = append(allDiags, diags...)
			if !diags.HasErrors() {
				d.Annotations = append(d.Annotations, ann)
			}
		case "method":
			spec, diags := parseMethodBlock(inner)
			allDiags = append(allDiags, diags...)
			if diags.HasErrors() {
				continue
			}
			if _, dup := d.Methods[spec.Name]; dup {
				allDiags = append(allDiags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate method declaration",
					Detail:   fmt.Sprintf("Unit %q declares method %q more than once.", name, spec.Name),
					Subject:  &inner.DefRange,
				})
				continue
			}
			d.Methods[spec.Name] = spec
			d.DeclaredMethods = append(d.DeclaredMethods, spec.Name)
		case "unit":
			member, diags := parseUnitBlock(inner, name, meta.KindUnit, filePath)
			allDiags = append(allDiags, diags...)
			if !diags.HasErrors() {
				d.Members = append(d.Members, member)
			}
		}
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}
	return d, nil
}

func parseAnnotateBlock(block *hcl.Block) (meta.Annotation, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics
	ann := meta.NewAnnotation(block.Labels[0])

	attrs, diags := block.Body.JustAttributes()
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return ann, allDiags
	}
	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		allDiags = append(allDiags, diags...)
		if diags.HasErrors() {
			continue
		}
		ann.Attrs[attrName] = val
	}
	return ann, allDiags
}

func parseMethodBlock(block *hcl.Block) (meta.MethodSpec, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics
	spec := meta.MethodSpec{Name: block.Labels[0]}

	body, diags := block.Body.Content(methodBodySchema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return spec, allDiags
	}
	if attr, exists := body.Attributes["returns"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Returns)...)
	}
	if attr, exists := body.Attributes["abstract"]; exists {
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Abstract)...)
	}
	return spec, allDiags
}
