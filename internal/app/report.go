package app

import (
	"encoding/json"
	"fmt"

	"github.com/vk/confgraph/internal/resolve"
)

type reportRecord struct {
	Unit       string   `json:"unit"`
	Bean       string   `json:"bean,omitempty"`
	ImportedBy []string `json:"imported_by,omitempty"`
	Methods    []string `json:"methods,omitempty"`
	Files      []string `json:"files,omitempty"`
	Registrars int      `json:"registrars,omitempty"`
}

type reportDoc struct {
	Records         []reportRecord `json:"records"`
	Definitions     []string       `json:"definitions"`
	PropertySources []string       `json:"property_sources"`
	Properties      map[string]any `json:"properties,omitempty"`
}

// report renders the resolution outcome to the application writer.
func (a *App) report(result *resolve.Result) error {
	doc, err := a.buildReport(result)
	if err != nil {
		return err
	}
	if a.config.Report == "json" {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return a.writeTextReport(doc)
}

func (a *App) buildReport(result *resolve.Result) (*reportDoc, error) {
	doc := &reportDoc{
		Records:         make([]reportRecord, 0, len(result.Classes)),
		Definitions:     a.registry.Names(),
		PropertySources: a.environ.Chain().Names(),
	}
	for _, c := range result.Classes {
		rec := reportRecord{Unit: c.Name(), Bean: c.BeanName, Registrars: len(c.Registrars)}
		for _, imp := range c.ImportedBy() {
			rec.ImportedBy = append(rec.ImportedBy, imp.Name())
		}
		for _, m := range c.Methods {
			rec.Methods = append(rec.Methods, m.Name)
		}
		for _, fi := range c.FileImports {
			rec.Files = append(rec.Files, fi.Location)
		}
		doc.Records = append(doc.Records, rec)
	}

	// The merged property view only goes into the JSON report; the text one
	// stays a summary.
	snapshot, err := a.environ.Snapshot()
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		doc.Properties = snapshot
	}
	return doc, nil
}

func (a *App) writeTextReport(doc *reportDoc) error {
	fmt.Fprintf(a.outW, "Resolved %d configuration record(s)\n", len(doc.Records))
	for _, rec := range doc.Records {
		if rec.Bean != "" {
			fmt.Fprintf(a.outW, "  %s (bean %q)\n", rec.Unit, rec.Bean)
		} else {
			fmt.Fprintf(a.outW, "  %s\n", rec.Unit)
		}
		if len(rec.ImportedBy) > 0 {
			fmt.Fprintf(a.outW, "    imported by: %v\n", rec.ImportedBy)
		}
		if len(rec.Methods) > 0 {
			fmt.Fprintf(a.outW, "    methods: %v\n", rec.Methods)
		}
		if len(rec.Files) > 0 {
			fmt.Fprintf(a.outW, "    files: %v\n", rec.Files)
		}
	}
	fmt.Fprintf(a.outW, "Definitions (%d): %v\n", len(doc.Definitions), doc.Definitions)
	fmt.Fprintf(a.outW, "Property sources: %v\n", doc.PropertySources)
	return nil
}
