// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ConfigClass, the central record produced by resolution.
//
// Why track provenance on the record itself?
//
// A unit can enter the graph twice: declared explicitly by the caller and
// pulled in by an import, or imported along two unrelated paths. The engine
// must end up with exactly one record per unit name, so the record carries
// the set of importers and exposes a merge operation instead of letting
// duplicates accumulate. Identity is the unit name alone; how a unit was
// reached never changes which record it is.
package model

import (
	"github.com/vk/confgraph/internal/meta"
)

// ConfigClass is one resolved configuration unit.
type ConfigClass struct {
	// Unit is the underlying metadata.
	Unit *meta.Unit
	// BeanName is the registration name when the unit was declared
	// explicitly. Purely import-derived records have none.
	BeanName string
	// Methods holds the collected bean methods in declaration order.
	Methods []BeanMethod
	// FileImports holds core.importfiles directives in declared order.
	FileImports []FileImport
	// Registrars holds registrar instances bound to their importing unit.
	Registrars []RegistrarBinding

	importedBy []*ConfigClass
	importers  map[string]struct{}
}

// NewConfigClass creates the record for an explicitly declared unit.
func NewConfigClass(unit *meta.Unit, beanName string) *ConfigClass {
	return &ConfigClass{Unit: unit, BeanName: beanName}
}

// NewImportedConfigClass creates the record for a unit reached through an
// import declared by importedBy.
func NewImportedConfigClass(unit *meta.Unit, importedBy *ConfigClass) *ConfigClass {
	c := &ConfigClass{Unit: unit}
	c.addImportedBy(importedBy)
	return c
}

// Name returns the underlying unit's fully qualified name.
func (c *ConfigClass) Name() string {
	return c.Unit.Name()
}

// Imported reports whether this record was created through an import
// rather than an explicit declaration.
func (c *ConfigClass) Imported() bool {
	return len(c.importedBy) > 0
}

// ImportedBy returns the records whose imports caused this unit to be
// included, in first-seen order.
func (c *ConfigClass) ImportedBy() []*ConfigClass {
	out := make([]*ConfigClass, len(c.importedBy))
	copy(out, c.importedBy)
	return out
}

// MergeImportedBy folds another occurrence's provenance into this record.
// Both records must refer to the same unit name.
func (c *ConfigClass) MergeImportedBy(other *ConfigClass) {
	for _, imp := range other.importedBy {
		c.addImportedBy(imp)
	}
}

func (c *ConfigClass) addImportedBy(imp *ConfigClass) {
	if c.importers == nil {
		c.importers = make(map[string]struct{})
	}
	if _, ok := c.importers[imp.Name()]; ok {
		return
	}
	c.importers[imp.Name()] = struct{}{}
	c.importedBy = append(c.importedBy, imp)
}

// AddMethod appends a collected bean method.
func (c *ConfigClass) AddMethod(m BeanMethod) {
	c.Methods = append(c.Methods, m)
}

// AddFileImport records a file-import directive.
func (c *ConfigClass) AddFileImport(location, reader string) {
	c.FileImports = append(c.FileImports, FileImport{Location: location, Reader: reader})
}

// AddRegistrar binds a registrar instance to the unit whose import
// declared it.
func (c *ConfigClass) AddRegistrar(r Registrar, importer *meta.Unit) {
	c.Registrars = append(c.Registrars, RegistrarBinding{Registrar: r, Importer: importer})
}

func (c *ConfigClass) String() string {
	return c.Name()
}
