package meta

import (
	"strings"
	"unicode"
)

// ReservedPrefix marks the namespace owned by the engine. Units under it
// must be backed by a live registration.
const ReservedPrefix = "core."

// Names of the built-in annotations understood by the resolution engine.
const (
	AnnotationConfiguration  = "core.configuration"
	AnnotationComponent      = "core.component"
	AnnotationImport         = "core.import"
	AnnotationImportFiles    = "core.importfiles"
	AnnotationPropertySource = "core.propertysource"
	AnnotationScan           = "core.scan"
	AnnotationOrder          = "core.order"
	AnnotationConditional    = "core.conditional"
)

// IsReserved reports whether name belongs to the engine's namespace.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}

// PackageOf returns the package portion of a dotted unit name, or "" for an
// unqualified name.
func PackageOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ShortName returns the last segment of a dotted unit name.
func ShortName(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	return name[idx+1:]
}

// MemberName qualifies a nested unit's simple name with its enclosing
// unit's name.
func MemberName(enclosing, simple string) string {
	return enclosing + "." + simple
}

// DefaultBeanName derives the registration name for a unit: the short name
// with its first rune lowered, so "web.ServerConfig" becomes "serverConfig".
func DefaultBeanName(unitName string) string {
	short := ShortName(unitName)
	if short == "" {
		return short
	}
	runes := []rune(short)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
