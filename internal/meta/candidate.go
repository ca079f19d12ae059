package meta

// IsCandidate reports whether a unit should be treated as a configuration
// candidate: either marked as a full configuration, or a lite candidate
// that still contributes metadata (a component, a unit with scan, import,
// or file-import directives, or one declaring factory methods).
func IsCandidate(src *Source, u *Unit) bool {
	if src.Annotated(u, AnnotationConfiguration) {
		return true
	}
	return isLiteCandidate(src, u)
}

func isLiteCandidate(src *Source, u *Unit) bool {
	if u.Kind() == KindAnnotation {
		return false
	}
	if src.Annotated(u, AnnotationComponent) {
		return true
	}
	for _, typ := range []string{AnnotationScan, AnnotationImport, AnnotationImportFiles} {
		if _, ok := u.Annotation(typ); ok {
			return true
		}
	}
	return len(u.Methods()) > 0
}
