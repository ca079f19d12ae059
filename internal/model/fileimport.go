// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines FileImport, a recorded core.importfiles directive.
//
// Why record instead of load?
//
// Resolution only decides which files belong to the graph. Opening them,
// choosing a reader and turning their contents into definitions is the
// registration stage's job, so the record keeps the directive verbatim:
// the placeholder-resolved location plus the declared reader name, empty
// when the default reader applies.
package model

// FileImport is one file-import directive recorded on a ConfigClass.
type FileImport struct {
	Location string
	Reader   string
}
