// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of resolved
// configuration. Its core purpose is to hold everything the resolution
// engine learns about a configuration unit in one strongly-typed record
// that downstream stages consume.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - ConfigClass: The record of one resolved configuration unit. It
//     aggregates the unit's bean methods, file imports and registrars,
//     and remembers which other units caused it to be included.
//
//   - BeanMethod: One artifact-producing method collected from a unit,
//     its superclasses or its interfaces. The slice on ConfigClass keeps
//     declaration order even when the backing metadata does not.
//
//   - FileImport: A (location, reader) pair recorded verbatim from a
//     core.importfiles directive. The resource is not opened during
//     resolution.
//
//   - RegistrarBinding: A registrar instance bound to the metadata of the
//     unit that imported it, invoked by the registration stage rather
//     than during resolution.
//
// Why a separate model package?
//
// The resolution engine, the modules that implement selectors and
// registrars, and the reporting layer all need these types. Keeping them
// in one dependency-free package lets those layers share the records
// without importing each other.
package model
