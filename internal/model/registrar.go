// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Registrar contract and its binding record.
//
// Why does the interface live here and not with the engine?
//
// The engine stores registrar instances on ConfigClass records, and the
// modules that implement registrars build those same records' inputs. If
// the contract lived in the engine package, the model would have to import
// it to declare the field. Keeping the contract next to the record breaks
// that cycle.
package model

import (
	"context"

	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/meta"
)

// Registrar contributes definitions directly to the registry. Instances
// reached through imports are bound to their importing unit during
// resolution and invoked later by the registration stage. They are never
// expanded recursively.
type Registrar interface {
	Register(ctx context.Context, importer *meta.Unit, reg *defs.Registry) error
}

// RegistrarBinding pairs a registrar with the metadata of the unit whose
// import declared it.
type RegistrarBinding struct {
	Registrar Registrar
	Importer  *meta.Unit
}
