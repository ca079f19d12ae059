// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines BeanMethod, one artifact-producing method on a record.
//
// Why keep the declaring unit?
//
// Methods are collected not only from the unit itself but also from its
// superclasses and from default methods on its interfaces. The later
// registration stage needs to know where a method really lives to invoke
// it, so each entry carries its actual declaring unit rather than the
// record it was folded into.
package model

import (
	"github.com/vk/confgraph/internal/meta"
)

// BeanMethod is one collected bean method.
type BeanMethod struct {
	// Name is the method name.
	Name string
	// Returns is the produced artifact's unit name, when declared.
	Returns string
	// Declaring is the unit that actually declares the method.
	Declaring *meta.Unit
}
