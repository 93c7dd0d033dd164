// SPDX-License-Identifier: Apache-2.0

// Package coercers holds one extract.Coercer per supported field type.
package coercers

import "github.com/issuepage/issuepage/internal/extract"

// Default returns a coercer for every extract.FieldType.
func Default() []extract.Coercer {
	return []extract.Coercer{
		NewText(),
		NewList(),
		NewImage(),
		NewImages(),
		NewFile(),
		NewFiles(),
		NewFlag(),
		NewFlags(),
		NewDate(),
		NewTable(),
	}
}
