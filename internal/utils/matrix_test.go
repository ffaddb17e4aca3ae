// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package utils

import (
	"reflect"
	"testing"
)

func TestMatrixToDenseAndBack(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	d := MatrixToDense(m)
	r, c := d.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("got shape %dx%d, want 3x2", r, c)
	}

	back := DenseToMatrix(d)
	if !reflect.DeepEqual(back, m) {
		t.Errorf("round trip mismatch: got %v, want %v", back, m)
	}
}

func TestMatrixToDenseEmpty(t *testing.T) {
	d := MatrixToDense(nil)
	r, c := d.Dims()
	if r != 0 || c != 0 {
		t.Errorf("got shape %dx%d, want 0x0 for empty input", r, c)
	}
}
