// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package internal

import (
	"reflect"
	"testing"
)

func TestMoveToFront(t *testing.T) {
	var vectors = [][]uint8{
		{},
		{0},
		{5, 5, 5, 5},
		{0, 1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1, 0, 0, 0, 1, 5},
	}

	for i, v := range vectors {
		vals := append([]uint8(nil), v...)

		var enc MoveToFront
		enc.Encode(vals)

		var dec MoveToFront
		dec.Decode(vals)

		if !reflect.DeepEqual(vals, v) {
			t.Errorf("test %d, round trip mismatch:\ngot  %v\nwant %v", i, vals, v)
		}
	}
}
