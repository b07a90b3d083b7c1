// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal holds small algorithmic helpers shared by the bzip2
// codec that are not themselves bzip2-specific.
package internal

// MoveToFront implements the move-to-front transform over the full
// byte alphabet. Unlike the bzip2 package's own moveToFront, this variant
// carries no run-length augmentation; it is used to MTF-encode the block's
// Huffman-tree selector list before it is written out as unary digits.
type MoveToFront struct {
	dict [256]uint8
	init bool
}

func (m *MoveToFront) reset() {
	if !m.init {
		for i := range m.dict {
			m.dict[i] = uint8(i)
		}
		m.init = true
	}
}

// Encode replaces each value in vals with its current rank in the
// move-to-front list, updating the list as it goes.
func (m *MoveToFront) Encode(vals []uint8) {
	m.reset()
	for i, val := range vals {
		var idx uint8
		for di, dv := range m.dict {
			if dv == val {
				idx = uint8(di)
				break
			}
		}
		copy(m.dict[1:], m.dict[:idx])
		m.dict[0] = val
		vals[i] = idx
	}
}

// Decode replaces each rank in idxs with the value it refers to at that
// point in the move-to-front list, updating the list as it goes.
func (m *MoveToFront) Decode(idxs []uint8) {
	m.reset()
	for i, idx := range idxs {
		val := m.dict[idx]
		copy(m.dict[1:], m.dict[:idx])
		m.dict[0] = val
		idxs[i] = val
	}
}
