// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "testing"

func TestCRC(t *testing.T) {
	var vectors = []struct {
		input []byte
		want  uint32
	}{
		{[]byte(""), 0x00000000},
		// The check value for the CRC-32/BZIP2 variant (non-reflected,
		// init/xorout 0xffffffff) over the standard "123456789" payload.
		{[]byte("123456789"), 0xfc891918},
	}
	for i, v := range vectors {
		var c crc
		c.reset()
		c.update(v.input)
		if got := c.sum(); got != v.want {
			t.Errorf("test %d, sum mismatch: got 0x%08x, want 0x%08x", i, got, v.want)
		}
	}
}

func TestCRCIncremental(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")

	var whole crc
	whole.reset()
	whole.update(data)

	var parts crc
	parts.reset()
	for i := range data {
		parts.update(data[i : i+1])
	}

	if whole.sum() != parts.sum() {
		t.Errorf("incremental update mismatch: got 0x%08x, want 0x%08x", parts.sum(), whole.sum())
	}
}

func TestFoldCRC(t *testing.T) {
	// Folding is order-sensitive: combining the same two block CRCs in a
	// different order must not (in general) produce the same stream CRC.
	a := foldCRC(foldCRC(0, 0x11111111), 0x22222222)
	b := foldCRC(foldCRC(0, 0x22222222), 0x11111111)
	if a == b {
		t.Errorf("fold order should matter: got equal results 0x%08x for both orders", a)
	}

	// Folding is deterministic.
	c := foldCRC(foldCRC(0, 0x11111111), 0x22222222)
	if a != c {
		t.Errorf("fold is not deterministic: got 0x%08x and 0x%08x", a, c)
	}
}
