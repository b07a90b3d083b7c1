// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "testing"

func TestRunCode(t *testing.T) {
	var vectors = []struct {
		input  uint32
		output uint32
	}{
		{input: 0x00000000, output: 0x00000000},
		{input: 0x00000001, output: 0x00000001},
		{input: 0x00000002, output: 0x00000021},
		{input: 0x00000003, output: 0x00000002},
		{input: 0x00000004, output: 0x00000022},
		{input: 0x00000005, output: 0x00000042},
		{input: 0x00000006, output: 0x00000062},
		{input: 0x00000007, output: 0x00000003},
		{input: 0x00000008, output: 0x00000023},
		{input: 0x00000009, output: 0x00000043},
		{input: 0x0000000a, output: 0x00000063},
		{input: 0x0000000b, output: 0x00000083},
		{input: 0x0000000c, output: 0x000000a3},
		{input: 0x0000000d, output: 0x000000c3},
		{input: 0x0000000e, output: 0x000000e3},
		{input: 0x0000000f, output: 0x00000004},
		{input: 0x00000010, output: 0x00000024},
		{input: 0x00000011, output: 0x00000044},
		{input: 0x00000012, output: 0x00000064},
		{input: 0x00000013, output: 0x00000084},
		{input: 0x00000021, output: 0x00000045},
		{input: 0x0000015a, output: 0x00000b68},
		{input: 0x00001a8b, output: 0x0001518c},
		{input: 0x000cab82, output: 0x00957073},
		{input: 0x0ffffffe, output: 0xfffffffb},
		{input: 0x0fffffff, output: 0xffffffff},
		{input: 0xffffffff, output: 0xffffffff},
	}

	for i, v := range vectors {
		output := runCode(v.input).Encode()
		input := runCode(v.output).Decode()

		if input != v.input && output != 0xffffffff {
			t.Errorf("test %d, input mismatch: got 0x%08x, want 0x%08x", i, input, v.input)
		}
		if output != v.output && input != 0xffffffff {
			t.Errorf("test %d, output mismatch: got 0x%08x, want 0x%08x", i, output, v.output)
		}
	}
}
