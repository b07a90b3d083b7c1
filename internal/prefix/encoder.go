// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

// BitSink is the minimal interface the encoder needs from a bit writer.
type BitSink interface {
	WriteBits64(v uint64, n uint)
}

// Encoder holds a Val/Len pair per symbol for O(1) encoding. codes passed
// to Init must be indexed by symbol (codes[i].Sym == uint32(i)), which
// holds for every prefix table this package builds in the bzip2 codec.
type Encoder struct {
	codes Codes
}

// Init stores a private copy of codes for later lookups by symbol.
func (e *Encoder) Init(codes Codes) {
	if cap(e.codes) >= len(codes) {
		e.codes = e.codes[:len(codes)]
	} else {
		e.codes = make(Codes, len(codes))
	}
	copy(e.codes, codes)
}

// Encode writes the code for sym to bw.
func (e *Encoder) Encode(bw BitSink, sym uint32) {
	c := e.codes[sym]
	bw.WriteBits64(uint64(c.Val), uint(c.Len))
}

// Len reports the bit-length of sym's code, used for group-cost estimates
// during selector assignment.
func (e *Encoder) Len(sym uint32) uint32 { return e.codes[sym].Len }
