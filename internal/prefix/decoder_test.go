// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "testing"

// bitString is a BitSource/BitSink backed by an in-memory bit slice, used
// to drive the decoder and encoder against each other without needing the
// bzip2 package's own bit I/O.
type bitString struct {
	bits []byte // one bit per element, MSB-first write order
	pos  int
}

func (b *bitString) WriteBits64(v uint64, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		b.bits = append(b.bits, byte((v>>uint(i))&1))
	}
}

func (b *bitString) ReadBits64(n uint) uint64 {
	var v uint64
	for i := uint(0); i < n; i++ {
		v = v<<1 | uint64(b.bits[b.pos])
		b.pos++
	}
	return v
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	freqs := []uint32{30, 1, 1, 2, 5, 8, 13, 21}
	codes := make(Codes, len(freqs))
	for i, f := range freqs {
		codes[i] = Code{Sym: uint32(i), Freq: f}
	}
	if err := GenerateLengths(codes, 15); err != nil {
		t.Fatalf("GenerateLengths() = %v, want nil", err)
	}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("GeneratePrefixes() = %v, want nil", err)
	}

	var enc Encoder
	enc.Init(codes)

	var dec Decoder
	dec.Init(codes)

	syms := []uint32{0, 0, 7, 6, 0, 1, 2, 3, 4, 5, 6, 7, 0, 0, 0}
	var bs bitString
	for _, s := range syms {
		enc.Encode(&bs, s)
	}

	for i, want := range syms {
		got, err := dec.Decode(&bs)
		if err != nil {
			t.Fatalf("symbol %d, Decode() = (_, %v), want (_, nil)", i, err)
		}
		if got != want {
			t.Errorf("symbol %d, Decode() = %d, want %d", i, got, want)
		}
	}
}

func TestDecoderSingleSymbol(t *testing.T) {
	codes := Codes{{Sym: 0, Freq: 1}}
	if err := GenerateLengths(codes, 0); err != nil {
		t.Fatalf("GenerateLengths() = %v, want nil", err)
	}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("GeneratePrefixes() = %v, want nil", err)
	}

	var enc Encoder
	enc.Init(codes)
	var dec Decoder
	dec.Init(codes)

	var bs bitString
	enc.Encode(&bs, 0)
	enc.Encode(&bs, 0)

	for i := 0; i < 2; i++ {
		got, err := dec.Decode(&bs)
		if err != nil || got != 0 {
			t.Errorf("Decode() = (%d, %v), want (0, nil)", got, err)
		}
	}
}
