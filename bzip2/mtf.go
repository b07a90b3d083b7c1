// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// moveToFront implements the combined MTF + RLE2 stage of bzip2 (spec §4.5
// steps 3-4): a move-to-front transform whose runs of rank-zero values are
// replaced by RUNA/RUNB symbols bit-packed via a bijective base-2 numeration,
// so that the entire stage emits a single stream of symbols ready for prefix
// coding. dict holds the sorted set of byte values actually present in the
// block; decoded/encoded symbols are shifted by one (0 and 1 are reserved
// for RUNA and RUNB) relative to the MTF rank.
type moveToFront struct {
	dictArr [256]uint8
	dictLen int
	symCap  int // expected number of output symbols, used to size the slice
}

// Init resets the codec. dict must list every symbol used by future Encode
// or Decode calls; blockSize is used only as an allocation hint.
func (m *moveToFront) Init(dict []uint8, blockSize int) {
	if len(dict) > len(m.dictArr) {
		panic("bzip2: alphabet too large")
	}
	copy(m.dictArr[:], dict)
	m.dictLen = len(dict)
	m.symCap = blockSize
}

// Encode applies MTF to buf and collapses each run of move-to-front rank
// zero into a sequence of RUNA (0) and RUNB (1) symbols, returning the
// combined symbol stream (not including the terminal EOF symbol).
func (m *moveToFront) Encode(buf []byte) []uint16 {
	dict := m.dictArr[:m.dictLen]
	syms := make([]uint16, 0, m.symCap/2+2)

	var zeroRun uint32
	flushRun := func() {
		if zeroRun == 0 {
			return
		}
		rc := runCode(zeroRun).Encode()
		n := rc & 0x1f
		bits := rc >> 5
		for i := uint32(0); i < n; i++ {
			syms = append(syms, uint16((bits>>i)&1))
		}
		zeroRun = 0
	}

	for _, val := range buf {
		var idx uint8
		for di, dv := range dict {
			if dv == val {
				idx = uint8(di)
				break
			}
		}
		copy(dict[1:idx+1], dict[:idx])
		dict[0] = val

		if idx == 0 {
			zeroRun++
			continue
		}
		flushRun()
		syms = append(syms, uint16(idx)+1)
	}
	flushRun()
	return syms
}

// Decode reverses Encode: syms is the combined RUNA/RUNB and shifted-MTF
// symbol stream (without the EOF marker, which the caller strips).
func (m *moveToFront) Decode(syms []uint16) []byte {
	dict := m.dictArr[:m.dictLen]
	buf := make([]byte, 0, m.symCap)

	var code, bitpos uint32
	haveRun := false
	flushRun := func() {
		if !haveRun {
			return
		}
		rep := runCode(bitpos | code<<5).Decode()
		val := dict[0]
		for i := uint32(0); i < rep; i++ {
			buf = append(buf, val)
		}
		code, bitpos, haveRun = 0, 0, false
	}

	for _, sym := range syms {
		if sym == 0 || sym == 1 {
			code |= uint32(sym) << bitpos
			bitpos++
			haveRun = true
			continue
		}
		flushRun()

		idx := uint8(sym - 1)
		val := dict[idx]
		copy(dict[1:idx+1], dict[:idx])
		dict[0] = val
		buf = append(buf, val)
	}
	flushRun()
	return buf
}
