// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "sort"

// MaxDecodeBits is the longest code width the decoder will widen to before
// declaring the stream corrupt, per spec §4.3.
const MaxDecodeBits = 20

// BitSource is the minimal interface the decoder needs from a bit reader.
type BitSource interface {
	ReadBits64(n uint) uint64
}

// Decoder holds the base/limit/perm tables described in spec §4.3: a
// prefix code of length zn and integer value zvec maps to symbol
// perm[zvec-base[zn]] iff zvec <= limit[zn].
type Decoder struct {
	minLen, maxLen uint32
	base           [MaxDecodeBits + 2]int32
	limit          [MaxDecodeBits + 2]int32
	perm           []uint32
}

// Init builds the decode tables from codes' Len fields (Val is ignored;
// canonical order is derived solely from (Len, Sym)).
func (d *Decoder) Init(codes Codes) {
	order := make(Codes, len(codes))
	copy(order, codes)
	sort.Sort(byLenSym(order))

	minLen, maxLen := uint32(MaxDecodeBits+1), uint32(0)
	for _, c := range order {
		if c.Len < minLen {
			minLen = c.Len
		}
		if c.Len > maxLen {
			maxLen = c.Len
		}
	}
	d.minLen, d.maxLen = minLen, maxLen

	d.perm = d.perm[:0]
	for _, c := range order {
		d.perm = append(d.perm, c.Sym)
	}

	for i := range d.base {
		d.base[i] = 0
	}
	for i := range d.limit {
		d.limit[i] = 0
	}
	for _, c := range order {
		d.base[c.Len+1]++
	}
	for i := 1; i < len(d.base); i++ {
		d.base[i] += d.base[i-1]
	}

	var vec int32
	for l := minLen; l <= maxLen; l++ {
		vec += d.base[l+1] - d.base[l]
		d.limit[l] = vec - 1
		vec <<= 1
	}
	for l := minLen + 1; l <= maxLen; l++ {
		d.base[l] = ((d.limit[l-1] + 1) << 1) - d.base[l]
	}
}

// Decode reads one symbol from br, widening the code one bit at a time
// starting from minLen until it falls within a valid group's limit.
func (d *Decoder) Decode(br BitSource) (uint32, error) {
	zn := d.minLen
	if zn == 0 {
		return 0, errZeroLength
	}
	zvec := int32(br.ReadBits64(uint(zn)))
	for zvec > d.limit[zn] {
		zn++
		if zn > MaxDecodeBits {
			return 0, errCodeTooLong
		}
		zvec = (zvec << 1) | int32(br.ReadBits64(1))
	}
	idx := zvec - d.base[zn]
	if idx < 0 || int(idx) >= len(d.perm) {
		return 0, errCodeTooLong
	}
	return d.perm[idx], nil
}
