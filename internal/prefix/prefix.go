// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements the length-limited canonical-Huffman codes
// used by the bzip2 prefix-code engine: length generation on the encoder
// side, and base/limit/perm decode tables on the decoder side.
package prefix

import (
	"container/heap"
	"sort"
)

// Code describes one symbol's frequency (encoder input), assigned code
// length, and canonical code value.
type Code struct {
	Sym  uint32
	Freq uint32
	Len  uint32
	Val  uint32
}

// Codes is a set of Code values sharing one alphabet.
type Codes []Code

type byFreq Codes

func (c byFreq) Len() int      { return len(c) }
func (c byFreq) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c byFreq) Less(i, j int) bool {
	if c[i].Freq != c[j].Freq {
		return c[i].Freq < c[j].Freq
	}
	return c[i].Sym < c[j].Sym
}

type bySymbol Codes

func (c bySymbol) Len() int           { return len(c) }
func (c bySymbol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c bySymbol) Less(i, j int) bool { return c[i].Sym < c[j].Sym }

// SortByFreq orders codes by ascending frequency, symbol as tiebreak.
func (c Codes) SortByFreq() { sort.Sort(byFreq(c)) }

// SortBySymbol orders codes by ascending symbol value.
func (c Codes) SortBySymbol() { sort.Sort(bySymbol(c)) }

// heap node used while building the Huffman tree.
type hnode struct {
	weight uint64 // frequency, doubling as a tiebreak-free priority
	order  int    // insertion order, used to break weight ties deterministically
	depth  uint32
	left   *hnode
	right  *hnode
	sym    uint32
	leaf   bool
}

type nodeHeap []*hnode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*hnode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// buildLengths runs one pass of Huffman-tree construction over freqs and
// returns the resulting code length per symbol. Ties are broken by
// insertion order, per spec.
func buildLengths(freqs []uint32) []uint32 {
	n := len(freqs)
	lens := make([]uint32, n)
	if n == 1 {
		lens[0] = 1
		return lens
	}

	h := make(nodeHeap, n)
	order := 0
	for i, f := range freqs {
		h[i] = &hnode{weight: uint64(f), order: order, sym: uint32(i), leaf: true}
		order++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*hnode)
		b := heap.Pop(&h).(*hnode)
		parent := &hnode{weight: a.weight + b.weight, order: order, left: a, right: b}
		order++
		heap.Push(&h, parent)
	}

	root := h[0]
	var walk func(n *hnode, depth uint32)
	walk = func(n *hnode, depth uint32) {
		if n.leaf {
			if depth == 0 {
				depth = 1
			}
			lens[n.sym] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)
	return lens
}

// GenerateLengths builds a length-limited canonical Huffman code over the
// Freq field of codes, no code exceeding maxLen bits (maxLen == 0 means
// unlimited), and writes the resulting Len fields. On overflow, per spec
// §4.3, every frequency is halved (rounding up) and the tree is rebuilt,
// repeating until the length limit is satisfied.
func GenerateLengths(codes Codes, maxLen uint32) error {
	freqs := make([]uint32, len(codes))
	for i, c := range codes {
		freqs[i] = c.Freq
		if freqs[i] == 0 {
			freqs[i] = 1
		}
	}
	for {
		lens := buildLengths(freqs)
		var maxL uint32
		for _, l := range lens {
			if l > maxL {
				maxL = l
			}
		}
		if maxLen == 0 || maxL <= maxLen {
			for i := range codes {
				codes[i].Len = lens[i]
			}
			return nil
		}
		for i := range freqs {
			freqs[i] = (freqs[i] + 1) / 2
			if freqs[i] == 0 {
				freqs[i] = 1
			}
		}
	}
}

// GeneratePrefixes assigns canonical code values to codes based on their
// Len field, in ascending (Len, Sym) order.
func GeneratePrefixes(codes Codes) error {
	order := make(Codes, len(codes))
	copy(order, codes)
	sort.Sort(byLenSym(order))

	byIdx := make(map[uint32]int, len(codes))
	for i, c := range codes {
		byIdx[c.Sym] = i
	}

	var code uint32
	var lastLen uint32
	for _, c := range order {
		if c.Len == 0 {
			return errZeroLength
		}
		code <<= c.Len - lastLen
		lastLen = c.Len
		codes[byIdx[c.Sym]].Val = code
		code++
	}
	return nil
}

type byLenSym Codes

func (c byLenSym) Len() int      { return len(c) }
func (c byLenSym) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c byLenSym) Less(i, j int) bool {
	if c[i].Len != c[j].Len {
		return c[i].Len < c[j].Len
	}
	return c[i].Sym < c[j].Sym
}

// Error is the error type returned by this package.
type Error string

func (e Error) Error() string { return "prefix: " + string(e) }

const errZeroLength = Error("zero length code")
const errCodeTooLong = Error("code exceeds maximum length")
