// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "github.com/Project-Tick-Libraries/bzip2/internal/prefix"

// Tree selectors (spec §4.5 step 4) name which of the block's prefix trees
// covers each group of numBlockSyms symbols. They are themselves coded as a
// move-to-front rank in unary: rank r is r one-bits followed by a zero-bit.
// That unary code is itself a valid prefix code, so it is modeled with the
// same Decoder/Encoder machinery used for every other tree in the stream.
var (
	decSel prefix.Decoder
	encSel prefix.Encoder
)

func init() {
	codes := make(prefix.Codes, maxNumTrees)
	for i := range codes {
		codes[i] = prefix.Code{
			Sym: uint32(i),
			Len: uint32(i + 1),
			Val: uint32(1<<uint(i+1)) - 2,
		}
	}
	decSel.Init(codes)
	encSel.Init(codes)
}

// assignSelectors picks, for each group of numBlockSyms symbols in syms, the
// table (of numTrees) that codes it most cheaply, refining the assignment
// over a few passes the way the original encoder's group-clustering pass
// does: seed with a mass-balanced partition across groups, then repeatedly
// rebuild each table's code lengths from its current membership and
// reassign every group to its cheapest table. It returns the per-group
// table assignment and the final Codes (with Len and Val filled in) for
// each table.
func assignSelectors(syms []uint16, numSyms, numTrees int) (sels []uint8, tables []prefix.Codes) {
	numSels := (len(syms) + numBlockSyms - 1) / numBlockSyms
	sels = make([]uint8, numSels)
	for i := range sels {
		sels[i] = uint8(i * numTrees / numSels)
	}

	// Per-group symbol frequency, computed once.
	groupFreqs := make([][]uint32, numSels)
	for g := range groupFreqs {
		lo := g * numBlockSyms
		hi := lo + numBlockSyms
		if hi > len(syms) {
			hi = len(syms)
		}
		f := make([]uint32, numSyms)
		for _, s := range syms[lo:hi] {
			f[s]++
		}
		groupFreqs[g] = f
	}

	tables = make([]prefix.Codes, numTrees)
	for t := range tables {
		tables[t] = make(prefix.Codes, numSyms)
		for s := range tables[t] {
			tables[t][s] = prefix.Code{Sym: uint32(s)}
		}
	}

	const numPasses = 4
	for pass := 0; pass < numPasses; pass++ {
		for t := range tables {
			freqs := make([]uint32, numSyms)
			for g, tbl := range sels {
				if int(tbl) == t {
					gf := groupFreqs[g]
					for s, c := range gf {
						freqs[s] += c
					}
				}
			}
			for s := range tables[t] {
				tables[t][s].Freq = freqs[s]
			}
			if err := prefix.GenerateLengths(tables[t], maxPrefixBits); err != nil {
				panic(err)
			}
		}

		if pass == numPasses-1 {
			break // Last pass only refreshes lengths; selection is already stable enough.
		}

		for g, gf := range groupFreqs {
			best, bestCost := 0, ^uint64(0)
			for t, tbl := range tables {
				var cost uint64
				for s, c := range gf {
					cost += uint64(c) * uint64(tbl[s].Len)
				}
				if cost < bestCost {
					best, bestCost = t, cost
				}
			}
			sels[g] = uint8(best)
		}
	}

	for t := range tables {
		tables[t].SortBySymbol()
		if err := prefix.GeneratePrefixes(tables[t]); err != nil {
			panic(err)
		}
	}
	return sels, tables
}
