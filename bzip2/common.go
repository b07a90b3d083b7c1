// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bzip2 implements the BZip2 compressed data format.
package bzip2

import "runtime"

// There does not exist a formal specification of the BZip2 format. As such,
// much of this work is derived by either reverse engineering the original C
// source code or using secondary sources.
//
// Compression stack:
//	Run-length encoding 1     (RLE1)
//	Burrows-Wheeler transform (BWT)
//	Move-to-front transform   (MTF)
//	Run-length encoding 2     (RLE2, RUNA/RUNB)
//	Prefix encoding           (PE)
//
// References:
//	http://bzip.org/
//	https://en.wikipedia.org/wiki/Bzip2

const (
	hdrMagic = 0x425a // "BZ"
	verMagic = 'h'    // Huffman-coded streams; bzip1's arithmetic coder is not supported
	blkMagic = 0x314159265359 // BCD of PI
	endMagic = 0x177245385090 // BCD of sqrt(PI)

	magicBits = 48

	blockSize = 100 * 1000 // scaled by level to give a block's byte capacity

	minNumTrees   = 2
	maxNumTrees   = 6
	numBlockSyms  = 50  // symbols per selector group
	maxNumSyms    = 258 // 256 literals + RUNA/RUNB - 1 shared slot + EOF
	maxPrefixBits = 17  // encoder length limit (spec §4.3); decoder tolerates up to prefix.MaxDecodeBits

	// rleSlack is the number of extra bytes the post-RLE1 buffer carries
	// past the nominal block capacity, reserved so a run straddling the
	// boundary can always either be completed or cleanly deferred. See
	// spec §9's open question on RLE1 slack.
	rleSlack = 34
)

// Compression levels, matching the block-size multiplier convention of the
// original format.
const (
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "bzip2: " + string(e) }

var (
	ErrCorrupt    error = Error("stream is corrupted")
	ErrDeprecated error = Error("deprecated stream format")
	ErrClosed     error = Error("stream is closed")
)

var errClosed = ErrClosed

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
