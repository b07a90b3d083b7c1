// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"fmt"
	"io"

	"github.com/Project-Tick-Libraries/bzip2/internal"
	"github.com/Project-Tick-Libraries/bzip2/internal/prefix"
)

// Writer encodes a bzip2 stream.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr     bitWriter
	err    error
	level  int
	wrHdr  bool
	blkCRC crc
	endCRC uint32

	rle runLengthEncoding
	bwt burrowsWheelerTransform
	mtf moveToFront

	buf     []byte
	verbose io.Writer // Receives one line per encoded block, if non-nil
}

// WriterConfig configures a Writer.
type WriterConfig struct {
	// Level is the compression level in [BestSpeed, BestCompression], or
	// DefaultCompression to select a moderate default. It scales the block
	// size used: level*100,000 bytes per block.
	Level int

	// WorkFactor historically tuned when the original encoder would fall
	// back from quicksort to a slower worst-case-safe sort during the BWT;
	// it has no effect here since the SA-IS construction this package uses
	// runs in linear time regardless of input structure (see DESIGN.md).
	// It is accepted and validated only so streams written with a given
	// work factor remain representable.
	WorkFactor int

	// Verbose, if non-nil, receives one line per encoded block reporting
	// its output offset, byte length, and CRC.
	Verbose io.Writer
}

// NewWriter constructs a Writer using conf, or DefaultCompression and the
// default work factor if conf is nil.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	lvl := DefaultCompression
	wf := 30
	var verbose io.Writer
	if conf != nil {
		lvl = conf.Level
		if conf.WorkFactor != 0 {
			wf = conf.WorkFactor
		}
		verbose = conf.Verbose
	}
	if lvl == DefaultCompression {
		lvl = 6
	}
	if lvl < BestSpeed || lvl > BestCompression {
		return nil, Error("invalid compression level")
	}
	if wf < 0 || wf > 250 {
		return nil, Error("invalid work factor")
	}
	zw := new(Writer)
	zw.level = lvl
	zw.verbose = verbose
	zw.Reset(w)
	return zw, nil
}

// Reset discards any state and prepares zw to encode a fresh stream to w.
func (zw *Writer) Reset(w io.Writer) {
	*zw = Writer{
		level:   zw.level,
		rle:     zw.rle,
		bwt:     zw.bwt,
		mtf:     zw.mtf,
		buf:     zw.buf,
		verbose: zw.verbose,
	}
	zw.wr = newBitWriter(w)
	zw.blkCRC.reset()

	blkSize := zw.level*blockSize + rleSlack
	if cap(zw.buf) >= blkSize {
		zw.buf = zw.buf[:blkSize]
	} else {
		zw.buf = make([]byte, blkSize)
	}
	zw.rle.Init(zw.buf)
}

// Write implements io.Writer, buffering and block-compressing as RLE1's
// destination buffer fills.
func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}

	cnt := len(buf)
	for len(buf) > 0 {
		wrCnt, err := zw.rle.Write(buf)
		zw.blkCRC.update(buf[:wrCnt])
		buf = buf[wrCnt:]
		if err != rleDone {
			continue
		}
		if zw.err = zw.flush(); zw.err != nil {
			return 0, zw.err
		}
	}
	zw.InputOffset += int64(cnt)
	return cnt, nil
}

func (zw *Writer) flush() error {
	vals := zw.rle.Bytes()
	if len(vals) == 0 {
		return nil
	}
	func() {
		defer errRecover(&zw.err)
		if !zw.wrHdr {
			zw.wr.WriteBits64(hdrMagic, 16)
			zw.wr.WriteBits64(uint64(verMagic), 8)
			zw.wr.WriteBits64(uint64('0'+zw.level), 8)
			zw.wrHdr = true
		}
		zw.compressBlock(vals)
	}()
	if zw.err != nil {
		return zw.err
	}
	if zw.verbose != nil {
		fmt.Fprintf(zw.verbose, "bzip2: block at offset %d: %d bytes, crc %08x\n",
			zw.OutputOffset, len(vals), zw.blkCRC.sum())
	}
	zw.endCRC = foldCRC(zw.endCRC, zw.blkCRC.sum())
	zw.blkCRC.reset()
	zw.rle.Init(zw.buf)
	return nil
}

// Close flushes any buffered data and writes the stream footer. The
// underlying io.Writer is never closed.
func (zw *Writer) Close() error {
	if zw.err == ErrClosed {
		return nil
	}
	if zw.err = zw.flush(); zw.err != nil {
		return zw.err
	}

	func() {
		defer errRecover(&zw.err)
		if !zw.wrHdr {
			zw.wr.WriteBits64(hdrMagic, 16)
			zw.wr.WriteBits64(uint64(verMagic), 8)
			zw.wr.WriteBits64(uint64('0'+zw.level), 8)
			zw.wrHdr = true
		}
		zw.wr.WriteBits64(endMagic, magicBits)
		zw.wr.WriteBits64(uint64(zw.endCRC), 32)
		zw.wr.WritePads(0)
	}()
	if zw.err != nil {
		return zw.err
	}

	zw.err = ErrClosed
	return nil
}

func (zw *Writer) compressBlock(buf []byte) {
	zw.wr.WriteBits64(blkMagic, magicBits)
	zw.wr.WriteBits64(uint64(zw.blkCRC.sum()), 32)
	zw.wr.WriteBits64(0, 1) // Block randomization is never produced.

	// Step 1: Burrows-Wheeler transformation.
	ptr := zw.bwt.Encode(buf)
	zw.wr.WriteBits64(uint64(ptr), 24)

	// Step 2: in-use bitmap, then move-to-front transform and RLE2.
	var dictMap [256]bool
	for _, c := range buf {
		dictMap[c] = true
	}

	var dictArr [256]uint8
	var symMaps [16]uint16
	var symMap uint16
	dict := dictArr[:0]
	for i, b := range dictMap {
		if b {
			c := uint8(i)
			dict = append(dict, c)
			symMap |= 1 << uint(c>>4)
			symMaps[c>>4] |= 1 << uint(c&0xf)
		}
	}

	zw.wr.WriteBits(uint(symMap), 16)
	for _, m := range symMaps {
		if m > 0 {
			zw.wr.WriteBits(uint(m), 16)
		}
	}

	zw.mtf.Init(dict, len(buf))
	syms := zw.mtf.Encode(buf)

	// Step 3: prefix encoding.
	zw.encodePrefix(syms, len(dict))
}

func (zw *Writer) encodePrefix(syms []uint16, numDict int) {
	numSyms := numDict + 2               // Drop value-0 slot, add RUNA, RUNB, and EOF symbols
	syms = append(syms, uint16(numSyms-1)) // EOF marker

	// Compute number of prefix trees needed, per spec §4.5: larger blocks
	// benefit from more trees since each adds its own selector overhead.
	numTrees := maxNumTrees
	for i, lim := range []int{200, 600, 1200, 2400} {
		if len(syms) < lim {
			numTrees = minNumTrees + i
			break
		}
	}

	sels, tables := assignSelectors(syms, numSyms, numTrees)

	encoders := make([]prefix.Encoder, numTrees)
	for i := range encoders {
		encoders[i].Init(tables[i])
	}

	// Write tree count, selector count, and selectors (MTF + unary coded).
	zw.wr.WriteBits64(uint64(numTrees), 3)
	zw.wr.WriteBits64(uint64(len(sels)), 15)
	selsMTF := make([]uint8, len(sels))
	copy(selsMTF, sels)
	var tsmtf internal.MoveToFront
	tsmtf.Encode(selsMTF)
	for _, s := range selsMTF {
		encSel.Encode(&zw.wr, uint32(s))
	}

	// Write each table's delta-coded code lengths.
	for _, tbl := range tables {
		curr := int32(tbl[0].Len)
		zw.wr.WriteBits64(uint64(curr), 5)
		for _, c := range tbl {
			for curr < int32(c.Len) {
				zw.wr.WriteBits64(0b10, 2)
				curr++
			}
			for curr > int32(c.Len) {
				zw.wr.WriteBits64(0b11, 2)
				curr--
			}
			zw.wr.WriteBits64(0, 1)
		}
	}

	// Write the prefix encoded symbol stream.
	var blkLen, selIdx int
	var enc *prefix.Encoder
	for _, sym := range syms {
		if blkLen == 0 {
			blkLen = numBlockSyms
			enc = &encoders[sels[selIdx]]
			selIdx++
		}
		blkLen--
		enc.Encode(&zw.wr, uint32(sym))
	}
}
