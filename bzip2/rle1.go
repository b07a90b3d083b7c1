// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "errors"

// rleDone is returned by runLengthEncoding.Write when the destination
// buffer cannot accommodate any more input without risking an unflushable
// run: either the next byte would complete a fourth consecutive literal
// copy with no room left for the eventual count byte, or an ordinary
// literal byte simply does not fit.
var rleDone = errors.New("bzip2: rle1 buffer is full")

// runLengthEncoding implements RLE1 (spec §4.5 step 1): runs of 4 to 255
// identical bytes are stored as four literal copies followed by a count
// byte in [0, 251] giving the number of additional repeats. One value
// serves both directions: Init(dst) for encoding (dst is the destination
// buffer to fill) and Init(src) for decoding (src is the already-filled
// buffer to expand).
type runLengthEncoding struct {
	buf []byte
	pos int

	// Shared last-byte/run-length state.
	lastByte byte
	litCount int // number of consecutive literal copies emitted/consumed so far, 0..4
	extra    int // encode: pending extra-repeat count once litCount==4
	pending  int // decode: extra repeats still to emit from the current count byte
}

// Init resets the codec for encoding: buf is the destination slice that
// Write will fill: its current length becomes the block capacity, and its
// contents are discarded.
func (r *runLengthEncoding) Init(buf []byte) {
	r.buf = buf[:0]
	r.pos = 0
	r.litCount = 0
	r.extra = 0
	r.pending = 0
}

// InitDecode resets the codec to decode src (used by Read), keeping the
// full length of src as the input to consume.
func (r *runLengthEncoding) InitDecode(src []byte) {
	r.buf = src
	r.pos = 0
	r.litCount = 0
	r.pending = 0
}

// Bytes returns the bytes written so far, flushing a pending run
// terminator (possibly zero) if a run of exactly 4 is outstanding.
func (r *runLengthEncoding) Bytes() []byte {
	if r.litCount == 4 && len(r.buf) < cap(r.buf) {
		r.buf = append(r.buf, byte(r.extra))
		r.litCount = 0
		r.extra = 0
	}
	return r.buf
}

// Write encodes p into the destination buffer, returning the number of
// input bytes consumed. It returns rleDone once no more input can be
// accepted without risking an unflushable run; the caller should retain
// any unconsumed bytes for the next block.
func (r *runLengthEncoding) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b := p[n]
		free := cap(r.buf) - len(r.buf)

		if r.litCount > 0 && b == r.lastByte && r.litCount < 4 {
			if r.litCount == 3 {
				// This byte would complete the 4th literal copy, which
				// commits us to eventually emitting a count byte. Require
				// room for both.
				if free < 2 {
					return n, rleDone
				}
			} else if free < 1 {
				return n, rleDone
			}
			r.buf = append(r.buf, b)
			r.litCount++
			if r.litCount == 4 {
				r.extra = 0
			}
			n++
			continue
		}

		if r.litCount == 4 {
			if b == r.lastByte {
				r.extra++
				n++
				if r.extra == 251 {
					if cap(r.buf)-len(r.buf) < 1 {
						r.extra = 251
						return n, rleDone
					}
					r.buf = append(r.buf, byte(r.extra))
					r.litCount = 0
					r.extra = 0
				}
				continue
			}
			// Run ended: flush its terminator before starting a new run.
			if free < 2 {
				return n, rleDone
			}
			r.buf = append(r.buf, byte(r.extra))
			r.litCount = 0
			r.extra = 0
			free--
		}

		if free < 1 {
			return n, rleDone
		}
		r.buf = append(r.buf, b)
		r.lastByte = b
		r.litCount = 1
		n++
	}
	return n, nil
}

// Read decodes up to len(out) bytes, expanding runs, resuming mid-run
// across calls (spec's output-phase backpressure requirement).
func (r *runLengthEncoding) Read(out []byte) (int, error) {
	n := 0
	for n < len(out) {
		if r.pending > 0 {
			out[n] = r.lastByte
			n++
			r.pending--
			continue
		}
		if r.pos >= len(r.buf) {
			break
		}
		b := r.buf[r.pos]
		r.pos++

		if r.litCount == 4 {
			r.pending = int(b)
			r.litCount = 0
			continue
		}

		if r.litCount > 0 && b == r.lastByte {
			r.litCount++
		} else {
			r.lastByte = b
			r.litCount = 1
		}
		out[n] = b
		n++
	}
	return n, nil
}
