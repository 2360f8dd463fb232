/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package tario implements a streaming tar reader purpose-built for
// reading one archive member's content without buffering the rest of
// the archive in memory.
//
// It understands plain ustar headers, GNU long-name ('L') entries, and
// pax per-entry ('x') and global ('g') extended header records. Members
// of any other typeflag are skipped without their content ever being
// copied into the payload path a caller reads from.
package tario

import "io"

// Reader reads successive Entry values from a tar byte stream.
//
// Entries must be consumed in order. Calling Next before a prior
// Entry's Payload has been fully read discards the remainder
// automatically, along with the padding to the next 512-byte boundary.
type Reader struct {
	r io.Reader

	remaining int64
	padding   int64

	pendingLongName string
	pendingPax      map[string]string
	globalPax       map[string]string
}

// NewReader returns a Reader that reads a tar stream from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next advances to the next regular-file or directory member,
// transparently applying any preceding GNU long-name or pax overrides.
// Members of any other typeflag are skipped, not returned.
// It returns io.EOF once the archive's terminator block is reached.
func (r *Reader) Next() (*Entry, error) {
	if err := r.skipCurrent(); err != nil {
		return nil, err
	}

	for {
		block, err := r.readBlock()
		if err != nil {
			return nil, err
		}
		raw, ok := parseHeader(block)
		if !ok {
			return nil, io.EOF
		}

		switch raw.typeflag {
		case typeGNULong:
			name, err := r.readFullPayload(raw.size)
			if err != nil {
				return nil, err
			}
			r.pendingLongName = cstring(name)
			continue

		case typePaxNext:
			data, err := r.readFullPayload(raw.size)
			if err != nil {
				return nil, err
			}
			if recs, perr := parsePaxRecords(data); perr == nil {
				r.pendingPax = recs
			}
			continue

		case typePaxGlobal:
			data, err := r.readFullPayload(raw.size)
			if err != nil {
				return nil, err
			}
			if recs, perr := parsePaxRecords(data); perr == nil {
				r.globalPax = mergePax(r.globalPax, recs)
			}
			continue

		case typeReg, typeRegA, typeDir:
			eff := applyPaxOverrides(raw, r.globalPax)
			eff = applyPaxOverrides(eff, r.pendingPax)
			if r.pendingLongName != "" {
				eff.name = r.pendingLongName
			}
			r.pendingLongName = ""
			r.pendingPax = nil

			r.remaining = eff.size
			r.padding = paddingFor(eff.size)

			return &Entry{
				Name:     eff.name,
				Typeflag: eff.typeflag,
				Size:     eff.size,
				ModTime:  mtimeToUTC(eff.mtime),
				Linkname: eff.linkname,
				Payload:  &payloadReader{tr: r},
			}, nil

		default:
			if _, err := r.readFullPayload(raw.size); err != nil {
				return nil, err
			}
			r.pendingLongName = ""
			r.pendingPax = nil
			continue
		}
	}
}

// skipCurrent discards whatever is left of the previous entry's payload
// plus its alignment padding.
func (r *Reader) skipCurrent() error {
	if r.remaining > 0 {
		if _, err := io.CopyN(io.Discard, r.r, r.remaining); err != nil {
			return err
		}
		r.remaining = 0
	}
	if r.padding > 0 {
		if _, err := io.CopyN(io.Discard, r.r, r.padding); err != nil {
			return err
		}
		r.padding = 0
	}
	return nil
}

// readBlock reads exactly one 512-byte header block. A clean or
// truncated end of stream is reported as io.EOF: a well-formed archive
// always ends with a zeroed terminator block, but a stream that simply
// stops is treated as ending there rather than as a hard failure.
func (r *Reader) readBlock() ([]byte, error) {
	buf := make([]byte, blockSize)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return buf, nil
}

// readFullPayload reads a meta-entry's (GNU long-name or pax) payload
// of size bytes in full, along with its trailing alignment padding.
// These payloads describe the next header rather than file content, so
// unlike a regular entry's Payload they are read eagerly.
func (r *Reader) readFullPayload(size int64) ([]byte, error) {
	buf := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r.r, buf); err != nil {
			return nil, err
		}
	}
	if pad := paddingFor(size); pad > 0 {
		if _, err := io.CopyN(io.Discard, r.r, pad); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func paddingFor(size int64) int64 {
	rem := size % blockSize
	if rem == 0 {
		return 0
	}
	return blockSize - rem
}

// payloadReader exposes the current entry's unread payload bytes,
// bounded by the Reader's remaining counter so that a short read by the
// caller leaves the stream in a state skipCurrent can clean up.
type payloadReader struct {
	tr *Reader
}

func (p *payloadReader) Read(b []byte) (int, error) {
	if p.tr.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > p.tr.remaining {
		b = b[:p.tr.remaining]
	}
	n, err := p.tr.r.Read(b)
	p.tr.remaining -= int64(n)
	return n, err
}
