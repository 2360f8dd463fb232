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

package tario

import (
	"strconv"
	"strings"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
)

// parsePaxRecords decodes a pax extended header block, formatted as a
// sequence of records "<length> <key>=<value>\n" where length counts
// the entire record including its own decimal digits, the separating
// space, and the trailing newline.
//
// A malformed record fails the whole block; the caller still consumes
// the entry's full declared payload so the stream stays aligned for the
// next header.
func parsePaxRecords(data []byte) (map[string]string, error) {
	records := make(map[string]string)
	for len(data) > 0 {
		sp := indexByte(data, ' ')
		if sp < 0 {
			return nil, &dxerrors.ParseError{Type: "pax record", Value: string(data)}
		}
		length, err := strconv.Atoi(string(data[:sp]))
		if err != nil || length <= sp || length > len(data) {
			return nil, &dxerrors.ParseError{Type: "pax record length", Value: string(data[:sp])}
		}
		record := data[sp+1 : length]
		if len(record) == 0 || record[len(record)-1] != '\n' {
			return nil, &dxerrors.ParseError{Type: "pax record", Value: string(record)}
		}
		kv := string(record[:len(record)-1])
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			return nil, &dxerrors.ParseError{Type: "pax record", Value: kv}
		}
		records[kv[:eq]] = kv[eq+1:]
		data = data[length:]
	}
	return records, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// applyPaxOverrides rewrites the fields of h that pax records are
// allowed to override. Unrecognized keys are ignored, matching the
// tolerant-superset handling the format calls for.
func applyPaxOverrides(h rawHeader, records map[string]string) rawHeader {
	if v, ok := records["path"]; ok {
		h.name = v
	}
	if v, ok := records["linkpath"]; ok {
		h.linkname = v
	}
	if v, ok := records["size"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			h.size = n
		}
	}
	if v, ok := records["mtime"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			h.mtime = int64(f)
		}
	}
	if v, ok := records["uname"]; ok {
		h.uname = v
	}
	if v, ok := records["gname"]; ok {
		h.gname = v
	}
	return h
}

// mergePax layers override on top of base, returning a new map; override
// entries win on key collision. Either argument may be nil.
func mergePax(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
