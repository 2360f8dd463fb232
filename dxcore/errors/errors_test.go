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

package errors

import "testing"

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"SemVer type",
			&ParseError{Type: "SemVer", Value: "1.0"},
			"dxregistry: invalid SemVer value: 1.0",
		},
		{
			"empty value",
			&ParseError{Type: "Verbosity", Value: ""},
			"dxregistry: invalid Verbosity value: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	err := &MarshalError{Type: "Verbosity", Value: 99}
	want := "dxregistry: cannot marshal invalid Verbosity value: 99"
	if got := err.Error(); got != want {
		t.Errorf("MarshalError.Error() = %q, want %q", got, want)
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	err := &UnmarshalError{Type: "Config", Data: []byte(`{broken`), Reason: "unexpected end of JSON input"}
	want := "dxregistry: cannot unmarshal Config: unexpected end of JSON input"
	if got := err.Error(); got != want {
		t.Errorf("UnmarshalError.Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			&ValidationError{Type: "VersionDocument", Field: "name", Reason: "must not be empty"},
			"dxregistry: invalid VersionDocument.name: must not be empty",
		},
		{
			"without field",
			&ValidationError{Type: "PackageEntry", Reason: "has no versions"},
			"dxregistry: invalid PackageEntry: has no versions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIngestError_Error(t *testing.T) {
	err := &IngestError{File: "com.x.y-1.2.3.tgz", Reason: "missing package/package.json"}
	want := "dxregistry: ingest com.x.y-1.2.3.tgz: missing package/package.json"
	if got := err.Error(); got != want {
		t.Errorf("IngestError.Error() = %q, want %q", got, want)
	}
}

func TestRouteError_Error(t *testing.T) {
	err := &RouteError{Status: 404, Reason: "package not found"}
	want := "dxregistry: 404: package not found"
	if got := err.Error(); got != want {
		t.Errorf("RouteError.Error() = %q, want %q", got, want)
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
	var _ error = (*IngestError)(nil)
	var _ error = (*RouteError)(nil)
}
