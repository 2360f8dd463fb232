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

// Package errors provides reusable error types shared across dxregistry's
// ingestion pipeline, catalog model and HTTP dispatcher.
//
// These types are intentionally simple value carriers with stable message
// formats: easy to construct from parsing/validation code, easy to
// recognize via type assertions, and easy for operators to understand when
// surfaced in scan logs or HTTP error bodies.
package errors

import "strconv"

// ParseError is returned when parsing a string into a strongly typed value
// (for example a SemVer version, or a verbosity level) fails.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "SemVer").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The message format is stable: "dxregistry: invalid {Type} value: {Value}".
func (e *ParseError) Error() string {
	return "dxregistry: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it
// is outside the set of values the type can represent.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying representation that could not be marshaled.
	Value int
}

// Error implements the error interface for MarshalError.
func (e *MarshalError) Error() string {
	return "dxregistry: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value
// fails, for example a malformed JSON document loaded from a config file or
// a tarball's package.json.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal. Callers MAY choose to
	// log or redact this field depending on size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
func (e *UnmarshalError) Error() string {
	return "dxregistry: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails, such
// as a version document missing its name or version field.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation. May be empty
	// if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxregistry: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxregistry: invalid " + e.Type + ": " + e.Reason
}

// IngestError is returned when a candidate archive in the packages
// directory cannot be turned into a version document. The scanner
// collects IngestError values into its combined error and continues with
// the remaining files; it never aborts a scan because of one bad archive.
type IngestError struct {
	// File is the base name of the archive that failed ingestion.
	File string

	// Reason is a short, human-readable explanation of the failure (for
	// example "missing package/package.json" or "duplicate version 1.2.3").
	Reason string
}

// Error implements the error interface for IngestError.
func (e *IngestError) Error() string {
	return "dxregistry: ingest " + e.File + ": " + e.Reason
}

// RouteError carries an HTTP status code alongside a message, matching the
// shape the dispatcher renders as a JSON error body.
type RouteError struct {
	// Status is the HTTP status code to report to the client.
	Status int

	// Reason is the human-readable message included in the response body.
	Reason string
}

// Error implements the error interface for RouteError.
func (e *RouteError) Error() string {
	return "dxregistry: " + strconv.Itoa(e.Status) + ": " + e.Reason
}
