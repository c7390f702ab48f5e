// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package encoding provides the canonical serialization and
// domain-separated hashing used everywhere headers, policies and
// nullifier preimages are turned into bytes. Every implementation of
// the PoIES kernel must produce byte-identical output from this
// package given the same input value.
package encoding

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ErrEncoding is the sentinel every structured encoding failure wraps.
var ErrEncoding = errors.New("encoding: canonical encoding violation")

// Error is a structured encoding failure, carrying the reason the input
// fell outside the canonical domain.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("encoding: %s", e.Reason)
}

func (e *Error) Unwrap() error { return ErrEncoding }

func newError(reason string) error { return &Error{Reason: reason} }

var canonicalMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("encoding: failed to build canonical CBOR mode: %v", err))
	}
	canonicalMode = mode
}

// Marshal encodes v using Core Deterministic CBOR (RFC 8949 §4.2.1):
// map keys sorted bytewise, integers in their smallest representable
// form, no indefinite-length items. v must not contain any float-typed
// field anywhere in its value graph; Marshal rejects those explicitly
// since the core forbids floating point on every consensus path.
func Marshal(v interface{}) ([]byte, error) {
	if hasFloat(reflect.ValueOf(v), make(map[uintptr]bool)) {
		return nil, newError("value contains a floating-point field")
	}
	b, err := canonicalMode.Marshal(v)
	if err != nil {
		return nil, newError(err.Error())
	}
	return b, nil
}

// Unmarshal decodes canonical CBOR bytes into v. Decoding does not by
// itself re-validate canonicality of the source bytes; callers that
// need a round-trip check should re-Marshal and compare.
func Unmarshal(data []byte, v interface{}) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return newError(err.Error())
	}
	return nil
}

func hasFloat(v reflect.Value, seen map[uintptr]bool) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return false
		}
		if v.Kind() == reflect.Ptr {
			ptr := v.Pointer()
			if seen[ptr] {
				return false
			}
			seen[ptr] = true
		}
		return hasFloat(v.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if hasFloat(v.Field(i), seen) {
				return true
			}
		}
		return false
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if hasFloat(v.Index(i), seen) {
				return true
			}
		}
		return false
	case reflect.Map:
		for _, key := range v.MapKeys() {
			if hasFloat(key, seen) || hasFloat(v.MapIndex(key), seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
