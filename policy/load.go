// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// LoadYAML parses a YAML policy document, rejecting unknown fields, and
// validates it. The core never receives a raw document directly in
// production — this is the conversion step spec section 6 describes as
// happening "before hashing" — but it lives here so every
// implementation converts the same way.
func LoadYAML(data []byte) (*Policy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return nil, NewError(CapExceeded, "", "yaml decode: "+err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadJSON parses a JSON policy document, rejecting unknown fields, and
// validates it.
func LoadJSON(data []byte) (*Policy, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return nil, NewError(CapExceeded, "", "json decode: "+err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
