/*
Copyright 2022 Codenotary Inc. All rights reserved.

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

// Package api defines the provider wire format. Providers expose flat JSON
// objects carrying identity metadata under reserved double underscore keys
// next to free form properties.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Reserved object keys.
const (
	IDKey     = "__id__"
	TypesKey  = "__types__"
	SourceKey = "__source__"
)

var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrInvalidObject = errors.New("invalid object")
)

// Object is a single unit of provider data. ID, Types and Source identify
// the object, everything else travels in Properties. On the wire the object
// is a single flat JSON map.
type Object struct {
	ID         string
	Types      []string
	Source     string
	Properties map[string]interface{}
}

// NewObject returns an object identified by id, types and source with no
// properties set.
func NewObject(id string, types []string, source string) *Object {
	return &Object{
		ID:         id,
		Types:      types,
		Source:     source,
		Properties: map[string]interface{}{},
	}
}

// Set stores a property value and returns the object for chaining.
func (o *Object) Set(key string, value interface{}) *Object {
	if o.Properties == nil {
		o.Properties = map[string]interface{}{}
	}
	o.Properties[key] = value
	return o
}

// SetTimestamp stores t as a timestamp property and returns the object for chaining.
func (o *Object) SetTimestamp(key string, ts Timestamp) *Object {
	return o.Set(key, ts)
}

// SetLink stores a link property and returns the object for chaining.
func (o *Object) SetLink(key string, query, showText string) *Object {
	return o.Set(key, NewLink(query, showText))
}

// Property returns the named property value.
func (o *Object) Property(key string) (interface{}, bool) {
	v, ok := o.Properties[key]
	return v, ok
}

func (o *Object) MarshalJSON() ([]byte, error) {
	types := o.Types
	if types == nil {
		types = []string{}
	}

	payload := make(map[string]interface{}, len(o.Properties)+3)
	payload[IDKey] = o.ID
	payload[TypesKey] = types
	payload[SourceKey] = o.Source
	for k, v := range o.Properties {
		payload[k] = EncodeValue(v)
	}
	return json.Marshal(payload)
}

func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	id, ok := raw[IDKey].(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrInvalidObject, IDKey)
	}
	source, ok := raw[SourceKey].(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrInvalidObject, SourceKey)
	}
	rawTypes, ok := raw[TypesKey].([]interface{})
	if !ok {
		return fmt.Errorf("%w: %s must be a list of strings", ErrInvalidObject, TypesKey)
	}
	types := make([]string, len(rawTypes))
	for i, t := range rawTypes {
		s, ok := t.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a list of strings", ErrInvalidObject, TypesKey)
		}
		types[i] = s
	}

	props := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		switch k {
		case IDKey, TypesKey, SourceKey:
			continue
		}
		props[k] = DecodeValue(v)
	}

	o.ID = id
	o.Types = types
	o.Source = source
	o.Properties = props
	return nil
}

// Normalize validates objects and encodes every property into its canonical
// form. Validation failures name the offending object by its index.
func Normalize(objects []*Object) ([]*Object, error) {
	normalized := make([]*Object, 0, len(objects))
	for i, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("%w: objects[%d] must not be nil", ErrInvalidObject, i)
		}
		if obj.ID == "" {
			return nil, fmt.Errorf("%w: objects[%d] missing required key %s", ErrInvalidObject, i, IDKey)
		}
		if obj.Source == "" {
			return nil, fmt.Errorf("%w: objects[%d] missing required key %s", ErrInvalidObject, i, SourceKey)
		}
		if len(obj.Types) == 0 {
			return nil, fmt.Errorf("%w: objects[%d] missing required key %s", ErrInvalidObject, i, TypesKey)
		}
		for _, t := range obj.Types {
			if t == "" {
				return nil, fmt.Errorf("%w: objects[%d] %s must not contain empty entries", ErrInvalidObject, i, TypesKey)
			}
		}

		enc := &Object{
			ID:         obj.ID,
			Types:      obj.Types,
			Source:     obj.Source,
			Properties: make(map[string]interface{}, len(obj.Properties)),
		}
		for k, v := range obj.Properties {
			enc.Properties[k] = EncodeValue(v)
		}
		normalized = append(normalized, enc)
	}
	return normalized, nil
}

// Deduplicate drops objects sharing the identity of an earlier object. The
// identity is the id, the source and the full ordered type list. The first
// occurrence wins.
func Deduplicate(objects []*Object) []*Object {
	seen := make(map[string]struct{}, len(objects))
	deduped := make([]*Object, 0, len(objects))
	for _, obj := range objects {
		key := identityKey(obj)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, obj)
	}
	return deduped
}

func identityKey(obj *Object) string {
	var sb strings.Builder
	sb.WriteString(obj.ID)
	sb.WriteByte(0)
	sb.WriteString(obj.Source)
	for _, t := range obj.Types {
		sb.WriteByte(0)
		sb.WriteString(t)
	}
	return sb.String()
}
