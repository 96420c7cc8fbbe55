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

package api

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// SATypeKey marks a JSON object as a typed value.
	SATypeKey = "__sa_type__"

	saTypeTimestamp = "timestamp"
	saTypeLink      = "link"
)

// Timestamp is a point in time carried as nanoseconds since the Unix epoch.
// It serializes to {"__sa_type__": "timestamp", "timestamp": <ns>}.
type Timestamp struct {
	ns int64
}

// NewTimestamp returns the timestamp value for t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{ns: t.UnixNano()}
}

// TimestampFromNanos returns the timestamp value for ns nanoseconds since the Unix epoch.
func TimestampFromNanos(ns int64) Timestamp {
	return Timestamp{ns: ns}
}

// TimestampFromSeconds returns the timestamp value for fractional Unix seconds.
func TimestampFromSeconds(seconds float64) Timestamp {
	return Timestamp{ns: int64(seconds * float64(time.Second))}
}

// UnixNano returns the timestamp as nanoseconds since the Unix epoch.
func (ts Timestamp) UnixNano() int64 {
	return ts.ns
}

// Time returns the timestamp as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(0, ts.ns).UTC()
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		SATypeKey:   saTypeTimestamp,
		"timestamp": ts.ns,
	})
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw struct {
		SAType string `json:"__sa_type__"`
		Nanos  int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.SAType != saTypeTimestamp {
		return fmt.Errorf("%w: expected %s value", ErrInvalidValue, saTypeTimestamp)
	}
	ts.ns = raw.Nanos
	return nil
}

// Link points at related objects through a shell query.
// It serializes to {"__sa_type__": "link", "query": ..., "show_text": ...}.
type Link struct {
	Query    string
	ShowText string
}

// NewLink returns a link value resolving query, displayed as showText.
func NewLink(query, showText string) Link {
	return Link{Query: query, ShowText: showText}
}

func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		SATypeKey:   saTypeLink,
		"query":     l.Query,
		"show_text": l.ShowText,
	})
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var raw struct {
		SAType   string `json:"__sa_type__"`
		Query    string `json:"query"`
		ShowText string `json:"show_text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.SAType != saTypeLink {
		return fmt.Errorf("%w: expected %s value", ErrInvalidValue, saTypeLink)
	}
	l.Query = raw.Query
	l.ShowText = raw.ShowText
	return nil
}

// EncodeValue converts v into its canonical form. Times become Timestamp
// values, maps and untyped slices are encoded element by element. Anything
// else is returned as is.
func EncodeValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case Timestamp, Link:
		return tv
	case *Timestamp:
		return *tv
	case *Link:
		return *tv
	case time.Time:
		return NewTimestamp(tv)
	case *time.Time:
		return NewTimestamp(*tv)
	case map[string]interface{}:
		enc := make(map[string]interface{}, len(tv))
		for k, val := range tv {
			enc[k] = EncodeValue(val)
		}
		return enc
	case []interface{}:
		enc := make([]interface{}, len(tv))
		for i, val := range tv {
			enc[i] = EncodeValue(val)
		}
		return enc
	default:
		return v
	}
}

// DecodeValue converts a value freshly decoded from JSON back into its
// canonical form. Typed value markers become Timestamp or Link values and
// numbers become int64 when integral, float64 otherwise.
func DecodeValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		switch tv[SATypeKey] {
		case saTypeTimestamp:
			if ns, ok := asInt64(tv["timestamp"]); ok {
				return TimestampFromNanos(ns)
			}
		case saTypeLink:
			query, qok := tv["query"].(string)
			showText, sok := tv["show_text"].(string)
			if qok && sok {
				return NewLink(query, showText)
			}
		}
		dec := make(map[string]interface{}, len(tv))
		for k, val := range tv {
			dec[k] = DecodeValue(val)
		}
		return dec
	case []interface{}:
		dec := make([]interface{}, len(tv))
		for i, val := range tv {
			dec[i] = DecodeValue(val)
		}
		return dec
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i
		}
		if f, err := tv.Float64(); err == nil {
			return f
		}
		return tv.String()
	default:
		return v
	}
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
