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

package server

import (
	"net/http"
	"os"
	"path"

	"github.com/rs/xid"
)

// IDENTIFIER_FNAME ...
const IDENTIFIER_FNAME = "sap.identifier"

// SERVER_UUID_HEADER ...
const SERVER_UUID_HEADER = "Sap-Provider-Uuid"

type uuidContext struct {
	UUID xid.ID
}

// UUIDContext decorates every response with the provider instance identity
type UUIDContext interface {
	UUIDSetter(h http.Handler) http.Handler
}

// NewUUIDContext return a new UUID context service
func NewUUIDContext(id xid.ID) uuidContext {
	return uuidContext{id}
}

func getOrSetUUID(dir string) (xid.ID, error) {
	fname := path.Join(dir, IDENTIFIER_FNAME)
	if fileExists(fname) {
		b, err := os.ReadFile(fname)
		if err != nil {
			return xid.ID{}, err
		}
		return xid.FromBytes(b)
	}
	guid := xid.New()
	err := os.WriteFile(fname, guid.Bytes(), os.ModePerm)
	return guid, err
}

// fileExists checks if a file exists and is not a directory before we
// try using it to prevent further errors.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// UUIDSetter sets the uuid header on every response
func (u uuidContext) UUIDSetter(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SERVER_UUID_HEADER, u.UUID.String())
		h.ServeHTTP(w, r)
	})
}
