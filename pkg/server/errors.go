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

import "errors"

var (
	// ErrInvalidOptions is returned when the server options cannot be
	// used to start a provider.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrNoSource is returned by Initialize when no fetch source was set.
	ErrNoSource = errors.New("no fetch source configured")

	// ErrNotInitialized is returned by Start when Initialize was not
	// called or did not complete.
	ErrNotInitialized = errors.New("server not initialized")

	// ErrAlreadyStopped is returned by Stop when the server was stopped
	// before.
	ErrAlreadyStopped = errors.New("server already stopped")
)
