// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package backend

import "errors"

var (
	// ErrNoBackend indicates no backend is available to serve a query.
	ErrNoBackend = errors.New("no backend available")

	// ErrInvalidMaxAttempts indicates a non-positive attempt count passed
	// to WaitForReady.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrMalformedQuery indicates a query string a backend could not parse.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrBackendClosed indicates an operation on a closed backend.
	ErrBackendClosed = errors.New("backend is closed")
)
