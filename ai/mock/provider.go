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


package mock

import "github.com/poiesic/tasklens/ai"

// MockProvider is a test double for ai.Provider.
// It wraps a mock task picker instance.
type MockProvider struct {
	picker *MockTaskPicker
}

// NewMockProvider creates a new mock provider with a default mock picker.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockPicker() to access the concrete type for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		picker: NewMockTaskPicker(),
	}
}

// NewMockProviderWithPicker creates a mock provider with a custom mock picker.
// This allows full control over the picker's behavior.
func NewMockProviderWithPicker(picker *MockTaskPicker) ai.Provider {
	return &MockProvider{
		picker: picker,
	}
}

// TaskPicker returns the mock task picker.
func (p *MockProvider) TaskPicker() ai.TaskPicker {
	return p.picker
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockPicker returns the underlying mock picker for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockPicker() *MockTaskPicker {
	return p.picker
}
