// Package mock provides deterministic test doubles for the ai package
// interfaces. The mocks use simple word matching by default and support
// custom behavior injection for testing error paths.
package mock
