// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of document I/O without
// adding hard dependencies on specific observability backends. Consumers
// register hooks at startup to receive an event for every load and save.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for document events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// Hooks are registered by main, not by libraries, which keeps the store
// free of any particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    // ... run application
//	}
//
// The store calls hooks after each operation:
//
//	observability.Document().OnLoad(path, tag, time.Since(start), err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from the document store.
// Tag is the version tag that was read or written, empty when unknown.
type DocumentHooks interface {
	// OnLoad records a completed (or failed) load.
	OnLoad(path, tag string, duration time.Duration, err error)

	// OnSave records a completed (or failed) save.
	OnSave(path, tag string, duration time.Duration, err error)
}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnLoad(string, string, time.Duration, error) {}
func (NoopDocumentHooks) OnSave(string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	documentHooks DocumentHooks = NoopDocumentHooks{}
	hooksMu       sync.RWMutex
)

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup before any document operations.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	documentHooks = NoopDocumentHooks{}
}
