// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about compilation and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps the core packages free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCompilerHooks(&myCompilerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// CompilerHooks receives events from graph compilation.
type CompilerHooks interface {
	// OnGenerateStart records the beginning of a Generate call.
	OnGenerateStart(ctx context.Context, nodeCount, linkCount int)

	// OnGenerateComplete records the outcome of a Generate call.
	OnGenerateComplete(ctx context.Context, nodeCount int, outputSize int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopCompilerHooks is a no-op implementation of CompilerHooks.
type NoopCompilerHooks struct{}

func (NoopCompilerHooks) OnGenerateStart(context.Context, int, int) {}
func (NoopCompilerHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	compilerHooks CompilerHooks = NoopCompilerHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetCompilerHooks registers custom compiler hooks.
// This should be called once at application startup.
func SetCompilerHooks(h CompilerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compilerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Compiler returns the registered compiler hooks.
func Compiler() CompilerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compilerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	compilerHooks = NoopCompilerHooks{}
	cacheHooks = NoopCacheHooks{}
}
