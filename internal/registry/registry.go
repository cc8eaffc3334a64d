// Package registry implements the process-wide named-object directory.
//
// Subsystems register themselves under a (scope, key) pair during startup
// and look each other up by name instead of holding direct references.
// There is one global scope plus a scope per window; window scopes are
// dropped when their window goes away.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Scope names a registry namespace.
type Scope string

// ScopeGlobal is the process-wide scope.
const ScopeGlobal Scope = "global"

// WindowScope returns the scope for a given window ID.
func WindowScope(windowID string) Scope {
	return Scope("window:" + windowID)
}

// NotFoundError is returned by Get when no object is registered under the
// requested (scope, key) pair.
type NotFoundError struct {
	Scope Scope
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no object %q in scope %q", e.Key, e.Scope)
}

// DuplicateKeyError is returned by Register with the Unique option when the
// key is already taken.
type DuplicateKeyError struct {
	Scope Scope
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("object %q already registered in scope %q", e.Key, e.Scope)
}

type registerOptions struct {
	unique bool
}

// RegisterOption configures a Register call.
type RegisterOption func(*registerOptions)

// Unique makes Register fail with DuplicateKeyError instead of replacing an
// existing entry.
func Unique() RegisterOption {
	return func(o *registerOptions) { o.unique = true }
}

// Registry is a directory of long-living objects keyed by (scope, name).
type Registry struct {
	mu     sync.RWMutex
	scopes map[Scope]map[string]any
	log    zerolog.Logger
}

// New creates an empty registry.
func New(log zerolog.Logger) *Registry {
	return &Registry{
		scopes: make(map[Scope]map[string]any),
		log:    log.With().Str("component", "registry").Logger(),
	}
}

// Register stores obj under (scope, key). By default a later registration
// replaces an earlier one; the replacement is logged as a warning. With the
// Unique option the call fails with DuplicateKeyError instead.
func (r *Registry) Register(scope Scope, key string, obj any, opts ...RegisterOption) error {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.scopes[scope]
	if !ok {
		entries = make(map[string]any)
		r.scopes[scope] = entries
	}
	if _, exists := entries[key]; exists {
		if o.unique {
			return &DuplicateKeyError{Scope: scope, Key: key}
		}
		r.log.Warn().
			Str("scope", string(scope)).
			Str("key", key).
			Msg("replacing registered object")
	}
	entries[key] = obj
	return nil
}

// Get returns the object registered under (scope, key) or a NotFoundError.
func (r *Registry) Get(scope Scope, key string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if obj, ok := r.scopes[scope][key]; ok {
		return obj, nil
	}
	return nil, &NotFoundError{Scope: scope, Key: key}
}

// Lookup is the non-failing variant of Get.
func (r *Registry) Lookup(scope Scope, key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.scopes[scope][key]
	return obj, ok
}

// Delete unregisters a single entry. Missing entries are ignored.
func (r *Registry) Delete(scope Scope, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes[scope], key)
}

// Clear removes all entries in a scope. It is idempotent and safe to call
// for scopes that were never populated.
func (r *Registry) Clear(scope Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entries, ok := r.scopes[scope]; ok {
		clear(entries)
	}
}

// DropScope removes a scope entirely. Used for window-scope teardown.
func (r *Registry) DropScope(scope Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes, scope)
}

// ClearAll empties every scope. This is the final shutdown step.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = make(map[Scope]map[string]any)
}

// Dump lists every key in a scope with the string form of its object, one
// "key: value" line per entry, sorted by key. Stringification of a contained
// object must never take the dump down with it; a panicking String method is
// rendered as a placeholder.
func (r *Registry) Dump(scope Scope) []string {
	r.mu.RLock()
	entries := r.scopes[scope]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, safeRepr(entries[k])))
	}
	r.mu.RUnlock()
	return lines
}

// DumpAll renders every scope, for crash reports.
func (r *Registry) DumpAll() string {
	r.mu.RLock()
	scopes := make([]Scope, 0, len(r.scopes))
	for s := range r.scopes {
		scopes = append(scopes, s)
	}
	r.mu.RUnlock()

	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })

	var b strings.Builder
	for _, s := range scopes {
		lines := r.Dump(s)
		fmt.Fprintf(&b, "%s object registry - %d objects:\n", s, len(lines))
		for _, line := range lines {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	return b.String()
}

func safeRepr(obj any) (repr string) {
	defer func() {
		if recover() != nil {
			repr = fmt.Sprintf("<unrepresentable %T>", obj)
		}
	}()
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", obj)
}

// As fetches (scope, key) and asserts it to T. It fails with the underlying
// NotFoundError when the entry is missing, or a descriptive error when the
// registered object has the wrong type.
func As[T any](r *Registry, scope Scope, key string) (T, error) {
	var zero T
	obj, err := r.Get(scope, key)
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("object %q in scope %q is %T, not %T", key, scope, obj, zero)
	}
	return typed, nil
}
