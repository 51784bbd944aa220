package form

import "sync"

// Global definition instance and initialization guard.
var (
	globalDefinition *Definition
	globalOnce       sync.Once
)

// Global returns the singleton mapping definition.
// Builds the default definition on first call; the returned definition is
// never mutated after load.
func Global() *Definition {
	globalOnce.Do(func() {
		globalDefinition = NewDefinition()
	})
	return globalDefinition
}

// InitGlobal initializes the global definition with a custom instance.
// Must be called before any call to Global() to take effect.
// Safe for concurrent use but only the first call has any effect.
func InitGlobal(d *Definition) {
	globalOnce.Do(func() {
		globalDefinition = d
	})
}

// ResetGlobal resets the global definition for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalDefinition = nil
}
