//go:build !cgo || (!linux && !darwin)

/*
@Description: fallback when dlopen-based native binding is unavailable
@Language: Go 1.23.4
*/

package nativecodec

import "github.com/pkg/errors"

// ShardCount is N, the total shard count the native ABI always operates
// over: 9 for SizeCeph.
const ShardCount = 9

// EnvOverrideVar names the environment variable consulted before the
// fixed fallback search list on platforms where dlopen binding is built.
const EnvOverrideVar = "SIZECEPH_CODEC_LIBRARY"

// Binding is the no-op stand-in used when this package is built without
// cgo, or on a platform other than linux/darwin. Load always fails with
// StatusNotFound-equivalent semantics: the caller sees "native binding
// unavailable", exactly as if no candidate library resolved.
type Binding struct{}

// Load always fails on this build: dlopen-based binding requires cgo on
// linux or darwin.
func Load() (*Binding, error) {
	return nil, errors.New("nativecodec: built without cgo dynamic loading support")
}

// Release is a no-op on the stub binding.
func (b *Binding) Release() {}

// RefCount is always zero on this build.
func RefCount() int { return 0 }

// Loaded is always false on this build.
func Loaded() bool { return false }

// Split always fails: there is no native codec bound.
func (b *Binding) Split(out [][]byte, in []byte) error {
	return errors.New("nativecodec: not loaded")
}

// Restore always fails: there is no native codec bound.
func (b *Binding) Restore(out []byte, in [][]byte) error {
	return errors.New("nativecodec: not loaded")
}

// CanRestore always reports false: there is no native codec bound.
func (b *Binding) CanRestore(in [][]byte) bool { return false }
