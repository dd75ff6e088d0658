/*
@Description: Tests for the dlopen-based native codec binding's load/release lifecycle
@Language: Go 1.23.4
*/

package nativecodec

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadWithoutLibraryFails exercises the common case in this test
// environment: no libsizeceph.so is installed anywhere in the search
// path, so Load must fail cleanly and leave the binding in the
// not-loaded state, never partially populating the three function
// pointers.
func TestLoadWithoutLibraryFails(t *testing.T) {
	os.Unsetenv(EnvOverrideVar)

	b, err := Load()
	require.Error(t, err)
	require.Nil(t, b)
	require.False(t, Loaded())
	require.Equal(t, 0, RefCount())
}

// TestLoadHonorsEnvOverrideFirst points the environment override, which
// Load tries before the fixed fallback list, at a path that does not
// exist. Load then moves on to the fallback list; with no library
// installed there either, it must fail and leave the binding unloaded.
// The test does not observe the order in which candidates are tried.
func TestLoadHonorsEnvOverrideFirst(t *testing.T) {
	os.Setenv(EnvOverrideVar, "/nonexistent/libsizeceph-override.so")
	defer os.Unsetenv(EnvOverrideVar)

	b, err := Load()
	require.Error(t, err)
	require.Nil(t, b)
	require.False(t, Loaded())
}

// TestReleaseWithoutLoadIsSafe documents that Release on a never-Loaded
// Binding (the zero value) never panics and never drives the shared
// reference count negative.
func TestReleaseWithoutLoadIsSafe(t *testing.T) {
	b := &Binding{}
	b.Release()
	b.Release()
	require.Equal(t, 0, RefCount())
}

// TestConcurrentLoadReleaseNeverGoesNegative drives many goroutines
// through Load/Release together: the shared handle's reference count
// must never panic or underflow regardless of caller concurrency. Every
// Load fails in this environment, so this exercises the mutex discipline
// around the failure path specifically; Release is only reached by a
// goroutine whose Load succeeded.
func TestConcurrentLoadReleaseNeverGoesNegative(t *testing.T) {
	os.Unsetenv(EnvOverrideVar)

	var wg sync.WaitGroup
	const goroutines = 32
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			b, err := Load()
			if err == nil {
				b.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 0, RefCount())
	require.False(t, Loaded())
}
