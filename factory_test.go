/*
@Description: Tests for plugin registration and the Factory entry point
@Language: Go 1.23.4
*/

package sizeceph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFactorySelectsXORByProfileTechnique confirms Factory reads
// "technique" out of the profile rather than only the directory hint, and
// that a successfully initialized XOR codec is handed back ready to use.
func TestFactorySelectsXORByProfileTechnique(t *testing.T) {
	codec, err := Factory("anything", map[string]string{"technique": TechniqueXOR})
	require.NoError(t, err)
	require.NotNil(t, codec)
	defer codec.Close()

	require.Equal(t, XORK, codec.DataChunkCount())
	require.Equal(t, XORM, codec.CodingChunkCount())
}

// TestFactoryFallsBackToDirectoryHint confirms the directory argument
// chooses the technique when the profile omits "technique".
func TestFactoryFallsBackToDirectoryHint(t *testing.T) {
	codec, err := Factory(TechniqueXOR, map[string]string{})
	require.NoError(t, err)
	defer codec.Close()
	require.Equal(t, XORK, codec.DataChunkCount())
}

// TestFactoryUnknownTechniqueFails confirms an unregistered technique
// name is rejected with StatusNotFound rather than silently defaulting.
func TestFactoryUnknownTechniqueFails(t *testing.T) {
	_, err := Factory("anything", map[string]string{"technique": "not-a-real-technique"})
	require.Error(t, err)
	require.Equal(t, StatusNotFound, StatusOf(err))
}

// TestFactoryPropagatesInitFailure confirms a technique that fails Init
// (SizeCeph, in this environment with no native library installed)
// surfaces that failure rather than handing back a half-built codec.
func TestFactoryPropagatesInitFailure(t *testing.T) {
	_, err := Factory(TechniqueSizeCeph, map[string]string{"technique": TechniqueSizeCeph})
	require.Error(t, err)
	require.Equal(t, StatusNotFound, StatusOf(err))
}

func TestPluginInitRejectsDuplicateName(t *testing.T) {
	err := PluginInit("duplicate-test-name", TechniqueXOR)
	require.NoError(t, err)

	err = PluginInit("duplicate-test-name", TechniqueXOR)
	require.Error(t, err)
}

func TestPluginInitRejectsUnknownFamily(t *testing.T) {
	err := PluginInit("some-other-unique-name", "not-a-real-family")
	require.Error(t, err)
}
