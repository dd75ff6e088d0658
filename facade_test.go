/*
@Description: Tests for the shared legacy/modern shims and always-unsupported operations
@Language: Go 1.23.4
*/

package sizeceph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeModernDecode returns every requested shard that is present in
// chunks and omits the rest, so a caller that leaves a requested shard
// out of chunks exercises decodeConcatShim's zero-fill path.
func fakeModernDecode(want ShardSet, chunks ShardMap, chunkSize int) (ShardMap, error) {
	out := make(ShardMap)
	for id := range want {
		if buf, ok := chunks[id]; ok {
			out[id] = buf
		}
	}
	return out, nil
}

func TestDecodeConcatShimOrdersAndZeroFills(t *testing.T) {
	chunks := ShardMap{
		0: {0xAA, 0xAA},
		2: {0xCC, 0xCC},
	}
	// shard 1 is absent from chunks and therefore absent from the
	// fake decoder's result too; decode_concat must zero-fill it in place
	// rather than skip it or shift later shards forward.
	out, err := decodeConcatShim(fakeModernDecode, []ShardID{2, 1, 0}, chunks, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xCC, 0xCC, 0x00, 0x00, 0xAA, 0xAA}, out)
}

func TestDecodeConcatLegacyShimPreservesOrder(t *testing.T) {
	chunks := map[int][]byte{0: {1, 2}, 1: {3, 4}}
	out, err := decodeConcatLegacyShim(fakeModernDecode, []int{1, 0}, chunks, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4, 1, 2}, out)
}

func fakeModernMinimum(want, available ShardSet) (ShardSet, error) {
	return available, nil
}

func TestMinimumToDecodeLegacyShimRoundTrips(t *testing.T) {
	want := map[int]struct{}{0: {}, 1: {}}
	available := map[int]struct{}{0: {}, 1: {}, 2: {}}

	got, err := minimumToDecodeLegacyShim(fakeModernMinimum, want, available)
	require.NoError(t, err)
	require.Equal(t, available, got)
}

func fakeModernEncode(want ShardSet, input []byte) (ShardMap, error) {
	return ShardMap{0: input}, nil
}

func TestEncodeLegacyShimConvertsMap(t *testing.T) {
	got, err := encodeLegacyShim(fakeModernEncode, map[int]struct{}{0: {}}, []byte{9, 9})
	require.NoError(t, err)
	require.Equal(t, map[int][]byte{0: {9, 9}}, got)
}

func TestUnsupportedChunksOpReturnsNotSupported(t *testing.T) {
	err := unsupportedChunksOp()
	require.Error(t, err)
	require.Equal(t, StatusNotSupported, StatusOf(err))
}

func TestClearDeltaTargetEmptiesMap(t *testing.T) {
	chunks := ShardMap{0: {1}, 1: {2}, 2: {3}}
	require.NoError(t, clearDeltaTarget(chunks))
	require.Empty(t, chunks)
}
