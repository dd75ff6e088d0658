/*
@Description: Shard identifiers, shard maps and the host-facing Codec interface
@Language: Go 1.23.4
*/

package sizeceph

// ShardID is a shard identifier in [0, N). Identifiers >= K denote
// "parity" in host terms; for SizeCeph all N shards are semantically
// equivalent internally.
type ShardID int

// ShardSet is an unordered subset of [0, N); the modern, shard-id-keyed
// form the non-legacy operations traffic in.
type ShardSet map[ShardID]struct{}

// NewShardSet builds a ShardSet from the given ids.
func NewShardSet(ids ...ShardID) ShardSet {
	s := make(ShardSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Range builds the ShardSet [0, n).
func Range(n int) ShardSet {
	s := make(ShardSet, n)
	for i := 0; i < n; i++ {
		s[ShardID(i)] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of s.
func (s ShardSet) Contains(id ShardID) bool {
	_, ok := s[id]
	return ok
}

// Equal reports whether s and other contain exactly the same ids.
func (s ShardSet) Equal(other ShardSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members of s in ascending shard-id order.
// decode_concat does not use it: its output follows the caller's order.
func (s ShardSet) Sorted() []ShardID {
	ids := make([]ShardID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	// insertion sort: shard counts here are single digits (N <= 9)
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// ShardMap is an IN/OUT parameter mapping shard-id to an owned shard
// buffer, sparse over [0, N).
type ShardMap map[ShardID][]byte

// legacyToModernSet converts a legacy plain-int-keyed set to a ShardSet.
func legacyToModernSet(legacy map[int]struct{}) ShardSet {
	s := make(ShardSet, len(legacy))
	for id := range legacy {
		s[ShardID(id)] = struct{}{}
	}
	return s
}

// modernToLegacySet converts a ShardSet to a legacy plain-int-keyed set.
func modernToLegacySet(s ShardSet) map[int]struct{} {
	legacy := make(map[int]struct{}, len(s))
	for id := range s {
		legacy[int(id)] = struct{}{}
	}
	return legacy
}

// legacyToModernMap converts a legacy plain-int-keyed shard buffer map to
// a ShardMap.
func legacyToModernMap(legacy map[int][]byte) ShardMap {
	m := make(ShardMap, len(legacy))
	for id, buf := range legacy {
		m[ShardID(id)] = buf
	}
	return m
}

// modernToLegacyMap converts a ShardMap to a legacy plain-int-keyed shard
// buffer map.
func modernToLegacyMap(m ShardMap) map[int][]byte {
	legacy := make(map[int][]byte, len(m))
	for id, buf := range m {
		legacy[int(id)] = buf
	}
	return legacy
}

// legacyToModernIDs converts an ordered legacy id slice to ShardIDs,
// preserving order — required for decode_concat's ordered output.
func legacyToModernIDs(legacy []int) []ShardID {
	ids := make([]ShardID, len(legacy))
	for i, id := range legacy {
		ids[i] = ShardID(id)
	}
	return ids
}

// OptimizationFlags is the bitwise union the host queries through
// SupportedOptimizations.
type OptimizationFlags uint32

const (
	// OptimizedECSupported indicates the codec implements the
	// optimized erasure-coding read/write path.
	OptimizedECSupported OptimizationFlags = 1 << iota
	// ZeroPaddingOptimization indicates the codec tolerates the host
	// zero-padding short writes instead of reading-before-writing.
	ZeroPaddingOptimization
	// partialReadOptimization and the flags below are named for
	// documentation only; neither codec in this plugin sets them,
	// since neither supports partial reads/writes or parity deltas.
	partialReadOptimization
	partialWriteOptimization
	parityDeltaOptimization
)

// RuleCreator is the host collaborator CreateRule delegates to. The host
// object store's placement/CRUSH machinery is out of scope for this
// plugin; this interface is the named contract through which the plugin
// reaches it.
type RuleCreator interface {
	// FindRule returns the id of an already-existing rule with this
	// name, and whether one was found.
	FindRule(name string) (id int, found bool)
	// CreateErasureRule asks the host to add a default, host-level,
	// indep, erasure-typed placement rule for a code with the given
	// data/coding chunk counts, returning its id, or a negative value
	// on failure.
	CreateErasureRule(name string, dataChunks, codingChunks int) (id int, err error)
}

// Codec is the full host-facing plugin interface: chunk accounting,
// rule creation, the minimum-to-decode, encode, decode and decode-concat
// operations in both modern and legacy form, and the always-unsupported
// delta/chunked operations.
type Codec interface {
	Init(profile map[string]string) error

	ChunkCount() int
	DataChunkCount() int
	CodingChunkCount() int
	SubChunkCount() int
	Alignment() int
	MinimumGranularity() int
	ChunkSize(stripeWidth int) int
	ChunkMapping() []ShardID

	CreateRule(name string, rc RuleCreator) (int, error)

	MinimumToDecode(wantToRead, available ShardSet) (ShardSet, error)
	MinimumToDecodeWithCost(wantToRead ShardSet, availableWithCost map[ShardID]int) (ShardSet, error)
	MinimumToDecodeLegacy(wantToRead, available map[int]struct{}) (map[int]struct{}, error)
	MinimumToDecodeWithCostLegacy(wantToRead map[int]struct{}, availableWithCost map[int]int) (map[int]struct{}, error)

	Encode(wantToEncode ShardSet, input []byte) (ShardMap, error)
	EncodeLegacy(wantToEncode map[int]struct{}, input []byte) (map[int][]byte, error)

	Decode(wantToRead ShardSet, chunks ShardMap, chunkSize int) (ShardMap, error)
	DecodeLegacy(wantToRead map[int]struct{}, chunks map[int][]byte, chunkSize int) (map[int][]byte, error)

	DecodeConcat(wantToRead []ShardID, chunks ShardMap, chunkSize int) ([]byte, error)
	DecodeConcatLegacy(wantToRead []int, chunks map[int][]byte, chunkSize int) ([]byte, error)

	EncodeChunks(wantToEncode ShardSet, chunks ShardMap) error
	DecodeChunks(wantToRead ShardSet, chunks ShardMap) error
	EncodeDelta(oldData, newData []byte, chunks ShardMap) ([]byte, error)
	ApplyDelta(delta []byte, chunks ShardMap) error

	SupportedOptimizations() OptimizationFlags

	// Close releases the codec's reference to any underlying native
	// binding. Hosts must call it when done with the codec instance.
	Close()
}
