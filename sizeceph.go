/*
@Description: SizeCeph (k=4, m=5) always-decode erasure codec
@Language: Go 1.23.4
*/

package sizeceph

import (
	"sync"
	"sync/atomic"

	"sizeceph/nativecodec"
)

// SizeCeph codec configuration constants.
const (
	SizeCephK = 4   // data shard count, host-visible
	SizeCephM = 5   // parity shard count, host-visible
	SizeCephN = SizeCephK + SizeCephM
	SizeCephA = 4   // internal codec block size, in bytes
	SizeCephG = 512 // storage-alignment granularity, in bytes
)

// SizeCephCodec implements Codec for the SizeCeph always-decode code.
// Its shape — data/parity shard counts, a handle to the native codec
// binding, and atomic op counters — follows the teacher's fecEncoder/
// fecDecoder pair (fec.go), generalized from Reed-Solomon FEC over UDP
// packets to SizeCeph's non-linear, always-decode transform over a
// dlopen'd native library.
type SizeCephCodec struct {
	k, m, n int
	a, g    int

	binding *nativecodec.Binding
	stats   *Stats

	rulesMu sync.Mutex
	rules   map[string]int
}

// NewSizeCephCodec returns an unconstructed SizeCephCodec; Init must be
// called before use.
func NewSizeCephCodec() *SizeCephCodec {
	return &SizeCephCodec{
		k: SizeCephK, m: SizeCephM, n: SizeCephN,
		a: SizeCephA, g: SizeCephG,
		stats: NewStats(),
		rules: make(map[string]int),
	}
}

// Stats returns the codec instance's operational counters.
func (c *SizeCephCodec) Stats() *Stats { return c.stats }

// Init validates the profile's k/m/technique settings and loads the
// native codec. force_all_chunks accepts either the legacy k=9,m=0 shape
// or the standard k=4,m=5 shape; both are "all shards required" at
// runtime, so c.k/c.m simply take whichever shape validated.
func (c *SizeCephCodec) Init(profile map[string]string) error {
	cfg, err := parseProfile(profile, SizeCephK, SizeCephM, TechniqueSizeCeph)
	if err != nil {
		return wrapStatusErr(StatusInvalid, err)
	}
	if cfg.technique != TechniqueSizeCeph {
		return newStatusErr(StatusInvalid, "technique must be \"sizeceph\"")
	}

	standard := cfg.k == SizeCephK && cfg.m == SizeCephM
	legacyAllChunks := cfg.k == SizeCephN && cfg.m == 0
	if cfg.hasForceAll && cfg.forceAllChunks {
		if !standard && !legacyAllChunks {
			return newStatusErr(StatusInvalid, "force_all_chunks requires k=9,m=0 or k=4,m=5")
		}
	} else if !standard {
		return newStatusErr(StatusInvalid, "k must equal 4 and m must equal 5")
	}

	binding, err := nativecodec.Load()
	if err != nil {
		atomic.AddUint64(&c.stats.NativeLoadFailures, 1)
		return wrapStatusErr(StatusNotFound, err)
	}

	c.k, c.m = cfg.k, cfg.m
	c.n = c.k + c.m
	c.binding = binding
	return nil
}

func (c *SizeCephCodec) ChunkCount() int        { return c.n }
func (c *SizeCephCodec) DataChunkCount() int    { return c.k }
func (c *SizeCephCodec) CodingChunkCount() int  { return c.m }
func (c *SizeCephCodec) SubChunkCount() int     { return 1 }
func (c *SizeCephCodec) Alignment() int         { return c.a }
func (c *SizeCephCodec) MinimumGranularity() int { return c.a }

// ChunkSize returns the per-shard byte count for the given stripe width.
func (c *SizeCephCodec) ChunkSize(stripeWidth int) int {
	return chunkSize(stripeWidth, c.k, c.a)
}

// ChunkMapping returns the identity permutation [0, n).
func (c *SizeCephCodec) ChunkMapping() []ShardID {
	m := make([]ShardID, c.n)
	for i := range m {
		m[i] = ShardID(i)
	}
	return m
}

// CreateRule reuses an existing rule with this name, or asks the host to
// create a default/host-level/indep/erasure rule.
func (c *SizeCephCodec) CreateRule(name string, rc RuleCreator) (int, error) {
	c.rulesMu.Lock()
	defer c.rulesMu.Unlock()

	if id, ok := rc.FindRule(name); ok {
		return id, nil
	}
	id, err := rc.CreateErasureRule(name, c.k, c.m)
	if err != nil {
		return id, wrapStatusErr(StatusIO, err)
	}
	return id, nil
}

// MinimumToDecode implements the always-decode policy: success iff
// available contains every id in [0, n); on success the returned
// minimum is exactly available.
func (c *SizeCephCodec) MinimumToDecode(wantToRead, available ShardSet) (ShardSet, error) {
	for i := 0; i < c.n; i++ {
		if !available.Contains(ShardID(i)) {
			return nil, newStatusErr(StatusIO, "available shards do not cover [0, n)")
		}
	}
	return available, nil
}

// MinimumToDecodeWithCost ignores the per-shard costs: the policy is
// set-determined, not cost-determined.
func (c *SizeCephCodec) MinimumToDecodeWithCost(wantToRead ShardSet, availableWithCost map[ShardID]int) (ShardSet, error) {
	available := make(ShardSet, len(availableWithCost))
	for id := range availableWithCost {
		available[id] = struct{}{}
	}
	return c.MinimumToDecode(wantToRead, available)
}

func (c *SizeCephCodec) MinimumToDecodeLegacy(want, available map[int]struct{}) (map[int]struct{}, error) {
	return minimumToDecodeLegacyShim(c.MinimumToDecode, want, available)
}

func (c *SizeCephCodec) MinimumToDecodeWithCostLegacy(want map[int]struct{}, availableWithCost map[int]int) (map[int]struct{}, error) {
	return minimumToDecodeWithCostLegacyShim(c.MinimumToDecodeWithCost, want, availableWithCost)
}

// Encode splits input into N shard buffers via the native codec.
func (c *SizeCephCodec) Encode(wantToEncode ShardSet, input []byte) (ShardMap, error) {
	if c.binding == nil {
		return nil, newStatusErr(StatusNotFound, "native binding not loaded")
	}
	if !wantToEncode.Equal(Range(c.n)) {
		return nil, newStatusErr(StatusInvalid, "want_to_encode must equal [0, n) exactly")
	}
	if len(input)%c.a != 0 {
		return nil, newStatusErr(StatusInvalid, "input length must be a multiple of the alignment")
	}

	out := make(ShardMap, c.n)

	if len(input) == 0 {
		for i := 0; i < c.n; i++ {
			out[ShardID(i)] = []byte{}
		}
		atomic.AddUint64(&c.stats.EncodeOps, 1)
		return out, nil
	}

	shardLen := len(input) / c.a
	bufs := make([][]byte, c.n)
	for i := range bufs {
		bufs[i] = make([]byte, shardLen)
		out[ShardID(i)] = bufs[i]
	}

	if err := c.binding.Split(bufs, input); err != nil {
		atomic.AddUint64(&c.stats.NativeIOErrors, 1)
		return nil, wrapStatusErr(StatusIO, err)
	}

	atomic.AddUint64(&c.stats.EncodeOps, 1)
	atomic.AddUint64(&c.stats.EncodeBytesIn, uint64(len(input)))
	return out, nil
}

func (c *SizeCephCodec) EncodeLegacy(want map[int]struct{}, input []byte) (map[int][]byte, error) {
	return encodeLegacyShim(c.Encode, want, input)
}

// Decode restores the original input from all N shards and slices out
// the requested data shards; requested parity shards come back empty.
func (c *SizeCephCodec) Decode(wantToRead ShardSet, chunks ShardMap, chunkSizeArg int) (ShardMap, error) {
	if c.binding == nil {
		return nil, newStatusErr(StatusNotFound, "native binding not loaded")
	}

	for i := 0; i < c.n; i++ {
		if _, ok := chunks[ShardID(i)]; !ok {
			atomic.AddUint64(&c.stats.InsufficientShards, 1)
			return nil, newStatusErr(StatusNotFound, "decode requires every shard in [0, n)")
		}
	}

	cs := chunkSizeArg
	if cs <= 0 {
		for _, buf := range chunks {
			cs = len(buf)
			break
		}
	}
	if cs <= 0 {
		return nil, newStatusErr(StatusInvalid, "chunk_size must be > 0 and could not be inferred")
	}

	nativeShards := make([][]byte, c.n)
	for i := 0; i < c.n; i++ {
		nativeShards[i] = chunks[ShardID(i)]
	}

	if !c.binding.CanRestore(nativeShards) {
		atomic.AddUint64(&c.stats.UnrecoverablePatterns, 1)
		return nil, newStatusErr(StatusNotSupported, "shard pattern is not recoverable")
	}

	originalLen := c.a * cs
	restored := make([]byte, originalLen)
	if err := c.binding.Restore(restored, nativeShards); err != nil {
		atomic.AddUint64(&c.stats.NativeIOErrors, 1)
		return nil, wrapStatusErr(StatusIO, err)
	}

	perShard := originalLen / c.k
	out := make(ShardMap, len(wantToRead))
	for id := range wantToRead {
		switch {
		case int(id) < c.k:
			start := int(id) * perShard
			end := start + perShard
			if int(id) == c.k-1 {
				end = originalLen
			}
			out[id] = append([]byte(nil), restored[start:end]...)
		case int(id) < c.n:
			out[id] = []byte{}
		default:
			return nil, newStatusErr(StatusInvalid, "shard id out of range")
		}
	}

	atomic.AddUint64(&c.stats.DecodeOps, 1)
	atomic.AddUint64(&c.stats.DecodeBytesOut, uint64(originalLen))
	return out, nil
}

func (c *SizeCephCodec) DecodeLegacy(want map[int]struct{}, chunks map[int][]byte, chunkSize int) (map[int][]byte, error) {
	return decodeLegacyShim(c.Decode, want, chunks, chunkSize)
}

func (c *SizeCephCodec) DecodeConcat(wantToRead []ShardID, chunks ShardMap, chunkSize int) ([]byte, error) {
	return decodeConcatShim(c.Decode, wantToRead, chunks, chunkSize)
}

func (c *SizeCephCodec) DecodeConcatLegacy(want []int, chunks map[int][]byte, chunkSize int) ([]byte, error) {
	return decodeConcatLegacyShim(c.Decode, want, chunks, chunkSize)
}

// EncodeChunks and DecodeChunks are unsupported by this plugin.
func (c *SizeCephCodec) EncodeChunks(wantToEncode ShardSet, chunks ShardMap) error { return unsupportedChunksOp() }
func (c *SizeCephCodec) DecodeChunks(wantToRead ShardSet, chunks ShardMap) error   { return unsupportedChunksOp() }

// EncodeDelta returns an empty delta and ApplyDelta clears chunks:
// SizeCeph's transform is non-linear, so no delta is representable.
func (c *SizeCephCodec) EncodeDelta(oldData, newData []byte, chunks ShardMap) ([]byte, error) {
	return emptyDelta()
}
func (c *SizeCephCodec) ApplyDelta(delta []byte, chunks ShardMap) error {
	return clearDeltaTarget(chunks)
}

// SupportedOptimizations reports optimized-EC and zero-padding support
// only; no partial-read/write or parity-delta flags.
func (c *SizeCephCodec) SupportedOptimizations() OptimizationFlags {
	return OptimizedECSupported | ZeroPaddingOptimization
}

// Close releases the codec's reference to the shared native binding.
func (c *SizeCephCodec) Close() {
	if c.binding != nil {
		c.binding.Release()
		c.binding = nil
	}
}
