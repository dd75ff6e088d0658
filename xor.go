/*
@Description: Simple XOR (k=2, m=1) erasure codec sharing the plugin façade
@Language: Go 1.23.4
*/

package sizeceph

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/templexxx/xorsimd"
)

// XOR codec configuration constants.
const (
	XORK = 2
	XORM = 1
	XORN = XORK + XORM
)

// xorAlignment is sizeof(int) on the host platform.
var xorAlignment = int(unsafe.Sizeof(int(0)))

// XORCodec implements Codec for the trivial XOR parity code. It shares
// the same façade as SizeCephCodec but needs no native binding: encode
// is driven directly by xorsimd.Encode and decode by xorsimd.Bytes,
// architecture-tuned XOR combines that are byte-identical to a naive XOR
// loop.
type XORCodec struct {
	stats *Stats

	rulesMu sync.Mutex
	rules   map[string]int
}

// NewXORCodec returns an unconstructed XORCodec; Init must be called
// before use.
func NewXORCodec() *XORCodec {
	return &XORCodec{
		stats: NewStats(),
		rules: make(map[string]int),
	}
}

// Stats returns the codec instance's operational counters.
func (c *XORCodec) Stats() *Stats { return c.stats }

// Init validates that the profile requests exactly k=2, m=1; any other
// values fail with INVALID.
func (c *XORCodec) Init(profile map[string]string) error {
	cfg, err := parseProfile(profile, XORK, XORM, TechniqueXOR)
	if err != nil {
		return wrapStatusErr(StatusInvalid, err)
	}
	if cfg.technique != TechniqueXOR {
		return newStatusErr(StatusInvalid, "technique must be \"simple_xor\"")
	}
	if cfg.k != XORK || cfg.m != XORM {
		return newStatusErr(StatusInvalid, "simple_xor requires k=2, m=1")
	}
	return nil
}

func (c *XORCodec) ChunkCount() int        { return XORN }
func (c *XORCodec) DataChunkCount() int    { return XORK }
func (c *XORCodec) CodingChunkCount() int  { return XORM }
func (c *XORCodec) SubChunkCount() int     { return 1 }
func (c *XORCodec) Alignment() int         { return xorAlignment }
func (c *XORCodec) MinimumGranularity() int { return xorAlignment }

func (c *XORCodec) ChunkSize(stripeWidth int) int {
	return chunkSize(stripeWidth, XORK, xorAlignment)
}

func (c *XORCodec) ChunkMapping() []ShardID {
	return []ShardID{0, 1, 2}
}

func (c *XORCodec) CreateRule(name string, rc RuleCreator) (int, error) {
	c.rulesMu.Lock()
	defer c.rulesMu.Unlock()

	if id, ok := rc.FindRule(name); ok {
		return id, nil
	}
	id, err := rc.CreateErasureRule(name, XORK, XORM)
	if err != nil {
		return id, wrapStatusErr(StatusIO, err)
	}
	return id, nil
}

// MinimumToDecode follows the host's jerasure-style conditional model:
// decode is only invoked when erasures exist, so any available set
// containing at least k=2 of the 3 shards is sufficient.
func (c *XORCodec) MinimumToDecode(wantToRead, available ShardSet) (ShardSet, error) {
	present := 0
	for id := range available {
		if id >= 0 && id < XORN {
			present++
		}
	}
	if present < XORK {
		return nil, newStatusErr(StatusIO, "fewer than k shards available")
	}
	return available, nil
}

func (c *XORCodec) MinimumToDecodeWithCost(wantToRead ShardSet, availableWithCost map[ShardID]int) (ShardSet, error) {
	available := make(ShardSet, len(availableWithCost))
	for id := range availableWithCost {
		available[id] = struct{}{}
	}
	return c.MinimumToDecode(wantToRead, available)
}

func (c *XORCodec) MinimumToDecodeLegacy(want, available map[int]struct{}) (map[int]struct{}, error) {
	return minimumToDecodeLegacyShim(c.MinimumToDecode, want, available)
}

func (c *XORCodec) MinimumToDecodeWithCostLegacy(want map[int]struct{}, availableWithCost map[int]int) (map[int]struct{}, error) {
	return minimumToDecodeWithCostLegacyShim(c.MinimumToDecodeWithCost, want, availableWithCost)
}

// Encode computes parity = data[0] XOR data[1] via xorsimd.Encode.
func (c *XORCodec) Encode(wantToEncode ShardSet, input []byte) (ShardMap, error) {
	if !wantToEncode.Equal(Range(XORN)) {
		return nil, newStatusErr(StatusInvalid, "want_to_encode must equal [0, 3)")
	}
	half := len(input) / XORK
	if half*XORK != len(input) {
		return nil, newStatusErr(StatusInvalid, "input length must be a multiple of k")
	}

	d0 := input[:half]
	d1 := input[half:]
	parity := make([]byte, half)
	xorsimd.Encode(parity, [][]byte{d0, d1})

	atomic.AddUint64(&c.stats.EncodeOps, 1)
	atomic.AddUint64(&c.stats.EncodeBytesIn, uint64(len(input)))

	return ShardMap{
		0: append([]byte(nil), d0...),
		1: append([]byte(nil), d1...),
		2: parity,
	}, nil
}

func (c *XORCodec) EncodeLegacy(want map[int]struct{}, input []byte) (map[int][]byte, error) {
	return encodeLegacyShim(c.Encode, want, input)
}

// Decode reconstructs whichever single shard is missing from chunks by
// XORing the two present shards together.
func (c *XORCodec) Decode(wantToRead ShardSet, chunks ShardMap, chunkSize int) (ShardMap, error) {
	present := 0
	for id := ShardID(0); id < XORN; id++ {
		if _, ok := chunks[id]; ok {
			present++
		}
	}
	if present < XORK {
		return nil, newStatusErr(StatusNotFound, "fewer than k shards available to decode")
	}

	out := make(ShardMap, len(wantToRead))
	for id := range wantToRead {
		if buf, ok := chunks[id]; ok {
			out[id] = append([]byte(nil), buf...)
			continue
		}
		recovered, err := c.reconstruct(id, chunks)
		if err != nil {
			return nil, err
		}
		out[id] = recovered
	}

	atomic.AddUint64(&c.stats.DecodeOps, 1)
	return out, nil
}

func (c *XORCodec) reconstruct(missing ShardID, chunks ShardMap) ([]byte, error) {
	switch missing {
	case 0:
		return xorPair(chunks[1], chunks[2])
	case 1:
		return xorPair(chunks[0], chunks[2])
	case 2:
		return xorPair(chunks[0], chunks[1])
	default:
		return nil, newStatusErr(StatusInvalid, "shard id out of range for simple_xor")
	}
}

func xorPair(a, b []byte) ([]byte, error) {
	if a == nil || b == nil {
		return nil, newStatusErr(StatusNotFound, "both dependencies of the missing shard must be present")
	}
	out := make([]byte, len(a))
	xorsimd.Bytes(out, a, b)
	return out, nil
}

func (c *XORCodec) DecodeLegacy(want map[int]struct{}, chunks map[int][]byte, chunkSize int) (map[int][]byte, error) {
	return decodeLegacyShim(c.Decode, want, chunks, chunkSize)
}

func (c *XORCodec) DecodeConcat(wantToRead []ShardID, chunks ShardMap, chunkSize int) ([]byte, error) {
	return decodeConcatShim(c.Decode, wantToRead, chunks, chunkSize)
}

func (c *XORCodec) DecodeConcatLegacy(want []int, chunks map[int][]byte, chunkSize int) ([]byte, error) {
	return decodeConcatLegacyShim(c.Decode, want, chunks, chunkSize)
}

func (c *XORCodec) EncodeChunks(wantToEncode ShardSet, chunks ShardMap) error { return unsupportedChunksOp() }
func (c *XORCodec) DecodeChunks(wantToRead ShardSet, chunks ShardMap) error   { return unsupportedChunksOp() }

func (c *XORCodec) EncodeDelta(oldData, newData []byte, chunks ShardMap) ([]byte, error) {
	return emptyDelta()
}

// ApplyDelta resolves to clearing the output map here too, matching the
// rest of the façade, even though the XOR transform is linear enough
// that a real incremental update would have been possible.
func (c *XORCodec) ApplyDelta(delta []byte, chunks ShardMap) error {
	return clearDeltaTarget(chunks)
}

func (c *XORCodec) SupportedOptimizations() OptimizationFlags {
	return OptimizedECSupported | ZeroPaddingOptimization
}

func (c *XORCodec) Close() {}
