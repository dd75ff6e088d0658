/*
@Description: Operational counters for the SizeCeph erasure-code plugin
@Language: Go 1.23.4
*/

package sizeceph

import (
	"fmt"
	"sync/atomic"
)

// Stats contains the operational counters for a codec instance. All fields
// are uint64 and must be accessed using atomic operations; the plugin never
// logs on the data path, so these counters are the only observability
// surface.
type Stats struct {
	EncodeOps             uint64 // successful encode() calls
	DecodeOps             uint64 // successful decode() calls
	EncodeBytesIn         uint64 // total bytes passed to encode()
	DecodeBytesOut        uint64 // total bytes reconstructed by decode()
	NativeLoadFailures    uint64 // Load() calls that left the binding unloaded
	InsufficientShards    uint64 // decode() calls rejected for missing shards
	UnrecoverablePatterns uint64 // decode() calls rejected by can_restore
	NativeIOErrors        uint64 // native split/restore calls returning non-zero
}

// NewStats returns a zeroed Stats block.
func NewStats() *Stats {
	return new(Stats)
}

// Header returns column headers matching the order of ToSlice.
func (s *Stats) Header() []string {
	return []string{
		"EncodeOps",
		"DecodeOps",
		"EncodeBytesIn",
		"DecodeBytesOut",
		"NativeLoadFailures",
		"InsufficientShards",
		"UnrecoverablePatterns",
		"NativeIOErrors",
	}
}

// ToSlice renders a thread-safe snapshot of the counters as strings.
func (s *Stats) ToSlice() []string {
	snap := s.Copy()
	return []string{
		fmt.Sprint(snap.EncodeOps),
		fmt.Sprint(snap.DecodeOps),
		fmt.Sprint(snap.EncodeBytesIn),
		fmt.Sprint(snap.DecodeBytesOut),
		fmt.Sprint(snap.NativeLoadFailures),
		fmt.Sprint(snap.InsufficientShards),
		fmt.Sprint(snap.UnrecoverablePatterns),
		fmt.Sprint(snap.NativeIOErrors),
	}
}

// Copy returns a consistent snapshot of the counters.
func (s *Stats) Copy() *Stats {
	d := NewStats()
	d.EncodeOps = atomic.LoadUint64(&s.EncodeOps)
	d.DecodeOps = atomic.LoadUint64(&s.DecodeOps)
	d.EncodeBytesIn = atomic.LoadUint64(&s.EncodeBytesIn)
	d.DecodeBytesOut = atomic.LoadUint64(&s.DecodeBytesOut)
	d.NativeLoadFailures = atomic.LoadUint64(&s.NativeLoadFailures)
	d.InsufficientShards = atomic.LoadUint64(&s.InsufficientShards)
	d.UnrecoverablePatterns = atomic.LoadUint64(&s.UnrecoverablePatterns)
	d.NativeIOErrors = atomic.LoadUint64(&s.NativeIOErrors)
	return d
}

// Reset atomically zeroes all counters.
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.EncodeOps, 0)
	atomic.StoreUint64(&s.DecodeOps, 0)
	atomic.StoreUint64(&s.EncodeBytesIn, 0)
	atomic.StoreUint64(&s.DecodeBytesOut, 0)
	atomic.StoreUint64(&s.NativeLoadFailures, 0)
	atomic.StoreUint64(&s.InsufficientShards, 0)
	atomic.StoreUint64(&s.UnrecoverablePatterns, 0)
	atomic.StoreUint64(&s.NativeIOErrors, 0)
}
