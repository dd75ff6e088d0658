/*
@Description: Shared façade helpers: legacy/modern shims and the always-unsupported operations
@Language: Go 1.23.4
*/

package sizeceph

// The functions in this file are shared by both SizeCephCodec and
// XORCodec: the legacy integer-keyed signatures are thin bijective
// shells over the modern shard-id-keyed ones, and both codecs share a
// single implementation of that conversion rather than duplicating it.

func minimumToDecodeLegacyShim(
	modern func(ShardSet, ShardSet) (ShardSet, error),
	want, available map[int]struct{},
) (map[int]struct{}, error) {
	result, err := modern(legacyToModernSet(want), legacyToModernSet(available))
	if err != nil {
		return nil, err
	}
	return modernToLegacySet(result), nil
}

func minimumToDecodeWithCostLegacyShim(
	modern func(ShardSet, map[ShardID]int) (ShardSet, error),
	want map[int]struct{},
	availableWithCost map[int]int,
) (map[int]struct{}, error) {
	modernCost := make(map[ShardID]int, len(availableWithCost))
	for id, cost := range availableWithCost {
		modernCost[ShardID(id)] = cost
	}
	result, err := modern(legacyToModernSet(want), modernCost)
	if err != nil {
		return nil, err
	}
	return modernToLegacySet(result), nil
}

func encodeLegacyShim(
	modern func(ShardSet, []byte) (ShardMap, error),
	want map[int]struct{},
	input []byte,
) (map[int][]byte, error) {
	result, err := modern(legacyToModernSet(want), input)
	if err != nil {
		return nil, err
	}
	return modernToLegacyMap(result), nil
}

func decodeLegacyShim(
	modern func(ShardSet, ShardMap, int) (ShardMap, error),
	want map[int]struct{},
	chunks map[int][]byte,
	chunkSize int,
) (map[int][]byte, error) {
	result, err := modern(legacyToModernSet(want), legacyToModernMap(chunks), chunkSize)
	if err != nil {
		return nil, err
	}
	return modernToLegacyMap(result), nil
}

// decodeConcatShim runs modern decode and concatenates the per-shard
// results in want's order, zero-filling any shard decode did not return.
// Order preservation is the entire reason this is not simply Sorted() +
// concatenate.
func decodeConcatShim(
	modern func(ShardSet, ShardMap, int) (ShardMap, error),
	want []ShardID,
	chunks ShardMap,
	chunkSize int,
) ([]byte, error) {
	wantSet := make(ShardSet, len(want))
	for _, id := range want {
		wantSet[id] = struct{}{}
	}

	decoded, err := modern(wantSet, chunks, chunkSize)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(want)*chunkSize)
	for _, id := range want {
		buf, ok := decoded[id]
		if !ok {
			out = append(out, make([]byte, chunkSize)...)
			continue
		}
		out = append(out, buf...)
	}
	return out, nil
}

func decodeConcatLegacyShim(
	modern func(ShardSet, ShardMap, int) (ShardMap, error),
	want []int,
	chunks map[int][]byte,
	chunkSize int,
) ([]byte, error) {
	return decodeConcatShim(modern, legacyToModernIDs(want), legacyToModernMap(chunks), chunkSize)
}

// unsupportedChunksOp is shared by both codecs' EncodeChunks/DecodeChunks,
// which always report NOT_SUPPORTED.
func unsupportedChunksOp() error {
	return newStatusErr(StatusNotSupported, "encode_chunks/decode_chunks are not implemented by this plugin")
}

// emptyDelta is shared by both codecs' EncodeDelta: there is no
// representable delta in SizeCeph's non-linear transformation, and the
// XOR codec's own delta is declined for the same reason, to keep one
// consistent behavior across both codecs (see DESIGN.md).
func emptyDelta() ([]byte, error) {
	return []byte{}, nil
}

// clearDeltaTarget is shared by both codecs' ApplyDelta: it clears the
// output map rather than attempting a partial update.
func clearDeltaTarget(chunks ShardMap) error {
	for id := range chunks {
		delete(chunks, id)
	}
	return nil
}
