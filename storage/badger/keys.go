package badger

import (
	"encoding/binary"

	"github.com/casecraft/caselens/core"
)

// Key prefix for cached embedding vectors
const vectorCachePrefix = "veccache"

// makeVectorKey generates a key for a cached vector.
// Format: prefix:model:textID where textID is the 8-byte content hash of the
// text, written BigEndian so keys under one model sort deterministically.
func makeVectorKey(model, text string) []byte {
	prefix := vectorCachePrefix + ":" + model + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(text)))
	return buf
}

// makeModelPrefix generates the key prefix shared by every vector cached for
// one model. Used for model-scoped scans and deletes.
func makeModelPrefix(model string) []byte {
	return []byte(vectorCachePrefix + ":" + model + ":")
}
