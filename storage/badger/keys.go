package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/sonnets/core"
)

// Key prefixes for different data types
const (
	documentPrefix    = "docrec"
	documentSumPrefix = "docsum"
)

// makeDocumentKey generates a key for a document by corpus number.
// Format: prefix:number, number in BigEndian so prefix iteration follows corpus order.
func makeDocumentKey(number int) []byte {
	prefix := documentPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(number))
	return buf
}

// documentKeyPrefix is the iteration prefix shared by all document keys.
func documentKeyPrefix() []byte {
	return []byte(documentPrefix + ":")
}

// makeDocumentSumKey generates the content index key for a document ID.
// The stored value is the primary document key.
func makeDocumentSumKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentSumPrefix, id))
}
