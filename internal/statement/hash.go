package statement

import (
	"fmt"
	"strconv"
)

// rowID derives a content-based transaction identifier from the original
// operation-date token, the parsed amount, the description, and the
// 1-based line index. The hash is a rolling 32-bit multiply-by-31
// accumulator over the code points of the seed string, rendered as an
// unsigned base-36 string. It is deterministic for identical inputs and
// stable across re-parses of an unchanged file; it is not
// cryptographically strong and does not need to be.
func rowID(operationDate, amount, description string, index int) string {
	seed := fmt.Sprintf("%s_%s_%s_%d", operationDate, amount, description, index)

	var h int32
	for _, r := range seed {
		h = (h << 5) - h + int32(r)
	}
	return strconv.FormatUint(uint64(uint32(h)), 36)
}
