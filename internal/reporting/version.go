package reporting

import (
	"crypto/sha256"
	"strconv"

	"github.com/mr-tron/base58"

	"sqa-dashboard/internal/domain"
)

// DataVersion fingerprints a dataset: base58 of SHA-256 over the header
// and every cell. Missing cells hash differently from empty text, so a
// filled and an unfilled table never collide.
func DataVersion(ds domain.Dataset) string {
	h := sha256.New()

	for _, col := range ds.Columns {
		h.Write([]byte(col))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})

	for i := range ds.Rows {
		h.Write([]byte(strconv.Itoa(i)))
		for j := range ds.Columns {
			c := ds.Cell(i, j)
			if c.Missing {
				h.Write([]byte{0x00})
			} else {
				h.Write([]byte{0x01})
				h.Write([]byte(c.Raw))
			}
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}

	return base58.Encode(h.Sum(nil))
}
