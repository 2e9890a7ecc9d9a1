package sqlite

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// encBinary and decBinary wrap rezi's EncBinary/DecBinary for the BLOB
// columns (script source, run output/error text) that get a size-prefixed
// binary encoding instead of a plain TEXT column, matching the teacher's use
// of rezi to put structured values into SQLite blob columns.
func encBinary(v string) ([]byte, error) {
	return rezi.EncBinary(v), nil
}

func decBinary(data []byte, v *string) error {
	n, err := rezi.DecBinary(data, v)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("trailing data after decoding %d of %d bytes", n, len(data))
	}
	return nil
}
