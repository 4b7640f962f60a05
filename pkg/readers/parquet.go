/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parquet.go
Description: Parquet source kind. The detector recognizes Parquet files by extension
and magic bytes, but no columnar reader is built into this binary, so opening one
reports a capability-unavailable error at the reader boundary.
*/

package readers

import (
	"context"
	"fmt"
)

// parquetMagic frames both ends of a Parquet file.
const parquetMagic = "PAR1"

func init() {
	Register("parquet", openParquet)
}

func openParquet(_ context.Context, path string) (RecordReader, error) {
	return nil, fmt.Errorf("parquet source %s: %w", path, ErrCapabilityUnavailable)
}
