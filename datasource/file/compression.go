package file

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

type format int

const (
	formatDSV format = iota
	formatTSV
	formatJSONL
	formatSQLite
)

type compression int

const (
	compressionNone compression = iota
	compressionLZ4
	compressionZstd
)

// detect determines the format and compression of a file from its extensions, e.g. "data.csv.zst"
func detect(path string) (format, compression) {
	ext := strings.ToLower(filepath.Ext(path))
	comp := compressionNone
	switch ext {
	case ".lz4":
		comp = compressionLZ4
	case ".zst", ".zstd":
		comp = compressionZstd
	}
	if comp != compressionNone {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".tsv", ".tab":
		return formatTSV, comp
	case ".jsonl", ".ndjson":
		return formatJSONL, comp
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite, compressionNone
	default:
		return formatDSV, comp
	}
}

// decompress wraps r according to comp. The returned function releases decoder resources.
func decompress(r io.Reader, comp compression) (io.Reader, func(), error) {
	switch comp {
	case compressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	case compressionZstd:
		decompressor, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return decompressor, decompressor.Close, nil
	default:
		return r, func() {}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compress wraps w according to comp. The returned writer must be closed to flush compressed data.
func compress(w io.Writer, comp compression) (io.WriteCloser, error) {
	switch comp {
	case compressionLZ4:
		return lz4.NewWriter(w), nil
	case compressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nopWriteCloser{w}, nil
	}
}
