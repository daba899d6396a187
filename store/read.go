package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/chunked"
	"github.com/ChadGueli/bigboost/pkg/errors"
)

// ReadArray returns a lazy handle on a persisted array. Block boundaries
// match those used at write time: one logical block per stored chunk. No
// chunk is read until a consumer requests its block, and blocks are re-read
// on every request — the handle does not cache.
func (s *Store) ReadArray(group, name string) (*chunked.Array, error) {
	groupDir := filepath.Join(s.path, group)
	if info, err := os.Stat(groupDir); err != nil || !info.IsDir() {
		return nil, errors.NewNotFoundError(s.path, group, "")
	}

	arrDir := filepath.Join(groupDir, name)
	data, err := os.ReadFile(filepath.Join(arrDir, metaFile))
	if err != nil {
		return nil, errors.NewNotFoundError(s.path, group, name)
	}

	var meta arrayMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decoding metadata for %s/%s", group, name)
	}
	if meta.Codec != codecName {
		return nil, errors.Newf("array %s/%s uses unsupported codec %q", group, name, meta.Codec)
	}

	return chunked.New(meta.Rows, meta.Cols, meta.BlockSize, func(b int) (*mat.Dense, error) {
		lo := b * meta.BlockSize
		hi := lo + meta.BlockSize
		if hi > meta.Rows {
			hi = meta.Rows
		}

		raw, err := os.ReadFile(filepath.Join(arrDir, chunkName(b)))
		if err != nil {
			return nil, errors.Wrapf(err, "reading chunk %d of %s/%s", b, group, name)
		}
		vals, err := decodeBlock(raw, hi-lo, meta.Cols)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding chunk %d of %s/%s", b, group, name)
		}
		return mat.NewDense(hi-lo, meta.Cols, vals), nil
	})
}
