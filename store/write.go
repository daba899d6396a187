package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/chunked"
	"github.com/ChadGueli/bigboost/pkg/errors"
)

// arrayMeta describes a persisted array. It is committed last, after every
// chunk, so its presence marks the array as fully populated.
type arrayMeta struct {
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	BlockSize int    `json:"block_size"`
	NumBlocks int    `json:"num_blocks"`
	Codec     string `json:"codec"`
	DType     string `json:"dtype"`
}

func chunkName(b int) string {
	return fmt.Sprintf("chunk-%06d", b)
}

// WriteArray forces every block of the array and persists each one as an
// independently compressed chunk under group/name. The group must already
// exist (Create runs first); the array must not have been populated before.
//
// Blocks are written by parallel tasks with no ordering between them; each
// block lands in its own file, so layout does not depend on completion
// order. A failed block cancels the remaining work and leaves the array
// partially populated with no metadata — the caller must re-initialize the
// path rather than resume.
func (s *Store) WriteArray(ctx context.Context, group, name string, a *chunked.Array) (err error) {
	defer errors.Recover(&err, "store.WriteArray")

	if err := s.writable(); err != nil {
		return err
	}
	if a == nil {
		return errors.NewConfigError("array", "array is required", nil)
	}

	groupDir := filepath.Join(s.path, group)
	if info, err := os.Stat(groupDir); err != nil || !info.IsDir() {
		return errors.NewMissingContainerError(s.path, group)
	}

	arrDir := filepath.Join(groupDir, name)
	if _, err := os.Stat(filepath.Join(arrDir, metaFile)); err == nil {
		return errors.NewConflictError(s.path, group, name)
	}
	if err := os.MkdirAll(arrDir, 0o750); err != nil {
		return errors.Wrapf(err, "creating array directory %s", arrDir)
	}

	err = a.ForEach(ctx, 0, func(b, _ int, m *mat.Dense) error {
		return writeChunk(filepath.Join(arrDir, chunkName(b)), m)
	})
	if err != nil {
		return errors.Wrapf(err, "writing array %s/%s", group, name)
	}

	meta := arrayMeta{
		Rows:      a.Rows(),
		Cols:      a.Cols(),
		BlockSize: a.BlockSize(),
		NumBlocks: a.NumBlocks(),
		Codec:     codecName,
		DType:     "float64-le",
	}
	if err := writeMeta(filepath.Join(arrDir, metaFile), &meta); err != nil {
		return errors.Wrapf(err, "committing array %s/%s", group, name)
	}

	s.logger.Info().
		Str("group", group).
		Str("array", name).
		Int("rows", meta.Rows).
		Int("cols", meta.Cols).
		Int("blocks", meta.NumBlocks).
		Msg("array written")
	return nil
}

// writeChunk persists one compressed block. O_EXCL gives best-effort
// detection of a second writer racing on the same array.
func writeChunk(path string, m *mat.Dense) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(err, "chunk %s already exists (concurrent writer?)", filepath.Base(path))
		}
		return errors.Wrapf(err, "creating chunk %s", path)
	}

	if _, err := f.Write(encodeBlock(m)); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing chunk %s", path)
	}
	return f.Close()
}

// writeMeta commits metadata through a rename so readers never observe a
// torn file.
func writeMeta(path string, meta *arrayMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return os.Rename(tmp, path)
}
