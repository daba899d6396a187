package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChadGueli/bigboost/linear"
	"github.com/ChadGueli/bigboost/store"
)

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		nObs:      1000,
		nFts:      5,
		chunk:     100,
		trainFrac: 0.8,
		seed:      42,
		out:       filepath.Join(dir, "data.store"),
		modelPath: filepath.Join(dir, "smallmodel.json"),
		plotPath:  filepath.Join(dir, "predictions.png"),
	}

	require.NoError(t, run(context.Background(), cfg))

	// The store holds the four arrays with the expected split.
	st, err := store.Open(cfg.out)
	require.NoError(t, err)
	defer st.Close()

	trainX, err := st.ReadArray(store.GroupTrain, store.ArrayX)
	require.NoError(t, err)
	testX, err := st.ReadArray(store.GroupTest, store.ArrayX)
	require.NoError(t, err)
	assert.Equal(t, 800, trainX.Rows())
	assert.Equal(t, 200, testX.Rows())
	assert.Equal(t, cfg.nObs, trainX.Rows()+testX.Rows())

	// The serialized model loads and predicts.
	reg := linear.NewRegression()
	require.NoError(t, reg.Load(cfg.modelPath))
	assert.Equal(t, cfg.nFts, reg.NFeatures)

	// The evaluation plot was rendered.
	info, err := os.Stat(cfg.plotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunRefusesExistingPath(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		nObs:      100,
		nFts:      5,
		chunk:     10,
		trainFrac: 0.8,
		seed:      1,
		out:       dir, // already exists
	}
	assert.Error(t, run(context.Background(), cfg))
}

func TestRunRejectsDegenerateSplit(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		nObs:      100,
		nFts:      5,
		chunk:     10,
		trainFrac: 0.01, // rounds down to an empty train region
		seed:      1,
		out:       filepath.Join(dir, "data.store"),
	}
	assert.Error(t, run(context.Background(), cfg))
}
