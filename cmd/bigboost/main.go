// Command bigboost runs the out-of-core training walkthrough end to end:
// generate a chunked synthetic feature table, derive the Friedman target,
// persist both to a partitioned store split into train and test groups,
// reload them lazily, fit the linear collaborator on the train split, score
// it on the held-out test split, and serialize the fitted model.
package main

import (
	"context"
	"flag"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ChadGueli/bigboost/chunked"
	"github.com/ChadGueli/bigboost/dataset"
	"github.com/ChadGueli/bigboost/linear"
	"github.com/ChadGueli/bigboost/metrics"
	"github.com/ChadGueli/bigboost/pkg/errors"
	"github.com/ChadGueli/bigboost/pkg/log"
	"github.com/ChadGueli/bigboost/store"
)

type config struct {
	nObs      int
	nFts      int
	chunk     int
	trainFrac float64
	seed      uint64
	out       string
	modelPath string
	plotPath  string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.nObs, "obs", 100_000, "number of observations")
	flag.IntVar(&cfg.nFts, "features", 20, "number of feature columns")
	flag.IntVar(&cfg.chunk, "chunk", 10_000, "rows per block")
	flag.Float64Var(&cfg.trainFrac, "train", 0.8, "fraction of rows in the train split (rounded down to a block boundary)")
	flag.Uint64Var(&cfg.seed, "seed", 42, "base random seed")
	flag.StringVar(&cfg.out, "out", "data.store", "store directory (must not exist)")
	flag.StringVar(&cfg.modelPath, "model", "smallmodel.json", "output file for the fitted model")
	flag.StringVar(&cfg.plotPath, "plot", "predictions.png", "predicted-vs-actual scatter output (empty to skip)")
	level := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	flag.Parse()

	log.SetLevel(log.ParseLevel(*level))
	logger := log.GetLoggerWithName("bigboost")

	if err := run(context.Background(), cfg); err != nil {
		logger.Fatal().Err(err).Msg("pipeline failed")
	}
}

func run(ctx context.Context, cfg config) error {
	logger := log.GetLoggerWithName("bigboost")

	if _, err := os.Stat(cfg.out); err == nil {
		return errors.Newf("store path %s already exists; remove it to re-initialize", cfg.out)
	}

	// Stage 1: lazy generation. Nothing is computed yet.
	features, err := dataset.Uniform(cfg.nObs, cfg.nFts, cfg.chunk, cfg.seed)
	if err != nil {
		return err
	}
	target, err := dataset.Friedman(features, cfg.seed+1)
	if err != nil {
		return err
	}

	// The split boundary must land on a block boundary so both regions keep
	// the block-wise partitioning.
	nTrn := int(cfg.trainFrac * float64(cfg.nObs))
	nTrn -= nTrn % cfg.chunk
	if nTrn <= 0 || nTrn >= cfg.nObs {
		return errors.NewConfigError("train", "split leaves an empty train or test region", cfg.trainFrac)
	}
	logger.Info().
		Int("obs", cfg.nObs).
		Int("features", cfg.nFts).
		Int("chunk", cfg.chunk).
		Int("train_rows", nTrn).
		Int("test_rows", cfg.nObs-nTrn).
		Msg("pipeline configured")

	// Stage 2: force evaluation into the partitioned store.
	if err := populate(ctx, cfg.out, features, target, nTrn); err != nil {
		return err
	}

	// Stage 3: reopen read-only and hand the materialized splits to the
	// modeling collaborator.
	st, err := store.Open(cfg.out)
	if err != nil {
		return err
	}
	defer st.Close()

	trainX, trainY, err := materializeSplit(ctx, st, store.GroupTrain)
	if err != nil {
		return err
	}

	reg := linear.NewRegression()
	if err := reg.Fit(trainX, trainY); err != nil {
		return err
	}

	// Stage 4: evaluate on the held-out split.
	testX, testY, err := materializeSplit(ctx, st, store.GroupTest)
	if err != nil {
		return err
	}
	preds, err := reg.Predict(testX)
	if err != nil {
		return err
	}

	yTrue, err := metrics.VecFromColumn(testY)
	if err != nil {
		return err
	}
	yPred, err := metrics.VecFromColumn(preds)
	if err != nil {
		return err
	}
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return err
	}
	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return err
	}
	logger.Info().
		Float64("rmse", rmse).
		Float64("r2", r2).
		Msg("evaluation complete")

	// Stage 5: serialize the fitted model and the evaluation plot.
	if err := reg.Export(cfg.modelPath); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.modelPath).Msg("model saved")

	if cfg.plotPath != "" {
		if err := writeScatter(cfg.plotPath, yTrue, yPred); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.plotPath).Msg("scatter plot saved")
	}
	return nil
}

// populate writes the train/test split of X and y and closes the writer so
// readers may open the path.
func populate(ctx context.Context, path string, features, target *chunked.Array, nTrn int) error {
	st, err := store.Create(path)
	if err != nil {
		return err
	}

	splits := []struct {
		group  string
		lo, hi int
	}{
		{store.GroupTrain, 0, nTrn},
		{store.GroupTest, nTrn, features.Rows()},
	}
	for _, sp := range splits {
		x, err := features.Slice(sp.lo, sp.hi)
		if err != nil {
			return err
		}
		y, err := target.Slice(sp.lo, sp.hi)
		if err != nil {
			return err
		}
		if err := st.WriteArray(ctx, sp.group, store.ArrayX, x); err != nil {
			return err
		}
		if err := st.WriteArray(ctx, sp.group, store.ArrayY, y); err != nil {
			return err
		}
	}
	return st.Close()
}

func materializeSplit(ctx context.Context, st *store.Store, group string) (x, y *mat.Dense, err error) {
	lazyX, err := st.ReadArray(group, store.ArrayX)
	if err != nil {
		return nil, nil, err
	}
	lazyY, err := st.ReadArray(group, store.ArrayY)
	if err != nil {
		return nil, nil, err
	}

	if x, err = lazyX.Materialize(ctx); err != nil {
		return nil, nil, err
	}
	if y, err = lazyY.Materialize(ctx); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// writeScatter saves a predicted-vs-actual scatter of at most maxPoints
// test rows.
func writeScatter(path string, yTrue, yPred *mat.VecDense) error {
	const maxPoints = 2000

	n := yTrue.Len()
	stride := 1
	if n > maxPoints {
		stride = n / maxPoints
	}

	pts := make(plotter.XYs, 0, maxPoints)
	for i := 0; i < n; i += stride {
		pts = append(pts, plotter.XY{X: yTrue.AtVec(i), Y: yPred.AtVec(i)})
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot %s", path)
	}
	return nil
}
