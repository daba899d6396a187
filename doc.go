// Package bigboost demonstrates an out-of-core regression training
// pipeline in Go: synthetic data generation over lazily evaluated chunked
// arrays, a compressed partitioned on-disk store with a train/test layout,
// and evaluation of a pluggable modeling collaborator.
//
// The pipeline runs once, leaves-first:
//
//	generate features -> synthesize targets -> persist split -> reload -> fit -> evaluate -> serialize
//
// # Packages
//
//   - chunked: lazy row-partitioned arrays and parallel force evaluation
//   - dataset: uniform feature generator and Friedman #1 target synthesizer
//   - store: directory-based partitioned store with zstd-compressed blocks
//   - core/model: the modeling-collaborator contract and model persistence
//   - linear: the reference least-squares collaborator
//   - metrics: regression metrics for the held-out evaluation
//
// # Quick start
//
//	X, _ := dataset.Uniform(100_000, 20, 10_000, 42)
//	y, _ := dataset.Friedman(X, 43)
//
//	st, _ := store.Create("data.store")
//	trainX, _ := X.Slice(0, 80_000)
//	_ = st.WriteArray(ctx, store.GroupTrain, store.ArrayX, trainX)
//	// ... write the remaining splits, then st.Close()
//
// See cmd/bigboost for the complete walkthrough.
package bigboost
