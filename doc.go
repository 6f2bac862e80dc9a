// Package embednet computes pairwise relations between word embeddings.
//
// This package loads embedding tables from the plain-text format
//
//	word coord_1 coord_2 ... coord_n
//
// or from binary word2vec files. It computes the full cosine distance
// matrix of a table and builds similarity graphs that connect word pairs
// whose cosine distance is at or above a threshold.
//
// Distances are computed with gonum's floats kernels. Both pipelines can
// distribute rows over a bounded number of workers; the distance matrix is
// always written in the same order, regardless of the number of workers.
package embednet
