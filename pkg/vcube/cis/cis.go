// Package cis implements the VCube cluster-index-set enumeration: for a
// process i and a cluster level s, the ordered list of peers that i is
// responsible for testing at that level.
package cis

// Cluster returns the ordered cluster-index set for process i at level s.
//
// The first element is i XOR 2^(s-1); the remainder is the concatenation,
// in ascending level order, of the clusters of that first element at
// levels 1..s-1. The result always has exactly 2^(s-1) entries and never
// contains i itself or a duplicate.
//
// s must be >= 1. Every call site in this module only ever invokes
// Cluster with s in [1, ceilLog2(N)], so no validation is performed here.
func Cluster(i, s int) []int {
	xor := i ^ (1 << uint(s-1))

	nodes := make([]int, 0, 1<<uint(s-1))
	nodes = append(nodes, xor)

	for level := 1; level <= s-1; level++ {
		nodes = append(nodes, Cluster(xor, level)...)
	}

	return nodes
}

// CeilLog2 returns ceil(log2(n)) for n >= 1, the number of cluster levels
// a hypercube of n processes requires.
func CeilLog2(n int) int {
	levels := 0
	for (1 << uint(levels)) < n {
		levels++
	}
	return levels
}
