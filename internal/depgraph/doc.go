// Package depgraph orders documented resources so that every schema is
// declared before the schemas nesting it.
//
// The graph interns resource names to dense ids in first-seen order and keeps
// adjacency lists with in-degree counters. Order is a stable variant of Kahn's
// algorithm: among ready nodes the earliest inserted wins, so repeated runs on
// the same input produce identical output.
//
// Self references never become edges. A cycle among two or more distinct
// resources is reported as a *TopologyError.
package depgraph
