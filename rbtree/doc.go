// Package rbtree implement a multi-index store over red-black trees.
//
//   * A Store holds one or more Index, each an independent red-black
//     tree ordering the same set of records with its own comparator.
//   * Index 0 is the primary index, it owns count and size accounting.
//   * Records are values of a comparable type, typically pointers to
//     application structs.
//   * Nodes are held in per-index slot arenas and addressed by
//     api.Handle, slots are managed by an api.Allocator from malloc.
//   * Duplicate keys are either rejected or admitted in insertion order,
//     based on "allowdups" settings.
//
// Store is not safe for concurrent use, applications shall serialize
// access to it.
//
package rbtree
