// Package docs provides a static knowledge lookup store for
// organizational documentation (naming policy, review conventions).
//
// The store is an immutable topic-keyed table built once by Load from
// embedded defaults plus optional project-level YAML files, then passed
// by reference to consumers. It has no mutable global state.
package docs
