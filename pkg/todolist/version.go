// Package todolist carries module-level metadata.
package todolist

// Version is the current todolist release.
const Version = "v0.1.0"
