// Package types defines the Project and Task entities, the task status
// enumeration, the store limits, and the error taxonomy shared by the
// todolist storage and CLI layers.
package types
