// Package pool provides the fixed-capacity worker pool the pacer
// scheduling loop dispatches batches to.
package pool
