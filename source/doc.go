// Package source provides the item sources the pacer scheduling loop
// draws batches from.
package source
