// Package rate converts elapsed wall-clock time into fractional admission
// credits for the pacer scheduling loop.
package rate
