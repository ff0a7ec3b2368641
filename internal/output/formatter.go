// Package output renders pacer run summaries for the terminal.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/wesleyorama2/pacer/metrics"
)

// Formatter renders run summaries with a color scheme.
type Formatter struct {
	scheme *ColorScheme
}

// NewFormatter creates a formatter with the given scheme. A nil scheme
// disables color.
func NewFormatter(scheme *ColorScheme) *Formatter {
	if scheme == nil {
		scheme = NoColorScheme()
	}
	return &Formatter{scheme: scheme}
}

// Summary renders a human-readable summary of a finished run.
func (f *Formatter) Summary(name string, snap metrics.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(f.scheme.Title.Sprintf("%s", name))
	sb.WriteString("\n")

	f.row(&sb, "Elapsed", FormatDuration(snap.Elapsed))
	f.row(&sb, "Items", fmt.Sprintf("%d", snap.Items))
	f.row(&sb, "Batches", fmt.Sprintf("%d", snap.Batches))
	f.row(&sb, "Rate", fmt.Sprintf("%.2f items/s", snap.ItemsPerSecond))

	if snap.Batches > 0 {
		f.row(&sb, "Batch size", fmt.Sprintf("mean %.1f, p95 %d, max %d",
			snap.BatchSize.Mean, snap.BatchSize.P95, snap.BatchSize.Max))
	}
	if snap.AdmissionGap.Max > 0 {
		f.row(&sb, "Admission gap", distRow(snap.AdmissionGap))
	}
	if snap.ActionTime.Max > 0 {
		f.row(&sb, "Action time", distRow(snap.ActionTime))
	}

	return sb.String()
}

func (f *Formatter) row(sb *strings.Builder, label, value string) {
	sb.WriteString("  ")
	sb.WriteString(f.scheme.Label.Sprintf("%-14s", label))
	sb.WriteString(f.scheme.Value.Sprint(value))
	sb.WriteString("\n")
}

func distRow(d metrics.Distribution) string {
	return fmt.Sprintf("p50 %s, p95 %s, max %s",
		FormatDuration(time.Duration(d.P50)*time.Microsecond),
		FormatDuration(time.Duration(d.P95)*time.Microsecond),
		FormatDuration(time.Duration(d.Max)*time.Microsecond))
}

// FormatDuration renders a duration at a readable precision: sub-second
// values keep their natural unit, longer ones are trimmed to 10ms.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}
