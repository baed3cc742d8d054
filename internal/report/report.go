package report

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
)

const bytesPerMB = 1024 * 1024

// Summary describes a finished edit: the produced file and the size
// change relative to the original.
type Summary struct {
	OutputPath    string
	OriginalBytes int64
	NewBytes      int64
}

// OriginalMB returns the original size in megabytes.
func (s Summary) OriginalMB() float64 {
	return float64(s.OriginalBytes) / bytesPerMB
}

// NewMB returns the produced size in megabytes.
func (s Summary) NewMB() float64 {
	return float64(s.NewBytes) / bytesPerMB
}

// Reduction returns the size reduction percentage, rounded to two
// decimal places. A zero original size yields 0 rather than a division
// by zero.
func (s Summary) Reduction() float64 {
	return Reduction(s.OriginalBytes, s.NewBytes)
}

// Reduction computes round((1 - new/original) * 100, 2). Defined as 0
// when original is 0.
func Reduction(original, produced int64) float64 {
	if original == 0 {
		return 0
	}
	pct := (1 - float64(produced)/float64(original)) * 100
	return math.Round(pct*100) / 100
}

// Render formats the summary as a table for the success output.
func (s Summary) Render() string {
	t := table.NewWriter()
	t.AppendRows([]table.Row{
		{"Output", s.OutputPath},
		{"Original size", fmt.Sprintf("%.2f MB", s.OriginalMB())},
		{"New size", fmt.Sprintf("%.2f MB", s.NewMB())},
		{"Reduction", fmt.Sprintf("%.2f%%", s.Reduction())},
	})
	return t.Render()
}
