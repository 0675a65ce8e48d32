// Package report renders the end-of-run summary.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quangtn/mediaprep/internal/types"
)

// Summary is everything the reporter prints once the batch is done. The
// summary always prints, even when every single item failed.
type Summary struct {
	Kind        types.Kind
	Backend     string
	Classes     int
	Planned     types.Counts
	Succeeded   types.Counts
	Failed      types.Counts
	DryRun      bool
	ExamplePath string
}

// CountsLine is the stable machine-greppable line, reporting planned
// counts in train/val/test order.
func (s Summary) CountsLine() string {
	b, _ := json.Marshal(s.Planned)
	return "Counts: " + string(b)
}

// Render builds the human summary: a header line, a per-split table with
// planned vs succeeded vs failed, the counts line, and for images an
// example output path.
func (s Summary) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %s across %d classes.\n", s.Planned.Total(), s.Kind, s.Classes)
	if s.Backend != "" {
		fmt.Fprintf(&sb, "Backend: %s\n", s.Backend)
	}
	if s.DryRun {
		sb.WriteString("Dry run: nothing was written.\n")
	}
	sb.WriteString(s.renderTable())
	sb.WriteString("\n")
	sb.WriteString(s.CountsLine())
	sb.WriteString("\n")
	if s.ExamplePath != "" {
		fmt.Fprintf(&sb, "Output structure example: %s\n", s.ExamplePath)
	}
	return sb.String()
}

func (s Summary) renderTable() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"split", "planned", "succeeded", "failed"})
	for _, name := range types.SplitOrder {
		tw.AppendRow(table.Row{
			string(name),
			strconv.Itoa(s.Planned.Get(name)),
			strconv.Itoa(s.Succeeded.Get(name)),
			strconv.Itoa(s.Failed.Get(name)),
		})
	}
	tw.AppendFooter(table.Row{
		"total",
		strconv.Itoa(s.Planned.Total()),
		strconv.Itoa(s.Succeeded.Total()),
		strconv.Itoa(s.Failed.Total()),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
