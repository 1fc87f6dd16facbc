package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"agentrelay/internal/canon"
	"agentrelay/internal/normalize"
	"agentrelay/internal/store"
)

// StatsReport combines session log statistics with pipeline counters.
type StatsReport struct {
	Session  store.Stats               `json:"session"`
	Pipeline normalize.MetricsSnapshot `json:"pipeline"`
	Thinking bool                      `json:"thinking"`
}

// WriteStats writes a stats report to w in the requested format.
func WriteStats(w io.Writer, report StatsReport, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		writeStatsTable(w, report)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeStatsTable(w io.Writer, report StatsReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"Messages", report.Session.Messages})
	tw.AppendRow(table.Row{"Duplicates dropped", report.Session.Duplicates})
	for _, role := range []canon.Role{canon.RoleUser, canon.RoleAgent} {
		if count := report.Session.ByRole[role]; count > 0 {
			tw.AppendRow(table.Row{fmt.Sprintf("  role %s", role), count})
		}
	}
	for _, kind := range []canon.BlockKind{canon.BlockText, canon.BlockThinking, canon.BlockToolCall, canon.BlockToolResult} {
		if count := report.Session.Blocks[kind]; count > 0 {
			tw.AppendRow(table.Row{fmt.Sprintf("  blocks %s", kind), count})
		}
	}
	tw.AppendRow(table.Row{"Turns completed", report.Session.TurnsCompleted})
	tw.AppendRow(table.Row{"Turns aborted", report.Session.TurnsAborted})
	tw.AppendRow(table.Row{"Agent thinking", report.Thinking})
	tw.AppendRow(table.Row{"Tokens in / out", fmt.Sprintf("%d / %d",
		report.Session.Usage.InputTokens, report.Session.Usage.OutputTokens)})
	tw.AppendRow(table.Row{"Signals", report.Pipeline.Signals})
	tw.AppendRow(table.Row{"Degraded mappings", report.Pipeline.Degraded})
	tw.AppendRow(table.Row{"Rejected records", report.Pipeline.Rejected})
	tw.AppendRow(table.Row{"Unrecognized records", report.Pipeline.Unrecognized})

	_ = tw.Render()
}
