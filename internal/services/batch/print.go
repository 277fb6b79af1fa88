package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"texture-matcher/internal/core/texture"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formats lists the accepted values for Print.
var Formats = []string{FormatText, FormatJSON, FormatTable}

// Print writes items to w in the given format.
func Print(w io.Writer, items []Item, format string) error {
	switch format {
	case FormatText, "":
		return printText(w, items)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case FormatTable:
		_, err := fmt.Fprintln(w, renderTable(items))
		return err
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// printText mirrors "query -> result", one line per query.
func printText(w io.Writer, items []Item) error {
	for _, it := range items {
		var line string
		if it.err != nil {
			line = fmt.Sprintf("%s -> error: %s", it.Query, it.Error)
		} else {
			body, err := json.Marshal(it.Result)
			if err != nil {
				return err
			}
			line = fmt.Sprintf("%s -> %s", it.Query, body)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(items []Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Query", "Status", "Chewiness", "Firmness", "Match"})

	for _, it := range items {
		if it.err != nil {
			tw.AppendRow(table.Row{it.Query, "failed", "", "", it.Error})
			continue
		}
		r := it.Result
		tw.AppendRow(table.Row{it.Query, string(r.Status), strconv.Itoa(r.Chewiness), strconv.Itoa(r.Firmness), matchColumn(*r)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func matchColumn(r texture.Result) string {
	switch r.Status {
	case texture.StatusOK:
		return r.BestName
	case texture.StatusReview:
		return strings.Join(r.TopNames, " / ")
	default:
		return r.Raw
	}
}
