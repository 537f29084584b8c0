package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/coursequery/queries"
)

// writeTable renders rows under header in the configured format.
func writeTable(w io.Writer, format string, header []string, rows [][]string) error {
	switch format {
	case FormatPlain:
		return writePlain(w, header, rows)
	case FormatYAML:
		return writeYAML(w, header, rows)
	default:
		table := tablewriter.NewWriter(w)
		table.SetHeader(header)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.AppendBulk(rows)
		table.Render()
		return nil
	}
}

func writePlain(w io.Writer, header []string, rows [][]string) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// writeYAML emits a sequence of mappings keyed by the lower-cased header,
// keeping column order.
func writeYAML(w io.Writer, header []string, rows [][]string) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		item := &yaml.Node{Kind: yaml.MappingNode}
		for i, cell := range row {
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: strings.ToLower(header[i])},
				&yaml.Node{Kind: yaml.ScalarNode, Value: cell},
			)
		}
		doc.Content = append(doc.Content, item)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func writeResult(w io.Writer, cfg *Config, name string, res queries.Result) error {
	if cfg.Output.Format != FormatYAML {
		if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
			return err
		}
	}
	if err := writeTable(w, cfg.Output.Format, res.Header, res.Rows); err != nil {
		return err
	}
	if cfg.Output.Stats {
		_, err := fmt.Fprintf(w, "# %d element(s) in %s, run %s\n", res.Stats.Count, res.Stats.Duration, res.Stats.RunID)
		return err
	}
	return nil
}
