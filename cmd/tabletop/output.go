package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
)

// OutputConfig holds global output settings
type OutputConfig struct {
	JSON  bool
	Quiet bool
}

var (
	outputCfg OutputConfig
	stdout    io.Writer = os.Stdout
	stderr    io.Writer = os.Stderr
)

// PrintResult outputs data based on output config
func PrintResult(data interface{}) {
	if !outputCfg.JSON {
		switch v := data.(type) {
		case string:
			_, _ = fmt.Fprintln(stdout, v)
			return
		case []string:
			for _, s := range v {
				_, _ = fmt.Fprintln(stdout, s)
			}
			return
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// PrintTable outputs tabular data, or the raw value when --json is set.
func PrintTable(raw interface{}, headers []string, rows [][]string) {
	if outputCfg.JSON {
		PrintResult(raw)
		return
	}

	table := tablewriter.NewWriter(stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator("")
	table.AppendBulk(rows)
	table.Render()
}

// PrintInfo prints info message if not quiet
func PrintInfo(format string, args ...interface{}) {
	if !outputCfg.Quiet && !outputCfg.JSON {
		_, _ = fmt.Fprintf(stdout, format, args...)
	}
}

// PrintError prints error to stderr
func PrintError(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, format, args...)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func intOrDash(i *int) string {
	if i == nil {
		return "-"
	}
	return fmt.Sprint(*i)
}
