package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	fusekafka "github.com/axondata/go-fusekafka"
)

func renderSpawns(w io.Writer, results []fusekafka.SpawnResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No directories to start")
		return err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"DIRECTORY", "PID", "RESULT"})

	for _, r := range results {
		pid := "-"
		outcome := "started"
		if r.Err != nil {
			outcome = r.Err.Error()
		} else {
			pid = strconv.Itoa(r.PID)
		}
		tw.AppendRow(table.Row{r.Directory, pid, outcome})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
