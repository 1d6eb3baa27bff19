package terminal

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"pom_automation/application/flow"
	"pom_automation/domain/entities"
)

func printScenarios(w io.Writer, catalog *flow.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range catalog.List() {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
	}
	_ = tw.Flush()
}

func printRun(w io.Writer, run entities.Run) {
	d := run.Duration().Round(time.Millisecond)
	if run.Status == entities.RunStatusPassed {
		fmt.Fprintf(w, "PASS %s (%s)\n", run.Scenario, d)
		return
	}
	fmt.Fprintf(w, "FAIL %s (%s): %s\n", run.Scenario, d, run.Error)
}

func printHistory(w io.Writer, runs []entities.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSCENARIO\tDRIVER\tSTATUS\tDURATION\tID")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Format(time.DateTime),
			r.Scenario,
			r.Driver,
			r.Status,
			r.Duration().Round(time.Millisecond),
			r.ID,
		)
	}
	_ = tw.Flush()
}
