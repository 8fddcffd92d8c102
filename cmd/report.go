package cmd

import (
	"bytes"

	"github.com/achilleasa/clconform/harness"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	passColor = color.New(color.FgGreen).SprintFunc()
	failColor = color.New(color.FgHiRed).SprintFunc()
	skipColor = color.New(color.FgYellow).SprintFunc()
)

func resultStatus(res harness.Result) string {
	switch {
	case res.Skipped != "":
		return skipColor("SKIP")
	case res.Failed():
		return failColor("FAIL")
	}
	return passColor("PASS")
}

func displayResults(results []harness.Result) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Device", "Suite", "Status", "Checks", "Failures", "Time", "Notes"})
	for _, res := range results {
		notes := res.Skipped
		if res.Err != nil {
			notes = res.Err.Error()
		}
		table.Append([]string{
			res.Device,
			res.Suite,
			resultStatus(res),
			humanize.Comma(int64(res.Checks)),
			humanize.Comma(int64(res.Failures)),
			res.Duration.String(),
			notes,
		})
	}
	table.Render()
	logger.Noticef("suite results\n%s", buf.String())
}

func displaySummary(s harness.Summary) {
	status := passColor("PASSED")
	if !s.OK() {
		status = failColor("FAILED")
	}

	logger.Noticef(
		"%s: %d suite(s): %d passed, %d failed, %d skipped; %s check(s), %s failure(s) in %s",
		status,
		s.Suites,
		s.Passed,
		s.Failed,
		s.Skipped,
		humanize.Comma(int64(s.Checks)),
		humanize.Comma(int64(s.Failures)),
		s.Duration,
	)
}
