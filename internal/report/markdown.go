package report

import (
	"io"
	"strconv"

	"github.com/CrazyVinc/web-scraper/internal/stats"
	"github.com/nao1215/markdown"
)

// MarkdownWriter prints the summary table followed by one line per anomalous link.
type MarkdownWriter struct {
	output io.Writer
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(summary stats.Stats) error {
	md := markdown.NewMarkdown(w.output)

	md.H2("Crawl Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Time (s)", strconv.FormatFloat(summary.ElapsedSeconds(), 'f', 3, 64)},
			{"Max Depth", summary.MaxDepthLabel()},
			{"Failed Pages", strconv.Itoa(summary.FailedCount)},
			{"Total Pages Scanned", strconv.Itoa(summary.VisitedCount)},
			{"Pages Succeeded", strconv.Itoa(summary.SucceededCount)},
			{"Links with Uppercase Ending", strconv.Itoa(summary.AnomalyCount())},
		},
	})
	md.PlainText("")

	md.PlainText("Links ending with an uppercase letter and where they were found:")
	if summary.AnomalyCount() == 0 {
		md.PlainText("")
		md.PlainText("None.")
		return md.Build()
	}

	lines := make([]string, 0, summary.AnomalyCount())
	for _, anomaly := range summary.Anomalies {
		lines = append(lines, "Link: "+anomaly.Link+" | Found On: "+anomaly.FoundOn)
	}
	md.PlainText("")
	md.BulletList(lines...)

	return md.Build()
}
