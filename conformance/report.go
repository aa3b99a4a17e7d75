package conformance

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"golang.org/x/tools/txtar"
)

//go:embed report.txt
var reportTemplates string

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"

	defaultReportWidth = 72
)

// ReportOptions controls report rendering.
type ReportOptions struct {
	Color bool // wrap PASS/FAIL in ANSI colors
	Width int  // width of the summary rule; 72 if zero
}

type suiteView struct {
	Name     string
	Summary  string
	OK       bool
	Passed   int
	Total    int
	Failures []Result
}

type summaryView struct {
	OK     bool
	Suites int
	Checks int
	Failed int
}

func loadReportTemplates(opts ReportOptions) (*template.Template, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultReportWidth
	}
	root := template.New("report").Funcs(template.FuncMap{
		"status": func(ok bool) string {
			switch {
			case ok && opts.Color:
				return ansiGreen + "PASS" + ansiReset
			case ok:
				return "PASS"
			case opts.Color:
				return ansiRed + "FAIL" + ansiReset
			}
			return "FAIL"
		},
		"rule": func() string {
			return strings.Repeat("-", width)
		},
	})

	archive := txtar.Parse([]byte(reportTemplates))
	for _, f := range archive.Files {
		if _, err := root.New(f.Name).Parse(string(f.Data)); err != nil {
			return nil, fmt.Errorf("report template %s: %w", f.Name, err)
		}
	}
	return root, nil
}

// WriteReport renders a PASS/FAIL line per suite, the failures under it, and
// an overall summary.
func WriteReport(w io.Writer, reports []*Report, opts ReportOptions) error {
	tmpl, err := loadReportTemplates(opts)
	if err != nil {
		return err
	}

	sum := summaryView{OK: true, Suites: len(reports)}
	for _, r := range reports {
		failures := r.Failures()
		view := suiteView{
			Name:     r.Suite.Name,
			Summary:  r.Suite.Summary(),
			OK:       len(failures) == 0,
			Passed:   len(r.Results) - len(failures),
			Total:    len(r.Results),
			Failures: failures,
		}
		if err := tmpl.ExecuteTemplate(w, "suite.tmpl", view); err != nil {
			return err
		}
		sum.OK = sum.OK && view.OK
		sum.Checks += view.Total
		sum.Failed += len(failures)
	}
	return tmpl.ExecuteTemplate(w, "summary.tmpl", sum)
}
