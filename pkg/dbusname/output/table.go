package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/telekom/dbusname/pkg/manifest"
	"github.com/telekom/dbusname/pkg/naming"
)

// NameResult is one row of `dbusname validate` output.
type NameResult struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Offset  *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func NewNameResult(kind naming.Kind, name string, err error) NameResult {
	res := NameResult{Name: name, Kind: kind.Short(), Valid: err == nil}
	if err == nil {
		return res
	}
	verr, ok := naming.AsValidationError(err)
	if !ok {
		res.Message = err.Error()
		return res
	}
	res.Reason = verr.Reason.String()
	res.Message = verr.Detail()
	if verr.Offset >= 0 {
		offset := verr.Offset
		res.Offset = &offset
	}
	return res
}

// LintIssue is a single field error found in a manifest.
type LintIssue struct {
	Field   string `json:"field" yaml:"field"`
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

// LintReport summarizes one linted file. Error is set when the file could not
// be loaded; Issues is empty in that case.
type LintReport struct {
	Source  string      `json:"source" yaml:"source"`
	Format  string      `json:"format,omitempty" yaml:"format,omitempty"`
	BusName string      `json:"busName,omitempty" yaml:"busName,omitempty"`
	Names   int         `json:"names" yaml:"names"`
	Valid   bool        `json:"valid" yaml:"valid"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
	Issues  []LintIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func NewLintReport(source string, m *manifest.Manifest, errs field.ErrorList, loadErr error) LintReport {
	report := LintReport{Source: source}
	if loadErr != nil {
		report.Error = loadErr.Error()
		return report
	}
	if m != nil {
		report.Format = string(m.Format)
		report.BusName = m.BusName
		report.Names = m.Names()
	}
	for _, e := range errs {
		report.Issues = append(report.Issues, LintIssue{
			Field:   e.Field,
			Type:    e.Type.String(),
			Message: e.ErrorBody(),
		})
	}
	report.Valid = len(report.Issues) == 0
	return report
}

func WriteNameTable(w io.Writer, results []NameResult) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tKIND\tVALID\tREASON\tMESSAGE")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", displayName(r.Name), r.Kind, strconv.FormatBool(r.Valid), dash(r.Reason), dash(r.Message))
	}
	_ = tw.Flush()
}

func WriteLintTable(w io.Writer, reports []LintReport) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SOURCE\tNAMES\tRESULT\tFIELD\tPROBLEM")
	for _, r := range reports {
		switch {
		case r.Error != "":
			_, _ = fmt.Fprintf(tw, "%s\t-\terror\t-\t%s\n", r.Source, r.Error)
		case r.Valid:
			_, _ = fmt.Fprintf(tw, "%s\t%d\tvalid\t-\t-\n", r.Source, r.Names)
		default:
			for _, issue := range r.Issues {
				_, _ = fmt.Fprintf(tw, "%s\t%d\tinvalid\t%s\t%s\n", r.Source, r.Names, issue.Field, issue.Message)
			}
		}
	}
	_ = tw.Flush()
}

// displayName keeps empty and whitespace-bearing names visible in a table.
func displayName(name string) string {
	if name == "" {
		return `""`
	}
	quoted := strconv.Quote(name)
	if quoted[1:len(quoted)-1] != name || containsSpace(name) {
		return quoted
	}
	return name
}

func containsSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return true
		}
	}
	return false
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
