// Package report writes the non-chart outputs: LaTeX tables and XLSX
// workbooks. Plain-text and Markdown summaries stay with the tools that
// own them.
package report

import (
	"fmt"
	"os"
	"strings"
)

// TableRow is one ranked organism in a top-N table.
type TableRow struct {
	Rank int
	Name string
	NRC  float64
	KLD  float64
}

// LatexTable renders a publication-ready table of NRC-ranked organisms for
// a single (k, alpha) configuration.
func LatexTable(rows []TableRow, k int, alpha float64) string {
	var b strings.Builder
	b.WriteString("\\begin{table}[H]\n")
	b.WriteString("\\centering\n")
	fmt.Fprintf(&b, "\\caption{Top %d NRC-ranked organisms (k = %d, $\\alpha$ = %.2f)}\n", len(rows), k, alpha)
	b.WriteString("\\label{tab:nrc_top}\n")
	b.WriteString("\\resizebox{\\columnwidth}{!}{%\n")
	b.WriteString("\\begin{tabular}{|c|p{6.5cm}|c|c|}\n")
	b.WriteString("\\hline\n")
	b.WriteString("Rank & Organism Name & NRC & KLD \\\\ \\hline\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%d & %s & %.6f & %.6f \\\\ \\hline\n",
			row.Rank, escapeLatex(row.Name), row.NRC, row.KLD)
	}
	b.WriteString("\\end{tabular}\n")
	b.WriteString("}\n")
	b.WriteString("\\end{table}\n")
	return b.String()
}

// WriteLatexTable writes the table to path.
func WriteLatexTable(path string, rows []TableRow, k int, alpha float64) error {
	return os.WriteFile(path, []byte(LatexTable(rows, k, alpha)), 0644)
}

func escapeLatex(s string) string {
	r := strings.NewReplacer(
		"\\", "\\textbackslash{}",
		"_", "\\_",
		"&", "\\&",
		"%", "\\%",
		"#", "\\#",
		"$", "\\$",
	)
	return r.Replace(s)
}
