package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/panbanda/augur/pkg/spaces"
)

func fmtVal(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return fmt.Sprintf("%.3f", *v)
}

// DumpSpaces writes the colored per-space metrics tree.
func DumpSpaces(w io.Writer, space *spaces.FuncSpace) {
	dumpSpace(w, space, "", true)
}

func dumpSpace(w io.Writer, space *spaces.FuncSpace, prefix string, last bool) {
	branch := "├── "
	if last {
		branch = "└── "
	}
	if prefix == "" {
		branch = ""
	}

	name := space.Name
	if name == "" {
		name = "<unknown>"
	}
	header := color.New(color.FgYellow, color.Bold).Sprint(name)
	kind := color.New(color.FgCyan).Sprintf("(%s)", space.Kind)
	span := color.New(color.FgGreen).Sprintf("[%d, %d]", space.StartLine, space.EndLine)
	fmt.Fprintf(w, "%s%s%s %s %s\n", prefix, branch, header, kind, span)

	childPrefix := prefix
	if last {
		childPrefix += "   "
	} else {
		childPrefix += "│  "
	}

	m := space.Metrics
	label := color.New(color.FgMagenta, color.Bold)
	field := color.New(color.FgCyan)

	line := func(name, body string) {
		fmt.Fprintf(w, "%s│  %s: %s\n", childPrefix, label.Sprint(name), body)
	}

	line("cyclomatic", fmt.Sprintf("%s: %s, %s: %s, %s: %s, %s: %s",
		field.Sprint("sum"), fmtVal(m.Cyclomatic.Sum),
		field.Sprint("average"), fmtVal(m.Cyclomatic.Average),
		field.Sprint("min"), fmtVal(m.Cyclomatic.Min),
		field.Sprint("max"), fmtVal(m.Cyclomatic.Max)))
	line("cognitive", fmt.Sprintf("%s: %s, %s: %s",
		field.Sprint("sum"), fmtVal(m.Cognitive.Sum),
		field.Sprint("average"), fmtVal(m.Cognitive.Average)))
	line("loc", fmt.Sprintf("%s: %s, %s: %s, %s: %s, %s: %s, %s: %s",
		field.Sprint("sloc"), fmtVal(m.Loc.Sloc),
		field.Sprint("ploc"), fmtVal(m.Loc.Ploc),
		field.Sprint("lloc"), fmtVal(m.Loc.Lloc),
		field.Sprint("cloc"), fmtVal(m.Loc.Cloc),
		field.Sprint("blank"), fmtVal(m.Loc.Blank)))
	line("nom", fmt.Sprintf("%s: %s, %s: %s, %s: %s",
		field.Sprint("functions"), fmtVal(m.Nom.Functions),
		field.Sprint("closures"), fmtVal(m.Nom.Closures),
		field.Sprint("total"), fmtVal(m.Nom.Total)))
	line("nargs", fmt.Sprintf("%s: %s, %s: %s",
		field.Sprint("total"), fmtVal(m.NArgs.Total),
		field.Sprint("average"), fmtVal(m.NArgs.Average)))
	line("nexits", fmt.Sprintf("%s: %s, %s: %s",
		field.Sprint("sum"), fmtVal(m.NExits.Sum),
		field.Sprint("average"), fmtVal(m.NExits.Average)))
	line("halstead", fmt.Sprintf("%s: %s, %s: %s, %s: %s, %s: %s, %s: %s",
		field.Sprint("n1"), fmtVal(m.Halstead.N1Unique),
		field.Sprint("N1"), fmtVal(m.Halstead.N1),
		field.Sprint("n2"), fmtVal(m.Halstead.N2Unique),
		field.Sprint("N2"), fmtVal(m.Halstead.N2),
		field.Sprint("volume"), fmtVal(m.Halstead.Volume)))
	line("mi", fmt.Sprintf("%s: %s, %s: %s, %s: %s",
		field.Sprint("original"), fmtVal(m.Mi.MiOriginal),
		field.Sprint("sei"), fmtVal(m.Mi.MiSei),
		field.Sprint("visual_studio"), fmtVal(m.Mi.MiVisualStudio)))

	for i, child := range space.Spaces {
		dumpSpace(w, child, childPrefix, i == len(space.Spaces)-1)
	}
}

// SummaryTable renders one compact row per top-level space.
func SummaryTable(w io.Writer, spacesList []*spaces.FuncSpace) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"Space", "Kind", "Lines", "Cyclomatic", "Cognitive", "SLOC", "MI"})
	for _, s := range spacesList {
		_ = table.Append([]string{
			s.Name,
			s.Kind.String(),
			fmt.Sprintf("%d-%d", s.StartLine, s.EndLine),
			fmtVal(s.Metrics.Cyclomatic.Sum),
			fmtVal(s.Metrics.Cognitive.Sum),
			fmtVal(s.Metrics.Loc.Sloc),
			fmtVal(s.Metrics.Mi.MiOriginal),
		})
	}
	_ = table.Render()
}

// DumpOps writes the colored operator and operand report.
func DumpOps(w io.Writer, ops *spaces.Ops) {
	dumpOps(w, ops, "")
}

func dumpOps(w io.Writer, ops *spaces.Ops, prefix string) {
	header := color.New(color.FgYellow, color.Bold).Sprint(ops.Name)
	kind := color.New(color.FgCyan).Sprintf("(%s)", ops.Kind)
	fmt.Fprintf(w, "%s%s %s [%d, %d]\n", prefix, header, kind, ops.StartLine, ops.EndLine)
	fmt.Fprintf(w, "%s  %s: %v\n", prefix, color.New(color.FgMagenta).Sprint("operators"), ops.Operators)
	fmt.Fprintf(w, "%s  %s: %v\n", prefix, color.New(color.FgMagenta).Sprint("operands"), ops.Operands)
	for _, child := range ops.Spaces {
		dumpOps(w, child, prefix+"  ")
	}
}
