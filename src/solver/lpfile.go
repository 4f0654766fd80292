package solver

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// WriteLPFile writes the model in CPLEX LP format, for offline solver runs
// and for inspecting what a formulation actually built. Range rows with two
// finite sides are split into _lo/_up pairs.
func WriteLPFile(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "\\ Problem: %s\n", m.Name)
	}
	if m.Maximize {
		fmt.Fprintln(bw, "Maximize")
	} else {
		fmt.Fprintln(bw, "Minimize")
	}

	bw.WriteString(" obj:")
	for j, cost := range m.ColCosts {
		if cost != 0 {
			writeTerm(bw, cost, m.colName(j))
		}
	}
	if m.Offset != 0 {
		writeSigned(bw, m.Offset)
	}
	bw.WriteByte('\n')

	fmt.Fprintln(bw, "Subject To")
	for i := range m.Rows {
		lower, upper := m.RowLower[i], m.RowUpper[i]
		switch {
		case lower == upper:
			writeRow(bw, m, i, m.rowName(i), "=", lower)
		case !math.IsInf(lower, -1) && !math.IsInf(upper, 1):
			writeRow(bw, m, i, m.rowName(i)+"_lo", ">=", lower)
			writeRow(bw, m, i, m.rowName(i)+"_up", "<=", upper)
		case !math.IsInf(upper, 1):
			writeRow(bw, m, i, m.rowName(i), "<=", upper)
		case !math.IsInf(lower, -1):
			writeRow(bw, m, i, m.rowName(i), ">=", lower)
		}
	}

	fmt.Fprintln(bw, "Bounds")
	for j := range m.ColCosts {
		lower, upper := m.ColLower[j], m.ColUpper[j]
		if m.Integer[j] && lower == 0 && upper == 1 {
			continue
		}
		name := m.colName(j)
		switch {
		case lower == upper:
			fmt.Fprintf(bw, " %s = %s\n", name, fmtF(lower))
		case math.IsInf(lower, -1) && math.IsInf(upper, 1):
			fmt.Fprintf(bw, " %s free\n", name)
		case math.IsInf(upper, 1):
			if lower != 0 {
				fmt.Fprintf(bw, " %s >= %s\n", name, fmtF(lower))
			}
		default:
			fmt.Fprintf(bw, " %s <= %s <= %s\n", fmtF(lower), name, fmtF(upper))
		}
	}

	var general, binary []string
	for j, integer := range m.Integer {
		if !integer {
			continue
		}
		if m.ColLower[j] == 0 && m.ColUpper[j] == 1 {
			binary = append(binary, m.colName(j))
		} else {
			general = append(general, m.colName(j))
		}
	}
	writeVarSection(bw, "General", general)
	writeVarSection(bw, "Binary", binary)

	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

func (m *Model) colName(j int) string {
	if m.ColNames[j] != "" {
		return m.ColNames[j]
	}
	return fmt.Sprintf("x%d", j)
}

func (m *Model) rowName(i int) string {
	if m.RowNames[i] != "" {
		return m.RowNames[i]
	}
	return fmt.Sprintf("c%d", i)
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTerm(bw *bufio.Writer, val float64, name string) {
	if val < 0 {
		fmt.Fprintf(bw, " - %s %s", fmtF(-val), name)
	} else {
		fmt.Fprintf(bw, " + %s %s", fmtF(val), name)
	}
}

func writeSigned(bw *bufio.Writer, val float64) {
	if val < 0 {
		fmt.Fprintf(bw, " - %s", fmtF(-val))
	} else {
		fmt.Fprintf(bw, " + %s", fmtF(val))
	}
}

func writeRow(bw *bufio.Writer, m *Model, i int, name, rel string, rhs float64) {
	fmt.Fprintf(bw, " %s:", name)
	for _, e := range m.Rows[i] {
		writeTerm(bw, e.Val, m.colName(e.Col))
	}
	fmt.Fprintf(bw, " %s %s\n", rel, fmtF(rhs))
}

func writeVarSection(bw *bufio.Writer, header string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(bw, header)
	bw.WriteByte(' ')
	for i, name := range names {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(name)
	}
	bw.WriteByte('\n')
}
