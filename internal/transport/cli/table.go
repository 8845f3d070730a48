package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func printStats(out io.Writer, s roster.Stats) error {
	tw := newTable(out)
	fmt.Fprintf(tw, "School\t%s\n", s.School)
	fmt.Fprintf(tw, "Classes\t%d\n", s.Classes)
	fmt.Fprintf(tw, "Students\t%d\n", s.TotalStudents)
	fmt.Fprintf(tw, "Boys / girls\t%.2f%% / %.2f%%\n", s.MalePercent, s.FemalePercent)
	fmt.Fprintf(tw, "Mean class size\t%.2f\n", s.MeanClassSize)
	if s.Largest != nil {
		fmt.Fprintf(tw, "Largest class\t%s (%d)\n", s.Largest.Name, s.Largest.Students)
	}
	if s.Smallest != nil {
		fmt.Fprintf(tw, "Smallest class\t%s (%d)\n", s.Smallest.Name, s.Smallest.Students)
	}
	if s.DroppedOnLoad > 0 {
		fmt.Fprintf(tw, "Dropped on load\t%d\n", s.DroppedOnLoad)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	tw = newTable(out)
	fmt.Fprintln(tw, "CLASS\tSTUDENTS\tAVERAGE")
	for _, c := range s.PerClass {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", c.Name, c.Students, c.AverageGrade)
	}
	return tw.Flush()
}

func printPromotion(out io.Writer, report roster.PromotionReport) {
	if len(report.Graduated) > 0 {
		fmt.Fprintf(out, "Graduated: %s\n", strings.Join(report.Graduated, ", "))
	}
	moves := make([]string, 0, len(report.Promoted))
	for from, to := range report.Promoted {
		moves = append(moves, from+" -> "+to)
	}
	sort.Strings(moves)
	fmt.Fprintf(out, "Promoted %d classes: %s\n", len(moves), strings.Join(moves, ", "))
}

func printPayroll(out io.Writer, rows []payroll.Row, summary payroll.Summary) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "POSITION\tNAME\tSALARY\tBONUS\tTOTAL")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\n", row.Position, row.Name, row.Salary, row.Bonus, row.Total)
	}
	fmt.Fprintf(tw, "\t%d employees\t%.2f\t%.2f\t%.2f\n", summary.EmployeeCount, summary.TotalSalary, summary.TotalBonus, summary.TotalPayable)
	return tw.Flush()
}
