package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

const (
	marginLeft  = 15.0
	chartWidth  = 85.0
	chartHeight = 60.0
	bodyFont    = "body"
)

// ReportPage is one labelled statistics view, e.g. the roster before and after
// promotion.
type ReportPage struct {
	Label string
	Stats roster.Stats
}

// Renderer draws PDF reports. Without a UTF-8 font, text falls back to the core
// Helvetica font, which cannot show Cyrillic names.
type Renderer struct {
	fontPath string
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

type document struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (r *Renderer) newDocument() *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, 15, marginLeft)
	doc := &document{pdf: pdf, font: "Helvetica", tr: func(s string) string { return s }}
	if r.fontPath != "" {
		pdf.AddUTF8Font(bodyFont, "", r.fontPath)
		pdf.AddUTF8Font(bodyFont, "B", r.fontPath)
		doc.font = bodyFont
	} else {
		doc.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return doc
}

func (d *document) text(style string, size float64, h float64, s string) {
	d.pdf.SetFont(d.font, style, size)
	d.pdf.CellFormat(0, h, d.tr(s), "", 1, "L", false, 0, "")
}

func (d *document) finish(out io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return err
	}
	return d.pdf.Output(out)
}

// RosterReport writes one dashboard page per statistics view: headline metrics
// followed by the four charts.
func (r *Renderer) RosterReport(out io.Writer, pages ...ReportPage) error {
	if len(pages) == 0 {
		return fmt.Errorf("roster report needs at least one page")
	}
	doc := r.newDocument()
	for _, page := range pages {
		doc.pdf.AddPage()
		doc.rosterPage(page)
	}
	return doc.finish(out)
}

func (d *document) rosterPage(page ReportPage) {
	stats := page.Stats
	title := stats.School
	if page.Label != "" {
		title = fmt.Sprintf("%s (%s)", stats.School, page.Label)
	}
	d.text("B", 16, 10, title)
	d.text("", 11, 6, fmt.Sprintf("Classes: %d   Students: %d   Mean class size: %.2f",
		stats.Classes, stats.TotalStudents, stats.MeanClassSize))
	d.text("", 11, 6, fmt.Sprintf("Boys: %d (%.2f%%)   Girls: %d (%.2f%%)",
		stats.ByGender[roster.GenderMale], stats.MalePercent,
		stats.ByGender[roster.GenderFemale], stats.FemalePercent))
	if stats.Largest != nil && stats.Smallest != nil {
		d.text("", 11, 6, fmt.Sprintf("Largest class: %s (%d)   Smallest class: %s (%d)",
			stats.Largest.Name, stats.Largest.Students, stats.Smallest.Name, stats.Smallest.Students))
	}
	if stats.DroppedOnLoad > 0 {
		d.text("", 11, 6, fmt.Sprintf("Students without a class on load: %d", stats.DroppedOnLoad))
	}

	top := d.pdf.GetY() + 6
	right := marginLeft + chartWidth + 10

	var gradeLabels []string
	var gradeValues []float64
	for _, g := range stats.ByGrade {
		gradeLabels = append(gradeLabels, strconv.Itoa(g.Grade))
		gradeValues = append(gradeValues, float64(g.Students))
	}
	d.barChart(marginLeft, top, "Students per grade", gradeLabels, gradeValues)

	var sectionLabels []string
	var sectionValues []float64
	for _, s := range stats.BySection {
		sectionLabels = append(sectionLabels, s.Section)
		sectionValues = append(sectionValues, s.MeanClassSize)
	}
	d.barChart(right, top, "Mean class size per section", sectionLabels, sectionValues)

	var yearLabels []string
	var yearValues []float64
	for _, y := range stats.ByBirthYear {
		yearLabels = append(yearLabels, strconv.Itoa(y.Year))
		yearValues = append(yearValues, float64(y.Students))
	}
	second := top + chartHeight + 20
	d.lineChart(marginLeft, second, "Students per birth year", yearLabels, yearValues)
	d.scatterChart(right, second, "Average grade per class", stats.PerClass, stats.GradePoints)
}

// frame draws the chart title and axes and returns the plot area.
func (d *document) frame(x, y float64, title string) (px, py, pw, ph float64) {
	d.pdf.SetFont(d.font, "B", 10)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(chartWidth, 5, d.tr(title), "", 0, "L", false, 0, "")
	px, py, pw, ph = x+8, y+8, chartWidth-10, chartHeight-16
	d.pdf.SetDrawColor(60, 60, 60)
	d.pdf.SetLineWidth(0.3)
	d.pdf.Line(px, py+ph, px+pw, py+ph)
	d.pdf.Line(px, py, px, py+ph)
	return px, py, pw, ph
}

func (d *document) axisLabel(x, y, w float64, label string) {
	d.pdf.SetFont(d.font, "", 6)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, 4, d.tr(label), "", 0, "C", false, 0, "")
}

func (d *document) scaleLabel(px, py float64, max float64) {
	d.pdf.SetFont(d.font, "", 6)
	d.pdf.SetXY(px-8, py-2)
	d.pdf.CellFormat(7, 4, strconv.FormatFloat(max, 'f', -1, 64), "", 0, "R", false, 0, "")
}

func maxOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	return peak
}

func (d *document) barChart(x, y float64, title string, labels []string, values []float64) {
	px, py, pw, ph := d.frame(x, y, title)
	peak := maxOf(values)
	if len(values) == 0 || peak == 0 {
		d.axisLabel(px, py+ph/2, pw, "no data")
		return
	}
	d.scaleLabel(px, py, peak)
	slot := pw / float64(len(values))
	d.pdf.SetFillColor(70, 130, 180)
	for i, v := range values {
		h := ph * v / peak
		bx := px + float64(i)*slot + slot*0.15
		d.pdf.Rect(bx, py+ph-h, slot*0.7, h, "F")
		d.axisLabel(px+float64(i)*slot, py+ph+1, slot, labels[i])
	}
}

func (d *document) lineChart(x, y float64, title string, labels []string, values []float64) {
	px, py, pw, ph := d.frame(x, y, title)
	peak := maxOf(values)
	if len(values) == 0 || peak == 0 {
		d.axisLabel(px, py+ph/2, pw, "no data")
		return
	}
	d.scaleLabel(px, py, peak)
	slot := pw / float64(len(values))
	d.pdf.SetDrawColor(200, 80, 60)
	d.pdf.SetFillColor(200, 80, 60)
	var prevX, prevY float64
	for i, v := range values {
		cx := px + float64(i)*slot + slot/2
		cy := py + ph - ph*v/peak
		if i > 0 {
			d.pdf.Line(prevX, prevY, cx, cy)
		}
		d.pdf.Circle(cx, cy, 0.8, "F")
		d.axisLabel(px+float64(i)*slot, py+ph+1, slot, labels[i])
		prevX, prevY = cx, cy
	}
}

// scatterChart plots each student's average grade in its class column, boys and
// girls in different colours.
func (d *document) scatterChart(x, y float64, title string, classes []roster.ClassSize, points []roster.GradePoint) {
	px, py, pw, ph := d.frame(x, y, title)
	if len(classes) == 0 || len(points) == 0 {
		d.axisLabel(px, py+ph/2, pw, "no data")
		return
	}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.AverageGrade)
	}
	peak := math.Max(maxOf(values), 12)
	d.scaleLabel(px, py, peak)

	slot := pw / float64(len(classes))
	column := make(map[string]int, len(classes))
	for i, c := range classes {
		column[c.Name] = i
		if len(classes) <= 12 || i%2 == 0 {
			d.axisLabel(px+float64(i)*slot, py+ph+1, slot, c.Name)
		}
	}
	for _, p := range points {
		i, ok := column[p.ClassName]
		if !ok {
			continue
		}
		if p.Gender == roster.GenderFemale {
			d.pdf.SetFillColor(220, 90, 140)
		} else {
			d.pdf.SetFillColor(60, 110, 200)
		}
		cx := px + float64(i)*slot + slot/2
		cy := py + ph - ph*math.Max(p.AverageGrade, 0)/peak
		d.pdf.Circle(cx, cy, 0.7, "F")
	}
}

// PayrollReport writes the payroll table and its totals.
func (r *Renderer) PayrollReport(out io.Writer, title string, rows []payroll.Row, summary payroll.Summary) error {
	doc := r.newDocument()
	pdf := doc.pdf
	pdf.AddPage()
	doc.text("B", 16, 10, title)
	pdf.Ln(2)

	widths := []float64{22, 58, 22, 14, 14, 14, 18, 18}
	headers := []string{"Position", "Name", "Base", "Teach.", "Mgmt.", "Gen.", "Bonus", "Total"}
	pdf.SetFont(doc.font, "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(doc.font, "", 9)
	for _, row := range rows {
		cells := []string{
			row.Position,
			row.Name,
			money(row.BaseSalary),
			optionalText(row.TeachingExperience),
			optionalText(row.ManagementExperience),
			optionalText(row.GeneralExperience),
			money(row.Bonus),
			money(row.Total),
		}
		for i, c := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, doc.tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	doc.text("", 11, 6, fmt.Sprintf("Employees: %d", summary.EmployeeCount))
	doc.text("", 11, 6, fmt.Sprintf("Salaries: %s   Bonuses: %s", money(summary.TotalSalary), money(summary.TotalBonus)))
	doc.text("B", 11, 6, fmt.Sprintf("Total payable: %s", money(summary.TotalPayable)))
	return doc.finish(out)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optionalText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
