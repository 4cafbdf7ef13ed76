// Package report renders record listings as downloadable PDF tables.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/gracepoint-dev/church-admin-be/internal/models"
)

// Attendance renders attendance records as a bordered table, one row per
// record, in the order given.
func Attendance(records []models.AttendanceRecord) ([]byte, error) {
	pdf := newDoc("Attendance Records")

	pdf.SetFont("Arial", "B", 8)
	headers := []struct {
		width float64
		label string
	}{
		{20, "Date"}, {15, "Men"}, {15, "Women"},
		{15, "Yth Boys"}, {15, "Yth Girls"},
		{15, "Chd Boys"}, {15, "Chd Girls"},
		{20, "New Cnv"}, {20, "Youtube"}, {20, "Total"},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 10, h.label, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, rec := range records {
		cells := []struct {
			width float64
			text  string
		}{
			{20, rec.ServiceDate},
			{15, strconv.Itoa(rec.Men)},
			{15, strconv.Itoa(rec.Women)},
			{15, strconv.Itoa(rec.YouthBoys)},
			{15, strconv.Itoa(rec.YouthGirls)},
			{15, strconv.Itoa(rec.ChildrenBoys)},
			{15, strconv.Itoa(rec.ChildrenGirls)},
			{20, strconv.Itoa(rec.NewConverts)},
			{20, strconv.Itoa(rec.Youtube)},
			{20, strconv.Itoa(rec.TotalHeadcount)},
		}
		for _, c := range cells {
			pdf.CellFormat(c.width, 8, c.text, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// Payments renders payment records as a bordered table. Amounts are grouped
// with thousands separators.
func Payments(records []models.PaymentRecord) ([]byte, error) {
	pdf := newDoc("Payment Records")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 10, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 10, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 10, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 10, "Description", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, rec := range records {
		pdf.CellFormat(30, 8, rec.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 8, rec.PaymentType, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, groupThousands(rec.Amount), "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, rec.Description, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	return output(pdf)
}

func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(200, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(10)
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// groupThousands formats n with comma separators, e.g. 500000 -> "500,000".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
