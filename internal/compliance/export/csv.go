// Package export renders report rows as CSV downloads. Every cell is quoted
// and the output starts with a UTF-8 byte order mark so spreadsheet tools
// pick up the encoding.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/rbarros/vigia/internal/compliance/controller"
	"github.com/rbarros/vigia/internal/compliance/expiry"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

var headers = map[controller.ReportKind][]string{
	controller.ReportCertificates: {
		"Employee", "Category", "Issue Date", "Expiry Date",
		"Status", "Days Remaining", "Physician", "License", "Notes",
	},
	controller.ReportTrainings: {
		"Employee", "Regulation", "Description", "Completion Date", "Expiry Date",
		"Status", "Days Remaining", "Institution", "Hours", "Notes",
	},
	controller.ReportEquipment: {
		"Employee", "Equipment", "Approval No", "Delivery Date", "Expiry Date",
		"Status", "Days Remaining", "Quantity", "Notes",
	},
}

// Filename returns the suggested download name for a report of the given kind.
func Filename(kind controller.ReportKind) string {
	return fmt.Sprintf("report_%s.csv", kind)
}

// CSV renders the rows of a single-kind report. All rows must share the kind.
func CSV(kind controller.ReportKind, rows []controller.ReportRow) ([]byte, error) {
	header, ok := headers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}

	var buf bytes.Buffer
	buf.Write(bom)
	writeRecord(&buf, header)
	for _, row := range rows {
		record, err := cells(kind, row)
		if err != nil {
			return nil, err
		}
		writeRecord(&buf, record)
	}
	return buf.Bytes(), nil
}

func cells(kind controller.ReportKind, row controller.ReportRow) ([]string, error) {
	days := ""
	if row.DaysRemaining != nil {
		days = strconv.Itoa(*row.DaysRemaining)
	}
	switch {
	case kind == controller.ReportCertificates && row.Certificate != nil:
		c := row.Certificate
		return []string{
			c.EmployeeName, string(c.Category),
			expiry.FormatHuman(c.IssueDate), expiry.FormatHuman(c.ExpiryDate),
			string(row.Status), days, c.Physician, c.License, c.Notes,
		}, nil
	case kind == controller.ReportTrainings && row.Training != nil:
		t := row.Training
		expiryDate := ""
		if t.ExpiryDate != nil {
			expiryDate = expiry.FormatHuman(*t.ExpiryDate)
		}
		return []string{
			t.EmployeeName, t.Regulation, t.Description,
			expiry.FormatHuman(t.CompletionDate), expiryDate,
			string(row.Status), days, t.Institution, strconv.Itoa(t.Hours), t.Notes,
		}, nil
	case kind == controller.ReportEquipment && row.Equipment != nil:
		q := row.Equipment
		expiryDate := ""
		if q.ExpiryDate != nil {
			expiryDate = expiry.FormatHuman(*q.ExpiryDate)
		}
		return []string{
			q.EmployeeName, q.Name, q.ApprovalNumber,
			expiry.FormatHuman(q.DeliveryDate), expiryDate,
			string(row.Status), days, strconv.Itoa(q.Quantity), q.Notes,
		}, nil
	}
	return nil, fmt.Errorf("row does not match report kind %q", kind)
}

// writeRecord emits one CSV line with every cell double-quoted, doubling any
// quotes inside the cell. encoding/csv only quotes when it must, which trips
// up spreadsheet imports of free-text notes, so records are written by hand.
func writeRecord(buf *bytes.Buffer, record []string) {
	for i, cell := range record {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
