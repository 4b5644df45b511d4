// Package export renders admin downloads.
package export

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/schema"
)

// XLSXContentType is the MIME type of the workbooks produced here.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const enquirySheet = "Enquiries"

// EnquiryHeader is the first row of the enquiry export.
var EnquiryHeader = []string{
	"ID",
	"Received",
	"First Name",
	"Last Name",
	"Contact Number",
	"Email",
	"Maid's Nationality",
	"Maid's main responsibility",
	"Type of maid",
	"Minimum age of Maid",
	"Maximum age of Maid",
	"Remarks",
}

var enquiryColumnWidths = []float64{8, 20, 18, 18, 16, 28, 18, 26, 20, 10, 10, 60}

func enquiryRow(e model.ContactEnquiry) []any {
	return []any{
		e.ID,
		e.CreatedOn.Format("2006-01-02 15:04"),
		e.FirstName,
		e.LastName,
		e.ContactNumber,
		e.Email,
		schema.EnquiryNationality.Label(e.MaidNationality),
		schema.EnquiryResponsibility.Label(e.MaidMainResponsibility),
		schema.EnquiryMaidType.Label(e.MaidType),
		e.MaidMinAge,
		e.MaidMaxAge,
		e.Remarks,
	}
}

// Enquiries writes enquiries to a one-sheet workbook. Choice codes are
// written as their labels.
func Enquiries(enquiries []model.ContactEnquiry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(enquirySheet)
	if err != nil {
		return nil, errors.Wrap(err, "create sheet")
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "drop default sheet")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create header style")
	}

	header := make([]any, len(EnquiryHeader))
	for i, h := range EnquiryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(enquirySheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	last, err := excelize.CoordinatesToCellName(len(EnquiryHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(enquirySheet, "A1", last, headerStyle); err != nil {
		return nil, errors.Wrap(err, "style header")
	}

	for i, w := range enquiryColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(enquirySheet, col, col, w); err != nil {
			return nil, errors.Wrap(err, "set column width")
		}
	}

	for i, e := range enquiries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := enquiryRow(e)
		if err := f.SetSheetRow(enquirySheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "write enquiry %d", e.ID)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
