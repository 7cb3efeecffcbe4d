// internal/export/xlsx.go
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Submissions"

// Header is the column order of the export sheet.
var Header = []string{
	"Type",
	"Subtype",
	"Name",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Slug",
	"Template",
	"Modern URL",
	"Traditional URL",
	"Bold URL",
	"Password Protected",
	"OTP Verified",
	"CRM Contact ID",
	"Slot 1",
	"Slot 2",
	"Slot 3",
	"Created At",
}

var columnWidths = []float64{14, 12, 28, 16, 16, 28, 16, 20, 12, 40, 40, 40, 10, 10, 26, 20, 20, 20, 20}

// Row flattens a submission into the cells of one export line.
func Row(s model.Submission) []any {
	b := s.Base()
	slots := s.Slots()

	var subtype string
	switch v := s.(type) {
	case *model.CampaignSubmission:
		subtype = string(v.CampaignSubtype)
	case *model.OrganizationSubmission:
		subtype = string(v.OrganizationSubtype)
	}

	contactID := ""
	if b.CRMContactID != nil {
		contactID = *b.CRMContactID
	}

	return []any{
		string(s.Kind()),
		subtype,
		s.DisplayName(),
		b.FirstName,
		b.LastName,
		b.Email,
		b.Phone,
		b.Slug,
		string(b.TemplateStyle),
		b.ModernURL,
		b.TraditionalURL,
		b.BoldURL,
		yesNo(b.IsPasswordProtected),
		yesNo(b.OTPVerified),
		contactID,
		slots[0].Label,
		slots[1].Label,
		slots[2].Label,
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteSubmissions renders submissions as an XLSX workbook into w.
func WriteSubmissions(w io.Writer, submissions []model.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Header), 1)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	for i, s := range submissions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		row := Row(s)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
