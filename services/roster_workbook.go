package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"faculty_directory_go/models"
	"faculty_directory_go/services/i18n"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errEmptyWorkbook = errors.New("workbook has no sheets")

// rosterColumns are the workbook columns in order; Status is optional on import
var rosterColumns = []string{"name", "initials", "designation", "phone", "email", "status"}

// ExportRosterWorkbook renders a department's full list (inactive included)
// as an xlsx workbook whose first row is a header.
func ExportRosterWorkbook(ctx context.Context, db *gorm.DB, deptID string) (*bytes.Buffer, error) {
	dept, err := GetDepartment(db, deptID)
	if err != nil {
		return nil, err
	}

	faculty, err := ListFaculty(db, deptID, true)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "roster.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, column := range rosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, i18n.T(ctx, "panel.columns."+column))
	}

	for i, member := range faculty {
		row := i + 2
		status := i18n.T(ctx, "panel.status.active")
		if !member.Active() {
			status = i18n.T(ctx, "panel.status.locked")
		}
		values := []string{member.Name, member.Initials, member.Designation, member.Phone, member.Email, status}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	f.SetColWidth(sheet, "A", "F", 24)
	f.SetDocProps(&excelize.DocProperties{
		Title: i18n.T(ctx, "roster.title", map[string]interface{}{"department": dept.Name}),
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// ImportRosterWorkbook appends the rows of the first sheet to a department.
// Row 1 is a header. A Status cell reading locked/inactive/false imports the
// record as locked.
func ImportRosterWorkbook(db *gorm.DB, deptID string, r io.Reader) (*ImportResult, error) {
	if _, err := GetDepartment(db, deptID); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	result := &ImportResult{}
	var faculty []models.Faculty

	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		in := FacultyInput{
			Name:        cellAt(row, 0),
			Initials:    cellAt(row, 1),
			Designation: cellAt(row, 2),
			Phone:       cellAt(row, 3),
			Email:       cellAt(row, 4),
		}.Normalize()

		if err := ValidateStruct(in); err != nil {
			result.fail("row %d: %v", i+1, err)
			continue
		}

		member := models.Faculty{
			Name:        in.Name,
			Initials:    in.Initials,
			Designation: in.Designation,
			Phone:       in.Phone,
			Email:       in.Email,
		}
		member.SetActive(!lockedStatus(cellAt(row, 5)))
		faculty = append(faculty, member)
	}

	if err := appendFaculty(db, deptID, faculty); err != nil {
		return result, err
	}
	result.SuccessCount = len(faculty)
	if len(faculty) > 0 {
		result.addDepartment(deptID)
	}
	return result, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func lockedStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "locked", "inactive", "false", "no", "0", "bloqueado", "inactivo":
		return true
	default:
		return false
	}
}
