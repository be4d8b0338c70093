package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"faculty_directory_go/models"

	"gorm.io/gorm"
)

// ImportResult contains the summary of an import run
type ImportResult struct {
	TotalProcessed int
	SuccessCount   int
	FailedCount    int
	Departments    []string // Departments that received records
	Errors         []string
}

func (r *ImportResult) addDepartment(deptID string) {
	for _, d := range r.Departments {
		if d == deptID {
			return
		}
	}
	r.Departments = append(r.Departments, deptID)
}

func (r *ImportResult) fail(format string, args ...interface{}) {
	r.FailedCount++
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// RosterEntry is one parsed roster line
type RosterEntry struct {
	Line        int
	Name        string
	Initials    string
	Designation string
	Department  string // Department name or ID
	Phone       string
	Email       string
}

// ParseRosterLines reads comma separated roster lines in either layout:
//
//	serial,Name,Designation,DEPARTMENT,Phone,Email
//	Name,Designation,DEPARTMENT,Phone,Email
//
// Blank lines are skipped; malformed lines are reported and skipped.
func ParseRosterLines(r io.Reader) ([]RosterEntry, []string) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var entries []RosterEntry
	var problems []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				problems = append(problems, fmt.Sprintf("line %d: %v", parseErr.Line, parseErr.Err))
				continue
			}
			problems = append(problems, err.Error())
			break
		}
		line, _ := reader.FieldPos(0)

		fields := make([]string, len(record))
		for i, f := range record {
			fields[i] = strings.TrimSpace(f)
		}
		if len(fields) == 1 && fields[0] == "" {
			continue
		}

		if len(fields) >= 6 && isSerial(fields[0]) {
			fields = fields[1:]
		}
		if len(fields) < 5 {
			problems = append(problems, fmt.Sprintf("line %d: expected at least 5 fields, got %d", line, len(fields)))
			continue
		}

		entries = append(entries, RosterEntry{
			Line:        line,
			Name:        fields[0],
			Designation: fields[1],
			Department:  fields[2],
			Phone:       fields[3],
			Email:       fields[4],
		})
	}

	return entries, problems
}

func isSerial(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// ImportRoster appends roster entries to their departments, matched by ID or
// case-insensitive name. Entries for unknown departments are reported.
func ImportRoster(db *gorm.DB, entries []RosterEntry) (*ImportResult, error) {
	departments, err := ListDepartments(db)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(departments)*2)
	for _, d := range departments {
		lookup[strings.ToUpper(d.ID)] = d.ID
		lookup[strings.ToUpper(d.Name)] = d.ID
	}

	result := &ImportResult{}
	grouped := make(map[string][]models.Faculty)
	var order []string

	for _, entry := range entries {
		result.TotalProcessed++

		deptID, ok := lookup[strings.ToUpper(entry.Department)]
		if !ok {
			result.fail("line %d: department %q not found", entry.Line, entry.Department)
			continue
		}

		faculty := models.Faculty{
			Name:        cleanText(entry.Name),
			Initials:    strings.ToUpper(cleanText(entry.Initials)),
			Designation: cleanText(entry.Designation),
			Phone:       cleanText(entry.Phone),
			Email:       strings.ToLower(cleanText(entry.Email)),
		}
		if faculty.Name == "" {
			result.fail("line %d: name is empty", entry.Line)
			continue
		}
		faculty.SetActive(true)

		if _, seen := grouped[deptID]; !seen {
			order = append(order, deptID)
		}
		grouped[deptID] = append(grouped[deptID], faculty)
	}

	for _, deptID := range order {
		if err := appendFaculty(db, deptID, grouped[deptID]); err != nil {
			return result, err
		}
		result.SuccessCount += len(grouped[deptID])
		result.addDepartment(deptID)
	}

	return result, nil
}

// appendFaculty adds records after the department's last position
func appendFaculty(db *gorm.DB, deptID string, faculty []models.Faculty) error {
	if len(faculty) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(tx, deptID)
		if err != nil {
			return err
		}
		for i := range faculty {
			faculty[i].ID = ""
			faculty[i].DepartmentID = deptID
			faculty[i].Position = position + i
		}
		if err := tx.Create(&faculty).Error; err != nil {
			return fmt.Errorf("failed to import faculty into %s: %w", deptID, err)
		}
		return nil
	})
}

// ParseLegacyFilename splits directory file names such as
// "10. COMPUTER SCIENCE AND ENGINEERING.json" into an ID ("10") and a name.
// Names without a numbered prefix use the whole stem for both.
func ParseLegacyFilename(filename string) (id string, name string, ok bool) {
	if !strings.HasSuffix(strings.ToLower(filename), ".json") {
		return "", "", false
	}
	stem := strings.TrimSpace(filename[:len(filename)-len(".json")])
	if stem == "" {
		return "", "", false
	}

	if prefix, rest, found := strings.Cut(stem, ". "); found && isSerial(prefix) && strings.TrimSpace(rest) != "" {
		return prefix, strings.TrimSpace(rest), true
	}
	return stem, stem, true
}

// ImportLegacyDirectory loads a directory of per-department JSON files. Each
// file holds either an array of records or an object whose array values hold
// records. Records keep a missing isActive flag as missing; run
// BackfillFacultyStatus afterwards to make it explicit.
func ImportLegacyDirectory(db *gorm.DB, dir string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && e.Name() != "departments.json" {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool { return legacyLess(names[i], names[j]) })

	result := &ImportResult{}
	for i, filename := range names {
		deptID, deptName, ok := ParseLegacyFilename(filename)
		if !ok {
			continue
		}

		records, err := readLegacyFile(filepath.Join(dir, filename))
		result.TotalProcessed += len(records)
		if err != nil {
			result.fail("%s: %v", filename, err)
			continue
		}

		if _, err := EnsureDepartment(db, deptID, deptName, i); err != nil {
			return result, err
		}
		if err := appendFaculty(db, deptID, records); err != nil {
			return result, err
		}
		result.SuccessCount += len(records)
		result.addDepartment(deptID)
	}

	return result, nil
}

// legacyLess orders numbered files numerically, then by name
func legacyLess(a, b string) bool {
	idA, _, _ := ParseLegacyFilename(a)
	idB, _, _ := ParseLegacyFilename(b)
	nA, errA := strconv.Atoi(idA)
	nB, errB := strconv.Atoi(idB)
	if errA == nil && errB == nil && nA != nB {
		return nA < nB
	}
	return a < b
}

func readLegacyFile(path string) ([]models.Faculty, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []models.Faculty
	if err := json.Unmarshal(content, &list); err == nil {
		return list, nil
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(content, &nested); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	keys := make([]string, 0, len(nested))
	for k := range nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var group []models.Faculty
		if err := json.Unmarshal(nested[k], &group); err == nil {
			list = append(list, group...)
		}
	}
	return list, nil
}

// BackfillFacultyStatus marks every record without a status flag as active and
// returns how many were updated.
func BackfillFacultyStatus(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Faculty{}).Where("is_active IS NULL").Update("is_active", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to backfill status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RestoreSnapshot replaces a department's faculty with its stored snapshot
func RestoreSnapshot(ctx context.Context, db *gorm.DB, storage StorageProvider, deptID string) (int, error) {
	if _, err := GetDepartment(db, deptID); err != nil {
		return 0, err
	}

	faculty, err := ReadSnapshot(ctx, storage, deptID)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", deptID).Delete(&models.Faculty{}).Error; err != nil {
			return err
		}
		return appendFaculty(tx, deptID, faculty)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to restore %s: %w", deptID, err)
	}
	return len(faculty), nil
}
