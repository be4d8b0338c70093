package services

import (
	"errors"
	"fmt"
	"strings"

	"faculty_directory_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrFacultyNotFound    = errors.New("faculty not found")
)

// FacultyInput is the body of an add request. Field names match the stored
// record keys and their order decides which failure is reported first.
type FacultyInput struct {
	Name        string `json:"name" form:"name" validate:"required,max=200"`
	Initials    string `json:"initials" form:"initials" validate:"required,max=20"`
	Designation string `json:"designation" form:"designation" validate:"required,max=200"`
	Phone       string `json:"phone" form:"phone" validate:"required,max=50"`
	Email       string `json:"email" form:"email" validate:"required,max=200"`
}

// Normalize strips markup and applies the stored casing rules
func (in FacultyInput) Normalize() FacultyInput {
	return FacultyInput{
		Name:        TitleCase(cleanText(in.Name)),
		Initials:    strings.ToUpper(cleanText(in.Initials)),
		Designation: cleanText(in.Designation),
		Phone:       cleanText(in.Phone),
		Email:       strings.ToLower(cleanText(in.Email)),
	}
}

// ListDepartments returns all departments in display order
func ListDepartments(db *gorm.DB) ([]models.Department, error) {
	var departments []models.Department
	err := db.Order("position ASC, name ASC").Find(&departments).Error
	return departments, err
}

// GetDepartment fetches a department by ID
func GetDepartment(db *gorm.DB, deptID string) (*models.Department, error) {
	var dept models.Department
	if err := db.First(&dept, "id = ?", deptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

// EnsureDepartment creates the department if it does not exist yet and keeps
// the stored name otherwise.
func EnsureDepartment(db *gorm.DB, deptID, name string, position int) (*models.Department, error) {
	dept := models.Department{ID: deptID, Name: name, Position: position}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dept).Error; err != nil {
		return nil, fmt.Errorf("failed to create department %s: %w", deptID, err)
	}
	return GetDepartment(db, deptID)
}

// ListFaculty returns a department's faculty in positional order. Unknown
// departments yield an empty list. Inactive records are dropped unless
// includeInactive is set; a missing flag counts as active.
func ListFaculty(db *gorm.DB, deptID string, includeInactive bool) ([]models.Faculty, error) {
	faculty := []models.Faculty{}

	query := db.Where("department_id = ?", deptID)
	if !includeInactive {
		query = query.Where("is_active IS NULL OR is_active = ?", true)
	}

	if err := query.Order("position ASC").Find(&faculty).Error; err != nil {
		return nil, fmt.Errorf("failed to list faculty for %s: %w", deptID, err)
	}
	return faculty, nil
}

// AddFaculty normalises and validates input, then appends the new member at
// the end of the department's list as active.
func AddFaculty(db *gorm.DB, deptID string, input FacultyInput) (*models.Faculty, error) {
	if _, err := GetDepartment(db, deptID); err != nil {
		return nil, err
	}

	in := input.Normalize()
	if err := ValidateStruct(in); err != nil {
		return nil, err
	}

	faculty := &models.Faculty{
		DepartmentID: deptID,
		Name:         in.Name,
		Initials:     in.Initials,
		Designation:  in.Designation,
		Phone:        in.Phone,
		Email:        in.Email,
	}
	faculty.SetActive(true)

	err := db.Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(tx, deptID)
		if err != nil {
			return err
		}
		faculty.Position = position
		return tx.Create(faculty).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add faculty to %s: %w", deptID, err)
	}

	return faculty, nil
}

// ToggleFacultyStatus flips the status of the record at index (0-based, in
// positional order). When currentStatus is given the new status is its
// negation, otherwise the stored status is flipped. It returns the updated
// record and the previous effective status.
func ToggleFacultyStatus(db *gorm.DB, deptID string, index int, currentStatus *bool) (*models.Faculty, bool, error) {
	if index < 0 {
		return nil, false, ErrFacultyNotFound
	}

	var faculty models.Faculty
	var previous bool

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := facultyAt(tx, deptID, index)
		if err != nil {
			return err
		}

		previous = found.Active()
		if currentStatus != nil {
			previous = *currentStatus
		}

		found.SetActive(!previous)
		if err := tx.Model(found).Update("is_active", !previous).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		faculty = *found
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &faculty, previous, nil
}

// facultyAt returns the record at the given positional index
func facultyAt(db *gorm.DB, deptID string, index int) (*models.Faculty, error) {
	var found []models.Faculty
	if err := db.Where("department_id = ?", deptID).
		Order("position ASC").
		Offset(index).
		Limit(1).
		Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrFacultyNotFound
	}
	return &found[0], nil
}

func nextPosition(db *gorm.DB, deptID string) (int, error) {
	var maxPosition int
	if err := db.Model(&models.Faculty{}).
		Where("department_id = ?", deptID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition).Error; err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}
