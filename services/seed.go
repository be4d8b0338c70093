package services

import (
	"fmt"
	"log"
	"strconv"

	"faculty_directory_go/models"

	"gorm.io/gorm"
)

// defaultDepartments is the institute's department list in display order
var defaultDepartments = []string{
	"ARCHITECTURE",
	"IT ELECTRONICS AND INSTRUMENTATION",
	"MBA",
	"MECHANICAL ENGINEERING",
	"TELECOMMUNICATION AND ENGINEERING",
	"NANO TECHNOLOGY",
	"BIO-TECHNOLOGY",
	"CHEMICAL ENGINEERING",
	"CIVIL ENGINEERING",
	"COMPUTER SCIENCE AND ENGINEERING",
	"ELECTRICAL AND ELECTRONICS ENGINEERING",
	"ELECTRONICS AND COMMUNICATION ENGINEERING",
	"INDUSTRIAL ENGINEERING AND MANAGEMENT",
	"INFORMATION SCIENCE AND ENGINEERING",
}

// SeedDepartments creates the default departments (IDs "1".."14") when the
// departments table is empty.
func SeedDepartments(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Department{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if count > 0 {
		log.Println("[SEED] Departments already exist, skipping seed")
		return 0, nil
	}

	departments := make([]models.Department, len(defaultDepartments))
	for i, name := range defaultDepartments {
		departments[i] = models.Department{
			ID:       strconv.Itoa(i + 1),
			Name:     name,
			Position: i,
		}
	}

	if err := db.Create(&departments).Error; err != nil {
		return 0, fmt.Errorf("failed to seed departments: %w", err)
	}

	log.Printf("[SEED] Created %d departments", len(departments))
	return len(departments), nil
}
