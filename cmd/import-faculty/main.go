package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"faculty_directory_go/config"
	"faculty_directory_go/db"
	"faculty_directory_go/models"
	"faculty_directory_go/services"
	"faculty_directory_go/services/i18n"

	"gorm.io/gorm"
)

func main() {
	legacyDir := flag.String("legacy", "", "directory of '<n>. <NAME>.json' department files to import")
	rosterFile := flag.String("roster", "", "roster to import: text lines 'n,Name,Designation,DEPARTMENT,Phone,Email' or an .xlsx workbook")
	deptID := flag.String("dept", "", "target department for an .xlsx roster")
	backfill := flag.Bool("backfill", false, "mark records without a status flag as active")
	restore := flag.String("restore", "", "replace a department's faculty with its stored snapshot")
	flag.Parse()

	if *legacyDir == "" && *rosterFile == "" && !*backfill && *restore == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.MigrateDirectory(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	if *legacyDir != "" {
		result, err := services.ImportLegacyDirectory(db.DB, *legacyDir)
		if err != nil {
			log.Fatalf("Legacy import failed: %v", err)
		}
		report("Legacy import", result)
		snapshot(cfg, result.Departments)
	}

	if *rosterFile != "" {
		result, err := importRoster(db.DB, *rosterFile, *deptID)
		if err != nil {
			log.Fatalf("Roster import failed: %v", err)
		}
		report("Roster import", result)
		snapshot(cfg, result.Departments)
	}

	if *backfill {
		updated, err := services.BackfillFacultyStatus(db.DB)
		if err != nil {
			log.Fatalf("Backfill failed: %v", err)
		}
		log.Printf("Updated status for %d faculty members", updated)
		if updated > 0 {
			writeAudit(models.AuditActionStatusBackfill, "", fmt.Sprintf("Backfilled status for %d faculty members", updated))
		}
	}

	if *restore != "" {
		services.InitializeStorage(cfg)
		count, err := services.RestoreSnapshot(context.Background(), db.DB, services.Storage, *restore)
		if err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
		log.Printf("Restored %d faculty members into department %s from %s", count, *restore, services.Storage.Name())
	}
}

func importRoster(database *gorm.DB, path, deptID string) (*services.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		if deptID == "" {
			return nil, fmt.Errorf("-dept is required for .xlsx rosters")
		}
		return services.ImportRosterWorkbook(database, deptID, f)
	}

	entries, warnings := services.ParseRosterLines(f)
	for _, w := range warnings {
		log.Printf("[WARNING] %s", w)
	}
	return services.ImportRoster(database, entries)
}

func report(label string, result *services.ImportResult) {
	log.Printf("%s: processed %d, imported %d, failed %d", label, result.TotalProcessed, result.SuccessCount, result.FailedCount)
	for _, e := range result.Errors {
		log.Printf("[WARNING] %s", e)
	}
	for _, d := range result.Departments {
		writeAudit(models.AuditActionImport, d, label)
	}
}

// writeAudit records synchronously; the process exits right after
func writeAudit(action models.AuditAction, deptID, description string) {
	entry := models.AuditLog{
		DepartmentID: deptID,
		ResourceType: "department",
		ResourceID:   deptID,
		Action:       action,
		Description:  description,
		UserAgent:    "import-faculty",
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("[AUDIT] Failed to create audit log: %v", err)
	}
}

// snapshot refreshes stored copies of the departments an import touched
func snapshot(cfg *config.Config, departments []string) {
	if len(departments) == 0 {
		return
	}
	if services.Storage == nil {
		services.InitializeStorage(cfg)
	}
	for _, d := range departments {
		if _, err := services.SnapshotDepartment(context.Background(), db.DB, services.Storage, d); err != nil {
			log.Printf("[WARNING] Failed to snapshot department %s: %v", d, err)
		}
	}
}
