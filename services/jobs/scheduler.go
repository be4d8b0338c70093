package jobs

import (
	"context"
	"log"

	"faculty_directory_go/models"
	"faculty_directory_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler starts the nightly maintenance run: records missing a
// status flag are backfilled, then every department is snapshotted.
func StartScheduler(database *gorm.DB, storage services.StorageProvider) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		log.Println("[CRON] Running nightly faculty maintenance...")
		RunMaintenance(context.Background(), database, storage)
	})
	if err != nil {
		log.Fatalf("[CRON] Failed to schedule maintenance: %v", err)
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return c
}

// RunMaintenance backfills status flags and refreshes all snapshots
func RunMaintenance(ctx context.Context, database *gorm.DB, storage services.StorageProvider) {
	updated, err := services.BackfillFacultyStatus(database)
	if err != nil {
		log.Printf("[JOB] Status backfill failed: %v", err)
	} else if updated > 0 {
		log.Printf("[JOB] Backfilled status for %d faculty members", updated)
		services.LogAuditEvent(database, services.AuditContext{}, models.AuditActionStatusBackfill,
			"faculty", "", "", "Nightly status backfill", nil, map[string]int64{"updated": updated})
	}

	count, err := SnapshotAllDepartments(ctx, database, storage)
	if err != nil {
		log.Printf("[JOB] Snapshot run failed: %v", err)
		return
	}
	log.Printf("[JOB] Snapshotted %d departments", count)
}

// SnapshotAllDepartments writes a snapshot for every department with
// faculty and returns how many were written. Empty departments lose their
// snapshot. A failing department is logged and skipped.
func SnapshotAllDepartments(ctx context.Context, database *gorm.DB, storage services.StorageProvider) (int, error) {
	departments, err := services.ListDepartments(database)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, dept := range departments {
		result, err := services.SnapshotDepartment(ctx, database, storage, dept.ID)
		if err != nil {
			log.Printf("[JOB] Error snapshotting department %s: %v", dept.ID, err)
			continue
		}
		if result != nil {
			count++
		}
	}
	return count, nil
}
