package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"faculty_directory_go/models"

	"gorm.io/gorm"
)

const snapshotPrefix = "faculty_json"

// SnapshotKey returns the storage key holding a department's JSON snapshot
func SnapshotKey(deptID string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(deptID)
	return path.Join(snapshotPrefix, safe+".json")
}

// SnapshotDepartment writes the department's full faculty list, inactive
// records included, as an indented JSON array in the directory file format.
// A department without records has its snapshot removed; the result is nil
// then.
func SnapshotDepartment(ctx context.Context, db *gorm.DB, storage StorageProvider, deptID string) (*StorageResult, error) {
	if storage == nil {
		return nil, errors.New("storage not initialized")
	}

	faculty, err := ListFaculty(db, deptID, true)
	if err != nil {
		return nil, err
	}
	if len(faculty) == 0 {
		if err := storage.Delete(ctx, SnapshotKey(deptID)); err != nil {
			return nil, fmt.Errorf("failed to remove snapshot for %s: %w", deptID, err)
		}
		return nil, nil
	}

	payload, err := json.MarshalIndent(faculty, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return storage.Put(ctx, bytes.NewReader(payload), SnapshotKey(deptID), "application/json", int64(len(payload)))
}

// ReadSnapshot loads the records stored by SnapshotDepartment
func ReadSnapshot(ctx context.Context, storage StorageProvider, deptID string) ([]models.Faculty, error) {
	if storage == nil {
		return nil, errors.New("storage not initialized")
	}

	reader, _, err := storage.Get(ctx, SnapshotKey(deptID))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var faculty []models.Faculty
	if err := json.NewDecoder(reader).Decode(&faculty); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", deptID, err)
	}
	return faculty, nil
}
