package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"faculty_directory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRosterLines(t *testing.T) {
	input := `
    1,Dr. Madhumathi P,Professor,ARCH,9916071151,madhumathi@sit.ac.in
    Siddeshagowda S,Assistant Professor,ARCH,7022715643,siddu.art@sit.ac.in

    broken,line
    3,Bhoomika U,Assistant Professor,ARCH,9902829404,bhoomikau@sit.ac.in
`
	entries, problems := ParseRosterLines(strings.NewReader(input))

	require.Len(t, entries, 3)
	assert.Equal(t, "Dr. Madhumathi P", entries[0].Name)
	assert.Equal(t, "Professor", entries[0].Designation)
	assert.Equal(t, "ARCH", entries[0].Department)
	assert.Equal(t, "madhumathi@sit.ac.in", entries[0].Email)

	assert.Equal(t, "Siddeshagowda S", entries[1].Name)
	assert.Equal(t, "7022715643", entries[1].Phone)

	assert.Equal(t, "Bhoomika U", entries[2].Name)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "expected at least 5 fields")
}

func TestImportRoster(t *testing.T) {
	db := setupServiceTestDB(t)
	seedDepartment(t, db, "1", "ARCH", models.Faculty{Name: "Existing"})
	seedDepartment(t, db, "10", "COMPUTER SCIENCE AND ENGINEERING")

	entries := []RosterEntry{
		{Line: 1, Name: "Gautham N", Designation: "Assistant Professor", Department: "arch", Phone: "9538402926", Email: "Gautham@sit.ac.in"},
		{Line: 2, Name: "Vijetha C P", Designation: "Assistant Professor", Department: "10", Phone: "9986752725", Email: "vijethacp@sit.ac.in"},
		{Line: 3, Name: "Nobody", Designation: "Professor", Department: "ASTRONOMY", Phone: "1", Email: "n@sit.ac.in"},
		{Line: 4, Name: "  ", Designation: "Professor", Department: "ARCH", Phone: "1", Email: "x@sit.ac.in"},
	}

	result, err := ImportRoster(db, entries)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Equal(t, []string{"1", "10"}, result.Departments)
	assert.Contains(t, result.Errors[0], `department "ASTRONOMY" not found`)

	arch, err := ListFaculty(db, "1", true)
	require.NoError(t, err)
	require.Len(t, arch, 2)
	assert.Equal(t, "Gautham N", arch[1].Name)
	assert.Equal(t, "gautham@sit.ac.in", arch[1].Email)
	assert.Equal(t, 1, arch[1].Position)
	require.NotNil(t, arch[1].IsActive)
}

func TestParseLegacyFilename(t *testing.T) {
	tests := []struct {
		filename string
		id       string
		name     string
		ok       bool
	}{
		{"1. ARCH.json", "1", "ARCH", true},
		{"10. COMPUTER SCIENCE AND ENGINEERING.json", "10", "COMPUTER SCIENCE AND ENGINEERING", true},
		{"MBA.json", "MBA", "MBA", true},
		{"notes.txt", "", "", false},
		{".json", "", "", false},
	}

	for _, tt := range tests {
		id, name, ok := ParseLegacyFilename(tt.filename)
		assert.Equal(t, tt.ok, ok, tt.filename)
		assert.Equal(t, tt.id, id, tt.filename)
		assert.Equal(t, tt.name, name, tt.filename)
	}
}

func TestImportLegacyDirectory(t *testing.T) {
	db := setupServiceTestDB(t)
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("10. COMPUTER SCIENCE AND ENGINEERING.json", `[
		{"Name": "Legacy Member", "Designation": "Professor", "Phone": "1", "Email": "l@sit.ac.in"},
		{"Name": "Locked Member", "Designation": "Professor", "Phone": "2", "Email": "k@sit.ac.in", "isActive": false}
	]`)
	write("2. IT ELECTRONICS AND INSTRUMENTATION.json", `{"faculty": [{"Name": "Nested Member", "Initials": "NM"}]}`)
	write("3. MBA.json", `not json`)
	write("departments.json", `[{"id": 1, "name": "ARCH"}]`)
	write("README.md", "ignored")

	result, err := ImportLegacyDirectory(db, dir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, []string{"2", "10"}, result.Departments)

	departments, err := ListDepartments(db)
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "IT ELECTRONICS AND INSTRUMENTATION", departments[0].Name)

	cs, err := ListFaculty(db, "10", true)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Nil(t, cs[0].IsActive, "missing flag is preserved")
	assert.False(t, cs[1].Active())

	nested, err := ListFaculty(db, "2", true)
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "NM", nested[0].Initials)
}

func TestBackfillFacultyStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	seedDepartment(t, db, "CS101", "Computer Science",
		models.Faculty{Name: "No Flag"},
		models.Faculty{Name: "Locked", IsActive: boolPtr(false)},
		models.Faculty{Name: "Also No Flag"},
	)

	updated, err := BackfillFacultyStatus(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	list, err := ListFaculty(db, "CS101", true)
	require.NoError(t, err)
	for _, member := range list {
		require.NotNil(t, member.IsActive, member.Name)
	}
	assert.False(t, list[1].Active())

	updated, err = BackfillFacultyStatus(db)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestSnapshotAndRestore(t *testing.T) {
	db := setupServiceTestDB(t)
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	seedDepartment(t, db, "CS101", "Computer Science",
		models.Faculty{Name: "First", Initials: "F"},
		models.Faculty{Name: "Second", IsActive: boolPtr(false)},
	)

	result, err := SnapshotDepartment(ctx, db, storage, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "faculty_json/CS101.json", result.Key)

	snapshot, err := ReadSnapshot(ctx, storage, "CS101")
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "First", snapshot[0].Name)
	assert.Nil(t, snapshot[0].IsActive)
	assert.False(t, snapshot[1].Active())

	_, err = AddFaculty(db, "CS101", FacultyInput{Name: "Third", Initials: "T", Designation: "D", Phone: "1", Email: "t@b.co"})
	require.NoError(t, err)

	restored, err := RestoreSnapshot(ctx, db, storage, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 2, restored)

	list, err := ListFaculty(db, "CS101", true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[1].Name)

	_, err = SnapshotDepartment(ctx, db, nil, "CS101")
	assert.Error(t, err)
}

func TestSnapshotRemovedWhenDepartmentEmpty(t *testing.T) {
	db := setupServiceTestDB(t)
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	seedDepartment(t, db, "CS101", "Computer Science", models.Faculty{Name: "First", Initials: "F"})

	_, err := SnapshotDepartment(ctx, db, storage, "CS101")
	require.NoError(t, err)

	require.NoError(t, db.Where("department_id = ?", "CS101").Delete(&models.Faculty{}).Error)

	result, err := SnapshotDepartment(ctx, db, storage, "CS101")
	require.NoError(t, err)
	assert.Nil(t, result)

	_, err = ReadSnapshot(ctx, storage, "CS101")
	assert.Error(t, err)
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "faculty_json/CS101.json", SnapshotKey("CS101"))
	assert.Equal(t, "faculty_json/a_b.json", SnapshotKey("a/b"))
	assert.Equal(t, "faculty_json/_.json", SnapshotKey(".."))
}
