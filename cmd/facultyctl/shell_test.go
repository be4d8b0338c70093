package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"faculty_directory_go/panel"
	"faculty_directory_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	records []panel.Record
	added   []panel.FormFields
	toggled []int
}

func (f *fakeAPI) ListDepartments(ctx context.Context) ([]panel.Department, error) {
	return []panel.Department{{ID: "CS101", Name: "Computer Science"}}, nil
}

func (f *fakeAPI) ListFaculty(ctx context.Context, deptID string) ([]panel.Record, error) {
	return f.records, nil
}

func (f *fakeAPI) AddFaculty(ctx context.Context, deptID string, fields panel.FormFields) error {
	f.added = append(f.added, fields)
	f.records = append(f.records, panel.Record{Name: fields.Name, Initials: fields.Initials})
	return nil
}

func (f *fakeAPI) ToggleStatus(ctx context.Context, deptID string, index int) (bool, error) {
	f.toggled = append(f.toggled, index)
	active := false
	f.records[index].IsActive = &active
	return false, nil
}

func TestRunShell(t *testing.T) {
	require.NoError(t, i18n.Load())

	api := &fakeAPI{}
	var out bytes.Buffer
	controller := panel.New(api, panel.NewScreen(&out, "en"))

	input := strings.Join([]string{
		"departments",
		"select CS101",
		"add",
		"Jane Doe",
		"jd",
		"Professor",
		"555",
		"jane@uni.edu",
		"toggle 0",
		"bogus",
		"quit",
	}, "\n")

	require.NoError(t, runShell(context.Background(), strings.NewReader(input), &out, api, controller))

	require.Len(t, api.added, 1)
	assert.Equal(t, "JD", api.added[0].Initials)
	assert.Equal(t, []int{0}, api.toggled)

	text := out.String()
	assert.Contains(t, text, "== Computer Science ==")
	assert.Contains(t, text, "No faculty members found in this department")
	assert.Contains(t, text, "[success] Faculty member added successfully!")
	assert.Contains(t, text, "[success] Faculty member locked successfully!")
	assert.Contains(t, text, `unknown command "bogus"`)
}

func TestRunShellToggleWithoutSelection(t *testing.T) {
	require.NoError(t, i18n.Load())

	api := &fakeAPI{}
	var out bytes.Buffer
	controller := panel.New(api, panel.NewScreen(&out, "en"))

	require.NoError(t, runShell(context.Background(), strings.NewReader("toggle 1\n"), &out, api, controller))
	assert.Empty(t, api.toggled)
	assert.Contains(t, out.String(), "select a department first")
}
