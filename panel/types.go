package panel

import (
	"strings"
	"time"

	"faculty_directory_go/services/i18n"
)

// AlertTimeout is how long views keep an alert before dismissing it
const AlertTimeout = 5 * time.Second

// State is the controller's position in the load cycle
type State int

const (
	StateNoSelection State = iota
	StateLoading
	StateLoaded
	StateLoadError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadError:
		return "load_error"
	default:
		return "no_selection"
	}
}

// Department identifies the selected department
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Record is a faculty entry as served by GET /api/faculty/{id}
type Record struct {
	Name        string `json:"Name"`
	Initials    string `json:"Initials"`
	Designation string `json:"Designation"`
	Phone       string `json:"Phone"`
	Email       string `json:"Email"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Active treats a missing flag as active
func (r Record) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// AlertKind matches the Bootstrap contextual classes used by the page
type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertSuccess AlertKind = "success"
	AlertWarning AlertKind = "warning"
	AlertDanger  AlertKind = "danger"
)

// Alert is a dismissible message; a new alert replaces the previous one
type Alert struct {
	Kind    AlertKind
	Message string
}

// Button describes a control's label, Bootstrap icon and style class
type Button struct {
	Label string
	Icon  string
	Style string
}

// Row is the presentation model of one table row. Blank fields are already
// replaced with the "not available" placeholder.
type Row struct {
	Index       int
	Name        string
	Initials    string
	Designation string
	Phone       string
	Email       string
	// HasEmail is false when Email holds the placeholder
	HasEmail    bool
	Active      bool
	StatusLabel string
	StatusIcon  string
	StatusClass string
	Action      Button
}

// RowFromRecord builds the row shown for the record at index
func RowFromRecord(index int, r Record, lang string) Row {
	na := i18n.Translate(lang, "panel.not_available")
	orNA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return na
		}
		return s
	}

	row := Row{
		Index:       index,
		Name:        orNA(r.Name),
		Initials:    orNA(r.Initials),
		Designation: orNA(r.Designation),
		Phone:       orNA(r.Phone),
		Email:       orNA(r.Email),
		HasEmail:    strings.TrimSpace(r.Email) != "",
		Active:      r.Active(),
	}

	if row.Active {
		row.StatusLabel = i18n.Translate(lang, "panel.status.active")
		row.StatusIcon = "bi-check-circle"
		row.StatusClass = "bg-success"
		row.Action = Button{
			Label: i18n.Translate(lang, "panel.action.lock"),
			Icon:  "bi-lock",
			Style: "btn-outline-warning",
		}
	} else {
		row.StatusLabel = i18n.Translate(lang, "panel.status.locked")
		row.StatusIcon = "bi-lock"
		row.StatusClass = "bg-secondary"
		row.Action = Button{
			Label: i18n.Translate(lang, "panel.action.unlock"),
			Icon:  "bi-unlock",
			Style: "btn-outline-success",
		}
	}
	return row
}

// Rows converts a fetched list in order
func Rows(records []Record, lang string) []Row {
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, RowFromRecord(i, r, lang))
	}
	return rows
}

// FormButton returns the add-form toggle button for the given visibility
func FormButton(open bool, lang string) Button {
	if open {
		return Button{Label: i18n.Translate(lang, "panel.form.hide"), Icon: "bi-dash-lg", Style: "btn-outline-secondary"}
	}
	return Button{Label: i18n.Translate(lang, "panel.form.show"), Icon: "bi-plus-lg", Style: "btn-primary"}
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	State      State
	Department *Department
	Rows       []Row
	FormOpen   bool
	Alert      *Alert
	LoadErr    *RequestError
}
