package panel

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"faculty_directory_go/services/i18n"
)

// Screen is a plain terminal View. Alerts are printed once; there is nothing
// to dismiss.
type Screen struct {
	out  io.Writer
	lang string
	// Focus is the last field the controller asked to focus
	Focus string
}

// NewScreen writes to out using lang for headings
func NewScreen(out io.Writer, lang string) *Screen {
	return &Screen{out: out, lang: lang}
}

func (s *Screen) t(key string) string {
	return i18n.Translate(s.lang, key)
}

func (s *Screen) SetTitle(title string) {
	fmt.Fprintf(s.out, "\n== %s ==\n", title)
}

func (s *Screen) ShowLoading() {
	fmt.Fprintln(s.out, s.t("panel.loading"))
}

func (s *Screen) ShowEmpty() {
	fmt.Fprintln(s.out, s.t("panel.empty"))
}

func (s *Screen) ShowLoadError(err *RequestError) {
	fmt.Fprintln(s.out, s.t("panel.load_error"))
	if err.Status != 0 {
		fmt.Fprintf(s.out, "  %d %s\n", err.Status, err.StatusText)
	} else if err.Err != nil {
		fmt.Fprintf(s.out, "  %v\n", err.Err)
	}
}

func (s *Screen) RenderRows(rows []Row) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	headers := []string{
		"#",
		s.t("panel.columns.name"),
		s.t("panel.columns.initials"),
		s.t("panel.columns.designation"),
		s.t("panel.columns.phone"),
		s.t("panel.columns.email"),
		s.t("panel.columns.status"),
		s.t("panel.columns.actions"),
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index, r.Name, r.Initials, r.Designation, r.Phone, r.Email, r.StatusLabel, r.Action.Label)
	}
	_ = w.Flush()
}

func (s *Screen) ShowAlert(alert Alert) {
	fmt.Fprintf(s.out, "[%s] %s\n", alert.Kind, alert.Message)
}

func (s *Screen) SetSubmitBusy(busy bool) {
	if busy {
		fmt.Fprintln(s.out, s.t("panel.form.adding"))
	}
}

func (s *Screen) SetToggleBusy(index int, busy bool) {
	if busy {
		fmt.Fprintf(s.out, "#%d ...\n", index)
	}
}

func (s *Screen) SetFormVisible(visible bool, toggle Button) {
	if visible {
		fmt.Fprintf(s.out, "-- %s -- (%s)\n", s.t("panel.form.submit"), toggle.Label)
	}
}

func (s *Screen) ResetForm() {
	s.Focus = ""
}

func (s *Screen) FocusField(field string) {
	s.Focus = field
}
