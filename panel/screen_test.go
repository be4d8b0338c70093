package panel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreen(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, "en")

	s.SetTitle("Computer Science")
	s.RenderRows(Rows([]Record{{Name: "Ada", Initials: "AL", IsActive: boolPtr(false)}}, "en"))
	s.ShowAlert(Alert{Kind: AlertSuccess, Message: "done"})
	s.ShowLoadError(newStatusError(404, ""))
	s.FocusField(FieldEmail)

	text := out.String()
	assert.Contains(t, text, "== Computer Science ==")
	assert.Contains(t, text, "Designation")
	assert.Contains(t, text, "Ada")
	assert.Contains(t, text, "Unlock Faculty")
	assert.Contains(t, text, "[success] done")
	assert.Contains(t, text, "404 Not Found")
	assert.Equal(t, FieldEmail, s.Focus)
}
