package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"panel": map[string]interface{}{
			"empty": "No faculty",
			"form": map[string]interface{}{
				"hide": "Hide Form",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "No faculty", flat["panel.empty"])
	assert.Equal(t, "Hide Form", flat["panel.form.hide"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "No placeholders",
			text:     "Faculty not found",
			expected: "Faculty not found",
		},
		{
			name:     "Single placeholder",
			text:     "Missing required field: {field}",
			args:     map[string]interface{}{"field": "Email"},
			expected: "Missing required field: Email",
		},
		{
			name:     "Missing argument",
			text:     "Imported {count} faculty members",
			args:     map[string]interface{}{"other": 1},
			expected: "Imported {count} faculty members",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetLocale(t *testing.T) {
	assert.Equal(t, "en", GetLocale(context.Background()))
	assert.Equal(t, "es", GetLocale(WithLocale(context.Background(), "es")))
	assert.Equal(t, "en", GetLocale(WithLocale(context.Background(), "")))
}

func TestTranslateLogic(t *testing.T) {
	mutex.Lock()
	oldTrans := translations
	translations = map[string]map[string]string{
		"en": {"test.hello": "Hello", "test.welcome": "Welcome {name}"},
		"es": {"test.hello": "Hola"},
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	assert.Equal(t, "Hola", Translate("es", "test.hello"))
	assert.Equal(t, "Hello", Translate("en", "test.hello"))
	assert.Equal(t, "Welcome Juan", Translate("es", "test.welcome", map[string]interface{}{"name": "Juan"}))
	assert.Equal(t, "missing.key", Translate("es", "missing.key"))
	assert.Equal(t, "Hola", T(WithLocale(context.Background(), "es"), "test.hello"))
}

func TestLoadedLocalesShareKeys(t *testing.T) {
	require.NoError(t, Load())
	require.NoError(t, Load())

	assert.Equal(t, []string{"en", "es"}, Languages())

	mutex.RLock()
	defer mutex.RUnlock()
	en, es := translations["en"], translations["es"]
	for key := range en {
		assert.Contains(t, es, key, "es locale is missing %s", key)
	}
	for key := range es {
		assert.Contains(t, en, key, "en locale is missing %s", key)
	}

	assert.Equal(t, "Faculty member locked successfully!", en["panel.toggle.locked"])
}
