package components

import (
	"encoding/json"
	"log"
)

// JSON marshals a value for use in an attribute such as hx-vals, returning
// "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Failed to marshal component JSON: %v", err)
		return "{}"
	}
	return string(b)
}
