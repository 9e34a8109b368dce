// Package output writes flattened tables.
package output

import (
	"encoding/json"

	"github.com/ukaji3/outline-go/pkg/outline/models"
)

// ToJSON serializes a Result.
func ToJSON(res *models.Result, pretty bool) ([]byte, error) {
	return marshal(res, pretty)
}

// TableToJSON serializes a single Table.
func TableToJSON(t *models.Table, pretty bool) ([]byte, error) {
	return marshal(t, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
