// Package decode converts loosely-typed map data into typed structures
// via a JSON round trip.
package decode

import "encoding/json"

// FromMap decodes a map into the target type using JSON field tags.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
