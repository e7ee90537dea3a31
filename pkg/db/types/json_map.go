package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores a flat string-to-string JSON object in a jsonb column.
type JSONMap map[string]string

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("JSONMap: unsupported Scan type %T", src)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}

	out := map[string]string{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("JSONMap: decode: %w", err)
	}
	*m = out
	return nil
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, fmt.Errorf("JSONMap: encode: %w", err)
	}
	return string(data), nil
}
