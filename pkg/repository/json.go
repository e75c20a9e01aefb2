package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON adapts a pointer-typed value to a nullable jsonb column. A nil V
// is stored as SQL NULL and NULL scans back to a nil V.
type JSON[T any] struct {
	V *T
}

// Value implements driver.Valuer.
func (j JSON[T]) Value() (driver.Value, error) {
	if j.V == nil {
		return nil, nil
	}
	data, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (j *JSON[T]) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		j.V = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("scan jsonb: %w", err)
	}
	j.V = &out
	return nil
}
