package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// TagList stores a meal's free-text labels as a JSON array in a text column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported tag list column type %T", value)
	}

	if len(data) == 0 {
		*t = nil
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return errors.New("malformed tag list")
	}
	*t = tags
	return nil
}
