package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	bytesToParse, err := bytesFromColumn(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if bytesToParse == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// EntityMap stores the key-entity category mapping as a JSON text column.
type EntityMap map[string][]string

// Value implements the driver.Valuer interface
func (m EntityMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *EntityMap) Scan(value interface{}) error {
	bytesToParse, err := bytesFromColumn(value)
	if err != nil {
		return fmt.Errorf("EntityMap Scan: %w", err)
	}
	if bytesToParse == nil {
		*m = EntityMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// QuestionRecord is the persisted shape of one question, matching the wire
// field names so stored payloads stay readable.
type QuestionRecord struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// QuestionList stores the question sequence as a JSON text column.
type QuestionList []QuestionRecord

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(value interface{}) error {
	bytesToParse, err := bytesFromColumn(value)
	if err != nil {
		return fmt.Errorf("QuestionList Scan: %w", err)
	}
	if bytesToParse == nil {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

func bytesFromColumn(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported column type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// Quiz is the database model of a generated quiz.
type Quiz struct {
	ID            string       `db:"id"`
	URL           string       `db:"url"`
	Title         string       `db:"title"`
	Summary       string       `db:"summary"`
	Sections      StringSlice  `db:"sections"`
	KeyEntities   EntityMap    `db:"key_entities"`
	RelatedTopics StringSlice  `db:"related_topics"`
	Questions     QuestionList `db:"questions"`
	DateGenerated time.Time    `db:"date_generated"`
}
