package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Extraction outcomes persisted in extraction_logs
const (
	OutcomeSuccess       = "success"
	OutcomeMissingAnchor = "missing_anchor"
)

// ExtractionLog represents one persisted extraction
type ExtractionLog struct {
	ID           int64     `json:"-" db:"id"`
	ExtractionID string    `json:"extraction_id" db:"extraction_id"`
	Message      string    `json:"message" db:"message"`
	Pinned       bool      `json:"pinned" db:"pinned"`
	Outcome      string    `json:"outcome" db:"outcome"`
	Spec         *SpecJSON `json:"search_params,omitempty" db:"spec"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SpecJSON stores a SearchSpec in a JSONB column
type SpecJSON SearchSpec

// Value implements driver.Valuer interface
func (s *SpecJSON) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *SpecJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported spec column type %T", value)
	}
}
