package dto

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// NullString distinguishes three request states for a nullable field:
// absent (Set=false), explicit null (Set=true, Valid=false) and a value.
type NullString struct {
	Set   bool   `json:"-"`
	Valid bool   `json:"-"`
	Value string `json:"-"`
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// ParseDate parses a plain calendar date.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	return t, err == nil
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
