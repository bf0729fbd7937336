package postgres

import (
	"database/sql"
	"encoding/json"
)

// jsonArg passes a JSON document to a JSONB column. Empty documents become NULL.
func jsonArg(m json.RawMessage) any {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}

// decodeJSON unmarshals a nullable JSONB column into dst, leaving dst untouched for NULL.
func decodeJSON(src []byte, dst any) error {
	if len(src) == 0 {
		return nil
	}
	return json.Unmarshal(src, dst)
}

func rawJSON(src []byte) json.RawMessage {
	if len(src) == 0 {
		return nil
	}
	out := make(json.RawMessage, len(src))
	copy(out, src)
	return out
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
