package queries

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errors.New("invalid cursor")

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d:%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.RawURLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	parts := strings.SplitN(string(decoded), ":", 3)
	if len(parts) != 3 || parts[0] != CursorVersionV1 {
		return time.Time{}, uuid.Nil, fmt.Errorf("%w: expected '%s:<micros>:<uuid>'", ErrInvalidCursor, CursorVersionV1)
	}

	micros, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("%w: timestamp: %w", ErrInvalidCursor, err)
	}

	id, err := uuid.Parse(parts[2])
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("%w: id: %w", ErrInvalidCursor, err)
	}

	return time.UnixMicro(micros).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
