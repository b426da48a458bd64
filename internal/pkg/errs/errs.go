package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// WithHint attaches a user-facing hint that survives marking and wrapping.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return cr.WithHint(err, hint)
}

func Hint(err error) string {
	return cr.FlattenHints(err)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Is also matches errors tagged with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}
