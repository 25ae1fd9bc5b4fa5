package studentctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// StudentContextKey is the request context key for the acting student ID.
type StudentContextKey struct{}

// WithStudentID stores the acting student ID in the context.
func WithStudentID(ctx context.Context, studentID int64) context.Context {
	return context.WithValue(ctx, StudentContextKey{}, studentID)
}

// StudentIDFromContext returns the acting student ID from context, if set.
func StudentIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(StudentContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
