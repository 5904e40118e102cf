package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound: 受限集合为空 / 游标绕回后仍无结果 / 目录为空。
	ErrNotFound = errors.New("not found")

	// ErrIntegrity: a second status row for the same (user, dog) pair was
	// attempted outside the upsert path. Caller bug, not a user-facing case.
	ErrIntegrity = errors.New("status row integrity violation")
)

// ValidationError carries per-field messages (age / gender / size 各自独立报错).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}
