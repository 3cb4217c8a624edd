package utils

import (
	"github.com/aarondl/null/v8"
)

func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

func ToPtr[T any](v T) *T {
	return &v
}

func NullStringToPtr(ns null.String) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
