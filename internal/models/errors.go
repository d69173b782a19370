package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataIntegrity    = errors.New("data integrity error")
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmptyResult      = errors.New("empty result")
)

// DataIntegrityError describes input data that cannot be trusted: a player id
// without metadata, a missing column, an unmapped position code.
// HasPlayerID marks PlayerID as set, since 0 is a valid folder id.
type DataIntegrityError struct {
	Source      string
	PlayerID    int
	HasPlayerID bool
	Column      string
	Reason      string
}

func (e *DataIntegrityError) Error() string {
	var b strings.Builder
	b.WriteString(ErrDataIntegrity.Error())
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.HasPlayerID || e.PlayerID != 0 {
		fmt.Fprintf(&b, " (player id %d)", e.PlayerID)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " (column %q)", e.Column)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	return b.String()
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// ResourceNotFoundError is returned when an expected file or directory is absent
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrResourceNotFound, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrResourceNotFound, e.Path)
}

func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

func (e *ResourceNotFoundError) Unwrap() error {
	return e.Err
}
