package parser

import (
	"errors"
	"fmt"
)

// Parse failures. Messages are shown to the user verbatim by the hosts.
var (
	ErrEmptyInput      = errors.New("csv file is empty or invalid")
	ErrMissingColumn   = errors.New("missing required column")
	ErrNoValidRows     = errors.New("no valid data found in csv")
	ErrUnreadableFile  = errors.New("failed to read file")
	ErrUnsupportedFile = errors.New("please provide a csv file")
)

// MissingColumnError names the first required header that was not found.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, e.Name)
}

// Is lets errors.Is(err, ErrMissingColumn) match any missing column.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
