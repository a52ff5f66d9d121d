package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Construction / configuration errors
	ErrConfiguration = errors.New("invalid configuration")

	// Registration errors
	ErrDuplicateColumn = errors.New("duplicate column")

	// Processing errors
	ErrSurveyLoading  = errors.New("survey loading failed")
	ErrColumnNotFound = errors.New("column not found")
	ErrNotLoaded      = errors.New("column not loaded")

	// Statistical errors
	ErrStatisticalInput = errors.New("insufficient statistical input")

	// Ingestion errors
	ErrUnknownFormat = errors.New("unknown response format")
)

// Error constructors with context
func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, reason)
}

func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: column %q already exists in survey", ErrDuplicateColumn, name)
}

func NewLoadingError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSurveyLoading, reason)
}

// NewMissingColumnsError reports every missing source column at once so a
// caller can fix the whole set in a single pass.
func NewMissingColumnsError(missing []string) error {
	return fmt.Errorf("%w: columns not found in response data: %s",
		ErrSurveyLoading, strings.Join(missing, ", "))
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewNotLoadedError(name string) error {
	return fmt.Errorf("%w: %q has no backing data", ErrNotLoaded, name)
}

func NewStatisticalInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrStatisticalInput, reason)
}

func NewUnknownFormatError(source string) error {
	return fmt.Errorf("%w: unable to determine filetype for %q", ErrUnknownFormat, source)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsDuplicateColumnError(err error) bool {
	return errors.Is(err, ErrDuplicateColumn)
}

func IsLoadingError(err error) bool {
	return errors.Is(err, ErrSurveyLoading) || errors.Is(err, ErrColumnNotFound)
}

func IsNotLoadedError(err error) bool {
	return errors.Is(err, ErrNotLoaded)
}

func IsStatisticalInputError(err error) bool {
	return errors.Is(err, ErrStatisticalInput)
}
