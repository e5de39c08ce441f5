package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport-level errors (connection, timeout)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML or field parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeStorage represents dataset load/save errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// HarvestError represents a harvester-specific error
type HarvestError struct {
	Type    ErrorType
	Subject string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *HarvestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Subject, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Subject, e.Message)
}

// Unwrap returns the underlying error
func (e *HarvestError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth another attempt
func (e *HarvestError) IsRetryable() bool {
	return e.Type == ErrorTypeNetwork
}

// New creates a new HarvestError
func New(errType ErrorType, subject, message string, err error) *HarvestError {
	return &HarvestError{
		Type:    errType,
		Subject: subject,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(subject, message string, err error) *HarvestError {
	return New(ErrorTypeNetwork, subject, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(subject, message string, err error) *HarvestError {
	return New(ErrorTypeParsing, subject, message, err)
}

// NewStorage creates a new storage error
func NewStorage(subject, message string, err error) *HarvestError {
	return New(ErrorTypeStorage, subject, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *HarvestError {
	return New(ErrorTypeConfiguration, "", message, err)
}
