package services

import "errors"

// Business-rule violations surfaced to the user. The message text is
// flashed verbatim by the handlers, so it is user-facing prose rather
// than conventional lowercase error strings.
var (
  ErrCertNotFound      = errors.New("Cert not found")
  ErrResourceNotFound  = errors.New("Resource not found")
  ErrSectionNotFound   = errors.New("Section not found")
  ErrEmptyDate         = errors.New("Please provide a valid date")
  ErrReminderNotSet    = errors.New("Email reminder not set")
  ErrNotCourse         = errors.New("Only course type resources can be marked complete")
  ErrNoImportSelection = errors.New("No resources selected for import")
  ErrEmptySearch       = errors.New("Please provide a term to search for")

  // section bulk-import validation, in check order
  ErrBadImportJSON     = errors.New("JSON improperly formatted")
  ErrNoSectionList     = errors.New("List of 'sections' not found")
  ErrSectionFieldCount = errors.New("Invalid number of section fields found")
  ErrSectionFields     = errors.New("Incorrect section fields found")
)

// DuplicateError names the field that failed a uniqueness check.
type DuplicateError struct {
  Field string
}

func (e *DuplicateError) Error() string {
  return e.Field + " must be unique"
}
