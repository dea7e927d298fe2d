package utils

import (
  "regexp"
  "strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename flattens an uploaded filename into something safe to
// join onto a directory path: path separators become underscores and
// anything outside [A-Za-z0-9_.-] is stripped.
func SecureFilename(name string) string {
  name = strings.ReplaceAll(name, "/", "_")
  name = strings.ReplaceAll(name, "\\", "_")
  name = strings.ReplaceAll(name, " ", "_")
  name = unsafeFilenameChars.ReplaceAllString(name, "")
  name = strings.Trim(name, "._")
  return name
}

// NormalizeCode derives the directory/key form of a cert code by
// lowercasing it and removing hyphens, e.g. "AZ-104" -> "az104".
func NormalizeCode(code string) string {
  return strings.ReplaceAll(strings.ToLower(code), "-", "")
}
