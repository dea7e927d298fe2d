package handlers

import (
  "errors"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/images"
  "github.com/cwhitfield/cert-tracker/internal/utils"
)

// formUpload reads an optional multipart file field. A missing or
// empty field is not an error; the returned close func is nil in that
// case.
func formUpload(c *gin.Context, field string) (*images.Upload, func(), error) {
  header, err := c.FormFile(field)
  if err != nil {
    if errors.Is(err, http.ErrMissingFile) {
      return nil, nil, nil
    }
    return nil, nil, err
  }
  if header.Filename == "" {
    return nil, nil, nil
  }
  file, err := header.Open()
  if err != nil {
    return nil, nil, err
  }
  up := &images.Upload{
    Filename: utils.SecureFilename(header.Filename),
    Reader:   file,
  }
  return up, func() { file.Close() }, nil
}

// formID parses a required numeric form field or path param value.
func formID(raw string) (uint, bool) {
  id, err := strconv.ParseUint(raw, 10, 64)
  if err != nil {
    return 0, false
  }
  return uint(id), true
}
