package images

import (
  "fmt"
  "io"
  "os"
  "path"
  "path/filepath"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/utils"
)

// Fallback paths used when no upload or scraped value is available.
// They live under the static image root shipped with the app.
const (
  DefaultHead  = "default_cert/default_head.png"
  DefaultBadge = "default_cert/default_badge.svg"
  DefaultImage = "default_image.jpg"
  DefaultLogo  = "default_logo.png"
)

// Upload is an in-flight file received by a handler.
type Upload struct {
  Filename string
  Reader   io.Reader
}

type Store interface {
  // SaveData writes an upload under the per-cert directory and
  // returns the stored path relative to the image root.
  SaveData(certDir string, up Upload) (string, error)
  // SaveLogo writes an upload into the shared logo directory unless a
  // file of that sanitized name already exists; the existing file is
  // silently reused on a name collision.
  SaveLogo(up Upload) (string, error)
  // Remove deletes a cert's image directory.
  Remove(certDir string) error
}

type fileStore struct {
  root string
  log  *logger.Logger
}

func NewFileStore(root string, baseLog *logger.Logger) Store {
  storeLog := baseLog.With("service", "ImageStore")
  return &fileStore{root: root, log: storeLog}
}

func (fs *fileStore) SaveData(certDir string, up Upload) (string, error) {
  filename := utils.SecureFilename(up.Filename)
  if filename == "" {
    return "", fmt.Errorf("upload has no usable filename: %q", up.Filename)
  }
  dir := filepath.Join(fs.root, certDir)
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return "", fmt.Errorf("create cert image dir: %w", err)
  }
  if err := writeFile(filepath.Join(dir, filename), up.Reader); err != nil {
    return "", err
  }
  fs.log.Debug("Saved cert image", "cert_dir", certDir, "filename", filename)
  return path.Join(certDir, filename), nil
}

func (fs *fileStore) SaveLogo(up Upload) (string, error) {
  filename := utils.SecureFilename(up.Filename)
  if filename == "" {
    return "", fmt.Errorf("upload has no usable filename: %q", up.Filename)
  }
  dir := filepath.Join(fs.root, "logos")
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return "", fmt.Errorf("create logo dir: %w", err)
  }
  target := filepath.Join(dir, filename)
  if _, err := os.Stat(target); err == nil {
    // name collision: reuse the existing logo
    return filename, nil
  }
  if err := writeFile(target, up.Reader); err != nil {
    return "", err
  }
  fs.log.Debug("Saved site logo", "filename", filename)
  return filename, nil
}

func (fs *fileStore) Remove(certDir string) error {
  return os.RemoveAll(filepath.Join(fs.root, certDir))
}

func writeFile(target string, r io.Reader) error {
  f, err := os.Create(target)
  if err != nil {
    return fmt.Errorf("create image file: %w", err)
  }
  defer f.Close()
  if _, err := io.Copy(f, r); err != nil {
    return fmt.Errorf("write image file: %w", err)
  }
  return nil
}
