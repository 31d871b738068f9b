// Package labels stores decoded label and delivery-confirmation PDFs on
// the local filesystem, keyed by tracking number.
package labels

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/carrier-gateway/internal/config"
)

type Store struct {
	dir string
}

func NewStore(cfg config.LabelConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create label dir: %w", err)
	}
	return &Store{dir: cfg.Dir}, nil
}

func (s *Store) SaveLabel(trackingNumber string, data []byte) (string, error) {
	return s.write(fmt.Sprintf("label_%s.pdf", trackingNumber), data)
}

func (s *Store) SaveDocument(trackingNumber string, data []byte) (string, error) {
	return s.write(fmt.Sprintf("pod_%s.pdf", trackingNumber), data)
}

func (s *Store) write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
