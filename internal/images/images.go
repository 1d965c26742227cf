// Package images owns the directory recipe pictures live in. The store
// only ever asks for the directory root; importing files into it is a CLI
// concern.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Provider struct {
	root string
}

func NewProvider(root string) *Provider {
	return &Provider{root: root}
}

// RecipeImageDir returns the directory decoded image sources are resolved
// against.
func (provider *Provider) RecipeImageDir() string {
	return provider.root
}

// Import copies sourcePath into the image directory under a fresh
// uuid-based name (original extension kept) and returns the new filename.
func (provider *Provider) Import(sourcePath string) (string, error) {
	if err := os.MkdirAll(provider.root, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer source.Close()

	name := uuid.New().String() + filepath.Ext(sourcePath)
	destination, err := os.Create(filepath.Join(provider.root, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return "", fmt.Errorf("copying image: %w", err)
	}
	return name, nil
}

// Remove deletes an imported image by filename. A missing file is not an
// error.
func (provider *Provider) Remove(name string) error {
	err := os.Remove(filepath.Join(provider.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}
