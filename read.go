package dds

import (
	"fmt"
	"image"
	"os"
)

// ReadConfig reads DDS file configuration without decoding image data.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeConfig(f)
}

// Read reads and decodes a DDS file into an image.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions reads and decodes a DDS file with the given options.
// Nil opts uses default decoding.
func ReadWithOptions(path string, opts *Options) (image.Image, error) {
	tex, err := ReadTexture(path, opts)
	if err != nil {
		return nil, err
	}

	return tex.Image, nil
}

// ReadTexture reads a DDS file and returns the decoded base level together
// with its headers and detected format.
func ReadTexture(path string, opts *Options) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrReadFile, path, err)
	}

	return DecodeBytes(data, opts)
}
