package loaders

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var ErrEmptyShader = errors.New("shader source is empty")

// ShaderLoader reads WGSL source text.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyShader)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: shader source is not valid UTF-8", path)
	}
	return data, nil
}
