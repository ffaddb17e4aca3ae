// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilePath checks if a file path is safe to use. It rejects empty
// paths and paths that escape upward via "..", since GenSVM data/model
// files are always addressed relative to the working directory.
func ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path must not be empty")
	}
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
		return fmt.Errorf("file path escapes working directory: %s", path)
	}
	return nil
}

// ValidateOutputPath ensures an output path is safe to write to, applying
// the same checks as ValidateFilePath.
func ValidateOutputPath(path string) error {
	return ValidateFilePath(path)
}
