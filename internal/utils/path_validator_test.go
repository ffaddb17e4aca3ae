// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package utils

import "testing"

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative path", path: "train.data", wantErr: false},
		{name: "nested relative path", path: "data/train.data", wantErr: false},
		{name: "empty path", path: "", wantErr: true},
		{name: "directory traversal", path: "../secret.data", wantErr: true},
		{name: "nested directory traversal", path: "data/../../secret.data", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("model.out"); err != nil {
		t.Errorf("ValidateOutputPath rejected a plain relative path: %v", err)
	}
	if err := ValidateOutputPath("../model.out"); err == nil {
		t.Error("ValidateOutputPath should reject a path escaping the working directory")
	}
}
