// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attachment prepares local files for assistant submission.
package attachment

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jeranaias/aura-tui/internal/model"
)

// MaxFileSize is the per-file cap enforced before encoding. The backend
// rejects larger inline parts, so failing locally saves a round trip.
const MaxFileSize = 10 << 20 // 10 MiB

// EncodingError reports which file made a submission unusable.
type EncodingError struct {
	Path  string
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot attach %s: %v", e.Path, e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// Encode reads and base64-encodes every file, all or nothing: if any file
// is unreadable or too large, no attachments are returned and the
// submission must not proceed with a partial set.
func Encode(paths []string) ([]model.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	out := make([]model.Attachment, 0, len(paths))
	for _, path := range paths {
		att, err := encodeOne(path)
		if err != nil {
			return nil, err
		}
		out = append(out, att)
	}
	return out, nil
}

func encodeOne(path string) (model.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Attachment{}, &EncodingError{Path: path, Cause: err}
	}
	if info.IsDir() {
		return model.Attachment{}, &EncodingError{Path: path, Cause: fmt.Errorf("is a directory")}
	}
	if info.Size() > MaxFileSize {
		return model.Attachment{}, &EncodingError{
			Path:  path,
			Cause: fmt.Errorf("file is %d bytes, limit is %d", info.Size(), MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Attachment{}, &EncodingError{Path: path, Cause: err}
	}

	return model.Attachment{
		Name:     filepath.Base(path),
		MIMEType: detectMIME(path, data),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// detectMIME resolves the MIME type from the extension first, falling back
// to content sniffing for files without a registered extension.
func detectMIME(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
