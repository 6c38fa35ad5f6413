// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeSingleFile(t *testing.T) {
	path := writeTemp(t, "notes.txt", "reboot fixed it")

	atts, err := Encode([]string{path})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(atts) != 1 {
		t.Fatalf("got %d attachments, want 1", len(atts))
	}

	if atts[0].Name != "notes.txt" {
		t.Errorf("Name = %q, want notes.txt", atts[0].Name)
	}
	decoded, err := base64.StdEncoding.DecodeString(atts[0].Data)
	if err != nil {
		t.Fatalf("Data is not valid base64: %v", err)
	}
	if string(decoded) != "reboot fixed it" {
		t.Errorf("decoded = %q, want original content", decoded)
	}
}

func TestEncodeAllOrNothing(t *testing.T) {
	good := writeTemp(t, "good.txt", "ok")
	missing := filepath.Join(t.TempDir(), "does-not-exist.txt")

	atts, err := Encode([]string{good, missing})
	if err == nil {
		t.Fatal("Encode() should fail when any file is unreadable")
	}
	if atts != nil {
		t.Error("no partial attachment set may escape a failed Encode")
	}

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error type = %T, want *EncodingError", err)
	}
	if encErr.Path != missing {
		t.Errorf("error path = %q, want the failing file", encErr.Path)
	}
}

func TestEncodeRejectsDirectories(t *testing.T) {
	if _, err := Encode([]string{t.TempDir()}); err == nil {
		t.Error("Encode() should reject directories")
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	atts, err := Encode(nil)
	if err != nil || atts != nil {
		t.Errorf("Encode(nil) = (%v, %v), want (nil, nil)", atts, err)
	}
}

func TestDetectMIMEByExtension(t *testing.T) {
	path := writeTemp(t, "report.json", `{"a":1}`)

	atts, err := Encode([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if atts[0].MIMEType == "" {
		t.Error("MIMEType should never be empty")
	}
}
