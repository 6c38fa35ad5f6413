// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"
)

func TestStreamBufferThrottlesBelowBatchSize(t *testing.T) {
	b := newStreamBuffer()
	b.Set("partial")

	if _, ok := b.Take(); ok {
		t.Error("single event inside the frame interval should not flush")
	}
	if !b.Pending() {
		t.Error("snapshot must stay pending until flushed")
	}

	time.Sleep(minFlushInterval + 10*time.Millisecond)
	text, ok := b.Take()
	if !ok || text != "partial" {
		t.Errorf("expected flush after the frame interval, got %q ok=%v", text, ok)
	}
	if b.Pending() {
		t.Error("flush should clear the pending flag")
	}
}

func TestStreamBufferFlushesOnBatchSize(t *testing.T) {
	b := newStreamBuffer()
	for i := 0; i < defaultBatchSize; i++ {
		b.Set("snapshot")
	}
	if text, ok := b.Take(); !ok || text != "snapshot" {
		t.Errorf("expected batch-size flush, got %q ok=%v", text, ok)
	}
}

func TestStreamBufferKeepsLatestSnapshot(t *testing.T) {
	b := newStreamBuffer()
	b.Set("first")
	b.Set("first second")
	b.Set("first second third")

	text, ok := b.ForceTake()
	if !ok || text != "first second third" {
		t.Errorf("expected latest snapshot, got %q ok=%v", text, ok)
	}
}

func TestStreamBufferForceTakeIgnoresThrottle(t *testing.T) {
	b := newStreamBuffer()
	b.Set("final")
	if text, ok := b.ForceTake(); !ok || text != "final" {
		t.Errorf("expected unconditional drain, got %q ok=%v", text, ok)
	}
	if _, ok := b.ForceTake(); ok {
		t.Error("second drain should report nothing pending")
	}
}

func TestStreamBufferReset(t *testing.T) {
	b := newStreamBuffer()
	b.Set("doomed")
	b.Reset()
	if b.Pending() {
		t.Error("reset must drop the pending snapshot")
	}
	if _, ok := b.ForceTake(); ok {
		t.Error("reset buffer has nothing to drain")
	}
}
