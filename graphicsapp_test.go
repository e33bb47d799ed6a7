package vkt

import (
	"testing"
)

func TestNextFrameIndexCycles(t *testing.T) {
	// Each slot must only come around again after every other slot has had
	// its fence waited on. A frame slot owns its command buffer, so reusing
	// a slot early would reset a command buffer that may still be pending.
	seen := make(map[int]bool)
	frame := 0
	for i := 0; i < FramesInFlight; i++ {
		if frame < 0 || frame >= FramesInFlight {
			t.Fatalf("frame index %d out of range", frame)
		}
		if seen[frame] {
			t.Fatalf("frame slot %d reused before all %d slots were visited", frame, FramesInFlight)
		}
		seen[frame] = true
		frame = nextFrameIndex(frame)
	}
	if frame != 0 {
		t.Errorf("frame index should wrap back to 0, got %d", frame)
	}
}
