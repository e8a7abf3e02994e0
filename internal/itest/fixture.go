//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"
)

// makeTalkVideo renders a synthetic talk recording: black frames with a
// test tone, keyframes every second so stream copies cut cleanly.
func makeTalkVideo(t *testing.T, dir string, seconds int) string {
	t.Helper()

	out := filepath.Join(dir, "talk.mp4")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi", "-i", fmt.Sprintf("color=c=black:s=1280x720:d=%d", seconds),
		"-f", "lavfi", "-i", fmt.Sprintf("sine=frequency=440:duration=%d", seconds),
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-g", "25", "-keyint_min", "25",
		"-c:a", "aac",
		out,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return out
}
