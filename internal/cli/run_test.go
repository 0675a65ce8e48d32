package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImagesCommand_DryRun(t *testing.T) {
	t.Setenv("MEDIAPREP_LOG_LEVEL", "error")

	src := t.TempDir()
	for i := 0; i < 10; i++ {
		name := filepath.Join(src, "Pose", "Wrong", fmt.Sprintf("img%02d.jpg", i))
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	out := filepath.Join(t.TempDir(), "out")

	cmd := newImagesCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{
		"--src_root", src,
		"--output_root", out,
		"--dry_run",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), `Counts: {"train":7,"val":2,"test":1}`) {
		t.Fatalf("missing counts line:\n%s", buf.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("dry run created output")
	}
}

func TestImagesCommand_MissingSrcRoot(t *testing.T) {
	cmd := newImagesCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--output_root", t.TempDir()})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected a validation error without --src_root")
	}
}

func TestImagesCommand_BadSize(t *testing.T) {
	cmd := newImagesCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"--src_root", t.TempDir(),
		"--output_root", t.TempDir(),
		"--size", "224",
	})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--size") {
		t.Fatalf("err = %v, want a --size arity error", err)
	}
}

func TestVideosCommand_FlagsExist(t *testing.T) {
	cmd := newVideosCommand()
	for _, name := range []string{"src_root", "output_root", "fps", "width", "height", "seed", "dry_run", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("videos command is missing --%s", name)
		}
	}
}
