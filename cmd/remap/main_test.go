package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"remap/compiler"
	"remap/stdlib"
	"remap/trace"
	"remap/transform"
)

func newTransform(t *testing.T, source string, workers int) *transform.Transform {
	t.Helper()
	prog, err := compiler.Compile(source, stdlib.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", source, err)
	}
	return transform.New(prog, trace.Discard, transform.Options{Workers: workers})
}

func TestRunNDJSON(t *testing.T) {
	tr := newTransform(t, `.tags = append(.tags, ["seen"])`, 4)

	var input strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&input, `{"id": %d, "tags": ["t%d"]}`+"\n", i, i)
	}

	var output bytes.Buffer
	if err := run(context.Background(), tr, strings.NewReader(input.String()), &output); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for i, line := range lines {
		want := fmt.Sprintf(`{"id":%d,"tags":["t%d","seen"]}`, i, i)
		if line != want {
			t.Errorf("line %d = %s, want %s", i, line, want)
		}
	}
}

func TestRunDropsBadRecords(t *testing.T) {
	tr := newTransform(t, `.tags = append(.tags, [1])`, 2)

	input := strings.Join([]string{
		`{"tags": []}`,
		`not json`,
		``,
		`{"tags": 5}`,
		`{"tags": ["a"]}`,
	}, "\n")

	var output bytes.Buffer
	if err := run(context.Background(), tr, strings.NewReader(input), &output); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := `{"tags":[1]}` + "\n" + `{"tags":["a",1]}` + "\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestRunCancelled(t *testing.T) {
	tr := newTransform(t, `.`, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var output bytes.Buffer
	err := run(ctx, tr, strings.NewReader(`{"a": 1}`+"\n"), &output)
	if err == nil {
		return
	}
	if err != context.Canceled {
		t.Errorf("run() error = %v, want nil or context.Canceled", err)
	}
}

func TestCheckCommand(t *testing.T) {
	registry := stdlib.NewRegistry()
	if err := checkCommand(`append([1], [2])`, registry); err != nil {
		t.Errorf("checkCommand() error: %v", err)
	}
	if err := checkCommand(`append(5, [2])`, registry); err == nil {
		t.Error("checkCommand() should reject a type mismatch")
	}
	if err := checkCommand(`append([1]`, registry); err == nil {
		t.Error("checkCommand() should reject a syntax error")
	}
}

func TestWatcherReloadsProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.remap")
	if err := os.WriteFile(path, []byte(`.a = 1`), 0o644); err != nil {
		t.Fatal(err)
	}

	sources := make(chan string, 10)
	w, err := newWatcher(path, func(src string) error {
		sources <- src
		return nil
	})
	if err != nil {
		t.Fatalf("newWatcher() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`.a = 2`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case src := <-sources:
		if src != `.a = 2` {
			t.Errorf("reloaded source = %q, want %q", src, `.a = 2`)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("program was not reloaded")
	}

	deadline := time.Now().Add(time.Second)
	for w.Reloads() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if w.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", w.Reloads())
	}
}

func TestWatcherKeepsProgramOnCompileError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.remap")
	if err := os.WriteFile(path, []byte(`.a = 1`), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := newTransform(t, `.a = 1`, 1)
	registry := stdlib.NewRegistry()
	attempts := make(chan error, 10)
	w, err := newWatcher(path, func(src string) error {
		p, err := compiler.Compile(src, registry, nil)
		if err == nil {
			tr.Swap(p)
		}
		attempts <- err
		return err
	})
	if err != nil {
		t.Fatalf("newWatcher() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if err := os.WriteFile(path, []byte(`append(`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-attempts:
		if err == nil {
			t.Fatal("expected compile error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload was not attempted")
	}

	if got := tr.Program().Source(); got != `.a = 1` {
		t.Errorf("program source = %q, want the previous program", got)
	}
	if w.Reloads() != 0 {
		t.Errorf("Reloads() = %d, want 0", w.Reloads())
	}
}
