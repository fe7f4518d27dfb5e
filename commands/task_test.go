package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktracker/storage"
)

// setupTestStore installs an in-memory store seeded with tasks and
// captures command output
func setupTestStore(t *testing.T, tasks ...storage.Task) *bytes.Buffer {
	t.Helper()

	SetStore(storage.NewMemoryStore(tasks...))

	var buf bytes.Buffer
	SetOutput(&buf)

	t.Cleanup(func() {
		SetStore(nil)
		SetOutput(os.Stdout)
	})

	return &buf
}

// runCommand executes one command line and returns its output
func runCommand(t *testing.T, buf *bytes.Buffer, args ...string) string {
	t.Helper()

	buf.Reset()
	if _, err := Run(args); err != nil {
		t.Fatalf("Command %q failed: %v", args, err)
	}
	return buf.String()
}

func TestTaskCommands(t *testing.T) {
	buf := setupTestStore(t)

	output := runCommand(t, buf, "add", "Buy milk")
	if output != "Task added with id #1.\n" {
		t.Errorf("Expected task creation message, got: %q", output)
	}

	output = runCommand(t, buf, "show", "1")
	if output != "### 1 ###\nState: not-started\nBuy milk\n\n" {
		t.Errorf("Expected task block, got: %q", output)
	}

	output = runCommand(t, buf, "mark", "1", "in-progress")
	if !strings.Contains(output, "Successfully marked task #1") {
		t.Errorf("Expected mark message, got: %s", output)
	}

	output = runCommand(t, buf, "update", "1", "Buy", "oat", "milk")
	if !strings.Contains(output, "Successfully updated task #1") {
		t.Errorf("Expected update message, got: %s", output)
	}

	output = runCommand(t, buf, "list")
	if !strings.Contains(output, "State: in-progress\nBuy oat milk") {
		t.Errorf("Expected updated task in list, got: %s", output)
	}

	output = runCommand(t, buf, "delete", "1")
	if !strings.Contains(output, "Successfully deleted task #1") {
		t.Errorf("Expected deletion message, got: %s", output)
	}

	output = runCommand(t, buf, "delete", "1")
	if !strings.Contains(output, "Can not delete task #1") {
		t.Errorf("Expected failed deletion message, got: %s", output)
	}

	output = runCommand(t, buf, "show", "1")
	if !strings.Contains(output, "No task found with id 1") {
		t.Errorf("Expected not found message, got: %s", output)
	}
}

func TestMissingTaskMessages(t *testing.T) {
	buf := setupTestStore(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"update", "9", "text"}, "Can not update task #9\n"},
		{[]string{"delete", "9"}, "Can not delete task #9\n"},
		{[]string{"mark", "9", "bogus"}, "Can not mark task #9\n"},
		{[]string{"list"}, "No tasks found.\n"},
	}

	for _, tt := range tests {
		if output := runCommand(t, buf, tt.args...); output != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.args, tt.want, output)
		}
	}
}

func TestListFilter(t *testing.T) {
	buf := setupTestStore(t,
		storage.NewTask(1, "first", storage.NotStarted),
		storage.NewTask(2, "second", storage.Done),
		storage.NewTask(3, "third", storage.InProgress),
		storage.NewTask(4, "fourth", storage.Done),
	)

	output := runCommand(t, buf, "list", "done")
	want := "### 2 ###\nState: done\nsecond\n\n### 4 ###\nState: done\nfourth\n\n"
	if output != want {
		t.Errorf("Expected only done tasks, got: %q", output)
	}

	output = runCommand(t, buf, "list")
	for _, text := range []string{"first", "second", "third", "fourth"} {
		if !strings.Contains(output, text) {
			t.Errorf("Expected %q in full list, got: %s", text, output)
		}
	}
}

func TestMarkInvalidState(t *testing.T) {
	buf := setupTestStore(t, storage.NewTask(1, "task", storage.NotStarted))

	_, err := Run([]string{"mark", "1", "Done"})
	if !errors.Is(err, storage.ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no status line, got: %s", buf.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	buf := setupTestStore(t)

	output := runCommand(t, buf, "frobnicate")
	if !strings.Contains(output, "Unknown command: frobnicate") {
		t.Errorf("Expected unknown command message, got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	buf := setupTestStore(t)

	output := runCommand(t, buf, "help")
	if !strings.Contains(output, "Usage: task-tracker <command>") {
		t.Errorf("Expected usage text, got: %s", output)
	}
}

// failingStore fails every write the way an unwritable file does
type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) AddTask(text string) (uint8, error) {
	return 0, storage.ErrPersistence
}

func (failingStore) RemoveTask(id uint8) (bool, error) {
	return false, storage.ErrPersistence
}

func TestPersistenceErrorSurfaces(t *testing.T) {
	buf := setupTestStore(t)
	SetStore(failingStore{storage.NewMemoryStore(storage.NewTask(1, "task", storage.Done))})

	for _, args := range [][]string{{"add", "task"}, {"delete", "1"}} {
		_, err := Run(args)
		if !errors.Is(err, storage.ErrPersistence) {
			t.Errorf("%q: expected ErrPersistence, got: %v", args, err)
		}
	}
	if strings.Contains(buf.String(), "Successfully") || strings.Contains(buf.String(), "added") {
		t.Errorf("Failed writes must not report success, got: %s", buf.String())
	}
}

func TestCommandsWithJSONStore(t *testing.T) {
	buf := setupTestStore(t)
	path := filepath.Join(t.TempDir(), "tasks.json")

	store, err := storage.NewJSONStore(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	SetStore(store)

	runCommand(t, buf, "add", "Write report")
	runCommand(t, buf, "add", "Walk dog")
	runCommand(t, buf, "mark", "2", "done")
	runCommand(t, buf, "delete", "1")
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	// A fresh process sees the same tasks
	store, err = storage.NewJSONStore(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store.Close()
	SetStore(store)

	output := runCommand(t, buf, "list")
	if output != "### 2 ###\nState: done\nWalk dog\n\n" {
		t.Errorf("Unexpected list after reload: %q", output)
	}

	output = runCommand(t, buf, "add", "Next")
	if output != "Task added with id #3.\n" {
		t.Errorf("Expected id 3 after reload, got: %q", output)
	}
}
