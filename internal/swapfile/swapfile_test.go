// internal/swapfile/swapfile_test.go
package swapfile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aadashti/swap-manager/internal/config"
	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/units"
)

func newTestManager(mock *executor.MockExecutor) *Manager {
	m := New(mock, config.Default())
	m.IsRoot = func() bool { return true }
	return m
}

func runCalls(mock *executor.MockExecutor) []string {
	var cmds []string
	for _, c := range mock.Calls {
		if c.Method == "Run" {
			cmds = append(cmds, c.Args[0].(string))
		}
	}
	return cmds
}

func TestSet_HappyPath(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "5G", false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"fallocate -l 5G /swap-manager.swap",
		"chmod 600 /swap-manager.swap",
		"mkswap /swap-manager.swap",
		"swapon /swap-manager.swap",
	}
	got := runCalls(mock)
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("command %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSet_Replace(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "512M", true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := runCalls(mock)
	if len(got) == 0 || got[0] != "swapoff -a" {
		t.Fatalf("expected swapoff -a first, got %v", got)
	}
}

func TestSet_ReplaceFailureAborts(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["swapoff -a"] = &executor.CommandError{Cmd: "swapoff -a", ExitCode: 255}
	m := newTestManager(mock)

	err := m.Set(context.Background(), "1G", true, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "disable all swap failed") {
		t.Fatalf("expected failing step in message, got %v", err)
	}
	if executor.ExitCode(err) != 255 {
		t.Fatalf("expected exit code 255 surfaced, got %d", executor.ExitCode(err))
	}
	if mock.Ran("mkswap /swap-manager.swap") {
		t.Fatal("expected no later step after swapoff failure")
	}
}

func TestSet_StaleSwapfileRemoved(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.Files["/swap-manager.swap"] = []byte{}
	// Disabling the stale file fails; that is tolerated.
	mock.RunErrors["swapoff /swap-manager.swap"] = &executor.CommandError{Cmd: "swapoff /swap-manager.swap", ExitCode: 255}
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "1G", false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mock.Ran("swapoff /swap-manager.swap") {
		t.Fatal("expected best-effort swapoff of the stale file")
	}
	found := false
	for _, c := range mock.Calls {
		if c.Method == "Remove" && c.Args[0] == "/swap-manager.swap" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected stale swapfile to be removed")
	}
}

func TestSet_StaleRemoveFailureAborts(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.Files["/swap-manager.swap"] = []byte{}
	mock.RemoveErrors["/swap-manager.swap"] = errors.New("operation not permitted")
	m := newTestManager(mock)

	err := m.Set(context.Background(), "1G", false, false)
	if err == nil {
		t.Fatal("expected error when stale swapfile cannot be removed")
	}
	if mock.Ran("fallocate -l 1G /swap-manager.swap") {
		t.Fatal("expected no allocation after remove failure")
	}
}

func TestSet_FallbackToDD(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["fallocate -l 5G /swap-manager.swap"] = &executor.CommandError{Cmd: "fallocate", ExitCode: 127}
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "5G", false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mock.Ran("dd if=/dev/zero of=/swap-manager.swap bs=1M count=5120") {
		t.Fatalf("expected dd fallback with 5120 blocks, got %v", runCalls(mock))
	}
}

func TestSet_FallbackBlockCountRoundsUp(t *testing.T) {
	mock := executor.NewMockExecutor()
	// 1 MiB + 1 byte needs two 1 MiB blocks.
	tok := "1048577"
	mock.RunErrors["fallocate -l "+tok+" /swap-manager.swap"] = &executor.CommandError{Cmd: "fallocate", ExitCode: 1}
	m := newTestManager(mock)

	if err := m.Set(context.Background(), tok, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mock.Ran("dd if=/dev/zero of=/swap-manager.swap bs=1M count=2") {
		t.Fatalf("expected count=2, got %v", runCalls(mock))
	}
}

func TestSet_DDFailureAborts(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["fallocate -l 1G /swap-manager.swap"] = &executor.CommandError{Cmd: "fallocate", ExitCode: 127}
	mock.RunErrors["dd if=/dev/zero of=/swap-manager.swap bs=1M count=1024"] = &executor.CommandError{Cmd: "dd", ExitCode: 1}
	m := newTestManager(mock)

	err := m.Set(context.Background(), "1G", false, false)
	if err == nil {
		t.Fatal("expected error when both allocators fail")
	}
	if mock.Ran("mkswap /swap-manager.swap") {
		t.Fatal("expected no format step after allocation failure")
	}
}

func TestSet_ChmodFailureIgnored(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["chmod 600 /swap-manager.swap"] = &executor.CommandError{Cmd: "chmod", ExitCode: 1}
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "1G", false, false); err != nil {
		t.Fatalf("expected chmod failure to be ignored, got %v", err)
	}
	if !mock.Ran("swapon /swap-manager.swap") {
		t.Fatal("expected activation to still run")
	}
}

func TestSet_MkswapFailureAborts(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["mkswap /swap-manager.swap"] = &executor.CommandError{Cmd: "mkswap /swap-manager.swap", ExitCode: 1}
	m := newTestManager(mock)

	err := m.Set(context.Background(), "1G", false, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "format swap area failed") {
		t.Fatalf("expected failing step in message, got %v", err)
	}
	if mock.Ran("swapon /swap-manager.swap") {
		t.Fatal("expected no activation after format failure")
	}
}

func TestSet_Persist(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.Files["/etc/fstab"] = []byte("")
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "1G", false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(mock.Files["/etc/fstab"]), "/swap-manager.swap none swap sw 0 0\n") {
		t.Fatal("expected fstab entry to be written")
	}
}

func TestSet_PersistAppendFailureIsFatal(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.AppendErrors["/etc/fstab"] = errors.New("read-only file system")
	m := newTestManager(mock)

	if err := m.Set(context.Background(), "1G", false, true); err == nil {
		t.Fatal("expected persist failure to surface")
	}
}

func TestSet_NotRoot(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := New(mock, config.Default())
	m.IsRoot = func() bool { return false }

	err := m.Set(context.Background(), "1G", false, false)
	if !errors.Is(err, ErrNotRoot) {
		t.Fatalf("expected ErrNotRoot, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Fatalf("expected no host interaction, got %v", mock.Calls)
	}
}

func TestSet_BadSizeBeforeAnyCommand(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := newTestManager(mock)

	err := m.Set(context.Background(), "bad", true, false)
	if err == nil {
		t.Fatal("expected size parse error")
	}
	if len(runCalls(mock)) != 0 {
		t.Fatalf("expected no commands before the size parses, got %v", runCalls(mock))
	}
}

func TestSet_OverflowDistinct(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := newTestManager(mock)

	err := m.Set(context.Background(), "99999999999T", false, false)
	if !errors.Is(err, units.ErrOverflow) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestEmpty_Cycle(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := newTestManager(mock)

	if err := m.Empty(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := runCalls(mock)
	if len(got) != 2 || got[0] != "swapoff -a" || got[1] != "swapon -a" {
		t.Fatalf("expected swapoff -a then swapon -a, got %v", got)
	}
}

func TestEmpty_DisableFailureSkipsEnable(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["swapoff -a"] = &executor.CommandError{Cmd: "swapoff -a", ExitCode: 1}
	m := newTestManager(mock)

	if err := m.Empty(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if mock.Ran("swapon -a") {
		t.Fatal("expected no re-enable after disable failure")
	}
}

func TestEmpty_EnableFailureSurfaces(t *testing.T) {
	mock := executor.NewMockExecutor()
	mock.RunErrors["swapon -a"] = &executor.CommandError{Cmd: "swapon -a", ExitCode: 2}
	m := newTestManager(mock)

	err := m.Empty(context.Background())
	if err == nil {
		t.Fatal("expected error, swap may be left disabled")
	}
	if executor.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2 surfaced, got %d", executor.ExitCode(err))
	}
}

func TestEmpty_NotRoot(t *testing.T) {
	mock := executor.NewMockExecutor()
	m := New(mock, config.Default())
	m.IsRoot = func() bool { return false }

	if err := m.Empty(context.Background()); !errors.Is(err, ErrNotRoot) {
		t.Fatalf("expected ErrNotRoot, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Fatal("expected no host interaction")
	}
}
