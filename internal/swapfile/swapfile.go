// internal/swapfile/swapfile.go
package swapfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/aadashti/swap-manager/internal/config"
	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/fstab"
	"github.com/aadashti/swap-manager/internal/ui"
	"github.com/aadashti/swap-manager/internal/units"
)

// ErrNotRoot is returned when a privileged operation runs without euid 0.
var ErrNotRoot = errors.New("this operation requires root, run with sudo or as root")

// Manager sequences the privileged swap operations. Steps run strictly in
// order with no retries and no rollback: a fatal step aborts the whole
// operation, a best-effort step logs and moves on.
type Manager struct {
	Exec   executor.Executor
	Cfg    *config.Config
	IsRoot func() bool
}

func New(exec executor.Executor, cfg *config.Config) *Manager {
	return &Manager{
		Exec:   exec,
		Cfg:    cfg,
		IsRoot: func() bool { return os.Geteuid() == 0 },
	}
}

type step struct {
	name       string
	bestEffort bool
	run        func(ctx context.Context) error
}

func (m *Manager) runSteps(ctx context.Context, steps []step) error {
	for _, st := range steps {
		if err := st.run(ctx); err != nil {
			if st.bestEffort {
				logrus.WithField("step", st.name).WithError(err).Debug("ignoring best-effort step failure")
				continue
			}
			return fmt.Errorf("%s failed: %w", st.name, err)
		}
	}
	return nil
}

// Set creates, formats and activates a swapfile of the requested size at
// the configured path. The original size token is handed to fallocate
// unchanged; the parsed byte count only drives the dd fallback and the
// final summary.
func (m *Manager) Set(ctx context.Context, sizeToken string, replace, persist bool) error {
	if !m.IsRoot() {
		return ErrNotRoot
	}
	ui.Info(fmt.Sprintf("Requested set %s (replace=%t persist=%t)", sizeToken, replace, persist))

	sizeBytes, err := units.ParseSize(sizeToken)
	if err != nil {
		return err
	}
	path := m.Cfg.SwapfilePath

	var steps []step
	if replace {
		steps = append(steps, step{name: "disable all swap", run: func(ctx context.Context) error {
			ui.Info("Replacing existing swap (running swapoff -a)...")
			_, err := m.Exec.Run(ctx, "swapoff -a")
			return err
		}})
	}
	steps = append(steps,
		step{name: "remove stale swapfile", run: func(ctx context.Context) error {
			return m.reconcileStale(ctx, path)
		}},
		step{name: "allocate swapfile", run: func(ctx context.Context) error {
			return m.allocate(ctx, path, sizeToken, sizeBytes)
		}},
		step{name: "restrict permissions", bestEffort: true, run: func(ctx context.Context) error {
			_, err := m.Exec.Run(ctx, fmt.Sprintf("chmod 600 %s", path))
			return err
		}},
		step{name: "format swap area", run: func(ctx context.Context) error {
			_, err := m.Exec.Run(ctx, fmt.Sprintf("mkswap %s", path))
			return err
		}},
		step{name: "activate swap area", run: func(ctx context.Context) error {
			_, err := m.Exec.Run(ctx, fmt.Sprintf("swapon %s", path))
			return err
		}},
	)
	if err := m.runSteps(ctx, steps); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Activated swapfile %s (size %s).", path, units.FormatBytes(sizeBytes)))

	if persist {
		ui.Info(fmt.Sprintf("Adding entry to %s to make swap persistent...", m.Cfg.FstabPath))
		if err := fstab.Ensure(ctx, m.Exec, path, m.Cfg.FstabPath); err != nil {
			return fmt.Errorf("persist fstab entry failed: %w", err)
		}
	}
	return nil
}

// reconcileStale clears a leftover swapfile at path. Disabling it first is
// best-effort (it is usually not active); the delete itself is fatal.
func (m *Manager) reconcileStale(ctx context.Context, path string) error {
	exists, err := m.Exec.FileExists(ctx, path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ui.Info(fmt.Sprintf("Existing %s found, disabling it first...", path))
	if _, err := m.Exec.Run(ctx, fmt.Sprintf("swapoff %s", path)); err != nil {
		logrus.WithError(err).Debug("stale swapfile was not active")
	}
	if err := m.Exec.Remove(ctx, path); err != nil {
		return fmt.Errorf("removing existing swapfile: %w", err)
	}
	return nil
}

// allocate tries fallocate with the user's original token, then falls back
// to a dd zero-fill in 1 MiB blocks, rounding the block count up.
func (m *Manager) allocate(ctx context.Context, path, sizeToken string, sizeBytes uint64) error {
	if _, err := m.Exec.Run(ctx, fmt.Sprintf("fallocate -l %s %s", sizeToken, path)); err == nil {
		return nil
	}
	blocks := (sizeBytes + 1<<20 - 1) >> 20
	ui.Warn(fmt.Sprintf("fallocate unavailable or failed, falling back to dd (%d MiB)...", blocks))
	if _, err := m.Exec.Run(ctx, fmt.Sprintf("dd if=/dev/zero of=%s bs=1M count=%d", path, blocks)); err != nil {
		return fmt.Errorf("dd failed to create swapfile: %w", err)
	}
	return nil
}

// Empty cycles swap off and back on to move paged-out memory into RAM. If
// the re-enable fails the host is left with swap disabled; there is no
// automatic recovery.
func (m *Manager) Empty(ctx context.Context) error {
	if !m.IsRoot() {
		return ErrNotRoot
	}
	steps := []step{
		{name: "disable all swap", run: func(ctx context.Context) error {
			ui.Info("Disabling all swap (this will move pages back into RAM)...")
			_, err := m.Exec.Run(ctx, "swapoff -a")
			return err
		}},
		{name: "enable all swap", run: func(ctx context.Context) error {
			ui.Info("Re-enabling swap (swapon -a)...")
			_, err := m.Exec.Run(ctx, "swapon -a")
			return err
		}},
	}
	if err := m.runSteps(ctx, steps); err != nil {
		return err
	}
	ui.Success("Swap emptied (swapoff -> swapon cycle completed).")
	return nil
}
