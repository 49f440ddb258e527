// internal/interp/interp.go
package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aadashti/swap-manager/internal/advisor"
	"github.com/aadashti/swap-manager/internal/config"
	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/swapfile"
	"github.com/aadashti/swap-manager/internal/swaps"
)

// Interpreter consumes the chained action tokens left to right and
// dispatches each one as it is recognized. The first failure aborts the
// rest of the queue; completed actions are not rolled back.
type Interpreter struct {
	Exec executor.Executor
	Cfg  *config.Config
	Out  io.Writer
	Swap *swapfile.Manager

	// Advise is swappable so tests do not probe the host's memory.
	Advise func(ctx context.Context, w io.Writer) error
}

func New(exec executor.Executor, cfg *config.Config) *Interpreter {
	return &Interpreter{
		Exec:   exec,
		Cfg:    cfg,
		Out:    os.Stdout,
		Swap:   swapfile.New(exec, cfg),
		Advise: advisor.Show,
	}
}

// Run processes the token queue. "set" consumes the following size token
// plus any immediately following --replace/--persist flags; every other
// action is a single token.
func (in *Interpreter) Run(ctx context.Context, tokens []string) error {
	q := append([]string(nil), tokens...)
	for len(q) > 0 {
		tok := q[0]
		q = q[1:]
		switch {
		case tok == "show":
			if err := swaps.Show(ctx, in.Exec, in.Cfg.SwapTablePath, in.Out); err != nil {
				return err
			}
		case tok == "empty":
			if err := in.Swap.Empty(ctx); err != nil {
				return err
			}
		case tok == "recommend":
			if err := in.Advise(ctx, in.Out); err != nil {
				return err
			}
		case tok == "set":
			if len(q) == 0 {
				return errors.New("'set' requires a size argument, e.g. 5G")
			}
			sizeTok := q[0]
			q = q[1:]
			var replace, persist bool
			for len(q) > 0 && strings.HasPrefix(q[0], "--") {
				flag := q[0]
				q = q[1:]
				switch flag {
				case "--replace":
					replace = true
				case "--persist":
					persist = true
				default:
					return fmt.Errorf("unknown flag for 'set': %s", flag)
				}
			}
			if err := in.Swap.Set(ctx, sizeTok, replace, persist); err != nil {
				return err
			}
		case strings.HasPrefix(tok, "-"):
			return fmt.Errorf("unexpected global flag or misplaced flag: %s", tok)
		default:
			return fmt.Errorf("unknown command: %s (expected set/show/empty/recommend)", tok)
		}
	}
	return nil
}
