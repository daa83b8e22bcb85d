package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/noah-protocol/noah-client/internal/domain"
)

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

// parseTokenList parses a comma separated address list
func parseTokenList(s string) ([]common.Address, error) {
	return domain.ParseAddresses(strings.Split(s, ","))
}

// ParseDuration accepts a preset label ("30 Days"), a day/week/year count ("90d", "2w", "1y")
// or a Go duration ("720h")
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, preset := range domain.DurationPresets {
		if strings.EqualFold(s, preset.Label) {
			return preset.Duration, nil
		}
	}

	if n := len(s); n > 1 {
		unit := map[byte]time.Duration{
			'd': 24 * time.Hour,
			'w': 7 * 24 * time.Hour,
			'y': 365 * 24 * time.Hour,
		}[s[n-1]]
		if unit > 0 {
			count, err := strconv.Atoi(s[:n-1])
			if err == nil && count > 0 {
				return time.Duration(count) * unit, nil
			}
		}
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 24*time.Hour {
		return 0, fmt.Errorf("invalid duration %q: use a preset, Nd, Nw, Ny or at least 24h", s)
	}
	return d, nil
}
