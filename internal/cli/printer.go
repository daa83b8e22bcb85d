package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/noah-protocol/noah-client/internal/activity"
	"github.com/noah-protocol/noah-client/internal/allowance"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
)

func printArk(w io.Writer, ark *domain.Ark, infos []domain.TokenInfo, now time.Time) {
	remaining := domain.RemainingUntil(ark.Deadline, now)
	marker := ""
	if remaining.Urgent {
		marker = " (!)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Owner:\t%s\n", ark.Owner.Hex())
	fmt.Fprintf(tw, "Beneficiary:\t%s\n", ark.Beneficiary.Hex())
	fmt.Fprintf(tw, "Deadline:\t%s\t%s%s\n", ark.Deadline.UTC().Format(time.RFC1123), remaining.Text, marker)
	fmt.Fprintf(tw, "Duration:\t%s\n", domain.FormatDuration(ark.DeadlineDuration))
	fmt.Fprintf(tw, "Tokens:\t%d\n", len(ark.Tokens))
	_ = tw.Flush()

	printTokens(w, infos)
}

func printTokens(w io.Writer, infos []domain.TokenInfo) {
	if len(infos) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSYMBOL\tBALANCE\tADDRESS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Symbol, info.FormatBalance(), info.Address.Hex())
	}
	_ = tw.Flush()
}

func printActivity(w io.Writer, view *activity.View, chain domain.Chain, now time.Time) {
	source := "indexer"
	if view.Cached {
		source = "cache, fetched " + domain.FormatRelative(view.FetchedAt, now)
	}
	if view.Stale {
		source += ", refreshing"
	}
	fmt.Fprintf(w, "Activity on %s (%s)\n", chain.Name(), source)
	printEvents(w, view.Events, now)
}

func printEvents(w io.Writer, events []domain.ActivityEvent, now time.Time) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No activity yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range events {
		details := e.Details
		if details == "" {
			details = e.TxHash.Hex()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", domain.FormatRelative(e.Timestamp, now), e.Type.Label(), details)
	}
	_ = tw.Flush()
}

func printAllowances(w io.Writer, statuses []allowance.Status, infos []domain.TokenInfo) {
	symbols := make(map[string]string, len(infos))
	for _, info := range infos {
		symbols[info.Address.Hex()] = info.Symbol
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tAPPROVED\tADDRESS")
	missing := 0
	for _, s := range statuses {
		state := "yes"
		switch {
		case s.Err != nil:
			state = "unknown"
			missing++
		case !s.Sufficient:
			state = "no"
			missing++
		}
		symbol := symbols[s.Token.Hex()]
		if symbol == "" {
			symbol = allowance.UnknownSymbol
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", symbol, state, s.Token.Hex())
	}
	_ = tw.Flush()

	if missing > 0 {
		fmt.Fprintf(w, "%d of %d tokens need approval\n", missing, len(statuses))
	}
}

func printResult(w io.Writer, r *orchestrator.Result, chain domain.Chain) {
	if len(r.Approvals) > 0 {
		fmt.Fprintf(w, "Approvals: %d confirmed of %d\n", len(r.Confirmed()), len(r.Approvals))
	}
	if r.Committed {
		fmt.Fprintf(w, "Confirmed: %s\n", txRef(r.PrimaryTxHash.Hex(), chain.TxURL(r.PrimaryTxHash)))
	}
	if r.Indexed {
		fmt.Fprintln(w, "Indexer updated")
	}
}

func txRef(hash, url string) string {
	if url == "" {
		return hash
	}
	return url
}

// ProgressPrinter writes orchestration progress as one line per event
type ProgressPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewProgressPrinter creates a ProgressPrinter writing to w
func NewProgressPrinter(w io.Writer) *ProgressPrinter {
	return &ProgressPrinter{w: w}
}

func (p *ProgressPrinter) OnProgress(_ context.Context, e orchestrator.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	switch e.Step {
	case orchestrator.StepChecked:
		if e.Missing == 0 {
			b.WriteString("All tokens approved")
		} else {
			fmt.Fprintf(&b, "%d token(s) need approval", e.Missing)
		}
	case orchestrator.StepApproval:
		token := "token"
		if e.Token != nil {
			token = e.Token.Hex()
		}
		fmt.Fprintf(&b, "  approve %s: %s", token, e.State)
	case orchestrator.StepBatch:
		fmt.Fprintf(&b, "  batch %s: %s", e.BatchID, e.State)
	case orchestrator.StepPrimary:
		fmt.Fprintf(&b, "  transaction: %s", e.State)
	case orchestrator.StepIndexed:
		b.WriteString("Indexer confirmed")
	case orchestrator.StepDone:
		if e.Error == "" {
			b.WriteString("Done")
		} else {
			b.WriteString("Failed")
		}
	}
	if e.TxHash != nil && e.Step != orchestrator.StepDone {
		fmt.Fprintf(&b, " %s", e.TxHash.Hex())
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " (%s)", e.Error)
	}
	fmt.Fprintln(p.w, b.String())
}
