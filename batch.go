package intelxaudit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Summary counts the outcomes of a file run.
type Summary struct {
	Loaded   int
	Outcomes map[Outcome]int

	// ExposedByDomain groups exposed targets by organisation domain (eTLD+1 of the address).
	ExposedByDomain map[string]int
}

func newSummary(loaded int) Summary {
	return Summary{
		Loaded:          loaded,
		Outcomes:        map[Outcome]int{},
		ExposedByDomain: map[string]int{},
	}
}

func (s Summary) add(target string, o Outcome) {
	s.Outcomes[o]++

	if o == OutcomeExposed {
		s.ExposedByDomain[organisationDomain(target)]++
	}
}

func organisationDomain(target string) string {
	domain := targetDomain(target)

	org, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}

	return org
}

// AuditTarget validates a single target and processes it. Surrounding whitespace is not part of the target.
func (a *Auditor) AuditTarget(ctx context.Context, target string) Outcome {
	target = strings.TrimSpace(target)

	if !IsTarget(target) {
		a.reporter.Error("Invalid email format: %q", target)
		a.metrics.observeOutcome(OutcomeInvalid)

		return OutcomeInvalid
	}

	return a.ProcessTarget(ctx, target)
}

// AuditFile processes every valid target of a newline-delimited file, pausing between targets to stay within
// the rate limits of the API. Invalid lines are skipped without notice. The returned error is only set if the
// file cannot be read or ctx is done; failures of single targets are part of the summary.
func (a *Auditor) AuditFile(ctx context.Context, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.reporter.Error("File not found: %s", path)
		} else {
			a.reporter.Error("Could not open %s: %v", path, err)
		}

		return Summary{}, fmt.Errorf("opening targets file: %w", err)
	}
	defer file.Close()

	targets, err := ReadTargets(file)
	if err != nil {
		a.reporter.Error("Could not read %s: %v", path, err)

		return Summary{}, err
	}

	a.reporter.Info("%d targets loaded from %s", len(targets), filepath.Base(path))

	summary := newSummary(len(targets))

	for i, target := range targets {
		if i > 0 {
			if err := a.sleep(ctx, a.cfg.TargetDelay); err != nil {
				return summary, fmt.Errorf("waiting between targets: %w", err)
			}
		}

		summary.add(target, a.ProcessTarget(ctx, target))
	}

	a.reportSummary(summary)

	return summary, nil
}

func (a *Auditor) reportSummary(s Summary) {
	a.reporter.Info("Audit finished: %d clean, %d exposed, %d failed",
		s.Outcomes[OutcomeClean], s.Outcomes[OutcomeExposed], s.Outcomes[OutcomeFailed])

	domains := make([]string, 0, len(s.ExposedByDomain))
	for domain := range s.ExposedByDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	for _, domain := range domains {
		a.reporter.Warning("%s: %d exposed targets", domain, s.ExposedByDomain[domain])
	}
}
