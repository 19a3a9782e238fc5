package intelxaudit

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
)

const summaryRecords = 5

// ProcessTarget runs search, result polling and the optional export for a target that has already been
// validated. Every failure is reported and ends the processing of this target only.
func (a *Auditor) ProcessTarget(ctx context.Context, target string) (outcome Outcome) {
	defer func() {
		a.metrics.observeOutcome(outcome)
	}()

	a.reporter.Info("Auditing target: %s", target)

	handle, err := a.api.Search(ctx, a.searchRequest(target))
	if err != nil {
		a.reportSearchError(err)
		a.reporter.Error("Could not start the search.")

		return OutcomeFailed
	}

	a.reporter.Success("Search ID: %s", handle)

	records := a.pollResults(ctx, handle)
	if len(records) == 0 {
		a.reporter.Info("No leak records found (clean).")

		return OutcomeClean
	}

	a.metrics.records.Add(float64(len(records)))
	a.reporter.Warning("ALERT: found %d potential leak records.", len(records))

	for _, rec := range records[:min(summaryRecords, len(records))] {
		date, name := rec.Date, rec.Name
		if date == "" {
			date = "N/A"
		}
		if name == "" {
			name = "unnamed"
		}

		a.reporter.Finding(date, name)
	}

	if a.cfg.Download {
		a.export(ctx, handle)
	}

	return OutcomeExposed
}

func (a *Auditor) searchRequest(target string) SearchRequest {
	return SearchRequest{
		Term:       target,
		Buckets:    mapset.NewSet(a.cfg.Buckets...),
		MaxResults: a.cfg.MaxResults,
		Media:      a.cfg.Media,
		Sort:       a.cfg.Sort,
		Timeout:    a.cfg.ServerTimeout,
	}
}

// pollResults waits for the service to index the search and fetches one page of records.
// Any failure yields no records, so a failed query looks like a clean target apart from the debug log.
func (a *Auditor) pollResults(ctx context.Context, handle string) []ResultRecord {
	if err := a.sleep(ctx, a.cfg.PollDelay); err != nil {
		a.logger.Debug().Err(err).Str("search_id", handle).Msg("waiting for results")

		return nil
	}

	records, err := a.api.Results(ctx, handle, a.cfg.ResultLimit)
	if err != nil {
		a.logger.Debug().Err(err).Str("search_id", handle).Msg("fetching results")

		return nil
	}

	return records
}

func (a *Auditor) export(ctx context.Context, handle string) {
	result, err := a.archive.Export(ctx, handle)
	if err != nil {
		a.reporter.Error("Download failed: %v", err)

		return
	}

	if result.Skipped {
		return
	}

	if result.Files > 0 {
		a.reporter.Success("Download complete: %s (%d files)", result.Path, result.Files)

		return
	}

	a.reporter.Success("Download complete: %s", result.Path)
}

func (a *Auditor) reportSearchError(err error) {
	var apiErr *APIError

	switch {
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrNoHandle), errors.Is(err, ErrConnection):
		a.reporter.Error("%v", err)
	case errors.As(err, &apiErr):
		a.reporter.Error("%v", apiErr)
	default:
		a.reporter.Error("Search failed: %v", err)
	}
}
