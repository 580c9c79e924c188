package housekeeping

import (
	"fmt"
	"os"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/enrich"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// minShortInterestRows is the floor below which the short-interest
// feed looks truncated rather than merely quiet.
const minShortInterestRows = 50

// Issue is one audit finding.
type Issue struct {
	Artifact string `json:"artifact"`
	Message  string `json:"message"`
}

// AuditReport collects the findings of one cache audit pass.
type AuditReport struct {
	Issues []Issue `json:"issues"`
}

// Healthy reports whether the audit found nothing to complain about.
func (r *AuditReport) Healthy() bool {
	return len(r.Issues) == 0
}

func (r *AuditReport) add(artifact, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Artifact: artifact,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Auditor checks the health of the feed caches without mutating them.
type Auditor struct {
	store  *feedstore.Store
	logger *logger.Logger
}

// NewAuditor creates an auditor over the given store.
func NewAuditor(store *feedstore.Store, log *logger.Logger) *Auditor {
	return &Auditor{store: store, logger: log}
}

// Audit inspects every major feed artifact and reports problems.
// Auditing is advisory: it never fails, it only describes.
func (a *Auditor) Audit() *AuditReport {
	report := &AuditReport{Issues: make([]Issue, 0)}

	a.auditQuotes(report)
	a.auditSectorPrices(report)
	a.auditCandles(report)
	a.auditMultiDay(report)
	a.auditShortInterest(report)

	if report.Healthy() {
		a.logger.Info("Cache audit passed, all major caches healthy")
	} else {
		a.logger.WithField("issues", len(report.Issues)).Warn("Cache audit found problems")
	}

	return report
}

func (a *Auditor) exists(name string) bool {
	_, err := os.Stat(a.store.Path(name))
	return err == nil
}

func (a *Auditor) auditQuotes(report *AuditReport) {
	if !a.exists(contracts.QuoteSignalsArtifact) {
		report.add(contracts.QuoteSignalsArtifact, "artifact missing")
		return
	}

	quotes := a.store.LoadQuotes()
	stale := 0
	for _, entry := range quotes {
		if entry.Timestamp == "" {
			stale++
		}
	}
	if stale > 0 {
		report.add(contracts.QuoteSignalsArtifact, "%d tickers missing timestamp", stale)
	}
}

func (a *Auditor) auditSectorPrices(report *AuditReport) {
	if !a.exists(contracts.SectorPricesArtifact) {
		report.add(contracts.SectorPricesArtifact, "artifact missing")
		return
	}

	feeds := a.store.LoadFeeds()
	missing := make([]string, 0)
	for _, se := range enrich.SectorETFs {
		if _, ok := feeds.SectorPrices[se.ETF]; !ok {
			missing = append(missing, se.ETF)
		}
	}
	if len(missing) > 0 {
		report.add(contracts.SectorPricesArtifact, "missing sector ETF prices for %v", missing)
	}
}

func (a *Auditor) auditCandles(report *AuditReport) {
	if !a.exists(contracts.CandlesArtifact) {
		report.add(contracts.CandlesArtifact, "artifact missing")
		return
	}

	feeds := a.store.LoadFeeds()
	empty := 0
	for _, candles := range feeds.Candles {
		if len(candles) == 0 {
			empty++
		}
	}
	if empty > 0 {
		report.add(contracts.CandlesArtifact, "%d tickers have no intraday candles", empty)
	}
}

func (a *Auditor) auditMultiDay(report *AuditReport) {
	if !a.exists(contracts.MultiDayArtifact) {
		report.add(contracts.MultiDayArtifact, "artifact missing")
		return
	}

	feeds := a.store.LoadFeeds()
	incomplete := 0
	for _, entry := range feeds.MultiDay {
		if entry.High == nil || entry.Low == nil {
			incomplete++
		}
	}
	if incomplete > 0 {
		report.add(contracts.MultiDayArtifact, "%d tickers missing multi-day high/low levels", incomplete)
	}
}

func (a *Auditor) auditShortInterest(report *AuditReport) {
	if !a.exists(contracts.ShortInterestArtifact) {
		report.add(contracts.ShortInterestArtifact, "artifact missing")
		return
	}

	feeds := a.store.LoadFeeds()
	if len(feeds.ShortInterest) < minShortInterestRows {
		report.add(contracts.ShortInterestArtifact,
			"only %d short interest tickers found, expected at least %d",
			len(feeds.ShortInterest), minShortInterestRows)
	}
}
