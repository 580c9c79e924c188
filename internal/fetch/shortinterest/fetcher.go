package shortinterest

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/pkg/httputil"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// pageURLs are the short-interest listing pages, scraped in order.
var pageURLs = []string{
	"https://www.highshortinterest.com/all/1",
	"https://www.highshortinterest.com/all/2",
}

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// Fetcher scrapes the high-short-interest listing into the
// short-interest feed artifact. It is the only acquisition step kept
// in-repo; the other feeds arrive from external scrapers.
type Fetcher struct {
	client *httputil.Client
	store  *feedstore.Store
	logger *logger.Logger
}

// NewFetcher creates a short-interest fetcher.
func NewFetcher(client *httputil.Client, store *feedstore.Store, log *logger.Logger) *Fetcher {
	return &Fetcher{client: client, store: store, logger: log}
}

// Fetch scrapes all listing pages and writes the artifact. A page
// that fails to load or parse is skipped; the artifact is written
// with whatever rows were collected.
func (f *Fetcher) Fetch(ctx context.Context) (int, error) {
	data := make(map[string]contracts.ShortInterestEntry)

	for _, url := range pageURLs {
		rows, err := f.fetchPage(ctx, url)
		if err != nil {
			f.logger.WithError(err).WithField("url", url).Warn("Short interest page failed, skipping")
			continue
		}
		for ticker, entry := range rows {
			data[ticker] = entry
		}
	}

	if err := f.store.WriteArtifact(contracts.ShortInterestArtifact, data); err != nil {
		return 0, fmt.Errorf("write short interest artifact: %w", err)
	}

	f.logger.WithField("tickers", len(data)).Info("Short interest feed updated")
	return len(data), nil
}

// fetchPage loads one listing page and parses its data table.
func (f *Fetcher) fetchPage(ctx context.Context, url string) (map[string]contracts.ShortInterestEntry, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return ParseTable(doc), nil
}

// ParseTable extracts ticker and short-percent-of-float rows from the
// first table carrying them. Rows with an invalid ticker or an
// unparsable percentage are dropped.
func ParseTable(doc *goquery.Document) map[string]contracts.ShortInterestEntry {
	out := make(map[string]contracts.ShortInterestEntry)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 4 {
			return
		}

		ticker := strings.ToUpper(strings.TrimSpace(cols.Eq(0).Text()))
		if !ValidTicker(ticker) {
			return
		}

		pctText := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cols.Eq(3).Text()), "%"))
		pct, err := strconv.ParseFloat(pctText, 64)
		if err != nil {
			return
		}

		out[ticker] = contracts.ShortInterestEntry{
			ShortPercentOfFloat: contracts.Float(round4(pct / 100)),
		}
	})

	return out
}

// ValidTicker filters out table noise: headers, footnotes, and
// anything that is not a plain 1-5 letter symbol.
func ValidTicker(ticker string) bool {
	return tickerPattern.MatchString(ticker)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
