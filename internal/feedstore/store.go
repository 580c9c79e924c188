package feedstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// ErrUniverseMissing means the base universe artifact is absent or
// unreadable. Unlike auxiliary feeds this aborts the run: there is
// nothing to enrich.
var ErrUniverseMissing = errors.New("universe artifact missing")

// Store provides read access to the named JSON feed artifacts in a
// cache directory and write access for the produced snapshots.
// Auxiliary feeds degrade to an empty mapping when absent or
// malformed; only the universe artifact is load-bearing.
type Store struct {
	dir    string
	logger *logger.Logger
}

// New creates a feed store rooted at dir.
func New(dir string, log *logger.Logger) *Store {
	return &Store{dir: dir, logger: log}
}

// Dir returns the cache directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// NormalizeSymbol maps feed symbol spellings onto one identity:
// upper-cased, with exchange class suffixes dash-separated, so
// "brk.b" and "BRK-B" address the same record.
func NormalizeSymbol(sym string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(sym), ".", "-"))
}

// LoadUniverse reads the base universe artifact. Key order in the
// file is preserved: downstream tie-breaks lean on the feed's natural
// iteration order.
func (s *Store) LoadUniverse() (*contracts.Universe, error) {
	data, err := os.ReadFile(s.Path(contracts.UniverseArtifact))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUniverseMissing, contracts.UniverseArtifact)
	}

	keys, raw, err := decodeOrderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUniverseMissing, contracts.UniverseArtifact, err)
	}

	universe := contracts.NewUniverse()
	for _, key := range keys {
		var entry contracts.UniverseEntry
		if err := json.Unmarshal(raw[key], &entry); err != nil {
			// Malformed row: the symbol stays in the universe with
			// identity only, later rules simply do not fire.
			s.logger.WithFields(map[string]interface{}{
				"symbol": key,
				"error":  err.Error(),
			}).Warn("Malformed universe entry")
			universe.Add(&contracts.SymbolRecord{Symbol: NormalizeSymbol(key)})
			continue
		}

		universe.Add(&contracts.SymbolRecord{
			Symbol:    NormalizeSymbol(key),
			Sector:    entry.Sector,
			Open:      entry.Open,
			PrevClose: entry.PrevClose,
			AvgVolume: entry.AvgVolume,
			Spread:    entry.Spread,
		})
	}

	return universe, nil
}

// LoadFeeds reads every auxiliary feed. Missing or malformed
// artifacts come back as empty mappings, logged and non-fatal.
func (s *Store) LoadFeeds() *contracts.Feeds {
	return &contracts.Feeds{
		Quotes:        s.LoadQuotes(),
		SectorPrices:  loadKeyed[contracts.SectorPrice](s, contracts.SectorPricesArtifact, false),
		Candles:       loadKeyed[[]contracts.Candle](s, contracts.CandlesArtifact, true),
		MultiDay:      loadKeyed[contracts.LevelEntry](s, contracts.MultiDayArtifact, true),
		ShortInterest: loadKeyed[contracts.ShortInterestEntry](s, contracts.ShortInterestArtifact, true),
	}
}

// LoadQuotes reads the quote-signal feed. The artifact is either an
// object keyed by symbol or a list of entries carrying a symbol
// field; both normalize to the keyed shape here and nowhere else.
func (s *Store) LoadQuotes() map[string]contracts.QuoteEntry {
	out := make(map[string]contracts.QuoteEntry)

	data, ok := s.readArtifact(contracts.QuoteSignalsArtifact)
	if !ok {
		return out
	}

	switch firstByte(data) {
	case '[':
		var entries []contracts.QuoteEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			s.warnMalformed(contracts.QuoteSignalsArtifact, err)
			return out
		}
		for _, entry := range entries {
			if entry.Symbol == "" {
				continue
			}
			out[NormalizeSymbol(entry.Symbol)] = entry
		}
	case '{':
		keyed := make(map[string]contracts.QuoteEntry)
		if err := json.Unmarshal(data, &keyed); err != nil {
			s.warnMalformed(contracts.QuoteSignalsArtifact, err)
			return out
		}
		for sym, entry := range keyed {
			out[NormalizeSymbol(sym)] = entry
		}
	default:
		s.warnMalformed(contracts.QuoteSignalsArtifact, errors.New("not a JSON object or array"))
	}

	return out
}

// loadKeyed reads a symbol-keyed artifact into a map of T. When
// normalize is false keys are kept verbatim (the sector price feed is
// keyed by ETF ticker, not by symbol).
func loadKeyed[T any](s *Store, name string, normalize bool) map[string]T {
	out := make(map[string]T)

	data, ok := s.readArtifact(name)
	if !ok {
		return out
	}

	keyed := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &keyed); err != nil {
		s.warnMalformed(name, err)
		return out
	}

	for key, raw := range keyed {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			// One bad row does not poison the feed.
			s.logger.WithFields(map[string]interface{}{
				"artifact": name,
				"symbol":   key,
				"error":    err.Error(),
			}).Warn("Malformed feed entry")
			continue
		}
		if normalize {
			key = NormalizeSymbol(key)
		}
		out[key] = value
	}

	return out
}

// readArtifact reads a whole artifact, reporting absence as a warn.
func (s *Store) readArtifact(name string) ([]byte, bool) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"artifact": name,
			"error":    err.Error(),
		}).Warn("Feed artifact unavailable, treating as empty")
		return nil, false
	}
	return data, true
}

func (s *Store) warnMalformed(name string, err error) {
	s.logger.WithFields(map[string]interface{}{
		"artifact": name,
		"error":    err.Error(),
	}).Warn("Feed artifact malformed, treating as empty")
}

// decodeOrderedObject splits a JSON object into its keys, in file
// order, plus the raw value per key. encoding/json maps drop order;
// the token scan keeps it.
func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("not a JSON object")
	}

	keys := make([]string, 0)
	values := make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, errors.New("non-string object key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}

		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
