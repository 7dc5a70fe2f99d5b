package parser

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yitech/candlesleek/model/candle"
)

// utf8BOM is written by spreadsheet "CSV UTF-8" exports.
var utf8BOM = []byte("\xef\xbb\xbf")

// requiredColumns are checked in this order; the first absent one is reported.
var requiredColumns = []string{"timestamp", "open", "high", "low", "close"}

// minFields is the shortest row considered at all. Shorter rows (usually
// blank or truncated lines) are skipped without error.
const minFields = 5

// timeOfDay finds "HH:MM" in a timestamp, optionally after a date and a 'T'
// or space separator and optionally followed by seconds and a UTC offset.
//
//	2025-11-13T15:29:00+05:30 -> 15:29
//	2025-01-01 09:15          -> 09:15
//	09:15:00Z                 -> 09:15
var timeOfDay = regexp.MustCompile(`(?:^|[T ])(\d{1,2}):(\d{2})(?::\d{2}(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?(?:$|[^\d])`)

// columns holds the header index of every required column.
type columns struct {
	timestamp, open, high, low, close int
}

// last returns the largest index a row must reach to be readable.
func (c columns) last() int {
	return max(c.timestamp, c.open, c.high, c.low, c.close)
}

// Parse turns CSV text into candles ordered oldest first.
//
// The source is assumed newest first, so surviving rows are returned in
// reverse file order. Rows that are too short or carry a non-numeric price
// are dropped silently; only an unusable header or an empty result fails.
func Parse(text string) ([]candle.Candle, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	cols, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	out := make([]candle.Candle, 0, len(lines)-1)
	for _, line := range lines[1:] {
		c, ok := parseRow(strings.TrimSuffix(line, "\r"), cols)
		if !ok {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoValidRows
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// LoadFile reads a .csv file from disk and parses it. A leading UTF-8 byte
// order mark is dropped.
func LoadFile(path string) ([]candle.Candle, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, ErrUnsupportedFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	return Parse(string(bytes.TrimPrefix(data, utf8BOM)))
}

func parseHeader(line string) (columns, error) {
	index := make(map[string]int)
	for i, name := range strings.Split(strings.ToLower(strings.TrimSuffix(line, "\r")), ",") {
		name = strings.TrimSpace(name)
		// first occurrence wins for duplicated names
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return columns{}, &MissingColumnError{Name: name}
		}
	}
	return columns{
		timestamp: index["timestamp"],
		open:      index["open"],
		high:      index["high"],
		low:       index["low"],
		close:     index["close"],
	}, nil
}

func parseRow(line string, cols columns) (candle.Candle, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < minFields || len(fields) <= cols.last() {
		return candle.Candle{}, false
	}

	var prices [4]float64
	for i, idx := range [4]int{cols.open, cols.high, cols.low, cols.close} {
		v, ok := parsePrice(fields[idx])
		if !ok {
			return candle.Candle{}, false
		}
		prices[i] = v
	}

	ts := strings.TrimSpace(fields[cols.timestamp])
	return candle.Candle{
		DisplayTime: DisplayTime(ts),
		Open:        prices[0],
		High:        prices[1],
		Low:         prices[2],
		Close:       prices[3],
		Timestamp:   ts,
	}, true
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// DisplayTime shortens a raw timestamp to "H:MM" when it carries a time of
// day, dropping the hour's leading zero. Anything else is returned unchanged.
func DisplayTime(ts string) string {
	m := timeOfDay.FindStringSubmatch(ts)
	if m == nil {
		return ts
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return ts
	}
	return strconv.Itoa(hour) + ":" + m[2]
}
