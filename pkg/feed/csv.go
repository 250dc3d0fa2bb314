package feed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
)

var (
	defaultValueHeaderMap = map[string]int{
		"time": 0, "value": 1,
	}
	defaultOHLCVHeaderMap = map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}
)

// CSVFile describes one file to load into a dataset
type CSVFile struct {
	Name string
	File string

	// Progress renders a terminal progress bar while parsing
	Progress bool
}

// parseHeaders maps column names to indices. Files without a header row
// (first field numeric) fall back to the given default layout.
func parseHeaders(headers []string, defaults map[string]int) (headerMap map[string]int, hasCustomHeaders bool) {
	if _, err := strconv.ParseFloat(headers[0], 64); err == nil {
		return defaults, false
	}

	headerMap = make(map[string]int)
	for index, header := range headers {
		headerMap[header] = index
	}

	return headerMap, true
}

// LoadPoints reads a time/value CSV into a validated dataset
func LoadPoints(file CSVFile) (*core.Dataset, error) {
	lines, err := readLines(file.File)
	if err != nil {
		return nil, err
	}

	headerMap, hasCustomHeaders := parseHeaders(lines[0], defaultValueHeaderMap)
	if hasCustomHeaders {
		lines = lines[1:]
	}

	bar := newBar(file, len(lines))

	points := make([]core.Point, 0, len(lines))
	for i, line := range lines {
		ts, err := parseTimestamp(line[headerMap["time"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrInvalidData, i+1, err)
		}

		value, err := strconv.ParseFloat(line[headerMap["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrInvalidData, i+1, err)
		}

		points = append(points, core.NewTimePoint(ts, value))
		if bar != nil {
			bar.Add(1)
		}
	}

	return core.NewDataset(file.Name, points)
}

// LoadCandles reads an OHLCV CSV into a candle dataset. Every row goes
// through the candle constructor, so OHLC invariant violations reject
// the whole file at ingestion time.
func LoadCandles(file CSVFile) (*core.Dataset, error) {
	lines, err := readLines(file.File)
	if err != nil {
		return nil, err
	}

	headerMap, hasCustomHeaders := parseHeaders(lines[0], defaultOHLCVHeaderMap)
	if hasCustomHeaders {
		lines = lines[1:]
	}

	bar := newBar(file, len(lines))

	candles := make([]core.Candle, 0, len(lines))
	for i, line := range lines {
		candle, err := parseCandleFromLine(line, headerMap)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		candles = append(candles, candle)
		if bar != nil {
			bar.Add(1)
		}
	}

	return &core.Dataset{
		Name:      file.Name,
		Candles:   candles,
		UpdatedAt: time.Now(),
	}, nil
}

// WritePoints writes a point dataset back out as a time/value CSV,
// used by the CLI downsampling command.
func WritePoints(path string, set *core.Dataset) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"time", "value"}); err != nil {
		return err
	}

	records := lo.Map(set.Points, func(p core.Point, _ int) []string {
		return []string{
			strconv.FormatInt(int64(p.X), 10),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
	})

	return writer.WriteAll(records)
}

func readLines(path string) ([][]string, error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	lines, err := csv.NewReader(csvFile).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty CSV file %s", core.ErrInvalidData, path)
	}

	return lines, nil
}

func parseCandleFromLine(line []string, headerMap map[string]int) (core.Candle, error) {
	ts, err := parseTimestamp(line[headerMap["time"]])
	if err != nil {
		return core.Candle{}, fmt.Errorf("%w: %v", core.ErrInvalidData, err)
	}

	fields := make(map[string]float64, 5)
	for _, name := range []string{"open", "close", "low", "high", "volume"} {
		idx, ok := headerMap[name]
		if !ok || idx >= len(line) {
			if name == "volume" {
				continue
			}
			return core.Candle{}, fmt.Errorf("%w: missing %s column", core.ErrInvalidData, name)
		}

		v, err := strconv.ParseFloat(line[idx], 64)
		if err != nil {
			return core.Candle{}, fmt.Errorf("%w: bad %s value %q", core.ErrInvalidData, name, line[idx])
		}
		fields[name] = v
	}

	return core.NewCandle(ts, fields["open"], fields["high"], fields["low"], fields["close"], fields["volume"])
}

func parseTimestamp(field string) (time.Time, error) {
	epoch, err := strconv.ParseInt(field, 10, 64)
	if err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}

	return time.Parse(time.RFC3339, field)
}

func newBar(file CSVFile, total int) *progressbar.ProgressBar {
	if !file.Progress {
		return nil
	}
	return progressbar.Default(int64(total), "loading "+file.Name)
}
