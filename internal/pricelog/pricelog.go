package pricelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"GoldSentinel/internal/model"
)

// ErrNoLog is returned when the directory holds no price log file yet.
var ErrNoLog = errors.New("no price log found")

var header = []string{"time", "price_usd_oz", "price_cny_g"}

var fileRe = regexp.MustCompile(`^gold_(\d{4}-\d{2}-\d{2})\.csv$`)

// Log is a directory of daily CSV files named gold_YYYY-MM-DD.csv.
// Each row is "HH:MM:SS,<usd> USD/oz,<cny> CNY/g".
type Log struct {
	Dir      string
	Location *time.Location
}

// New returns a log rooted at dir using local time.
func New(dir string) *Log {
	return &Log{Dir: dir, Location: time.Local}
}

// FileFor returns the path of the day file holding t.
func (l *Log) FileFor(t time.Time) string {
	return filepath.Join(l.Dir, "gold_"+t.In(l.Location).Format("2006-01-02")+".csv")
}

// Append writes obs to its day file, creating the file with a header.
func (l *Log) Append(obs model.PriceObservation) error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	path := l.FileFor(obs.Time)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open price log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat price log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	row := []string{
		obs.Time.In(l.Location).Format("15:04:05"),
		obs.Aux,
		strconv.FormatFloat(obs.Price, 'f', 2, 64) + " CNY/g",
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// LatestFile returns the newest day file in the directory.
func (l *Log) LatestFile() (string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoLog
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && fileRe.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", ErrNoLog
	}
	sort.Strings(names)
	return filepath.Join(l.Dir, names[len(names)-1]), nil
}

// Latest reads the full history of the newest day file.
func (l *Log) Latest() (model.PriceHistory, error) {
	path, err := l.LatestFile()
	if err != nil {
		return nil, err
	}
	return l.ReadFile(path)
}

// ReadFile parses one day file. Timestamps combine the date in the file
// name with the row time.
func (l *Log) ReadFile(path string) (model.PriceHistory, error) {
	m := fileRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return nil, fmt.Errorf("unexpected log file name %q", filepath.Base(path))
	}
	day, err := time.ParseInLocation("2006-01-02", m[1], l.Location)
	if err != nil {
		return nil, fmt.Errorf("parse log date: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price log: %w", err)
	}
	defer f.Close()
	return parse(f, day)
}

func parse(r io.Reader, day time.Time) (model.PriceHistory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var history model.PriceHistory
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if line == 1 {
			continue // header
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 fields, got %d", line, len(rec))
		}
		clock, err := time.Parse("15:04:05", strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse time: %w", line, err)
		}
		price, err := leadingFloat(rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse price: %w", line, err)
		}
		history = append(history, model.PriceObservation{
			Time:  day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute + time.Duration(clock.Second())*time.Second),
			Price: price,
			Aux:   strings.TrimSpace(rec[1]),
		})
	}
	return history, nil
}

// leadingFloat parses the number in a field such as "613.85 CNY/g".
func leadingFloat(field string) (float64, error) {
	fields := strings.Fields(field)
	if len(fields) == 0 {
		return 0, errors.New("empty field")
	}
	return strconv.ParseFloat(fields[0], 64)
}
