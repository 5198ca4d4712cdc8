// Package store records every dashboard cycle to CSV with daily file
// rotation. Files are written for external inspection only; the dashboard
// never loads them back.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/risk"
	"github.com/luki/hazard/internal/sensor"
)

const (
	timeLayout = "2006-01-02T15:04:05"
	fileLayout = "2006-01-02"
)

var header = []string{"time", "cycle", "trigger", "temperature", "gas", "smoke", "motion", "score", "level", "alert_id"}

// DiskStore handles CSV storage of cycle snapshots.
// Files are stored as <dir>/YYYY-MM-DD.csv with the format:
//
//	time,cycle,trigger,temperature,gas,smoke,motion,score,level,alert_id
type DiskStore struct {
	dir     string
	current *os.File
	writer  *csv.Writer
	curDate string
	log     *zap.Logger
}

// StoredCycle is a single row from a CSV file.
type StoredCycle struct {
	Time    time.Time
	Cycle   uint64
	Trigger string
	Reading sensor.Reading
	Score   risk.Score
	Level   string
	AlertID string
}

// New creates a disk store in dir, creating the directory if needed.
func New(dir string, log *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DiskStore{dir: dir, log: log.Named("store")}, nil
}

// Dir returns the directory the store writes to.
func (d *DiskStore) Dir() string { return d.dir }

// Render implements dashboard.Renderer. Write failures are logged and
// never stop the dashboard.
func (d *DiskStore) Render(s dashboard.Snapshot) {
	if err := d.Write(s); err != nil {
		d.log.Error("record cycle", zap.Uint64("cycle", s.Cycle), zap.Error(err))
	}
}

// Write appends one snapshot to the CSV file of its day.
func (d *DiskStore) Write(s dashboard.Snapshot) error {
	dateStr := s.Time.Format(fileLayout)

	if d.curDate != dateStr || d.current == nil {
		d.Close()
		path := filepath.Join(d.dir, dateStr+".csv")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		d.current = f
		d.writer = csv.NewWriter(f)
		d.curDate = dateStr

		info, err := f.Stat()
		if err == nil && info.Size() == 0 {
			d.writer.Write(header)
		}
	}

	alertID := ""
	if s.Alert != nil {
		alertID = s.Alert.ID.String()
	}
	d.writer.Write([]string{
		s.Time.Format(timeLayout),
		strconv.FormatUint(s.Cycle, 10),
		s.Trigger.String(),
		strconv.Itoa(s.Reading.Temperature),
		strconv.Itoa(s.Reading.GasLevel),
		strconv.FormatBool(s.Reading.Smoke),
		strconv.FormatBool(s.Reading.Motion),
		strconv.Itoa(int(s.Score)),
		s.Level.String(),
		alertID,
	})
	d.writer.Flush()
	return d.writer.Error()
}

// Close flushes and closes the current file.
func (d *DiskStore) Close() {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.current != nil {
		d.current.Close()
		d.current = nil
	}
}

// ListDays returns the dates that have a recording in dir (newest first).
// Files not named YYYY-MM-DD.csv are ignored.
func ListDays(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var days []string
	for i := len(entries) - 1; i >= 0; i-- {
		day, ok := strings.CutSuffix(entries[i].Name(), ".csv")
		if !ok {
			continue
		}
		if _, err := time.Parse(fileLayout, day); err != nil {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

// LoadFile reads all cycles from a CSV file. Malformed rows are skipped.
func LoadFile(path string) ([]StoredCycle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var cycles []StoredCycle
	for i, row := range records {
		if i == 0 && len(row) > 0 && row[0] == "time" {
			continue
		}
		if len(row) < len(header) {
			continue
		}

		t, err := time.ParseInLocation(timeLayout, row[0], time.Local)
		if err != nil {
			continue
		}
		cycle, _ := strconv.ParseUint(row[1], 10, 64)
		temp, _ := strconv.Atoi(row[3])
		gas, _ := strconv.Atoi(row[4])
		smoke, _ := strconv.ParseBool(row[5])
		motion, _ := strconv.ParseBool(row[6])
		score, _ := strconv.Atoi(row[7])

		cycles = append(cycles, StoredCycle{
			Time:    t,
			Cycle:   cycle,
			Trigger: row[2],
			Reading: sensor.Reading{Temperature: temp, GasLevel: gas, Smoke: smoke, Motion: motion},
			Score:   risk.Score(score),
			Level:   row[8],
			AlertID: row[9],
		})
	}

	return cycles, nil
}

// DaySummary aggregates one recorded day.
type DaySummary struct {
	Cycles int
	Alerts int
	Peak   risk.Score
	Avg    float64
	Levels map[string]int
}

// Summarize folds recorded cycles into a DaySummary.
func Summarize(cycles []StoredCycle) DaySummary {
	s := DaySummary{Levels: make(map[string]int)}
	var sum int
	for _, c := range cycles {
		s.Cycles++
		sum += int(c.Score)
		if c.Score > s.Peak {
			s.Peak = c.Score
		}
		if c.AlertID != "" {
			s.Alerts++
		}
		s.Levels[c.Level]++
	}
	if s.Cycles > 0 {
		s.Avg = float64(sum) / float64(s.Cycles)
	}
	return s
}
