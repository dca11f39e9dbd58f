// Copyright 2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package archive keeps generated runs in a SQLite database so they can be
// listed and exported later.
package archive

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/result"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	event        TEXT NOT NULL,
	model        TEXT NOT NULL,
	seed         TEXT NOT NULL,
	units        TEXT NOT NULL,
	magnitude    REAL NOT NULL,
	distance     REAL NOT NULL,
	vs30         REAL NOT NULL,
	orientation  REAL NOT NULL,
	num_spectra  INTEGER NOT NULL,
	num_sims     INTEGER NOT NULL,
	num_events   INTEGER NOT NULL,
	elapsed_ms   INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	run_id        TEXT NOT NULL,
	event_index   INTEGER NOT NULL,
	name          TEXT NOT NULL,
	type          TEXT,
	description   TEXT,
	pattern_json  TEXT NOT NULL,
	metadata_json TEXT,
	PRIMARY KEY (run_id, event_index),
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS time_series (
	run_id       TEXT NOT NULL,
	event_index  INTEGER NOT NULL,
	series_index INTEGER NOT NULL,
	name         TEXT NOT NULL,
	dt           REAL NOT NULL,
	samples      BLOB NOT NULL,
	PRIMARY KEY (run_id, event_index, series_index),
	FOREIGN KEY (run_id, event_index) REFERENCES events(run_id, event_index) ON DELETE CASCADE
);
`

// created_at is fixed width so text order is time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRecord is one row of the runs table.
type RunRecord struct {
	RunID       string
	Event       string
	Model       string
	Seed        uint64
	Units       string
	Magnitude   float64
	DistanceKm  float64
	Vs30        float64
	Orientation float64
	NumSpectra  int
	NumSims     int
	NumEvents   int
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// RecordFromRun fills a RunRecord from the stats of a finished run.
func RecordFromRun(run *vlachos.Run) RunRecord {
	sc := run.Stats.Scenario
	return RunRecord{
		Event:       run.Stats.Event,
		Model:       vlachos.ModelName,
		Seed:        run.Stats.Seed,
		Units:       run.Stats.Units.String(),
		Magnitude:   sc.Magnitude,
		DistanceKm:  sc.DistanceKm,
		Vs30:        sc.Vs30,
		Orientation: sc.OrientationDeg,
		NumSpectra:  sc.NumSpectra,
		NumSims:     sc.NumSims,
		NumEvents:   len(run.Result.Events),
		Elapsed:     run.Stats.Elapsed,
		CreatedAt:   run.Stats.Started,
	}
}

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the archive at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// connection pragmas must hold for every statement
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the run and its result in one transaction and returns the
// run id. An empty rec.RunID gets a fresh UUID.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord, res *result.Result) (string, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.NumEvents = len(res.Events)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, event, model, seed, units, magnitude, distance, vs30, orientation,
			num_spectra, num_sims, num_events, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Event, rec.Model, strconv.FormatUint(rec.Seed, 10), rec.Units,
		rec.Magnitude, rec.DistanceKm, rec.Vs30, rec.Orientation,
		rec.NumSpectra, rec.NumSims, rec.NumEvents, rec.Elapsed.Milliseconds(),
		rec.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, ev := range res.Events {
		patternJSON, err := json.Marshal(ev.Pattern)
		if err != nil {
			return "", fmt.Errorf("marshal pattern: %w", err)
		}
		var metadataJSON any
		if ev.Metadata != nil {
			b, err := json.Marshal(ev.Metadata)
			if err != nil {
				return "", fmt.Errorf("marshal metadata: %w", err)
			}
			metadataJSON = string(b)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (run_id, event_index, name, type, description, pattern_json, metadata_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, i, ev.Name, ev.Type, ev.Description, string(patternJSON), metadataJSON,
		)
		if err != nil {
			return "", fmt.Errorf("insert event %s: %w", ev.Name, err)
		}
		for j, ts := range ev.TimeSeries {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO time_series (run_id, event_index, series_index, name, dt, samples)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				rec.RunID, i, j, ts.Name, ts.Dt, encodeSamples(ts.Data),
			)
			if err != nil {
				return "", fmt.Errorf("insert time series %s: %w", ts.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return rec.RunID, nil
}

// Emit archives a finished run.
func (s *Store) Emit(ctx context.Context, run *vlachos.Run) error {
	_, err := s.SaveRun(ctx, RecordFromRun(run), run.Result)
	return err
}

// ListRuns returns every archived run, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, event, model, seed, units, magnitude, distance, vs30, orientation,
			num_spectra, num_sims, num_events, elapsed_ms, created_at
		 FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			rec       RunRecord
			seed      string
			elapsedMs int64
			createdAt string
		)
		if err := rows.Scan(&rec.RunID, &rec.Event, &rec.Model, &seed, &rec.Units,
			&rec.Magnitude, &rec.DistanceKm, &rec.Vs30, &rec.Orientation,
			&rec.NumSpectra, &rec.NumSims, &rec.NumEvents, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("parse seed of run %s: %w", rec.RunID, err)
		}
		if rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of run %s: %w", rec.RunID, err)
		}
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// LoadResult rebuilds the result document of an archived run.
func (s *Store) LoadResult(ctx context.Context, runID string) (*result.Result, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE run_id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", brokenwing.ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	res := &result.Result{Events: []result.Event{}}
	if err := s.loadEvents(ctx, runID, res); err != nil {
		return nil, err
	}
	if err := s.loadTimeSeries(ctx, runID, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) loadEvents(ctx context.Context, runID string, res *result.Result) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, description, pattern_json, metadata_json
		 FROM events WHERE run_id = ? ORDER BY event_index`, runID)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev             result.Event
			evType, evDesc sql.NullString
			patternJSON    string
			metadataJSON   sql.NullString
		)
		if err := rows.Scan(&ev.Name, &evType, &evDesc, &patternJSON, &metadataJSON); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		ev.Type = evType.String
		ev.Description = evDesc.String
		if err := json.Unmarshal([]byte(patternJSON), &ev.Pattern); err != nil {
			return fmt.Errorf("unmarshal pattern of %s: %w", ev.Name, err)
		}
		if metadataJSON.Valid {
			ev.Metadata = &result.Metadata{}
			if err := json.Unmarshal([]byte(metadataJSON.String), ev.Metadata); err != nil {
				return fmt.Errorf("unmarshal metadata of %s: %w", ev.Name, err)
			}
		}
		res.Events = append(res.Events, ev)
	}
	return rows.Err()
}

func (s *Store) loadTimeSeries(ctx context.Context, runID string, res *result.Result) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_index, name, dt, samples
		 FROM time_series WHERE run_id = ? ORDER BY event_index, series_index`, runID)
	if err != nil {
		return fmt.Errorf("query time series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx     int
			ts      result.TimeSeries
			samples []byte
		)
		if err := rows.Scan(&idx, &ts.Name, &ts.Dt, &samples); err != nil {
			return fmt.Errorf("scan time series: %w", err)
		}
		if idx < 0 || idx >= len(res.Events) {
			return fmt.Errorf("time series %s refers to missing event %d", ts.Name, idx)
		}
		ts.Data = decodeSamples(samples)
		res.Events[idx].TimeSeries = append(res.Events[idx].TimeSeries, ts)
	}
	return rows.Err()
}

func encodeSamples(v []float64) []byte {
	buf := make([]byte, 8*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func decodeSamples(b []byte) []float64 {
	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return v
}
