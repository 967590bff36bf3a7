package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"greenhouse_control/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

const (
	insertReadingSQL = `
		INSERT INTO readings (taken_at, soil_humidity, ambient_temperature, ambient_humidity, heat_index, irrigation_on, ventilation_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	selectReadingSQL = `SELECT id, taken_at, soil_humidity, ambient_temperature, ambient_humidity, heat_index, irrigation_on, ventilation_on FROM readings`
)

// Save appends one sample; a zero TakenAt becomes now.
func (r *ReadingSQLite) Save(ctx context.Context, rd models.Reading) error {
	ts := rd.TakenAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		ts,
		rd.SoilHumidity,
		rd.AmbientTemperature,
		rd.AmbientHumidity,
		rd.HeatIndex,
		rd.IrrigationOn,
		rd.VentilationOn,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// List returns samples in [from, to], oldest first. limit <= 0 means no limit.
func (r *ReadingSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "taken_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "taken_at <= ?")
		args = append(args, to.UTC())
	}

	q := selectReadingSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY taken_at ASC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer rows.Close()

	var out []models.Reading
	for rows.Next() {
		var rd models.Reading
		if err := rows.Scan(
			&rd.ID,
			&rd.TakenAt,
			&rd.SoilHumidity,
			&rd.AmbientTemperature,
			&rd.AmbientHumidity,
			&rd.HeatIndex,
			&rd.IrrigationOn,
			&rd.VentilationOn,
		); err != nil {
			return nil, err
		}
		rd.TakenAt = rd.TakenAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
