package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/stickynotes/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const noteColumns = `id, gallery, text, category, color, emoji, image_name, image_type, image_data, reminder_at, travel_date, budget, created_at`

// SQLiteRepository scopes a shared notes table to one gallery.
type SQLiteRepository struct {
	db      *sql.DB
	gallery model.GalleryKind
}

func NewSQLiteRepository(db *sql.DB, gallery model.GalleryKind) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if !gallery.IsValid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidGallery, gallery)
	}
	return &SQLiteRepository{db: db, gallery: gallery}, nil
}

// OpenSQLite opens dsn, applies migrations and returns the handle the
// per-gallery repositories share. ":memory:" keeps notes volatile; the
// pool is pinned to one connection so every caller sees the same database.
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	rec := toRecord(in)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Gallery, rec.Text, rec.Category, rec.Color, rec.Emoji,
		rec.ImageName, rec.ImageType, rec.ImageData,
		nullTime(rec.ReminderAt), nullTime(rec.TravelDate), nullFloat(rec.Budget), mustTime(rec.CreatedAt),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateID
	}
	return err
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes WHERE id = ? AND gallery = ?`, id, string(r.gallery))
	rec, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, ErrNotFound
		}
		return model.Note{}, err
	}
	return rec.toNote(), nil
}

func (r *SQLiteRepository) Update(ctx context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	rec := toRecord(in)
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET text = ?, category = ?, color = ?, emoji = ?, image_name = ?, image_type = ?, image_data = ?,
			reminder_at = ?, travel_date = ?, budget = ?
		WHERE id = ? AND gallery = ?`,
		rec.Text, rec.Category, rec.Color, rec.Emoji, rec.ImageName, rec.ImageType, rec.ImageData,
		nullTime(rec.ReminderAt), nullTime(rec.TravelDate), nullFloat(rec.Budget),
		rec.ID, rec.Gallery,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND gallery = ?`, id, string(r.gallery))
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes WHERE gallery = ? ORDER BY seq ASC`, string(r.gallery))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Note, 0)
	for rows.Next() {
		rec, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, rec.toNote())
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE gallery = ?`, string(r.gallery))
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (noteRecord, error) {
	var out noteRecord
	var reminder sql.NullString
	var travel sql.NullString
	var budget sql.NullFloat64
	var created string
	if err := s.Scan(&out.ID, &out.Gallery, &out.Text, &out.Category, &out.Color, &out.Emoji,
		&out.ImageName, &out.ImageType, &out.ImageData, &reminder, &travel, &budget, &created); err != nil {
		return noteRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return noteRecord{}, err
	}
	reminderAt, err := parseNullableTime(reminder)
	if err != nil {
		return noteRecord{}, err
	}
	travelDate, err := parseNullableTime(travel)
	if err != nil {
		return noteRecord{}, err
	}
	out.CreatedAt = createdAt
	out.ReminderAt = reminderAt
	out.TravelDate = travelDate
	if budget.Valid {
		v := budget.Float64
		out.Budget = &v
	}
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
