package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ArunMS01/ai-sales/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id           TEXT PRIMARY KEY,
	dedup_key    TEXT NOT NULL UNIQUE,
	company      TEXT NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	job_title    TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	whatsapp_url TEXT NOT NULL DEFAULT '',
	seo_score    INTEGER,
	speed_score  INTEGER,
	pain_points  TEXT NOT NULL DEFAULT '[]',
	followers    INTEGER NOT NULL DEFAULT 0,
	stage        TEXT NOT NULL DEFAULT 'new',
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(stage);
CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
`

const leadColumns = `id, dedup_key, company, name, website, phone, email, city, source,
	category, job_title, linkedin_url, whatsapp_url, seo_score, speed_score,
	pain_points, followers, stage, created_at, updated_at`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Insert(ctx context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = lead.CreatedAt
	if lead.Stage == "" {
		lead.Stage = model.StageNew
	}

	painJSON, err := json.Marshal(lead.PainPoints)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal pain points")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.DedupKey(), lead.Company, lead.Name, lead.Website,
		lead.Phone, lead.Email, lead.City, lead.Source, lead.Category,
		lead.JobTitle, lead.LinkedInURL, lead.WhatsAppURL,
		scorePtr(lead.SEOScore), scorePtr(lead.SpeedScore),
		string(painJSON), lead.Followers, string(lead.Stage),
		lead.CreatedAt, lead.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert lead %s", lead.Company)
}

func (s *SQLiteStore) Update(ctx context.Context, lead *model.Lead) error {
	lead.UpdatedAt = time.Now().UTC()

	painJSON, err := json.Marshal(lead.PainPoints)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal pain points")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET dedup_key = ?, company = ?, name = ?, website = ?, phone = ?,
		 email = ?, city = ?, source = ?, category = ?, job_title = ?, linkedin_url = ?,
		 whatsapp_url = ?, seo_score = ?, speed_score = ?, pain_points = ?, followers = ?,
		 stage = ?, updated_at = ? WHERE id = ?`,
		lead.DedupKey(), lead.Company, lead.Name, lead.Website, lead.Phone,
		lead.Email, lead.City, lead.Source, lead.Category, lead.JobTitle,
		lead.LinkedInURL, lead.WhatsAppURL,
		scorePtr(lead.SEOScore), scorePtr(lead.SpeedScore),
		string(painJSON), lead.Followers, string(lead.Stage),
		lead.UpdatedAt, lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead %s", lead.ID)
	}
	return checkRowsAffected(res, "lead", lead.ID)
}

func (s *SQLiteStore) UpdateStage(ctx context.Context, id string, stage model.Stage) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET stage = ?, updated_at = ? WHERE id = ?`,
		string(stage), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update stage %s", id)
	}
	return checkRowsAffected(res, "lead", id)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	return scanLead(row)
}

func (s *SQLiteStore) FindByKey(ctx context.Context, key string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE dedup_key = ?`, key)
	return scanLead(row)
}

func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) (*model.Lead, error) {
	if phone == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE phone = ?
		 ORDER BY created_at DESC LIMIT 1`, phone)
	return scanLead(row)
}

func (s *SQLiteStore) List(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any

	if filter.Stage != "" {
		query += ` AND stage = ?`
		args = append(args, string(filter.Stage))
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	if filter.City != "" {
		query += ` AND city = ?`
		args = append(args, filter.City)
	}
	if filter.HasPhone {
		query += ` AND phone != ''`
	}
	if filter.MissingContact {
		query += ` AND (phone = '' OR email = '')`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) CountByStage(ctx context.Context) (map[model.Stage]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, COUNT(*) FROM leads GROUP BY stage`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count by stage")
	}
	defer rows.Close()

	counts := make(map[model.Stage]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stage count")
		}
		counts[model.Stage(stage)] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: count by stage iterate")
}

func (s *SQLiteStore) DedupKeys(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dedup_key, id FROM leads`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: dedup keys")
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dedup key")
		}
		keys[key] = id
	}
	return keys, eris.Wrap(rows.Err(), "sqlite: dedup keys iterate")
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM leads`)
	return eris.Wrap(err, "sqlite: clear leads")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

func scorePtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var dedupKey, painJSON, stage string
	var seo, speed sql.NullInt64

	err := row.Scan(&l.ID, &dedupKey, &l.Company, &l.Name, &l.Website,
		&l.Phone, &l.Email, &l.City, &l.Source, &l.Category,
		&l.JobTitle, &l.LinkedInURL, &l.WhatsAppURL,
		&seo, &speed, &painJSON, &l.Followers, &stage,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}

	l.Stage = model.Stage(stage)
	if seo.Valid {
		v := int(seo.Int64)
		l.SEOScore = &v
	}
	if speed.Valid {
		v := int(speed.Int64)
		l.SpeedScore = &v
	}
	if err := json.Unmarshal([]byte(painJSON), &l.PainPoints); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal pain points")
	}
	return &l, nil
}
