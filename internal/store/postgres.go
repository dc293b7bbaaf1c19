package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/db"
	"github.com/ArunMS01/ai-sales/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need
// direct query access (e.g., bulk seed imports).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
	pain_points  JSONB NOT NULL DEFAULT '[]',
	followers    INTEGER NOT NULL DEFAULT 0,
	stage        TEXT NOT NULL DEFAULT 'new',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(stage);
CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, lead *model.Lead) error {
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
		return eris.Wrap(err, "postgres: marshal pain points")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		lead.ID, lead.DedupKey(), lead.Company, lead.Name, lead.Website,
		lead.Phone, lead.Email, lead.City, lead.Source, lead.Category,
		lead.JobTitle, lead.LinkedInURL, lead.WhatsAppURL,
		lead.SEOScore, lead.SpeedScore,
		painJSON, lead.Followers, string(lead.Stage),
		lead.CreatedAt, lead.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: insert lead %s", lead.Company)
}

func (s *PostgresStore) Update(ctx context.Context, lead *model.Lead) error {
	lead.UpdatedAt = time.Now().UTC()

	painJSON, err := json.Marshal(lead.PainPoints)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal pain points")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET dedup_key = $1, company = $2, name = $3, website = $4, phone = $5,
		 email = $6, city = $7, source = $8, category = $9, job_title = $10, linkedin_url = $11,
		 whatsapp_url = $12, seo_score = $13, speed_score = $14, pain_points = $15, followers = $16,
		 stage = $17, updated_at = $18 WHERE id = $19`,
		lead.DedupKey(), lead.Company, lead.Name, lead.Website, lead.Phone,
		lead.Email, lead.City, lead.Source, lead.Category, lead.JobTitle,
		lead.LinkedInURL, lead.WhatsAppURL, lead.SEOScore, lead.SpeedScore,
		painJSON, lead.Followers, string(lead.Stage), lead.UpdatedAt, lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead %s", lead.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", lead.ID)
	}
	return nil
}

func (s *PostgresStore) UpdateStage(ctx context.Context, id string, stage model.Stage) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET stage = $1, updated_at = $2 WHERE id = $3`,
		string(stage), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update stage %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanPgLead(row)
}

func (s *PostgresStore) FindByKey(ctx context.Context, key string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE dedup_key = $1`, key)
	return scanPgLead(row)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*model.Lead, error) {
	if phone == "" {
		return nil, nil
	}
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE phone = $1
		 ORDER BY created_at DESC LIMIT 1`, phone)
	return scanPgLead(row)
}

func (s *PostgresStore) List(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Stage != "" {
		query += fmt.Sprintf(` AND stage = $%d`, argIdx)
		args = append(args, string(filter.Stage))
		argIdx++
	}
	if filter.Source != "" {
		query += fmt.Sprintf(` AND source = $%d`, argIdx)
		args = append(args, filter.Source)
		argIdx++
	}
	if filter.City != "" {
		query += fmt.Sprintf(` AND city = $%d`, argIdx)
		args = append(args, filter.City)
		argIdx++
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
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanPgLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) CountByStage(ctx context.Context) (map[model.Stage]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT stage, COUNT(*) FROM leads GROUP BY stage`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count by stage")
	}
	defer rows.Close()

	counts := make(map[model.Stage]int)
	for rows.Next() {
		var stage string
		var n int64
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stage count")
		}
		counts[model.Stage(stage)] = int(n)
	}
	return counts, eris.Wrap(rows.Err(), "postgres: count by stage iterate")
}

func (s *PostgresStore) DedupKeys(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT dedup_key, id FROM leads`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: dedup keys")
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dedup key")
		}
		keys[key] = id
	}
	return keys, eris.Wrap(rows.Err(), "postgres: dedup keys iterate")
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM leads`)
	return eris.Wrap(err, "postgres: clear leads")
}

func scanPgLead(row pgx.Row) (*model.Lead, error) {
	var l model.Lead
	var dedupKey, stage string
	var painJSON []byte
	var seo, speed *int

	err := row.Scan(&l.ID, &dedupKey, &l.Company, &l.Name, &l.Website,
		&l.Phone, &l.Email, &l.City, &l.Source, &l.Category,
		&l.JobTitle, &l.LinkedInURL, &l.WhatsAppURL,
		&seo, &speed, &painJSON, &l.Followers, &stage,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan lead")
	}

	l.Stage = model.Stage(stage)
	l.SEOScore = seo
	l.SpeedScore = speed
	if err := json.Unmarshal(painJSON, &l.PainPoints); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal pain points")
	}
	return &l, nil
}
