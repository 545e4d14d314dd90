package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"review_sentiment/internal/domain"
)

func nullable(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }

func list(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

// Repo stores reviews in a Postgres (or Supabase) sentiment_data table.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// placeholders renders "($1,...,$17),($18,...)" for n rows.
func placeholders(n int) string {
	var b strings.Builder
	p := 1
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := 0; c < columnsPerRow; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(p))
			p++
		}
		b.WriteByte(')')
	}
	return b.String()
}

func (r *Repo) InsertReviews(ctx context.Context, rs []domain.StoredReview) error {
	if len(rs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(rs); start += insertChunk {
		end := min(start+insertChunk, len(rs))
		chunk := rs[start:end]

		args := make([]any, 0, len(chunk)*columnsPerRow)
		for _, rv := range chunk {
			args = append(args,
				rv.Company,
				rv.Platform,
				nullable(rv.Title),
				rv.Content,
				nullable(rv.Author),
				nullable(rv.URL),
				rv.Rating,
				rv.SentimentScore,
				string(rv.SentimentLabel),
				rv.SentimentConfidence,
				pq.Array(list(rv.Pros)),
				pq.Array(list(rv.Cons)),
				nullable(rv.ReviewerRole),
				nullable(rv.ReviewDate),
				rv.ScrapedAt.UTC(),
				rv.CreatedAt.UTC(),
				rv.UpdatedAt.UTC(),
			)
		}
		q := insertReviewsPrefix + placeholders(len(chunk))
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert sentiment_data rows %d-%d: %w", start, end, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) ListByCompany(ctx context.Context, company string) ([]domain.StoredReview, error) {
	return r.query(ctx, listByCompanySQL, company)
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.StoredReview, error) {
	return r.query(ctx, listRecentSQL, limit)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]domain.StoredReview, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.StoredReview{}
	for rows.Next() {
		var sr domain.StoredReview
		var title, author, url, role, date sql.NullString
		var label string
		var pros, cons pq.StringArray
		var scraped, created, updated time.Time
		if err := rows.Scan(
			&sr.ID,
			&sr.Company, &sr.Platform,
			&title, &sr.Content, &author, &url,
			&sr.Rating,
			&sr.SentimentScore, &label, &sr.SentimentConfidence,
			&pros, &cons,
			&role, &date,
			&scraped, &created, &updated,
		); err != nil {
			return nil, err
		}
		sr.Title, sr.Author, sr.URL = title.String, author.String, url.String
		sr.ReviewerRole, sr.ReviewDate = role.String, date.String
		sr.SentimentLabel = domain.Label(label)
		sr.Pros, sr.Cons = list(pros), list(cons)
		sr.ScrapedAt, sr.CreatedAt, sr.UpdatedAt = scraped.UTC(), created.UTC(), updated.UTC()
		out = append(out, sr)
	}
	return out, rows.Err()
}
