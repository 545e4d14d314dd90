package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"review_sentiment/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valList(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// InsertReviews writes the batch in one transaction.
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

		values := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*17)
		for _, rv := range chunk {
			values = append(values, insertRowPlaceholders)
			args = append(args,
				rv.Company,
				rv.Platform,
				valStr(rv.Title),
				rv.Content,
				valStr(rv.Author),
				valStr(rv.URL),
				rv.Rating,
				rv.SentimentScore,
				string(rv.SentimentLabel),
				rv.SentimentConfidence,
				valList(rv.Pros),
				valList(rv.Cons),
				valStr(rv.ReviewerRole),
				valStr(rv.ReviewDate),
				rv.ScrapedAt.UTC(),
				rv.CreatedAt.UTC(),
				rv.UpdatedAt.UTC(),
			)
		}
		sqlStr := insertReviewsPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
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
		var prosJSON, consJSON []byte
		var scraped, created, updated time.Time
		if err := rows.Scan(
			&sr.ID,
			&sr.Company, &sr.Platform,
			&title, &sr.Content, &author, &url,
			&sr.Rating,
			&sr.SentimentScore, &label, &sr.SentimentConfidence,
			&prosJSON, &consJSON,
			&role, &date,
			&scraped, &created, &updated,
		); err != nil {
			return nil, err
		}
		sr.Title, sr.Author, sr.URL = title.String, author.String, url.String
		sr.ReviewerRole, sr.ReviewDate = role.String, date.String
		sr.SentimentLabel = domain.Label(label)
		sr.ScrapedAt, sr.CreatedAt, sr.UpdatedAt = scraped.UTC(), created.UTC(), updated.UTC()
		sr.Pros, sr.Cons = []string{}, []string{}
		_ = json.Unmarshal(prosJSON, &sr.Pros)
		_ = json.Unmarshal(consJSON, &sr.Cons)
		out = append(out, sr)
	}
	return out, rows.Err()
}
