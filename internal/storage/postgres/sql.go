package postgres

const reviewColumns = "company, platform, title, content, author, url, rating, " +
	"sentiment_score, sentiment_label, sentiment_confidence, pros, cons, " +
	"reviewer_role, review_date, scraped_at, created_at, updated_at"

const columnsPerRow = 17

const insertReviewsPrefix = "INSERT INTO sentiment_data\n  (" + reviewColumns + ")\nVALUES "

const insertChunk = 500

const selectReviews = "SELECT id, " + reviewColumns + "\nFROM sentiment_data\n"

const listByCompanySQL = selectReviews + `WHERE lower(company) = lower($1)
ORDER BY created_at DESC, id DESC
`

const listRecentSQL = selectReviews + `ORDER BY created_at DESC, id DESC
LIMIT $1
`
