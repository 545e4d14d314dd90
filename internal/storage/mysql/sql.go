package mysql

const reviewColumns = "company, platform, title, content, author, url, rating, " +
	"sentiment_score, sentiment_label, sentiment_confidence, pros, cons, " +
	"reviewer_role, review_date, scraped_at, created_at, updated_at"

const insertReviewsPrefix = "INSERT INTO sentiment_data\n  (" + reviewColumns + ")\nVALUES "

const insertRowPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

// rows per INSERT statement; 17 params each stays far below the 65535 placeholder cap
const insertChunk = 500

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectReviews = "SELECT id, " + reviewColumns + "\nFROM sentiment_data\n"

const listByCompanySQL = selectReviews + `WHERE company = ?
ORDER BY created_at DESC, id DESC
`

const listRecentSQL = selectReviews + `ORDER BY created_at DESC, id DESC
LIMIT ?
`
