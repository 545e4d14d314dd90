package domain

// SelectorProfile holds the ordered CSS selector lists for one platform's markup.
// Lists are ordered most specific first.
type SelectorProfile struct {
	Platform   string   `json:"platform"`
	Containers []string `json:"containers"`
	Name       []string `json:"name"`
	Rating     []string `json:"rating"`
	RatingAttr string   `json:"ratingAttr"`
	Content    []string `json:"content"`
	Title      []string `json:"title"`
	Date       []string `json:"date"`
	Role       []string `json:"role"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`

	// MinContentLength gates a record; ContentMin stops the content search early.
	MinContentLength int `json:"minContentLength"`
	ContentMin       int `json:"contentMin"`

	CookieSelectors []string `json:"cookieSelectors"`
	CookieTexts     []string `json:"cookieTexts"`
}
