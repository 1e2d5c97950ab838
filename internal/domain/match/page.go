package match

// Page is one page of a team's fixtures, newest first.
type Page struct {
	Matches []Match `json:"matches"`
	HasMore bool    `json:"hasMore"`
	Page    int     `json:"page"`
}
