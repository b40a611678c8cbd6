package leaderboard

// Entry is one ranked row. Entries are derived on demand and cached briefly,
// never persisted.
type Entry struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Podiums  int    `json:"podiums"`
	Tied     bool   `json:"tied"`
}
