package entities

// Achievement is an unlockable flag derived from aggregate catalog state.
// Achievements are recomputed in full on each request and never persisted.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Icon        string `json:"icon"`
}

// Statistics is a read-only aggregate computed on demand from the current
// book list.
type Statistics struct {
	TotalBooks       int            `json:"total_books"`
	CompletedBooks   int            `json:"completed_books"`
	ReadingBooks     int            `json:"reading_books"`
	AverageProgress  float64        `json:"average_progress"`
	MonthlyCompleted int            `json:"monthly_completed"`
	ReadingStreak    int            `json:"reading_streak"`
	TotalPages       int            `json:"total_pages"`
	FavoriteGenre    string         `json:"favorite_genre"`
	Genres           map[string]int `json:"genres,omitempty"`
}
