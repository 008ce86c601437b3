package models

type Director struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography,omitempty"`
	Birthday           string  `json:"birthday,omitempty"`
	Deathday           string  `json:"deathday,omitempty"`
	PlaceOfBirth       string  `json:"place_of_birth,omitempty"`
	ProfilePath        *string `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department,omitempty"`
	Popularity         float64 `json:"popularity,omitempty"`
}

type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DirectorStats struct {
	FilmCount     int            `json:"film_count"`
	AverageRating float64        `json:"average_rating"`
	TotalVotes    int            `json:"total_votes"`
	FirstYear     int            `json:"first_year,omitempty"`
	LastYear      int            `json:"last_year,omitempty"`
	TopGenres     []GenreCount   `json:"top_genres"`
	BestFilm      *Movie         `json:"best_film,omitempty"`
	Decades       map[string]int `json:"decades"`
}

// CareerSpan is the number of years between the first and last dated film.
func (s DirectorStats) CareerSpan() int {
	if s.FirstYear == 0 || s.LastYear == 0 {
		return 0
	}
	return s.LastYear - s.FirstYear
}

type DirectorProfile struct {
	Director Director      `json:"director"`
	Films    []Movie       `json:"films"`
	Stats    DirectorStats `json:"stats"`
}
