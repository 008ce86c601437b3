package tmdb

import "github.com/kdimtricp/auteur/internal/models"

// MoviePage is one page of a paged movie listing.
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type personPage struct {
	Page    int               `json:"page"`
	Results []models.Director `json:"results"`
}

type genreList struct {
	Genres []models.Genre `json:"genres"`
}

type CastCredit struct {
	models.Movie
	Character string `json:"character"`
}

type CrewCredit struct {
	models.Movie
	Job        string `json:"job"`
	Department string `json:"department"`
}

// MovieCredits is a person's filmography as returned by
// /person/{id}/movie_credits.
type MovieCredits struct {
	ID   int          `json:"id"`
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// fallbackGenres is TMDb's movie genre list. Genre IDs are stable, so it
// stands in when /genre/movie/list cannot be fetched.
var fallbackGenres = []models.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

// GenreNames indexes genres by ID, using the built-in list when genres is
// empty.
func GenreNames(genres []models.Genre) map[int]string {
	if len(genres) == 0 {
		genres = fallbackGenres
	}
	names := make(map[int]string, len(genres))
	for _, genre := range genres {
		names[genre.ID] = genre.Name
	}
	return names
}
