package library

func ratingOf(r int) *int { return &r }

// SeedData returns the sample library used on first load, before any
// state has been persisted.
func SeedData() Snapshot {
	return Snapshot{
		Items: []*MediaItem{
			{
				ID:     "1",
				Title:  "Inception",
				Type:   TypeMovie,
				Year:   2010,
				Poster: "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_.jpg",
				Rating: ratingOf(5), Watched: true,
				Description:  "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
				Genres:       []string{"Action", "Sci-Fi", "Thriller"},
				Director:     "Christopher Nolan",
				RelatedMedia: []string{"2", "3"},
			},
			{
				ID:     "2",
				Title:  "Interstellar",
				Type:   TypeMovie,
				Year:   2014,
				Poster: "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_.jpg",
				Rating: ratingOf(5), Watched: true,
				Description:  "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
				Genres:       []string{"Adventure", "Drama", "Sci-Fi"},
				Director:     "Christopher Nolan",
				RelatedMedia: []string{"1", "3"},
			},
			{
				ID:     "3",
				Title:  "The Dark Knight",
				Type:   TypeMovie,
				Year:   2008,
				Poster: "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_.jpg",
				Rating: ratingOf(5), Watched: true,
				Description:  "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
				Genres:       []string{"Action", "Crime", "Drama"},
				Director:     "Christopher Nolan",
				RelatedMedia: []string{"1", "2"},
			},
			{
				ID:     "4",
				Title:  "Breaking Bad",
				Type:   TypeTVShow,
				Year:   2008,
				Poster: "https://m.media-amazon.com/images/M/MV5BYmQ4YWMxYjUtNjZmYi00MDQ1LWFjMjMtNjA5ZDdiYjdiODU5XkEyXkFqcGdeQXVyMTMzNDExODE5._V1_.jpg",
				Rating: ratingOf(5), Watched: true,
				Description:  "A high school chemistry teacher diagnosed with inoperable lung cancer turns to manufacturing and selling methamphetamine in order to secure his family's future.",
				Genres:       []string{"Crime", "Drama", "Thriller"},
				RelatedMedia: []string{"5"},
			},
			{
				ID:      "5",
				Title:   "Better Call Saul",
				Type:    TypeTVShow,
				Year:    2015,
				Poster:  "https://m.media-amazon.com/images/M/MV5BZDA4YmE0OTYtMmRmNS00Mzk2LTlhM2MtNjk4NzBjZGE1MmIyXkEyXkFqcGdeQXVyMTMzNDExODE5._V1_.jpg",
				Watched: false,
				Description:  "The trials and tribulations of criminal lawyer Jimmy McGill in the years leading up to his fateful run-in with Walter White and Jesse Pinkman.",
				Genres:       []string{"Crime", "Drama"},
				RelatedMedia: []string{"4"},
			},
			{
				ID:      "6",
				Title:   "Stranger Things",
				Type:    TypeTVShow,
				Year:    2016,
				Poster:  "https://m.media-amazon.com/images/M/MV5BMDZkYmVhNjMtNWU4MC00MDQxLWE3MjYtZGMzZWI1ZjhlOWJmXkEyXkFqcGdeQXVyMTkxNjUyNQ@@._V1_.jpg",
				Watched: false,
				Description:  "When a young boy disappears, his mother, a police chief and his friends must confront terrifying supernatural forces in order to get him back.",
				Genres:       []string{"Drama", "Fantasy", "Horror"},
				RelatedMedia: []string{},
			},
		},
		Collections: []*Collection{
			{
				ID:       "c1",
				Name:     "Christopher Nolan",
				MediaIDs: []string{"1", "2", "3"},
			},
		},
	}
}
