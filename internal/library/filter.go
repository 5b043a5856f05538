package library

// TypeFilter narrows the displayed item set by media type.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterMovies  TypeFilter = "movie"
	FilterTVShows TypeFilter = "tvshow"
)

// WatchFilter narrows the displayed item set by watch status.
type WatchFilter string

const (
	WatchAll       WatchFilter = "all"
	WatchWatched   WatchFilter = "watched"
	WatchUnwatched WatchFilter = "unwatched"
)

func (f TypeFilter) matches(m *MediaItem) bool {
	switch f {
	case FilterMovies:
		return m.Type == TypeMovie
	case FilterTVShows:
		return m.Type == TypeTVShow
	default:
		return true
	}
}

func (f WatchFilter) matches(m *MediaItem) bool {
	switch f {
	case WatchWatched:
		return m.Watched
	case WatchUnwatched:
		return !m.Watched
	default:
		return true
	}
}
