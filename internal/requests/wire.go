package requests

// Ombi payload shapes. Only the fields streamgap reads are declared.

type baseWire struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	PosterPath       string `json:"posterPath"`
	ReleaseDate      *Date  `json:"releaseDate"`
	Status           string `json:"status"`
	Approved         bool   `json:"approved"`
	Available        bool   `json:"available"`
	Denied           bool   `json:"denied"`
	RequestedDate    *Date  `json:"requestedDate"`
	RequestedByAlias string `json:"requestedByAlias"`
}

type movieWire struct {
	baseWire
	TheMovieDBID       int   `json:"theMovieDbId"`
	DigitalReleaseDate *Date `json:"digitalReleaseDate"`
}

type tvWire struct {
	baseWire
	TVDBID             int         `json:"tvDbId"`
	ExternalProviderID int         `json:"externalProviderId"`
	TotalSeasons       int         `json:"totalSeasons"`
	ChildRequests      []childWire `json:"childRequests"`
}

type childWire struct {
	ID             int          `json:"id"`
	SeasonRequests []seasonWire `json:"seasonRequests"`
}

type seasonWire struct {
	SeasonNumber    int           `json:"seasonNumber"`
	SeasonAvailable bool          `json:"seasonAvailable"`
	Episodes        []episodeWire `json:"episodes"`
}

type episodeWire struct {
	EpisodeNumber int   `json:"episodeNumber"`
	Available     bool  `json:"available"`
	AirDate       *Date `json:"airDate"`
}

func (b baseWire) request(kind Kind) Request {
	return Request{
		Kind:              kind,
		ID:                b.ID,
		Title:             b.Title,
		ReleaseDate:       b.ReleaseDate,
		Available:         b.Available,
		Approved:          b.Approved,
		Denied:            b.Denied,
		Status:            b.Status,
		RequestedDate:     b.RequestedDate,
		RequestedByAlias:  b.RequestedByAlias,
		PosterPath:        b.PosterPath,
		ResolvedProviders: []string{},
	}
}

func (w movieWire) toRequest() Request {
	r := w.request(KindMovie)
	r.Movie = &Movie{TheMovieDBID: w.TheMovieDBID, DigitalReleaseDate: w.DigitalReleaseDate}
	return r
}

func (w tvWire) toRequest() Request {
	r := w.request(KindTV)
	tv := &TV{
		TVDBID:             w.TVDBID,
		ExternalProviderID: w.ExternalProviderID,
		TotalSeasons:       w.TotalSeasons,
		ChildRequests:      make([]ChildRequest, 0, len(w.ChildRequests)),
	}
	for _, child := range w.ChildRequests {
		c := ChildRequest{ID: child.ID, SeasonRequests: make([]SeasonRequest, 0, len(child.SeasonRequests))}
		for _, season := range child.SeasonRequests {
			s := SeasonRequest{
				SeasonNumber:    season.SeasonNumber,
				SeasonAvailable: season.SeasonAvailable,
				Episodes:        make([]Episode, 0, len(season.Episodes)),
			}
			for _, episode := range season.Episodes {
				s.Episodes = append(s.Episodes, Episode{
					EpisodeNumber: episode.EpisodeNumber,
					Available:     episode.Available,
					AirDate:       episode.AirDate,
				})
			}
			c.SeasonRequests = append(c.SeasonRequests, s)
		}
		tv.ChildRequests = append(tv.ChildRequests, c)
	}
	r.TV = tv
	return r
}
