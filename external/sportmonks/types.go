package sportmonks

import (
	"bytes"

	sonic "github.com/bytedance/sonic"
)

type Pagination struct {
	Count       int     `json:"count"`
	PerPage     int     `json:"per_page"`
	CurrentPage int     `json:"current_page"`
	NextPage    *string `json:"next_page"`
	HasMore     bool    `json:"has_more"`
}

type fixturesEnvelope struct {
	Data       []fixtureItem `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type fixtureItem struct {
	ID           int64                `json:"id"`
	LeagueID     int64                `json:"league_id"`
	StateID      int64                `json:"state_id"`
	StartingAt   string               `json:"starting_at"`
	Minute       *int                 `json:"minute"`
	Participants []participantItem    `json:"participants"`
	Scores       []scoreItem          `json:"scores"`
	Periods      []periodItem         `json:"periods"`
	Venue        relation[venueItem]  `json:"venue"`
	League       relation[leagueItem] `json:"league"`
}

type participantItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	ShortCode string          `json:"short_code"`
	ImagePath string          `json:"image_path"`
	Meta      participantMeta `json:"meta"`
}

type participantMeta struct {
	Location string `json:"location"`
}

type scoreItem struct {
	Description string `json:"description"`
	Score       struct {
		Goals       *int   `json:"goals"`
		Participant string `json:"participant"`
	} `json:"score"`
}

type periodItem struct {
	Ticking   bool  `json:"ticking"`
	Started   int64 `json:"started"`
	SortOrder int   `json:"sort_order"`
}

type venueItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

type leagueItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	ImagePath string `json:"image_path"`
	CountryID int64  `json:"country_id"`
}

// relation decodes an include that arrives either bare or wrapped in {"data": ...}.
type relation[T any] struct {
	Data T
	Set  bool
}

func (r *relation[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Set = false
		return nil
	}

	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil {
		r.Data = *wrapped.Data
		r.Set = true
		return nil
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	r.Data = direct
	r.Set = true
	return nil
}
