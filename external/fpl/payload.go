package fpl

type bootstrapPayload struct {
	Events   []eventItem   `json:"events"`
	Elements []elementItem `json:"elements"`
}

type eventItem struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	Finished  bool `json:"finished"`
}

type elementItem struct {
	ID          int    `json:"id"`
	WebName     string `json:"web_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`
}

type livePayload struct {
	Elements []liveElement `json:"elements"`
}

type liveElement struct {
	ID      int           `json:"id"`
	Stats   liveStats     `json:"stats"`
	Explain []explainItem `json:"explain"`
}

type liveStats struct {
	Minutes int `json:"minutes"`
	BPS     int `json:"bps"`
	Bonus   int `json:"bonus"`
}

type explainItem struct {
	Fixture int           `json:"fixture"`
	Stats   []explainStat `json:"stats"`
}

type explainStat struct {
	Identifier string `json:"identifier"`
	Points     int    `json:"points"`
	Value      int    `json:"value"`
}

type fixtureItem struct {
	ID                  int                `json:"id"`
	Event               *int               `json:"event"`
	TeamH               int                `json:"team_h"`
	TeamA               int                `json:"team_a"`
	KickoffTime         *string            `json:"kickoff_time"`
	Started             *bool              `json:"started"`
	Finished            bool               `json:"finished"`
	FinishedProvisional bool               `json:"finished_provisional"`
	Stats               []fixtureStatGroup `json:"stats"`
}

type fixtureStatGroup struct {
	Identifier string             `json:"identifier"`
	Away       []fixtureStatValue `json:"a"`
	Home       []fixtureStatValue `json:"h"`
}

type fixtureStatValue struct {
	Value   int `json:"value"`
	Element int `json:"element"`
}

type picksPayload struct {
	ActiveChip   *string      `json:"active_chip"`
	EntryHistory entryHistory `json:"entry_history"`
	Picks        []pickItem   `json:"picks"`
}

type entryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	OverallRank        int `json:"overall_rank"`
	EventTransfersCost int `json:"event_transfers_cost"`
}

type pickItem struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	ElementType   int  `json:"element_type"`
}

type h2hMatchesPayload struct {
	HasNext bool           `json:"has_next"`
	Page    int            `json:"page"`
	Results []h2hMatchItem `json:"results"`
}

type h2hMatchItem struct {
	Event            int    `json:"event"`
	Entry1Entry      *int   `json:"entry_1_entry"`
	Entry1Name       string `json:"entry_1_name"`
	Entry1PlayerName string `json:"entry_1_player_name"`
	Entry1Points     int    `json:"entry_1_points"`
	Entry2Entry      *int   `json:"entry_2_entry"`
	Entry2Name       string `json:"entry_2_name"`
	Entry2PlayerName string `json:"entry_2_player_name"`
	Entry2Points     int    `json:"entry_2_points"`
}

type standingsPayload struct {
	Standings standingsPage `json:"standings"`
}

type standingsPage struct {
	HasNext bool           `json:"has_next"`
	Page    int            `json:"page"`
	Results []standingItem `json:"results"`
}

type standingItem struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
	PointsFor  int    `json:"points_for"`
}
