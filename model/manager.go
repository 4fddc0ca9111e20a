package model

// DefaultManagerPhoto is shown for managers and rivals without a picture.
const DefaultManagerPhoto = "/managers/question.png"

// Rival is the manager someone considers their rival. Link points at the
// rival's manager page (usually the rival's manager id).
type Rival struct {
	Name  string `toml:"name" json:"name"`
	Link  string `toml:"link" json:"link"`
	Image string `toml:"image" json:"image"`
}

// Manager is the display record of a league manager. The static league
// dataset is a list of Managers, and merging database profiles into it
// produces Managers as well.
type Manager struct {
	ManagerID        string `toml:"manager_id" json:"managerID"`
	RosterID         int    `toml:"roster_id" json:"roster,omitempty"`
	Name             string `toml:"name" json:"name"`
	Location         string `toml:"location" json:"location,omitempty"`
	Bio              string `toml:"bio" json:"bio,omitempty"`
	Photo            string `toml:"photo" json:"photo,omitempty"`
	FantasyStart     int    `toml:"fantasy_start" json:"fantasyStart,omitempty"`
	FavoriteTeam     string `toml:"favorite_team" json:"favoriteTeam,omitempty"`
	Mode             string `toml:"mode" json:"mode,omitempty"`
	Rival            *Rival `toml:"rival" json:"rival"`
	FavoritePlayer   string `toml:"favorite_player" json:"favoritePlayer,omitempty"`
	ValuePosition    string `toml:"value_position" json:"valuePosition,omitempty"`
	RookieOrVets     string `toml:"rookie_or_vets" json:"rookieOrVets,omitempty"`
	Philosophy       string `toml:"philosophy" json:"philosophy,omitempty"`
	TradingScale     int    `toml:"trading_scale" json:"tradingScale,omitempty"`
	PreferredContact string `toml:"preferred_contact" json:"preferredContact,omitempty"`
}
