package ktxstats

// Match is a stats document of the current revision. It is a superset of
// LegacyMatch: it adds the match tag, optional CTF and bot blocks, the axe
// and nailgun weapon slots, splash accounting on launchers and powerups.
type Match struct {
	Version    int       `json:"version"`
	Date       Timestamp `json:"date"`
	Map        string    `json:"map"`
	Hostname   string    `json:"hostname"`
	IP         string    `json:"ip"`
	Port       int       `json:"port"`
	MatchTag   string    `json:"matchtag"`
	Mode       string    `json:"mode"`
	TimeLimit  int       `json:"tl"`
	Deathmatch int       `json:"dm"`
	Teamplay   int       `json:"tp"`
	Duration   int       `json:"duration"`
	Demo       string    `json:"demo"`
	Teams      []string  `json:"teams"`
	Players    []Player  `json:"players"`
}

// Player is one player entry of a Match.
type Player struct {
	TopColor    int       `json:"top-color"`
	BottomColor int       `json:"bottom-color"`
	Ping        int       `json:"ping"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Team        string    `json:"team"`
	Stats       FragStats `json:"stats"`
	Dmg         Damage    `json:"dmg"`
	XferRL      int       `json:"xfer-rl"`
	XferLG      int       `json:"xfer-lg"`
	Spree       Spree     `json:"spree"`
	Control     float64   `json:"control"`
	Speed       Speed     `json:"speed"`
	Weapons     Weapons   `json:"weapons"`
	Items       Items     `json:"items"`
	// CTF is nil unless the match was capture the flag.
	CTF *CTF `json:"ctf"`
	// Bot is nil for human players.
	Bot *Bot `json:"bot"`
}

type Weapons struct {
	Axe Weapon         `json:"axe"`
	SG  Weapon         `json:"sg"`
	NG  Weapon         `json:"ng"`
	SSG Weapon         `json:"ssg"`
	SNG Weapon         `json:"sng"`
	GL  LauncherWeapon `json:"gl"`
	RL  LauncherWeapon `json:"rl"`
	LG  Weapon         `json:"lg"`
}

type Items struct {
	Health15  Health  `json:"health_15"`
	Health25  Health  `json:"health_25"`
	Health100 Health  `json:"health_100"`
	GA        Armor   `json:"ga"`
	YA        Armor   `json:"ya"`
	RA        Armor   `json:"ra"`
	Quad      Powerup `json:"q"`
	Ring      Powerup `json:"r"`
	Pent      Powerup `json:"p"`
}

// IsTeamMode reports whether the match was played between teams.
func (m *Match) IsTeamMode() bool {
	return len(m.Teams) > 0
}

// Player returns the first player with the given name, comparing cleaned
// names so decorated QuakeWorld characters match their ASCII form.
func (m *Match) Player(name string) (*Player, bool) {
	want := CleanName(name)
	for i := range m.Players {
		if CleanName(m.Players[i].Name) == want {
			return &m.Players[i], true
		}
	}
	return nil, false
}

// TeamPlayers returns the players of team in document order.
func (m *Match) TeamPlayers(team string) []Player {
	players := make([]Player, 0)
	for _, p := range m.Players {
		if p.Team == team {
			players = append(players, p)
		}
	}
	return players
}

// IsBot reports whether the player is a bot.
func (p *Player) IsBot() bool {
	return p.Bot != nil
}

func (m *Match) normalize() {
	if m.Teams == nil {
		m.Teams = []string{}
	}
	if m.Players == nil {
		m.Players = []Player{}
	}
}
