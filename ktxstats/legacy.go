package ktxstats

// LegacyMatch is a stats document of the earlier revision, written by
// servers that predate match tags, CTF and bot blocks, the axe and nailgun
// slots, splash accounting and powerup tracking.
type LegacyMatch struct {
	Version    int            `json:"version"`
	Date       Timestamp      `json:"date"`
	Map        string         `json:"map"`
	Hostname   string         `json:"hostname"`
	IP         string         `json:"ip"`
	Port       int            `json:"port"`
	Mode       string         `json:"mode"`
	TimeLimit  int            `json:"tl"`
	Deathmatch int            `json:"dm"`
	Teamplay   int            `json:"tp"`
	Duration   int            `json:"duration"`
	Demo       string         `json:"demo"`
	Teams      []string       `json:"teams"`
	Players    []LegacyPlayer `json:"players"`
}

type LegacyPlayer struct {
	TopColor    int           `json:"top-color"`
	BottomColor int           `json:"bottom-color"`
	Ping        int           `json:"ping"`
	Login       string        `json:"login"`
	Name        string        `json:"name"`
	Team        string        `json:"team"`
	Stats       FragStats     `json:"stats"`
	Dmg         Damage        `json:"dmg"`
	XferRL      int           `json:"xfer-rl"`
	XferLG      int           `json:"xfer-lg"`
	Spree       Spree         `json:"spree"`
	Control     float64       `json:"control"`
	Speed       Speed         `json:"speed"`
	Weapons     LegacyWeapons `json:"weapons"`
	Items       LegacyItems   `json:"items"`
}

type LegacyWeapons struct {
	SG  Weapon `json:"sg"`
	SSG Weapon `json:"ssg"`
	SNG Weapon `json:"sng"`
	GL  Weapon `json:"gl"`
	RL  Weapon `json:"rl"`
	LG  Weapon `json:"lg"`
}

type LegacyItems struct {
	Health15  Health `json:"health_15"`
	Health25  Health `json:"health_25"`
	Health100 Health `json:"health_100"`
	GA        Armor  `json:"ga"`
	YA        Armor  `json:"ya"`
	RA        Armor  `json:"ra"`
}

func (m *LegacyMatch) IsTeamMode() bool {
	return len(m.Teams) > 0
}

func (m *LegacyMatch) Player(name string) (*LegacyPlayer, bool) {
	want := CleanName(name)
	for i := range m.Players {
		if CleanName(m.Players[i].Name) == want {
			return &m.Players[i], true
		}
	}
	return nil, false
}

func (m *LegacyMatch) TeamPlayers(team string) []LegacyPlayer {
	players := make([]LegacyPlayer, 0)
	for _, p := range m.Players {
		if p.Team == team {
			players = append(players, p)
		}
	}
	return players
}

func (m *LegacyMatch) normalize() {
	if m.Teams == nil {
		m.Teams = []string{}
	}
	if m.Players == nil {
		m.Players = []LegacyPlayer{}
	}
}
