package ktxstats

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// FragStats holds the frag and death counters of a player.
type FragStats struct {
	Frags      int `json:"frags"`
	Deaths     int `json:"deaths"`
	TeamKills  int `json:"tk"`
	SpawnFrags int `json:"spawn-frags"`
	Kills      int `json:"kills"`
	Suicides   int `json:"suicides"`
}

// Damage holds the damage counters of a player.
type Damage struct {
	Taken        int `json:"taken"`
	Given        int `json:"given"`
	Team         int `json:"team"`
	Self         int `json:"self"`
	TeamWeapons  int `json:"team-weapons"`
	EnemyWeapons int `json:"enemy-weapons"`
	TakenToDie   int `json:"taken-to-die"`
}

// Spree holds the longest frag streaks of a player.
type Spree struct {
	Max  int `json:"max"`
	Quad int `json:"quad"`
}

// Speed holds the movement speed of a player in units per second.
type Speed struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// Accuracy counts attacks and hits for direct-hit weapons.
type Accuracy struct {
	Attacks int `json:"attacks"`
	Hits    int `json:"hits"`
}

// Percent returns hits as a percentage of attacks, or 0 with no attacks.
func (a Accuracy) Percent() float64 {
	return percent(a.Hits, a.Attacks)
}

// LauncherAccuracy counts attacks and hits for splash weapons. Real hits
// are direct impacts, virtual hits include splash damage.
type LauncherAccuracy struct {
	Attacks int `json:"attacks"`
	Hits    int `json:"hits"`
	Real    int `json:"real"`
	Virtual int `json:"virtual"`
}

// Percent returns hits as a percentage of attacks, or 0 with no attacks.
func (a LauncherAccuracy) Percent() float64 {
	return percent(a.Hits, a.Attacks)
}

// WeaponKills counts frags made with a weapon.
type WeaponKills struct {
	Total int `json:"total"`
	Team  int `json:"team"`
	Enemy int `json:"enemy"`
	Self  int `json:"self"`
}

// WeaponPickups counts backpack and spawn pickups of a weapon.
type WeaponPickups struct {
	Dropped         int `json:"dropped"`
	Taken           int `json:"taken"`
	TotalTaken      int `json:"total-taken"`
	SpawnTaken      int `json:"spawn-taken"`
	SpawnTotalTaken int `json:"spawn-total-taken"`
}

// WeaponDamage holds damage dealt with a weapon.
type WeaponDamage struct {
	Enemy int `json:"enemy"`
	Team  int `json:"team"`
}

// Weapon is a single weapon slot.
type Weapon struct {
	Acc     Accuracy      `json:"acc"`
	Kills   WeaponKills   `json:"kills"`
	Deaths  int           `json:"deaths"`
	Pickups WeaponPickups `json:"pickups"`
	Damage  WeaponDamage  `json:"damage"`
}

// LauncherWeapon is a grenade or rocket launcher slot.
type LauncherWeapon struct {
	Acc     LauncherAccuracy `json:"acc"`
	Kills   WeaponKills      `json:"kills"`
	Deaths  int              `json:"deaths"`
	Pickups WeaponPickups    `json:"pickups"`
	Damage  WeaponDamage     `json:"damage"`
}

type Health struct {
	Took int `json:"took"`
}

type Armor struct {
	Took int `json:"took"`
	Time int `json:"time"`
}

type Powerup struct {
	Took int `json:"took"`
	Time int `json:"time"`
}

// Runes holds rune pickup counts in server order: resistance, strength,
// haste, regeneration.
type Runes [4]int

var runesType = reflect.TypeOf(Runes{})

// UnmarshalJSON requires exactly four numbers.
func (r *Runes) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	if len(values) != len(r) {
		return &json.UnmarshalTypeError{
			Value: fmt.Sprintf("array of %d elements", len(values)),
			Type:  runesType,
		}
	}
	copy(r[:], values)
	return nil
}

// CTF holds capture-the-flag statistics of a player.
type CTF struct {
	Points         int   `json:"points"`
	Caps           int   `json:"caps"`
	Defends        int   `json:"defends"`
	CarrierDefends int   `json:"carrier-defends"`
	CarrierFrags   int   `json:"carrier-frags"`
	Pickups        int   `json:"pickups"`
	Returns        int   `json:"returns"`
	Runes          Runes `json:"runes"`
}

// Bot describes the configuration of a bot player.
type Bot struct {
	Skill      int  `json:"skill"`
	Customised bool `json:"customised"`
}

func percent(hits, attacks int) float64 {
	if attacks == 0 {
		return 0
	}
	return float64(hits) / float64(attacks) * 100
}
