// Package combat resolves fights for the room events. The dispatcher
// hands it a combat kind (or a fully-formed scripted enemy) and receives
// a result; marking rooms cleared stays the dispatcher's job.
package combat

import (
	"fmt"
	"math/rand"

	"deepspire/pkg/game/items"
	"deepspire/pkg/game/state"
)

// Kind tags which event started a fight
type Kind string

// Combat kinds
const (
	KindStandard Kind = "standard"
	KindBoss     Kind = "boss"
	KindGuardian Kind = "guardian"
	KindRandom   Kind = "random"
	KindEpic     Kind = "epic"
)

// Enemy is a combat opponent descriptor
type Enemy struct {
	Name       string
	Health     int
	MaxHealth  int
	Attack     int
	Experience int
	Boss       bool
	Epic       bool
}

// Result reports how a fight ended. A defeat leaves the player alive at
// minimum health and the room uncleared; the run continues.
type Result struct {
	Victory     bool
	Rounds      int
	DamageTaken int
	Experience  int
}

var standardNames = []string{
	"Gnarled Creeper", "Cave Stalker", "Rot Hound", "Hollow Sentinel",
	"Web Weaver", "Shard Beetle", "Pale Lurker",
}

var bossNames = []string{
	"Warden of the Depths", "The Unblinking", "Gravemaw", "Cinder Tyrant",
}

// ForFloor builds an enemy descriptor for the given kind and floor.
// Scripted epic fights use ScriptedBoss instead.
func ForFloor(kind Kind, floor int, rng *rand.Rand) *Enemy {
	if floor < 1 {
		floor = 1
	}

	switch kind {
	case KindBoss:
		health := 60 + floor*12
		return &Enemy{
			Name:       bossNames[rng.Intn(len(bossNames))],
			Health:     health,
			MaxHealth:  health,
			Attack:     8 + floor*2,
			Experience: 40 + floor*8,
			Boss:       true,
		}
	case KindGuardian:
		health := 35 + floor*8
		return &Enemy{
			Name:       "Chest Guardian",
			Health:     health,
			MaxHealth:  health,
			Attack:     6 + floor*2,
			Experience: 25 + floor*5,
		}
	default:
		// Standard and random encounters share the common table
		health := 20 + floor*6
		return &Enemy{
			Name:       standardNames[rng.Intn(len(standardNames))],
			Health:     health,
			MaxHealth:  health,
			Attack:     4 + floor,
			Experience: 10 + floor*3,
		}
	}
}

// ScriptedBoss returns the fully-formed descriptor for the epic fights
// on every fifteenth floor. The final boss appears once all three epic
// uniques are held.
func ScriptedBoss(floor int, final bool) *Enemy {
	if final {
		health := 400 + floor*10
		return &Enemy{
			Name:       "The Deepspire Itself",
			Health:     health,
			MaxHealth:  health,
			Attack:     20 + floor,
			Experience: 500,
			Boss:       true,
			Epic:       true,
		}
	}
	health := 150 + floor*8
	return &Enemy{
		Name:       fmt.Sprintf("Keeper of Floor %d", floor),
		Health:     health,
		MaxHealth:  health,
		Attack:     12 + floor,
		Experience: 120 + floor*4,
		Boss:       true,
		Epic:       true,
	}
}

// Resolver is the default combat collaborator: alternating strikes until
// one side drops.
type Resolver struct{}

// Resolve runs a fight to completion against the player in g. Player
// damage variance is +/-25%; the enemy strikes back while alive, with
// carried armor blunting each strike down to a minimum of 1.
func (Resolver) Resolve(g *state.Game, enemy *Enemy, rng *rand.Rand) Result {
	res := Result{}
	p := &g.Player

	for enemy.Health > 0 {
		res.Rounds++

		hit := variance(p.Attack+playerGearBonus(g), rng)
		enemy.Health -= hit
		if enemy.Health <= 0 {
			res.Victory = true
			break
		}

		incoming := variance(enemy.Attack, rng) - playerArmor(g)
		if incoming < 1 {
			incoming = 1
		}
		taken := g.Damage(incoming)
		res.DamageTaken += taken
		if p.Health <= 1 {
			// Beaten down: the fight is lost, the player limps away
			break
		}
	}

	if res.Victory {
		res.Experience = enemy.Experience
		g.GainExperience(enemy.Experience)
	}
	return res
}

// playerGearBonus sums the power of offensive gear the player carries
func playerGearBonus(g *state.Game) int {
	bonus := 0
	for _, item := range g.Player.Inventory {
		switch item.Slot {
		case items.SlotWeapon, items.SlotAccessory:
			bonus += item.Power
		}
	}
	return bonus
}

// playerArmor sums the power of carried armor; it mitigates each enemy
// strike, which always lands for at least 1.
func playerArmor(g *state.Game) int {
	armor := 0
	for _, item := range g.Player.Inventory {
		if item.Slot == items.SlotArmor {
			armor += item.Power
		}
	}
	return armor
}

// variance jitters a value by +/-25%, never below 1
func variance(v int, rng *rand.Rand) int {
	if v < 1 {
		v = 1
	}
	spread := v / 2
	if spread < 1 {
		return v
	}
	out := v - spread/2 + rng.Intn(spread+1)
	if out < 1 {
		out = 1
	}
	return out
}
