// Package tuning exposes the saucer personality parameters as a
// designer-editable JSON catalog. The schema generated from these structs
// (cmd/schema) is what editors validate against.
package tuning

import (
	"fmt"

	"github.com/wrenware/staroids/internal/game"
)

// PersonalityDef is one personality's tuning as it appears on disk.
type PersonalityDef struct {
	Name          string  `json:"name" jsonschema:"title=Personality,description=Personality identifier matched against the in-game table.,pattern=^[a-z]+$,minLength=1,required"`
	Speed         float64 `json:"speed" jsonschema:"title=Cruise Speed,description=Speed steering vectors are scaled to before blending.,minimum=1,required"`
	MaxSpeed      float64 `json:"maxSpeed" jsonschema:"title=Max Speed,description=Hard cap on the synthesized velocity. Must be at least the cruise speed.,minimum=1,required"`
	ShootInterval float64 `json:"shootInterval" jsonschema:"title=Shoot Interval,description=Seconds between shots while the fire gate is open.,required"`
	Accuracy      float64 `json:"accuracy" jsonschema:"title=Accuracy,description=Angular spread modifier. Values of 1 or more mean exact aim; the ceiling is 2.,maximum=2,required"`
	Aggression    float64 `json:"aggression" jsonschema:"title=Aggression,description=Relative hostility surfaced in behaviour reports.,minimum=0"`
	Description   string  `json:"description,omitempty" jsonschema:"title=Description,description=Free-form designer note."`
}

// Catalog is the designer-facing document listing every personality.
type Catalog struct {
	Personalities []PersonalityDef `json:"personalities" jsonschema:"title=Personalities,description=One entry per saucer personality.,required"`
}

// Default builds the catalog from the in-game tuning table, in display order.
func Default() *Catalog {
	c := &Catalog{}
	for _, p := range game.Personalities() {
		tn := game.TuningFor(p)
		c.Personalities = append(c.Personalities, PersonalityDef{
			Name:          p.String(),
			Speed:         tn.Speed,
			MaxSpeed:      tn.MaxSpeed,
			ShootInterval: tn.ShootInterval,
			Accuracy:      tn.Accuracy,
			Aggression:    tn.Aggression,
			Description:   describe(p),
		})
	}
	return c
}

func describe(p game.Personality) string {
	switch p {
	case game.PersonalityAggressive:
		return "Closes head-on and presses the attack even under fire."
	case game.PersonalityDefensive:
		return "Keeps its distance and only commits against a vulnerable player."
	case game.PersonalityTactical:
		return "Reads the player's movement and leads its shots."
	case game.PersonalitySwarm:
		return "Coordinates with the rest of the wave; harmless alone."
	case game.PersonalityDeadly:
		return "Hunter-killer. Faster, perfectly accurate, never retreats."
	default:
		return ""
	}
}

// Validate checks every entry against the ranges the simulation assumes.
// The schema catches most of these in an editor; Validate is the authority
// at load time.
func (c *Catalog) Validate() error {
	if len(c.Personalities) == 0 {
		return fmt.Errorf("catalog has no personalities")
	}
	seen := make(map[string]struct{}, len(c.Personalities))
	for i, def := range c.Personalities {
		if def.Name == "" {
			return fmt.Errorf("personality %d: name is empty", i)
		}
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("personality %q: duplicate entry", def.Name)
		}
		seen[def.Name] = struct{}{}
		if def.Speed <= 0 {
			return fmt.Errorf("personality %q: speed must be positive, got %g", def.Name, def.Speed)
		}
		if def.MaxSpeed < def.Speed {
			return fmt.Errorf("personality %q: maxSpeed %g below speed %g", def.Name, def.MaxSpeed, def.Speed)
		}
		if def.ShootInterval <= 0 {
			return fmt.Errorf("personality %q: shootInterval must be positive, got %g", def.Name, def.ShootInterval)
		}
		if def.Accuracy <= 0 || def.Accuracy > 2 {
			return fmt.Errorf("personality %q: accuracy %g outside (0, 2]", def.Name, def.Accuracy)
		}
	}
	return nil
}

// Find returns the entry with the given name, or false.
func (c *Catalog) Find(name string) (PersonalityDef, bool) {
	for _, def := range c.Personalities {
		if def.Name == name {
			return def, true
		}
	}
	return PersonalityDef{}, false
}
