package game

// --- Waves and levels ---

const (
	saucerWaveDelay     = 5.0 // seconds into a level before saucers arrive
	saucerSpawnInterval = 1.0 // seconds between saucers in a trickle wave
	massSpawnChance     = 0.1
	deadlyRollChance    = 0.5 // every non-scripted spawn rolls for a deadly first
	levelClearDelay     = 2.0 // seconds between the last rock dying and the next level
)

// level1SpawnOrder is the scripted first wave: one of each personality, in
// escalating order.
var level1SpawnOrder = []Personality{
	PersonalityAggressive,
	PersonalityDefensive,
	PersonalityTactical,
	PersonalitySwarm,
	PersonalityDeadly,
}

func (w *World) corners() [4]Vec2 {
	return [4]Vec2{
		{0, 0},
		{w.width, 0},
		{0, w.height},
		{w.width, w.height},
	}
}

// updateWaves runs the saucer arrival schedule on dilated time. The wave
// timer counts down first; once it expires the wave is sized and either
// dumped all at once from every corner or trickled from a single one.
func (w *World) updateWaves(dt float64) {
	if w.waveTimer > 0 {
		w.waveTimer -= dt
		if w.waveTimer <= 0 {
			w.toSpawn = w.waveSize()
			w.spawnQueue = nil
			if w.level == 1 {
				w.spawnQueue = append([]Personality(nil), level1SpawnOrder...)
			}
			corners := w.corners()
			w.spawnCorner = corners[w.rng.Intn(len(corners))]
			w.massSpawn = w.rng.Float64() < massSpawnChance
			w.spawnDelay = 0
		}
		return
	}

	if w.toSpawn <= 0 {
		return
	}
	if w.massSpawn {
		w.spawnAllMass()
		w.toSpawn = 0
		return
	}
	w.spawnDelay += dt
	if w.spawnDelay >= saucerSpawnInterval {
		w.spawnDelay = 0
		if len(w.spawnQueue) > 0 {
			p := w.spawnQueue[0]
			w.spawnQueue = w.spawnQueue[1:]
			w.spawnSaucer(w.spawnCorner, p)
		} else {
			w.spawnSaucer(w.spawnCorner, w.rollPersonality())
		}
		w.toSpawn--
	}
}

// waveSize returns how many saucers this level's wave holds.
func (w *World) waveSize() int {
	switch w.level {
	case 1:
		return len(level1SpawnOrder)
	case 2:
		return 2 + w.rng.Intn(5)
	case 3:
		return 3 + w.rng.Intn(7)
	case 4:
		return 4 + w.rng.Intn(9)
	case 5:
		return 5 + w.rng.Intn(11)
	default:
		return (1 + w.rng.Intn(3)) * w.level
	}
}

// rollPersonality picks a personality for an unscripted spawn: half the
// time a deadly, otherwise whatever the level's roster allows.
func (w *World) rollPersonality() Personality {
	if w.rng.Float64() < deadlyRollChance {
		return PersonalityDeadly
	}
	return w.levelPersonality()
}

// levelPersonality is the non-deadly roster per level. Early levels field
// narrow line-ups; level 5 onward draws from all four base personalities.
func (w *World) levelPersonality() Personality {
	switch w.level {
	case 2:
		return PersonalityDefensive
	case 3:
		pool := []Personality{PersonalityAggressive, PersonalityDefensive}
		return pool[w.rng.Intn(len(pool))]
	case 4:
		return PersonalityAggressive
	default:
		pool := []Personality{
			PersonalityAggressive,
			PersonalityDefensive,
			PersonalityTactical,
			PersonalitySwarm,
		}
		return pool[w.rng.Intn(len(pool))]
	}
}

// spawnAllMass dumps the rest of the wave at once, each saucer from its own
// random corner. The level-1 scripted order is consumed before random rolls.
func (w *World) spawnAllMass() {
	corners := w.corners()
	for i := 0; i < w.toSpawn; i++ {
		pos := corners[w.rng.Intn(len(corners))]
		var p Personality
		switch {
		case w.rng.Float64() < deadlyRollChance:
			p = PersonalityDeadly
		case len(w.spawnQueue) > 0:
			p = w.spawnQueue[0]
			w.spawnQueue = w.spawnQueue[1:]
		default:
			p = w.levelPersonality()
		}
		w.spawnSaucer(pos, p)
	}
}

func (w *World) spawnSaucer(pos Vec2, p Personality) {
	s := NewSaucer(pos.X, pos.Y, p, w.rng)
	w.saucers = append(w.saucers, s)
	w.emit(Event{Kind: EventSaucerSpawned, Pos: pos, Personality: p})
}

// spawnLevelAsteroids seeds a level's rocks: one random large, one random
// mid-or-smaller, and from level 2 on a growing handful of any size, all on
// the playfield edge.
func (w *World) spawnLevelAsteroids() {
	large := []int{9, 8, 7}
	w.spawnEdgeAsteroid(large[w.rng.Intn(len(large))])
	w.spawnEdgeAsteroid(1 + w.rng.Intn(7))

	if w.level >= 2 {
		extra := int(float64(w.level)-0.5) - 1
		for i := 0; i < extra; i++ {
			w.spawnEdgeAsteroid(1 + w.rng.Intn(asteroidMaxSize))
		}
	}
}

func (w *World) spawnEdgeAsteroid(size int) {
	pos := w.edgePosition()
	w.asteroids = append(w.asteroids, NewAsteroid(pos.X, pos.Y, size, w.rng))
}

// edgePosition picks a uniform point on one of the four playfield edges.
func (w *World) edgePosition() Vec2 {
	switch w.rng.Intn(4) {
	case 0:
		return Vec2{w.rng.Float64() * w.width, 0}
	case 1:
		return Vec2{w.width, w.rng.Float64() * w.height}
	case 2:
		return Vec2{w.rng.Float64() * w.width, w.height}
	default:
		return Vec2{0, w.rng.Float64() * w.height}
	}
}

// checkLevelClear watches for the last rock dying and, after a short pause
// on wall-clock time, advances the level.
func (w *World) checkLevelClear(dt float64) {
	if len(w.asteroids) > 0 {
		return
	}
	if w.levelClearPause <= 0 {
		w.levelClearPause = levelClearDelay
		w.emit(Event{Kind: EventLevelCleared})
		return
	}
	w.levelClearPause -= dt
	if w.levelClearPause <= 0 {
		w.advanceLevel()
	}
}

// advanceLevel rolls the world forward: new rocks, a fresh saucer wave
// clock, a recentered ship with full shields, and the battlefield swept of
// shots and saucers. Survivors earn a life back up to the cap.
func (w *World) advanceLevel() {
	w.level++
	w.spawnLevelAsteroids()
	w.waveTimer = saucerWaveDelay
	w.toSpawn = 0
	w.spawnQueue = nil
	w.levelClearPause = 0

	w.bullets = w.bullets[:0]
	w.saucerBullets = w.saucerBullets[:0]
	w.saucers = w.saucers[:0]

	if w.ship != nil {
		w.ship.ResetForLevel(w.width, w.height)
	}
	if w.lives < maxLives {
		w.lives++
	}
}
