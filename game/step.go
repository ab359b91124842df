package game

import "time"

// step runs one simulation tick while playing. Phase order is fixed:
// UFO, power-up, player, enemy fire, bullets, formation, then the loss and
// win checks.
func (g *Game) step(now time.Time, in Input) {
	g.shieldGrace = false

	g.updateUFO(now)
	g.updatePowerUp(now)

	g.Player.ExpirePower(now)
	g.Player.Move(in)
	if in.Fire {
		g.fire(now)
	}

	g.enemyFire(now)
	g.resolveBullets(now)
	g.moveFormation(now)
	g.pruneExplosions(now)

	if g.Formation.Reached(LossLine) {
		g.gameOver()
		return
	}
	if g.Player.Dying {
		if now.Sub(g.Player.DiedAt) >= DeathDelay {
			g.gameOver()
		}
		return
	}
	if g.Formation.Alive() == 0 {
		g.completeLevel(now)
	}
}

func (g *Game) updateUFO(now time.Time) {
	if g.UFO == nil {
		if now.Sub(g.lastUFOCheck) < UFOSpawnInterval {
			return
		}
		g.lastUFOCheck = now
		if g.rng.Float64() < UFOSpawnChance {
			g.UFO = NewUFO(g.rng)
			g.sounds.Play(SoundUFO)
		}
		return
	}
	g.UFO.Update()
	if !g.UFO.Active {
		g.clearUFO()
	}
}

func (g *Game) updatePowerUp(now time.Time) {
	pu := g.PowerUp
	if pu == nil {
		return
	}
	pu.Update()
	if !pu.Active {
		g.PowerUp = nil
		return
	}

	f := g.Formation
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if e.Alive && Intersects(pu.Rect, e.Rect) {
			f.Kill(i)
			g.explode(e.Rect, now)
			g.sounds.Play(SoundEnemyDestroyed)
			g.PowerUp = nil
			return
		}
	}

	if !g.Player.Dying && Intersects(pu.Rect, g.Player.Rect) {
		g.Player.Collect(pu.Kind, now)
		g.sounds.Play(SoundPowerUpCollected)
		g.PowerUp = nil
	}
}

// fire launches a player shot if the rate limiter allows it. An armed
// beam or spread is spent by the shot.
func (g *Game) fire(now time.Time) {
	p := &g.Player
	if !p.CanFire(now) {
		return
	}
	p.lastShot = now

	switch {
	case p.Powered && p.Power == PowerBeam:
		g.Bullets = append(g.Bullets, NewBeam(p))
		g.sounds.Play(SoundPlayerShootBeam)
	case p.Powered && p.Power == PowerSpread:
		g.Bullets = append(g.Bullets, NewSpread(p))
		g.sounds.Play(SoundPlayerShootSpread)
	default:
		g.Bullets = append(g.Bullets, NewPlayerBullet(p))
		g.sounds.Play(SoundPlayerShoot)
	}
	if p.Powered {
		p.disarm()
	}
}

func (g *Game) enemyFire(now time.Time) {
	if now.Sub(g.lastEnemyShot) < EnemyFireInterval {
		return
	}
	g.lastEnemyShot = now

	g.scratch = g.Formation.Exposed(g.scratch[:0])
	if len(g.scratch) == 0 {
		return
	}
	shooter := &g.Formation.Enemies[g.scratch[g.rng.Intn(len(g.scratch))]]
	g.Bullets = append(g.Bullets, NewEnemyBullet(shooter))
	g.sounds.Play(SoundEnemyShoot)
}

func (g *Game) resolveBullets(now time.Time) {
	g.grid.Index(g.Formation)

	for i := range g.Bullets {
		b := &g.Bullets[i]
		if !b.Alive {
			continue
		}
		switch {
		case b.Beam:
			g.resolveBeam(b, now)
		case b.Spread:
			g.resolveSpread(b, now)
		case b.Enemy:
			g.resolveEnemyBullet(b, now)
		default:
			g.resolvePlayerBullet(b, now)
		}
	}

	live := g.Bullets[:0]
	for _, b := range g.Bullets {
		if b.Alive {
			live = append(live, b)
		}
	}
	g.Bullets = live
}

// resolveBeam grows the beam and destroys every enemy whose center column
// lies inside it and whose top lies inside its vertical span
func (g *Game) resolveBeam(b *Bullet, now time.Time) {
	top, height := b.Grow()
	bottom := b.Y + height

	f := g.Formation
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if !e.Alive {
			continue
		}
		cx := e.CenterX()
		if cx >= b.X && cx <= b.Right() && e.Y > top && e.Y < bottom {
			g.killEnemy(i, now)
		}
	}

	b.Y = top
	b.H = height
	if BeamDone(top, height) {
		b.Alive = false
	}
}

// resolveSpread destroys the first enemy touched together with its
// surviving neighbours in grid order
func (g *Game) resolveSpread(b *Bullet, now time.Time) {
	b.Advance()

	if hit := g.firstEnemyHit(b); hit >= 0 {
		f := g.Formation
		left, right := f.Neighbors(hit)
		killed := 0
		for _, i := range [...]int{left, hit, right} {
			if f.Kill(i) {
				killed++
			}
		}
		e := &f.Enemies[hit]
		g.Explosions = append(g.Explosions,
			NewExplosion(e.CenterX(), e.CenterY(), e.W*SpreadBlastScale, e.H, now))
		g.Player.AddScore(killed * KillPoints(g.Level))
		g.sounds.Play(SoundEnemyDestroyed)
		b.Alive = false
		return
	}

	if b.Y <= 0 {
		b.Alive = false
	}
}

// resolvePlayerBullet tests the UFO, then barricades, then enemies. The
// first target hit absorbs the bullet.
func (g *Game) resolvePlayerBullet(b *Bullet, now time.Time) {
	b.Advance()

	if u := g.UFO; u != nil && BulletHits(b, u.Rect) {
		g.PowerUp = NewPowerUp(u)
		g.Player.AddScore(u.Points)
		g.explode(u.Rect, now)
		g.clearUFO()
		g.sounds.Play(SoundEnemyDestroyed)
		b.Alive = false
		return
	}
	if g.hitBarricade(b) {
		b.Alive = false
		return
	}
	if i := g.firstEnemyHit(b); i >= 0 {
		g.killEnemy(i, now)
		b.Alive = false
		return
	}
	if b.OffField() {
		b.Alive = false
	}
}

// resolveEnemyBullet tests the shield, then barricades, then the player.
// Once the shield breaks the player stays covered for the rest of the tick.
func (g *Game) resolveEnemyBullet(b *Bullet, now time.Time) {
	b.Advance()

	p := &g.Player
	touching := !p.Dying && BulletHits(b, p.Rect)
	if touching && (p.Shielded || g.shieldGrace) {
		if p.Shielded {
			p.Shielded = false
			if !p.Powered {
				p.PowerUntil = time.Time{}
			}
			g.shieldGrace = true
			g.sounds.Play(SoundShieldBroken)
		}
		b.Alive = false
		return
	}
	if g.hitBarricade(b) {
		b.Alive = false
		return
	}
	if touching {
		if p.Kill(now) {
			g.Explosions = append(g.Explosions,
				NewExplosion(p.CenterX(), p.CenterY(), ExplosionSize, ExplosionSize, now))
			g.sounds.Play(SoundPlayerExplode)
		}
		b.Alive = false
		return
	}
	if b.OffField() {
		b.Alive = false
	}
}

func (g *Game) hitBarricade(b *Bullet) bool {
	for i := range g.Barricades {
		if BulletHits(b, g.Barricades[i].Rect) {
			g.Barricades[i].Hit(b, g.rng)
			return true
		}
	}
	return false
}

// firstEnemyHit returns the lowest-indexed live enemy the bullet touches,
// or -1
func (g *Game) firstEnemyHit(b *Bullet) int {
	pad := 1.0
	if b.Plain() {
		pad += BulletHitPadding
	}
	area := Rect{X: b.X - pad, Y: b.Y - 1, W: b.W + 2*pad, H: b.H + 2}

	g.scratch = g.grid.QueryBuf(area, g.scratch[:0])
	hit := -1
	f := g.Formation
	for _, i := range g.scratch {
		if hit >= 0 && i >= hit {
			continue
		}
		if f.Enemies[i].Alive && BulletHits(b, f.Enemies[i].Rect) {
			hit = i
		}
	}
	return hit
}

func (g *Game) killEnemy(i int, now time.Time) {
	if !g.Formation.Kill(i) {
		return
	}
	g.Player.AddScore(KillPoints(g.Level))
	g.explode(g.Formation.Enemies[i].Rect, now)
	g.sounds.Play(SoundEnemyDestroyed)
}

func (g *Game) explode(r Rect, now time.Time) {
	g.Explosions = append(g.Explosions,
		NewExplosion(r.CenterX(), r.CenterY(), ExplosionSize, ExplosionSize, now))
}

// moveFormation steps the grid when its interval is due, then applies the
// wave rule: once any enemy reaches the barricade row every barricade is
// removed and the formation speeds up for the rest of the level
func (g *Game) moveFormation(now time.Time) {
	f := g.Formation
	if f.Alive() > 0 && f.Due(now) {
		f.Step(now)
	}

	if len(g.Barricades) == 0 {
		return
	}
	top := g.Barricades[0].Y
	for _, b := range g.Barricades[1:] {
		if b.Y < top {
			top = b.Y
		}
	}
	if f.Reached(top) {
		g.Barricades = g.Barricades[:0]
		f.BreakBarricades()
	}
}

func (g *Game) pruneExplosions(now time.Time) {
	live := g.Explosions[:0]
	for _, e := range g.Explosions {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}
	g.Explosions = live
}
