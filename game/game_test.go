package game

import (
	"testing"
	"time"
)

// fixedRand replays the given values in order, wrapping around
type fixedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

type recordingSounds struct {
	played  []SoundID
	stopped []SoundID
	muted   bool
}

func (s *recordingSounds) Play(id SoundID)     { s.played = append(s.played, id) }
func (s *recordingSounds) Stop(id SoundID)     { s.stopped = append(s.stopped, id) }
func (s *recordingSounds) SetMuted(muted bool) { s.muted = muted }

func (s *recordingSounds) count(id SoundID) int {
	n := 0
	for _, p := range s.played {
		if p == id {
			n++
		}
	}
	return n
}

type recordingSink struct {
	scores []int
}

func (s *recordingSink) GameOver(score int) { s.scores = append(s.scores, score) }

var t0 = time.Unix(1700000000, 0)

func tick(n int) time.Time {
	return t0.Add(time.Duration(n) * TickDuration)
}

func newPlayingGame(rng Rand) (*Game, *recordingSounds, *recordingSink) {
	sounds := &recordingSounds{}
	sink := &recordingSink{}
	g := New(WithRand(rng), WithSounds(sounds), WithScoreSink(sink))
	g.Start(t0)
	return g, sounds, sink
}

func enemyBulletAbove(p Player) Bullet {
	return Bullet{
		Rect:  Rect{X: p.CenterX() - BulletWidth/2, Y: p.Y - 5, W: BulletWidth, H: BulletHeight},
		Speed: EnemyBulletSpeed,
		Alive: true,
		Enemy: true,
	}
}

func TestNewGameOnTitle(t *testing.T) {
	sounds := &recordingSounds{}
	g := New(WithSounds(sounds))
	if g.State != StateTitle {
		t.Errorf("expected title, got %s", g.State)
	}
	if sounds.count(MusicTitle) != 1 {
		t.Error("title music should start")
	}
}

func TestStartButtonClick(t *testing.T) {
	g := New(WithRand(&fixedRand{}))
	inside := Input{Clicked: true, Click: Point{X: 400, Y: 525}}

	g.Update(t0, inside)
	if g.State != StateTitle {
		t.Fatal("click before the button is drawn should be ignored")
	}

	g.Buttons.SetStart(Rect{X: 300, Y: 500, W: 200, H: 50})
	g.Update(t0, Input{Clicked: true, Click: Point{X: 10, Y: 10}})
	if g.State != StateTitle {
		t.Fatal("click outside the button should be ignored")
	}

	g.Update(t0, inside)
	if g.State != StatePlaying {
		t.Fatalf("expected playing, got %s", g.State)
	}
	if g.Level != 1 || g.Formation.Alive() != 24 || len(g.Barricades) != BarricadeCount {
		t.Errorf("expected fresh level 1, got level=%d enemies=%d barricades=%d",
			g.Level, g.Formation.Alive(), len(g.Barricades))
	}
}

func TestPlainKillScoresPerLevel(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{})

	shoot := func(e *Enemy) {
		g.Bullets = append(g.Bullets, Bullet{
			Rect:  Rect{X: e.CenterX() - BulletWidth/2, Y: e.Bottom() + 5, W: BulletWidth, H: BulletHeight},
			Speed: BulletSpeed,
			Alive: true,
		})
	}

	shoot(&g.Formation.Enemies[0])
	g.Update(tick(1), Input{})
	if g.Player.Score != 100 {
		t.Errorf("expected 100 on level 1, got %d", g.Player.Score)
	}
	if g.Formation.Enemies[0].Alive || g.Formation.Alive() != 23 {
		t.Error("enemy 0 should be destroyed")
	}
	if len(g.Bullets) != 0 {
		t.Errorf("bullet should be spent, %d left", len(g.Bullets))
	}
	if len(g.Explosions) != 1 || sounds.count(SoundEnemyDestroyed) != 1 {
		t.Error("kill should explode and play a sound")
	}

	g.StartLevel(2, tick(1))
	shoot(&g.Formation.Enemies[3])
	g.Update(tick(2), Input{})
	if g.Player.Score != 300 {
		t.Errorf("expected +200 on level 2, got %d", g.Player.Score)
	}
}

func TestSpreadKillsNeighbours(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	e := g.Formation.Enemies[EnemyCols+1] // row 1, col 1
	g.Bullets = append(g.Bullets, Bullet{
		Rect:   Rect{X: e.CenterX() - SpreadWidth/2, Y: e.Bottom() + 5, W: SpreadWidth, H: SpreadHeight},
		Speed:  SpreadSpeed,
		Alive:  true,
		Spread: true,
	})

	g.Update(tick(1), Input{})

	for _, i := range []int{EnemyCols, EnemyCols + 1, EnemyCols + 2} {
		if g.Formation.Enemies[i].Alive {
			t.Errorf("enemy %d should be destroyed", i)
		}
	}
	if g.Formation.Alive() != 21 {
		t.Errorf("expected 21 alive, got %d", g.Formation.Alive())
	}
	if g.Player.Score != 300 {
		t.Errorf("expected 100 per kill, got %d", g.Player.Score)
	}
	if len(g.Explosions) != 1 || g.Explosions[0].W != EnemyWidth*SpreadBlastScale {
		t.Error("spread should leave one wide explosion")
	}
	if len(g.Bullets) != 0 {
		t.Error("spread shot should retire after contact")
	}
}

func TestBeamGrowsInPlace(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{})
	g.Player.Collect(PowerBeam, t0)

	g.Update(tick(1), Input{Fire: true})
	if len(g.Bullets) != 1 || !g.Bullets[0].Beam {
		t.Fatal("fire while powered should launch a beam")
	}
	if g.Player.Powered {
		t.Error("beam shot should spend the power")
	}
	if sounds.count(SoundPlayerShootBeam) != 1 {
		t.Error("beam sound should play")
	}

	x := g.Bullets[0].X
	prevH := g.Bullets[0].H
	n := 2
	for ; len(g.Bullets) > 0 && n < 100; n++ {
		g.Update(tick(n), Input{})
		if len(g.Bullets) == 0 {
			break
		}
		b := g.Bullets[0]
		if b.X != x {
			t.Fatalf("beam moved sideways to %f", b.X)
		}
		if b.H <= prevH {
			t.Fatalf("beam stopped growing at %f", b.H)
		}
		prevH = b.H
	}
	if len(g.Bullets) != 0 {
		t.Fatal("beam should retire at full height")
	}
	if prevH < Height-BeamSpeed {
		t.Errorf("beam retired early at height %f", prevH)
	}
	if g.Formation.Alive() != 24 {
		t.Error("beam between columns should not kill")
	}
}

func TestBeamKillsColumn(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	g.Player.X = 345 // beam spans x 350..390, column 5 centers at 370
	g.Player.Collect(PowerBeam, t0)
	g.Update(tick(1), Input{Fire: true})
	for n := 2; len(g.Bullets) > 0 && n < 100; n++ {
		g.Update(tick(n), Input{})
	}
	for row := 0; row < 3; row++ {
		if g.Formation.Enemies[row*EnemyCols+5].Alive {
			t.Errorf("row %d of column 5 should be destroyed", row)
		}
	}
	if g.Formation.Alive() != 21 || g.Player.Score != 300 {
		t.Errorf("expected 3 kills for 300, got alive=%d score=%d", g.Formation.Alive(), g.Player.Score)
	}
}

func TestFireRateLimit(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	count := func() int {
		n := 0
		for _, b := range g.Bullets {
			if !b.Enemy {
				n++
			}
		}
		return n
	}
	g.Update(tick(1), Input{Fire: true})
	g.Update(tick(2), Input{Fire: true})
	if count() != 1 {
		t.Errorf("second press inside the window should not fire, got %d shots", count())
	}
	g.Update(tick(1).Add(PlayerFireRate), Input{Fire: true})
	if count() != 2 {
		t.Errorf("press after the window should fire, got %d shots", count())
	}
}

func TestShieldAbsorbsOneBullet(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{})
	g.Player.Collect(PowerShield, t0)
	g.Bullets = append(g.Bullets, enemyBulletAbove(g.Player))

	g.Update(tick(1), Input{})

	if g.Player.Shielded {
		t.Error("shield should be consumed")
	}
	if g.Player.Lives != PlayerLives || g.Player.Dying {
		t.Error("shielded hit should cost no life")
	}
	if len(g.Bullets) != 0 {
		t.Error("absorbed bullet should be removed")
	}
	if sounds.count(SoundShieldBroken) != 1 {
		t.Error("shield broken sound should play")
	}
}

func TestShieldCoversRestOfTick(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	g.Player.Collect(PowerShield, t0)
	g.Bullets = append(g.Bullets, enemyBulletAbove(g.Player), enemyBulletAbove(g.Player))

	g.Update(tick(1), Input{})

	if g.Player.Dying {
		t.Error("second bullet in the same tick should not kill")
	}
	if len(g.Bullets) != 0 {
		t.Error("both bullets should be absorbed")
	}

	g.Bullets = append(g.Bullets, enemyBulletAbove(g.Player))
	g.Update(tick(2), Input{})
	if !g.Player.Dying {
		t.Error("a hit on a later tick should kill")
	}
}

func TestUnshieldedHitEndsGameOnce(t *testing.T) {
	g, sounds, sink := newPlayingGame(&fixedRand{})
	g.Player.Score = 120
	g.Bullets = append(g.Bullets, enemyBulletAbove(g.Player), enemyBulletAbove(g.Player))

	g.Update(tick(1), Input{})

	p := g.Player
	if !p.Dying || p.Lives != 0 {
		t.Fatal("unshielded hit should start the death sequence")
	}
	if p.Score != 70 {
		t.Errorf("expected one penalty to 70, got %d", p.Score)
	}
	if g.State != StatePlaying {
		t.Errorf("dying player is still playing, got %s", g.State)
	}
	if sounds.count(SoundPlayerExplode) != 1 {
		t.Error("explode sound should play once")
	}
	found := false
	for _, e := range g.Explosions {
		if e.CenterX() == p.CenterX() && e.CenterY() == p.CenterY() {
			found = true
		}
	}
	if !found {
		t.Error("death explosion should be centered on the player")
	}

	g.Update(tick(1).Add(DeathDelay-time.Millisecond), Input{})
	if g.State != StatePlaying {
		t.Fatal("game over should wait for the death delay")
	}

	g.Update(tick(1).Add(DeathDelay), Input{})
	if g.State != StateGameOver {
		t.Fatalf("expected game over, got %s", g.State)
	}
	g.Update(tick(1).Add(2*DeathDelay), Input{})
	if len(sink.scores) != 1 || sink.scores[0] != 70 {
		t.Errorf("expected one report of 70, got %v", sink.scores)
	}
	if sounds.count(MusicGameOver) != 1 {
		t.Error("game over music should play")
	}
}

func TestEnemyFireFromExposedEnemy(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{ints: []int{2}})
	g.Update(t0.Add(EnemyFireInterval), Input{})

	var shot *Bullet
	for i := range g.Bullets {
		if g.Bullets[i].Enemy {
			shot = &g.Bullets[i]
		}
	}
	if shot == nil {
		t.Fatal("expected an enemy shot")
	}
	// The shot leaves before the formation takes its step this tick
	e := NewEnemy(2, 2, 0)
	if shot.CenterX() != e.CenterX() {
		t.Errorf("shot should come from column 2, got x=%f", shot.CenterX())
	}
	if sounds.count(SoundEnemyShoot) != 1 {
		t.Error("enemy shot sound should play")
	}
}

func TestWaveRuleClearsBarricades(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	e := &g.Formation.Enemies[2*EnemyCols]
	top := g.Barricades[0].Y

	e.Y = top - EnemyHeight - 1
	g.Update(tick(1), Input{})
	if len(g.Barricades) != BarricadeCount {
		t.Fatal("barricades should stand until an enemy reaches them")
	}

	e.Y = top - EnemyHeight
	g.Update(tick(2), Input{})
	if len(g.Barricades) != 0 {
		t.Errorf("all barricades should be removed, %d left", len(g.Barricades))
	}
	if g.Formation.Boost != BarricadeBreakFactor {
		t.Error("formation should speed up permanently")
	}
}

func TestLossLineEndsGame(t *testing.T) {
	g, _, sink := newPlayingGame(&fixedRand{})
	g.Player.Score = 400
	g.Formation.Enemies[0].Y = LossLine - EnemyHeight

	g.Update(tick(1), Input{})

	if g.State != StateGameOver {
		t.Fatalf("expected game over, got %s", g.State)
	}
	if g.Player.Dying {
		t.Error("swarm loss has no death animation")
	}
	if len(sink.scores) != 1 || sink.scores[0] != 400 {
		t.Errorf("expected score 400 reported, got %v", sink.scores)
	}
}

func TestLevelCompletionAdvances(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	if g.Formation.Alive() != 24 {
		t.Fatalf("level 1 should have 24 enemies, got %d", g.Formation.Alive())
	}
	for i := range g.Formation.Enemies {
		g.Formation.Kill(i)
	}

	g.Update(tick(1), Input{})
	if g.State != StateLevelComplete {
		t.Fatalf("expected levelComplete, got %s", g.State)
	}

	g.UFO = &UFO{Rect: Rect{X: 300, Y: UFOY, W: UFOWidth, H: UFOHeight}, Speed: UFOSpeed, Active: true, Direction: 1}
	g.Update(tick(1).Add(LevelCompleteDelay/2), Input{Fire: true})
	if g.State != StateLevelComplete {
		t.Fatal("level should not advance before the delay")
	}
	if g.UFO.X != 300 || len(g.Bullets) != 0 {
		t.Error("nothing should move or fire during the delay")
	}

	g.Update(tick(1).Add(LevelCompleteDelay), Input{})
	if g.State != StatePlaying || g.Level != 2 {
		t.Fatalf("expected playing level 2, got %s level %d", g.State, g.Level)
	}
	if g.Formation.Alive() != 32 {
		t.Errorf("level 2 should have 32 enemies, got %d", g.Formation.Alive())
	}
	if rows := g.Formation.Enemies[len(g.Formation.Enemies)-1].Row + 1; rows != RowsForLevel(2) {
		t.Errorf("expected %d rows, got %d", RowsForLevel(2), rows)
	}
	if g.UFO != nil || len(g.Barricades) != BarricadeCount {
		t.Error("new level should clear the UFO and rebuild barricades")
	}
}

func TestDyingPlayerBlocksLevelComplete(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	g.Player.Kill(t0)
	for i := range g.Formation.Enemies {
		g.Formation.Kill(i)
	}
	g.Update(tick(1), Input{})
	if g.State != StatePlaying {
		t.Errorf("death should take precedence, got %s", g.State)
	}
	g.Update(t0.Add(DeathDelay), Input{})
	if g.State != StateGameOver {
		t.Errorf("expected game over, got %s", g.State)
	}
}

func TestUFOSpawnGate(t *testing.T) {
	rng := &fixedRand{floats: []float64{0.9}}
	g, sounds, _ := newPlayingGame(rng)

	g.Update(t0.Add(UFOSpawnInterval-time.Millisecond), Input{})
	if g.UFO != nil {
		t.Fatal("UFO should not spawn before the interval")
	}
	g.Update(t0.Add(UFOSpawnInterval), Input{})
	if g.UFO != nil {
		t.Fatal("failed chance roll should not spawn")
	}

	rng.floats = []float64{0.1}
	g.Update(t0.Add(UFOSpawnInterval+time.Second), Input{})
	if g.UFO != nil {
		t.Fatal("a failed roll restarts the interval")
	}
	g.Update(t0.Add(2*UFOSpawnInterval), Input{})
	if g.UFO == nil {
		t.Fatal("expected a UFO")
	}
	if sounds.count(SoundUFO) != 1 {
		t.Error("UFO sound should start")
	}
}

func TestSingleUFO(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	var prevUFO *UFO
	spawns := 0
	for n := 1; n < 60*30 && g.State == StatePlaying; n++ {
		g.Update(tick(n), Input{Fire: true})
		if g.UFO != nil && prevUFO != nil && g.UFO != prevUFO {
			t.Fatalf("tick %d: UFO replaced while another was present", n)
		}
		if g.UFO != nil && g.UFO != prevUFO {
			spawns++
		}
		prevUFO = g.UFO
	}
	if spawns == 0 {
		t.Error("expected at least one UFO")
	}
}

func TestPowerUpPickupShield(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{})
	p := g.Player
	g.PowerUp = &PowerUp{
		Rect:   Rect{X: p.CenterX() - PowerUpSize/2, Y: p.Y - 10, W: PowerUpSize, H: PowerUpSize},
		Speed:  PowerUpSpeed,
		Active: true,
		Kind:   PowerShield,
	}
	g.Update(tick(1), Input{})
	if !g.Player.Shielded || g.Player.Powered {
		t.Error("shield pickup should raise the shield without arming a shot")
	}
	if g.PowerUp != nil {
		t.Error("power-up should be consumed")
	}
	if sounds.count(SoundPowerUpCollected) != 1 {
		t.Error("pickup sound should play")
	}
}

func TestPowerUpDestroysEnemy(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	e := g.Formation.Enemies[2*EnemyCols]
	g.PowerUp = &PowerUp{
		Rect:   Rect{X: e.X + 10, Y: e.Y + 10, W: PowerUpSize, H: PowerUpSize},
		Speed:  PowerUpSpeed,
		Active: true,
		Kind:   PowerBeam,
	}
	g.Update(tick(1), Input{})
	if g.Formation.Enemies[2*EnemyCols].Alive {
		t.Error("enemy touched by the power-up should be destroyed")
	}
	if g.PowerUp != nil || len(g.Explosions) != 1 {
		t.Error("power-up should be destroyed with an explosion")
	}
	if g.Player.Score != 0 {
		t.Errorf("power-up kills award nothing, got %d", g.Player.Score)
	}
}

func TestPlayerBulletHitsUFOFirst(t *testing.T) {
	g, sounds, _ := newPlayingGame(&fixedRand{})
	g.UFO = &UFO{
		Rect:      Rect{X: 380, Y: UFOY, W: UFOWidth, H: UFOHeight},
		Speed:     UFOSpeed,
		Active:    true,
		Direction: 1,
		Points:    150,
		Carries:   PowerSpread,
	}
	g.Bullets = append(g.Bullets, Bullet{
		Rect:  Rect{X: 396, Y: 55, W: BulletWidth, H: BulletHeight},
		Speed: BulletSpeed,
		Alive: true,
	})

	g.Update(tick(1), Input{})

	if g.UFO != nil {
		t.Error("UFO should be destroyed")
	}
	if g.Player.Score != 150 {
		t.Errorf("expected UFO points, got %d", g.Player.Score)
	}
	if g.PowerUp == nil || g.PowerUp.Kind != PowerSpread {
		t.Fatal("UFO should drop its power-up")
	}
	if g.PowerUp.X != 398 || g.PowerUp.Y != UFOY+UFOHeight {
		t.Errorf("power-up should drop from the UFO's underside, got (%f, %f)", g.PowerUp.X, g.PowerUp.Y)
	}
	stopped := false
	for _, id := range sounds.stopped {
		stopped = stopped || id == SoundUFO
	}
	if !stopped {
		t.Error("UFO sound should stop")
	}
}

func TestPauseFreezesTimers(t *testing.T) {
	g, _, _ := newPlayingGame(&fixedRand{})
	x := g.Formation.Enemies[0].X

	g.Update(tick(1), Input{Pause: true})
	if g.State != StatePaused {
		t.Fatalf("expected paused, got %s", g.State)
	}
	g.Update(t0.Add(10*time.Second), Input{Fire: true})
	if g.Formation.Enemies[0].X != x || len(g.Bullets) != 0 {
		t.Error("nothing should move while paused")
	}

	g.Update(t0.Add(10*time.Second), Input{Pause: true})
	if g.State != StatePlaying {
		t.Fatalf("expected playing, got %s", g.State)
	}
	g.Update(t0.Add(10*time.Second+100*time.Millisecond), Input{})
	if g.Formation.Enemies[0].X != x {
		t.Error("paused time should not count toward the move interval")
	}
	g.Update(t0.Add(10*time.Second+InitialMoveInterval), Input{})
	if g.Formation.Enemies[0].X == x {
		t.Error("formation should move once the interval has really elapsed")
	}
}

func TestPlayAgainRestarts(t *testing.T) {
	g, _, sink := newPlayingGame(&fixedRand{})
	g.Player.Score = 900
	g.Formation.Enemies[0].Y = LossLine
	g.Update(tick(1), Input{})
	if g.State != StateGameOver {
		t.Fatalf("expected game over, got %s", g.State)
	}

	g.Buttons.SetPlayAgain(Rect{X: 300, Y: 350, W: 200, H: 50})
	g.Update(tick(2), Input{Clicked: true, Click: Point{X: 400, Y: 375}})
	if g.State != StatePlaying || g.Level != 1 || g.Player.Score != 0 {
		t.Fatalf("expected a fresh game, got %s level %d score %d", g.State, g.Level, g.Player.Score)
	}

	g.Formation.Enemies[0].Y = LossLine
	g.Update(tick(3), Input{})
	if len(sink.scores) != 2 {
		t.Errorf("each game should report once, got %v", sink.scores)
	}
}
