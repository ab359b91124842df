package game

// SoundID names a music track or sound effect
type SoundID string

const (
	MusicTitle     SoundID = "titleScreenMusic"
	MusicGameLoop  SoundID = "gameLoopMusic"
	MusicGameOver  SoundID = "gameOverMusic"
	MusicHighScore SoundID = "highScoreMusic"
	SoundUFO       SoundID = "ufoSound"

	SoundPlayerShoot       SoundID = "playerShoot"
	SoundPlayerShootBeam   SoundID = "playerShootBeam"
	SoundPlayerShootSpread SoundID = "playerShootSpread"
	SoundShieldBroken      SoundID = "shieldBroken"
	SoundPlayerExplode     SoundID = "playerExplode"
	SoundEnemyShoot        SoundID = "enemyShoot"
	SoundEnemyDestroyed    SoundID = "enemyDestroyed"
	SoundPowerUpCollected  SoundID = "powerUpCollected"
)

// Sounds is the audio collaborator. Calls must return immediately.
type Sounds interface {
	Play(id SoundID)
	Stop(id SoundID)
	SetMuted(muted bool)
}

// NopSounds discards every call
type NopSounds struct{}

func (NopSounds) Play(SoundID)  {}
func (NopSounds) Stop(SoundID)  {}
func (NopSounds) SetMuted(bool) {}
