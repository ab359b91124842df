package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/cchutis/halloween-wedding/game"
)

// Pitches in Hz
const (
	noteE2 = 82.41
	noteF2 = 87.31
	noteG2 = 98.00
	noteA2 = 110.00
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

// IsMusic reports whether id is a music track. Only one track plays at a
// time.
func IsMusic(id game.SoundID) bool {
	switch id {
	case game.MusicTitle, game.MusicGameLoop, game.MusicGameOver, game.MusicHighScore:
		return true
	}
	return false
}

// loops reports whether id repeats until stopped
func loops(id game.SoundID) bool {
	return IsMusic(id) || id == game.SoundUFO
}

// voice builds one pass of the sound for id, or nil for an unknown id
func voice(id game.SoundID, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch id {
	case game.MusicTitle:
		return melody(WaveSine, 0.25, rate,
			note{noteA4, 300 * ms}, note{noteC5, 300 * ms}, note{noteE5, 300 * ms}, note{noteC5, 300 * ms},
			note{noteG4, 300 * ms}, note{noteB4, 300 * ms}, note{noteE5, 600 * ms}, note{0, 300 * ms},
		)
	case game.MusicGameLoop:
		// the marching four-note bass
		return melody(WaveSquare, 0.15, rate,
			note{noteA2, 150 * ms}, note{0, 350 * ms},
			note{noteG2, 150 * ms}, note{0, 350 * ms},
			note{noteF2, 150 * ms}, note{0, 350 * ms},
			note{noteE2, 150 * ms}, note{0, 350 * ms},
		)
	case game.MusicGameOver:
		return melody(WaveSaw, 0.2, rate,
			note{noteG4, 400 * ms}, note{noteF4, 400 * ms}, note{noteE4, 400 * ms}, note{noteD4, 400 * ms},
			note{noteC4, 1200 * ms}, note{0, 1600 * ms},
		)
	case game.MusicHighScore:
		return melody(WaveSquare, 0.2, rate,
			note{noteC5, 120 * ms}, note{noteE5, 120 * ms}, note{noteG5, 120 * ms}, note{noteC6, 480 * ms},
			note{noteG5, 120 * ms}, note{noteC6, 720 * ms},
		)
	case game.SoundUFO:
		return sweep(WaveSine, 600, 900, 250*ms, 0.12, rate)
	case game.SoundPlayerShoot:
		return sweep(WaveSquare, 880, 220, 120*ms, 0.2, rate)
	case game.SoundPlayerShootBeam:
		return sweep(WaveSaw, 1200, 300, 350*ms, 0.25, rate)
	case game.SoundPlayerShootSpread:
		return beep.Mix(
			sweep(WaveSquare, 900, 300, 150*ms, 0.15, rate),
			sweep(WaveSquare, 1200, 400, 150*ms, 0.1, rate),
		)
	case game.SoundShieldBroken:
		return beep.Mix(
			sweep(WaveSine, 1400, 700, 300*ms, 0.2, rate),
			sweep(WaveNoise, 0, 0, 150*ms, 0.1, rate),
		)
	case game.SoundPlayerExplode:
		return beep.Mix(
			sweep(WaveNoise, 0, 0, 900*ms, 0.35, rate),
			sweep(WaveSaw, 160, 40, 900*ms, 0.2, rate),
		)
	case game.SoundEnemyShoot:
		return sweep(WaveSquare, 300, 150, 100*ms, 0.1, rate)
	case game.SoundEnemyDestroyed:
		return sweep(WaveNoise, 0, 0, 200*ms, 0.25, rate)
	case game.SoundPowerUpCollected:
		return melody(WaveSquare, 0.2, rate,
			note{noteC5, 80 * ms}, note{noteE5, 80 * ms}, note{noteG5, 80 * ms}, note{noteC6, 160 * ms},
		)
	}
	return nil
}

// sweep is a single enveloped glide
func sweep(wave Wave, from, to float64, d time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	osc := Tone(wave, from, to, d, rate)
	return volume(Envelope(osc, d, 5*time.Millisecond, d/2, rate), gain)
}
