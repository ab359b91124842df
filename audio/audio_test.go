package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/cchutis/halloween-wedding/game"
)

var allSounds = []game.SoundID{
	game.MusicTitle, game.MusicGameLoop, game.MusicGameOver, game.MusicHighScore,
	game.SoundUFO, game.SoundPlayerShoot, game.SoundPlayerShootBeam, game.SoundPlayerShootSpread,
	game.SoundShieldBroken, game.SoundPlayerExplode, game.SoundEnemyShoot, game.SoundEnemyDestroyed,
	game.SoundPowerUpCollected,
}

// drain streams s to the end and returns the sample count and peak level
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if smp[0] > peak {
				peak = smp[0]
			}
			if -smp[0] > peak {
				peak = -smp[0]
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	return total, peak
}

func TestToneLength(t *testing.T) {
	s := Tone(WaveSquare, 440, 220, 10*time.Millisecond, SampleRate)
	n, peak := drain(t, s, SampleRate.N(time.Second))
	if want := SampleRate.N(10 * time.Millisecond); n != want {
		t.Errorf("tone streamed %d samples, want %d", n, want)
	}
	if peak != 1 {
		t.Errorf("square peak = %v, want 1", peak)
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	d := 20 * time.Millisecond
	s := Envelope(Tone(WaveSquare, 100, 100, d, SampleRate), d, 0, d, SampleRate)
	buf := make([][2]float64, SampleRate.N(d))
	n, _ := s.Stream(buf)
	if n == 0 {
		t.Fatal("no samples")
	}
	first, last := buf[0][0], buf[n-1][0]
	if first != 1 {
		t.Errorf("first sample = %v, want full level", first)
	}
	if last < -0.01 || last > 0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
}

func TestEveryCueHasAVoice(t *testing.T) {
	for _, id := range allSounds {
		s := voice(id, SampleRate)
		if s == nil {
			t.Errorf("%s has no voice", id)
			continue
		}
		n, peak := drain(t, s, SampleRate.N(10*time.Second))
		if n == 0 || peak == 0 {
			t.Errorf("%s is silent", id)
		}
		if n >= SampleRate.N(10*time.Second) {
			t.Errorf("%s pass never ends", id)
		}
	}
	if voice("nope", SampleRate) != nil {
		t.Error("unknown id has a voice")
	}
}

func TestMusicIsExclusive(t *testing.T) {
	m := NewManager()
	m.Play(game.MusicTitle)
	m.Play(game.SoundUFO)
	m.Play(game.MusicGameLoop)

	if m.Playing(game.MusicTitle) {
		t.Error("title music still playing")
	}
	if !m.Playing(game.MusicGameLoop) {
		t.Error("game loop music not playing")
	}
	if !m.Playing(game.SoundUFO) {
		t.Error("starting music stopped the UFO loop")
	}

	m.StopAllMusic()
	if m.Playing(game.MusicGameLoop) {
		t.Error("StopAllMusic left music playing")
	}
}

func TestReplayingMusicKeepsTrack(t *testing.T) {
	m := NewManager()
	m.Play(game.MusicGameLoop)
	ctrl := m.loops[game.MusicGameLoop]
	m.Play(game.MusicGameLoop)
	if m.loops[game.MusicGameLoop] != ctrl {
		t.Error("replaying the current track restarted it")
	}
	if m.mixer.Len() != 1 {
		t.Errorf("mixer has %d streamers", m.mixer.Len())
	}
}

func TestStoppedLoopLeavesMixer(t *testing.T) {
	m := NewManager()
	m.Play(game.SoundUFO)
	m.Stop(game.SoundUFO)
	if m.Playing(game.SoundUFO) {
		t.Fatal("UFO still playing")
	}
	drain(t, m.mixer, 1024)
	if m.mixer.Len() != 0 {
		t.Errorf("mixer kept %d streamers", m.mixer.Len())
	}
}

func TestOneShotDrains(t *testing.T) {
	m := NewManager()
	m.Play(game.SoundEnemyShoot)
	if m.mixer.Len() != 1 {
		t.Fatalf("mixer has %d streamers", m.mixer.Len())
	}
	buf := make([][2]float64, SampleRate.N(time.Second))
	m.mixer.Stream(buf)
	m.mixer.Stream(buf[:1])
	if m.mixer.Len() != 0 {
		t.Errorf("finished effect still in the mixer")
	}
}

func TestMute(t *testing.T) {
	m := NewManager()
	if m.Muted() {
		t.Fatal("starts muted")
	}
	if !m.ToggleMute() || !m.master.Silent {
		t.Error("toggle did not mute")
	}
	if m.ToggleMute() || m.master.Silent {
		t.Error("toggle did not unmute")
	}
	m.SetMuted(true)
	if !m.Muted() {
		t.Error("SetMuted(true) ignored")
	}
}

func TestCloseWithoutInit(t *testing.T) {
	m := NewManager()
	m.Play(game.MusicTitle)
	m.Close()
	if m.Playing(game.MusicTitle) {
		t.Error("music survived Close")
	}
}

func TestManagerIsGameSounds(t *testing.T) {
	var _ game.Sounds = NewManager()
}
