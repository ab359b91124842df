package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/cchutis/halloween-wedding/game"
)

const (
	SampleRate = beep.SampleRate(44100)
	bufferTime = 100 * time.Millisecond
)

// Manager plays the game's sound cues through one mixer. Music tracks are
// exclusive: starting one stops the others. Looping cues keep playing until
// stopped.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	loops       map[game.SoundID]*beep.Ctrl
	muted       bool
	initialized bool
	log         *logrus.Entry
}

// NewManager creates a manager. It is silent until Init succeeds, but still
// tracks which loops are playing.
func NewManager() *Manager {
	mixer := &beep.Mixer{}
	return &Manager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2},
		loops:  make(map[game.SoundID]*beep.Ctrl),
		log:    logrus.WithField("component", "audio"),
	}
}

// Init opens the audio device. A machine without one gets an error and the
// manager stays silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(bufferTime)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.master)
	m.initialized = true
	return nil
}

// Close stops everything and releases the device
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lock()
	for id, ctrl := range m.loops {
		ctrl.Streamer = nil
		delete(m.loops, id)
	}
	m.mixer.Clear()
	m.unlock()
	if m.initialized {
		speaker.Close()
		m.initialized = false
	}
}

// Play starts a cue. A loop that is already playing is left alone.
func (m *Manager) Play(id game.SoundID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if IsMusic(id) {
		m.stopAllMusic(id)
	}
	if _, playing := m.loops[id]; playing {
		return
	}

	var s beep.Streamer
	if loops(id) {
		s = beep.Iterate(func() beep.Streamer { return voice(id, SampleRate) })
	} else {
		s = voice(id, SampleRate)
	}
	if s == nil {
		m.log.WithField("sound", id).Warn("unknown sound")
		return
	}

	m.lock()
	defer m.unlock()
	if loops(id) {
		ctrl := &beep.Ctrl{Streamer: s}
		m.loops[id] = ctrl
		m.mixer.Add(ctrl)
		return
	}
	m.mixer.Add(s)
}

// Stop ends a looping cue
func (m *Manager) Stop(id game.SoundID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lock()
	defer m.unlock()
	m.stop(id)
}

// StopAllMusic ends every music track
func (m *Manager) StopAllMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAllMusic("")
}

func (m *Manager) stopAllMusic(except game.SoundID) {
	m.lock()
	defer m.unlock()
	for id := range m.loops {
		if IsMusic(id) && id != except {
			m.stop(id)
		}
	}
}

// stop drops the loop's streamer so the mixer discards it on the next pass
func (m *Manager) stop(id game.SoundID) {
	if ctrl, ok := m.loops[id]; ok {
		ctrl.Streamer = nil
		delete(m.loops, id)
	}
}

// SetMuted silences or restores all output without stopping anything
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lock()
	m.master.Silent = muted
	m.unlock()
	m.muted = muted
}

// ToggleMute flips the mute state and returns the new one
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	muted := !m.muted
	m.mu.Unlock()
	m.SetMuted(muted)
	return muted
}

// Muted reports whether output is silenced
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Playing reports whether a looping cue is running
func (m *Manager) Playing(id game.SoundID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.loops[id]
	return ok
}

// lock guards streamer state against the speaker goroutine
func (m *Manager) lock() {
	if m.initialized {
		speaker.Lock()
	}
}

func (m *Manager) unlock() {
	if m.initialized {
		speaker.Unlock()
	}
}
