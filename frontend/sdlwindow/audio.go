package sdlwindow

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/host"
)

const (
	sampleFreq = 44100

	// bufferLength is the number of samples queued per refill, about
	// 23 ms at sampleFreq.
	bufferLength = 1024
)

// Buzzer plays a square wave while the tone is on. It implements
// host.Speaker.
type Buzzer struct {
	id     sdl.AudioDeviceID
	wave   []uint8
	on     bool
	logger logr.Logger
}

// OpenSpeaker opens the default audio device. Without one it logs the
// problem and returns host.NopSpeaker, so a session can run silently.
func OpenSpeaker(cfg *config.Config, logger logr.Logger) host.Speaker {
	b, err := openBuzzer(cfg, logger)
	if err != nil {
		logger.Info("audio unavailable, continuing without sound", "reason", err.Error())
		return host.NopSpeaker{}
	}
	return b
}

func openBuzzer(cfg *config.Config, logger logr.Logger) (*Buzzer, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("init SDL audio: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     sampleFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  bufferLength,
	}

	var actualSpec sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	b := &Buzzer{
		id:     id,
		logger: logger,
	}
	b.wave = squareWave(int(actualSpec.Freq), cfg.ToneHz, cfg.Volume, actualSpec.Silence, bufferLength)

	sdl.PauseAudioDevice(id, false)
	logger.V(1).Info("audio opened", "freq", actualSpec.Freq, "tone_hz", cfg.ToneHz)

	return b, nil
}

// SetTone starts or stops the buzzer. While on, the device queue is kept
// topped up with whole wave periods.
func (b *Buzzer) SetTone(on bool) {
	if !on {
		if b.on {
			sdl.ClearQueuedAudio(b.id)
		}
		b.on = false
		return
	}

	b.on = true
	if !needsRefill(sdl.GetQueuedAudioSize(b.id), len(b.wave)) {
		return
	}
	if err := sdl.QueueAudio(b.id, b.wave); err != nil {
		b.logger.Error(err, "queue audio")
	}
}

// Close releases the audio device.
func (b *Buzzer) Close() {
	sdl.ClearQueuedAudio(b.id)
	sdl.CloseAudioDevice(b.id)
}

// needsRefill reports whether fewer than two wave buffers are queued.
func needsRefill(queued uint32, waveLen int) bool {
	return queued < uint32(2*waveLen)
}

// squareWave returns unsigned 8-bit samples holding a whole number of
// periods, at least minSamples long.
func squareWave(sampleRate, toneHz int, volume float64, silence uint8, minSamples int) []uint8 {
	period := sampleRate / toneHz
	if period < 2 {
		period = 2
	}
	periods := (minSamples + period - 1) / period

	amplitude := uint8(volume * 127)
	wave := make([]uint8, periods*period)
	for i := range wave {
		if i%period < period/2 {
			wave[i] = silence + amplitude
		} else {
			wave[i] = silence - amplitude
		}
	}
	return wave
}
