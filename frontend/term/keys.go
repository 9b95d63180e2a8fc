package term

import (
	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/emu"
)

// keyHolder turns a stream of key bytes into held keys. A terminal only
// reports presses, so each press keeps the key down for a number of ticks,
// and auto-repeat refreshes it while the host key is held.
type keyHolder struct {
	cfg       *config.Config
	holdTicks int
	remaining [emu.NumKeys]int
}

func newKeyHolder(cfg *config.Config, holdTicks int) *keyHolder {
	return &keyHolder{cfg: cfg, holdTicks: holdTicks}
}

// Feed records presses. It returns true on Escape.
func (h *keyHolder) Feed(input []byte) bool {
	for _, b := range input {
		if b == escape {
			return true
		}
		if key, ok := h.cfg.Lookup(string(rune(b))); ok {
			h.remaining[key] = h.holdTicks
		}
	}
	return false
}

// Apply writes the held set into keypad and ages every hold by one tick.
func (h *keyHolder) Apply(keypad *emu.Keypad) {
	for key := range h.remaining {
		keypad.Set(uint8(key), h.remaining[key] > 0)
		if h.remaining[key] > 0 {
			h.remaining[key]--
		}
	}
}
