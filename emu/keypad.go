package emu

// NumKeys is the number of keys on the hexadecimal keypad.
const NumKeys = 16

// Keypad holds the pressed state of the sixteen keys 0x0-0xF. It is written
// by the host input collaborator and only read by instructions.
type Keypad struct {
	keys [NumKeys]bool
}

// Set records the state of key k. Indices outside 0x0-0xF are ignored.
func (k *Keypad) Set(key uint8, pressed bool) {
	if int(key) < NumKeys {
		k.keys[key] = pressed
	}
}

// Press marks key as held down.
func (k *Keypad) Press(key uint8) { k.Set(key, true) }

// Release marks key as up.
func (k *Keypad) Release(key uint8) { k.Set(key, false) }

// IsPressed reports whether key is down. Indices outside 0x0-0xF are never
// pressed.
func (k *Keypad) IsPressed(key uint8) bool {
	return int(key) < NumKeys && k.keys[key]
}

// FirstPressed returns the lowest pressed key index.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [NumKeys]bool{}
}
