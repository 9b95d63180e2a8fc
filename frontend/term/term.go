// Package term is a terminal frontend. It draws the framebuffer with
// half-block characters and reads the keyboard in raw mode.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"golang.org/x/sys/unix"

	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/emu"
)

const (
	escape = 0x1B

	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	home        = "\x1b[H"
	resetColors = "\x1b[0m"
)

// Terminal implements host.Display and host.Input on a tty.
type Terminal struct {
	in      *os.File
	out     io.Writer
	restore unix.Termios
	cfg     *config.Config
	keys    *keyHolder
	logger  logr.Logger
	buf     []byte
}

// Open puts stdin into raw mode and prepares stdout for drawing.
func Open(cfg *config.Config, logger logr.Logger) (*Terminal, error) {
	t := &Terminal{
		in:     os.Stdin,
		out:    os.Stdout,
		cfg:    cfg,
		keys:   newKeyHolder(cfg, cfg.KeyHoldTicks),
		logger: logger,
		buf:    make([]byte, 64),
	}

	if err := t.enterRaw(); err != nil {
		return nil, err
	}

	if _, err := io.WriteString(t.out, hideCursor+clearScreen); err != nil {
		_ = t.exitRaw()
		return nil, fmt.Errorf("prepare terminal: %w", err)
	}

	logger.V(1).Info("terminal frontend ready", "key_hold_ticks", cfg.KeyHoldTicks)
	return t, nil
}

func (t *Terminal) enterRaw() error {
	fd := int(t.in.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("stdin is not a terminal: %w", err)
	}

	t.restore = *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	// Reads return immediately with whatever is buffered.
	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	return nil
}

func (t *Terminal) exitRaw() error {
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, &t.restore); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	_, _ = io.WriteString(t.out, resetColors+showCursor+"\r\n")
	return t.exitRaw()
}

// Present draws fb at the top-left corner.
func (t *Terminal) Present(fb *emu.Framebuffer) error {
	_, err := io.WriteString(t.out, home+Render(fb, t.cfg.Foreground, t.cfg.Background))
	return err
}

// Poll drains pending keyboard bytes into the keypad. Escape quits.
func (t *Terminal) Poll(keypad *emu.Keypad) bool {
	for {
		n, err := t.in.Read(t.buf)
		if n > 0 && t.keys.Feed(t.buf[:n]) {
			return true
		}
		if err != nil && err != io.EOF {
			t.logger.Error(err, "keyboard read failed")
		}
		if n < len(t.buf) {
			break
		}
	}

	t.keys.Apply(keypad)
	return false
}
