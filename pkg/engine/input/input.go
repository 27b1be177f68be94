// Package input reads terminal key presses and maps them to high-level
// intents. Raw events flow through a debounce layer and a bindings
// table before reaching game code, so bindings can change without
// touching the game loop.
package input

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

var stdinReader *bufio.Reader

// GetLine reads a full line of input from stdin, for prompts that need
// free text (shop quantities, confirmations)
func GetLine() string {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil {
		log.Fatalf("Cannot read stdin: %v", err)
		return ""
	}

	return strings.Trim(line, "\r\n")
}

// rawMode holds the terminal state while it is switched to raw input.
type rawMode struct {
	fd    int
	state *term.State
}

func enterRawMode() rawMode {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatalf("Cannot set terminal to raw mode: %v", err)
	}
	return rawMode{fd: fd, state: state}
}

func (r rawMode) exit() {
	term.Restore(r.fd, r.state)
}

func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// escapeCodes maps the final byte of a CSI (ESC [) or SS3 (ESC O)
// sequence to a raw event code.
var escapeCodes = map[byte]string{
	'A': "arrow_up",
	'B': "arrow_down",
	'C': "arrow_right",
	'D': "arrow_left",
}

// readEscape consumes the remainder of an escape sequence after the ESC
// byte. Returns the event code for recognised sequences, "" otherwise.
func readEscape() string {
	b, err := readByte()
	if err != nil || (b != '[' && b != 'O') {
		return ""
	}
	fin, err := readByte()
	if err != nil {
		return ""
	}
	return escapeCodes[fin]
}

func event(code string) RawInput {
	return RawInput{
		Device:    DeviceTerminal,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// ReadEvent reads one input event from the terminal. Arrow keys yield an
// event immediately; printable characters are echoed and collected into
// a word terminated by Enter. Ctrl+C exits the program.
func ReadEvent() RawInput {
	// Raw reads bypass the buffered line reader; drop it so GetLine
	// starts fresh afterwards.
	stdinReader = nil

	raw := enterRawMode()
	defer raw.exit()

	for {
		b, err := readByte()
		if err != nil {
			raw.exit()
			log.Fatalf("Cannot read stdin: %v", err)
		}

		switch {
		case b == 0x1b:
			if code := readEscape(); code != "" {
				fmt.Print("\r\n")
				return event(code)
			}
		case b == 3: // Ctrl+C
			raw.exit()
			fmt.Println()
			os.Exit(0)
		case b == '\r' || b == '\n':
			fmt.Print("\r\n")
			return event("enter")
		default:
			if word := collectWord(b, raw); word != "" {
				return event(word)
			}
		}
	}
}

// collectWord gathers printable characters until Enter, handling echo
// and backspace. Returns "" when everything typed was erased.
func collectWord(first byte, raw rawMode) string {
	var buf []byte
	if first >= 32 && first < 127 {
		buf = append(buf, first)
		fmt.Print(string(first))
	}

	for {
		b, err := readByte()
		if err != nil {
			break
		}

		switch {
		case b == 0x1b:
			// Arrows pressed during text entry are discarded
			readEscape()
		case b == 127 || b == 8: // Backspace
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Print("\b \b")
			}
		case b == '\r' || b == '\n':
			fmt.Print("\r\n")
			return strings.ToLower(string(buf))
		case b == 3:
			raw.exit()
			fmt.Println()
			os.Exit(0)
		case b >= 32 && b < 127:
			buf = append(buf, b)
			fmt.Print(string(b))
		}
	}

	return strings.ToLower(string(buf))
}
