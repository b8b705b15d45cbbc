package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/vitobasso/gosynth/internal/audio"
	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/theory"
)

var (
	deviceName        string
	virtualSampleRate int
	virtualMaxVoices  int
	virtualLoopSlots  int
)

var virtualCmd = &cobra.Command{
	Use:   "virtual",
	Short: "Create a virtual MIDI device feeding the synth",
	Long: `Create a virtual MIDI input device that can receive MIDI commands from other
applications. The virtual device shows up as a MIDI destination in other music software;
any notes it receives are resolved against the current key and played through the
synthesis engine; notes outside that key's scale are skipped. The mod wheel (CC1) and CC2 drive the instrument's X/Y modulation
targets, and CC123 (all sound off) releases every held voice.

Example:
  gosynth virtual --name "My Synth"
`,
	Run: runVirtual,
}

func init() {
	virtualCmd.Flags().StringVarP(&deviceName, "name", "n", "gosynth virtual synth", "name for the virtual MIDI device")
	virtualCmd.Flags().IntVar(&virtualSampleRate, "sample-rate", 48000, "host audio sample rate")
	virtualCmd.Flags().IntVar(&virtualMaxVoices, "max-voices", 16, "maximum simultaneous voices")
	virtualCmd.Flags().IntVar(&virtualLoopSlots, "loop-slots", 2, "number of loop recorder slots")
	rootCmd.AddCommand(virtualCmd)
}

func runVirtual(cmd *cobra.Command, args []string) {
	m := newVirtualModel(deviceName)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.program = p // lets the MIDI listener goroutine feed messages back into Update

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}

// heldNote is one voice currently sounding through the virtual port, addressed by the
// received MIDI key number converted to a theory.Pitch (before any key resolution)
// rather than the bare number, so the TUI reads the same way the manual-mode performance
// TUI does.
type heldNote struct {
	pitch    theory.Pitch
	velocity uint8
}

// virtualModel is the TUI state for the virtual MIDI device mode.
type virtualModel struct {
	deviceName string
	key        theory.Key
	synth      *audio.Synth
	driver     *rtmididrv.Driver
	inPort     drivers.In
	stopFunc   func()

	held    map[control.Id]heldNote
	history []string // most recent message first, capped at maxMessageHistory
	count   int

	err     error
	width   int
	height  int
	program *tea.Program
}

const maxMessageHistory = 12

// midiEventMsg is sent into Update when a MIDI message is received on the virtual port.
type midiEventMsg struct {
	kind       string
	channel    uint8
	note       uint8
	velocity   uint8
	controller uint8
	value      uint8
}

func newVirtualModel(name string) *virtualModel {
	return &virtualModel{
		deviceName: name,
		key:        theory.C,
		held:       make(map[control.Id]heldNote),
	}
}

func (m *virtualModel) Init() tea.Cmd {
	return m.initMIDI
}

type initResultMsg struct {
	synth  *audio.Synth
	driver *rtmididrv.Driver
	inPort drivers.In
	err    error
}

func (m *virtualModel) initMIDI() tea.Msg {
	synthEngine, err := audio.NewSynth(virtualSampleRate, defaultSpecs(virtualMaxVoices), m.key, virtualLoopSlots)
	if err != nil {
		return initResultMsg{err: fmt.Errorf("failed to initialize audio: %w", err)}
	}

	driver, err := rtmididrv.New()
	if err != nil {
		synthEngine.Close()
		return initResultMsg{err: fmt.Errorf("failed to initialize MIDI driver: %w", err)}
	}

	port, err := driver.OpenVirtualIn(m.deviceName)
	if err != nil {
		driver.Close()
		synthEngine.Close()
		return initResultMsg{err: fmt.Errorf("failed to create virtual MIDI port: %w", err)}
	}

	return initResultMsg{synth: synthEngine, driver: driver, inPort: port}
}

func (m *virtualModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case initResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.synth, m.driver, m.inPort = msg.synth, msg.driver, msg.inPort
		return m, m.listenMIDI

	case midiEventMsg:
		m.apply(msg)
		m.count++
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.cleanup
		}
	}
	return m, nil
}

// listenMIDI registers the rtmidi callback, translating each raw MIDI message into a
// control.Command against the running Synth and a midiEventMsg for the TUI to log.
func (m *virtualModel) listenMIDI() tea.Msg {
	if m.inPort == nil {
		return nil
	}

	stop, err := m.inPort.Listen(func(data []byte, timestamp int32) {
		if len(data) < 1 {
			return
		}
		status, channel := data[0]&0xF0, data[0]&0x0F

		switch status {
		case 0x90, 0x80:
			if len(data) < 3 {
				return
			}
			note, velocity := data[1], data[2]
			pitch := theory.PitchFromIndex(int(note))
			id := control.Id{Pitch: pitch, Discriminator: channel}
			if status == 0x90 && velocity > 0 {
				if m.synth != nil {
					m.synth.NoteOn(pitch, float64(velocity)/127, id)
				}
				m.send(midiEventMsg{kind: "noteOn", channel: channel, note: note, velocity: velocity})
			} else {
				if m.synth != nil {
					m.synth.NoteOff(id)
				}
				m.send(midiEventMsg{kind: "noteOff", channel: channel, note: note})
			}
		case 0xB0:
			if len(data) < 3 {
				return
			}
			controller, value := data[1], data[2]
			if m.synth != nil {
				switch controller {
				case 1: // mod wheel -> X
					m.synth.Enqueue(control.ModXYCmd{X: float64(value) / 127, Y: 0})
				case 2: // breath/aux -> Y
					m.synth.Enqueue(control.ModXYCmd{X: 0, Y: float64(value) / 127})
				case 123: // all sound off
					m.synth.AllNotesOff()
				}
			}
			m.send(midiEventMsg{kind: "cc", channel: channel, controller: controller, value: value})
		}
	}, drivers.ListenConfig{})

	if err != nil {
		m.err = fmt.Errorf("failed to listen to MIDI port: %w", err)
		return nil
	}
	m.stopFunc = stop
	return nil
}

func (m *virtualModel) send(msg midiEventMsg) {
	if m.program != nil {
		m.program.Send(msg)
	}
}

// apply updates the held-notes and message-log state from a decoded MIDI event; this is
// where the TUI's view of "what's sounding" is kept in terms of pitches rather than raw
// note numbers.
func (m *virtualModel) apply(msg midiEventMsg) {
	var line string
	switch msg.kind {
	case "noteOn":
		pitch := theory.PitchFromIndex(int(msg.note))
		id := control.Id{Pitch: pitch, Discriminator: msg.channel}
		m.held[id] = heldNote{pitch: pitch, velocity: msg.velocity}
		line = fmt.Sprintf("Note On  ch%-2d %-4s vel:%d", msg.channel+1, pitch, msg.velocity)
	case "noteOff":
		pitch := theory.PitchFromIndex(int(msg.note))
		delete(m.held, control.Id{Pitch: pitch, Discriminator: msg.channel})
		line = fmt.Sprintf("Note Off ch%-2d %-4s", msg.channel+1, pitch)
	case "cc":
		line = fmt.Sprintf("CC       ch%-2d ctrl:%-3d val:%d", msg.channel+1, msg.controller, msg.value)
		if msg.controller == 123 {
			m.held = make(map[control.Id]heldNote)
		}
	}
	m.history = append([]string{line}, m.history...)
	if len(m.history) > maxMessageHistory {
		m.history = m.history[:maxMessageHistory]
	}
}

func (m *virtualModel) cleanup() tea.Msg {
	if m.stopFunc != nil {
		m.stopFunc()
	}
	if m.inPort != nil {
		m.inPort.Close()
	}
	if m.driver != nil {
		m.driver.Close()
	}
	if m.synth != nil {
		m.synth.AllNotesOff()
		m.synth.Close()
	}
	return tea.Quit()
}

var (
	virtualTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)
	virtualSubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	virtualStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	virtualErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	virtualNoteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	virtualHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	virtualLogStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	virtualLogHeadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
)

func (m *virtualModel) View() string {
	var b strings.Builder
	b.WriteString(virtualTitleStyle.Render("Virtual MIDI Synth") + "\n\n")

	if m.err != nil {
		b.WriteString(virtualErrorStyle.Render("Error: "+m.err.Error()) + "\n\n")
		b.WriteString(virtualHelpStyle.Render("Press Ctrl+C to quit"))
		return b.String()
	}

	b.WriteString(virtualSubtitleStyle.Render("Device: ") + m.deviceName + "\n")
	b.WriteString(virtualSubtitleStyle.Render("Key: ") + m.key.String() + "\n")
	if m.inPort != nil {
		b.WriteString(virtualStatusStyle.Render("● listening on "+m.inPort.String()) + "\n\n")
	} else {
		b.WriteString("initializing...\n\n")
	}

	b.WriteString(virtualSubtitleStyle.Render("Held:") + " ")
	if len(m.held) == 0 {
		b.WriteString("(none)\n")
	} else {
		names := make([]string, 0, len(m.held))
		for _, n := range m.held {
			names = append(names, n.pitch.String())
		}
		b.WriteString(virtualNoteStyle.Render(strings.Join(names, " ")) + "\n")
	}

	b.WriteString("\n" + virtualSubtitleStyle.Render(fmt.Sprintf("Messages (%d total):", m.count)) + "\n")
	if len(m.history) == 0 {
		b.WriteString("  " + virtualLogStyle.Render("(waiting for input)") + "\n")
	} else {
		for i, line := range m.history {
			prefix := "  "
			style := virtualLogStyle
			if i == 0 {
				prefix = "▶ "
				style = virtualLogHeadStyle
			}
			b.WriteString(prefix + style.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + renderKeyboard(m.held) + "\n")
	b.WriteString("\n" + virtualHelpStyle.Render("Ctrl+C: quit"))
	return b.String()
}

// renderKeyboard draws two octaves of a piano, highlighting the natural/sharp keys that
// match a currently-held pitch's class regardless of octave, so an arpeggiated run across
// octaves still lights up the same key.
func renderKeyboard(held map[control.Id]heldNote) string {
	activeClasses := make(map[theory.PitchClass]bool)
	for _, n := range held {
		activeClasses[n.pitch.Class] = true
	}

	white := lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")).Foreground(lipgloss.Color("#000000"))
	black := lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#FFFFFF"))
	activeWhite := lipgloss.NewStyle().Background(lipgloss.Color("#00FF00")).Foreground(lipgloss.Color("#000000"))
	activeBlack := lipgloss.NewStyle().Background(lipgloss.Color("#00AA00")).Foreground(lipgloss.Color("#FFFFFF"))

	naturals := []theory.PitchClass{theory.C, theory.D, theory.E, theory.F, theory.G, theory.A, theory.B}
	sharps := []theory.PitchClass{theory.CSharp, theory.DSharp, 0, theory.FSharp, theory.GSharp, theory.ASharp, 0}

	var top, bottom strings.Builder
	for octave := 0; octave < 2; octave++ {
		for i, pc := range sharps {
			if i == 2 || i == 6 {
				top.WriteString("  ")
				continue
			}
			style := black
			if activeClasses[pc] {
				style = activeBlack
			}
			top.WriteString(style.Render("█") + " ")
		}
		for _, pc := range naturals {
			style := white
			if activeClasses[pc] {
				style = activeWhite
			}
			bottom.WriteString(style.Render("█") + " ")
		}
	}
	return top.String() + "\n" + bottom.String()
}
