// Package tui implements the manual-mode performance interface: a bubbletea Model that
// maps a computer keyboard to note-on/off/arpeggiator/loop commands and renders a
// held-notes display plus a spring-damped level meter.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/vitobasso/gosynth/internal/arp"
	"github.com/vitobasso/gosynth/internal/audio"
	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/theory"
)

// keymap assigns each computer key a pitch relative to C4, following the common
// tracker/DAW "keyboard as piano" layout: the bottom row is one octave, the row above
// continues into the next.
var keymap = map[string]int{
	"z": 0, "s": 1, "x": 2, "d": 3, "c": 4, "v": 5, "g": 6,
	"b": 7, "h": 8, "n": 9, "j": 10, "m": 11, ",": 12,
	"q": 12, "2": 13, "w": 14, "3": 15, "e": 16, "r": 17, "5": 18,
	"t": 19, "6": 20, "y": 21, "7": 22, "u": 23, "i": 24,
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
)

// noteDisplay is one key's held-state, keyed by the computer key that triggered it so
// releasing the same key always finds the right hold.
type noteDisplay struct {
	pitch theory.Pitch
}

// Model is the manual-mode bubbletea Model.
type Model struct {
	synth   *audio.Synth
	baseKey theory.Key

	activeNotes map[string]noteDisplay
	arpOn       bool

	meterSpring  harmonica.Spring
	meterPos     float64
	meterVel     float64
	voiceCount   int
	filterCutoff float64
	filterQ      float64

	plainMeter bool
	width      int
	err        error
}

// viewMsg carries one control.View snapshot into the bubbletea Update loop.
type viewMsg control.View

// NewModel builds a manual-mode Model driving synth, with notes resolved against baseKey.
func NewModel(synth *audio.Synth, baseKey theory.Key) Model {
	return Model{
		synth:       synth,
		baseKey:     baseKey,
		activeNotes: make(map[string]noteDisplay),
		meterSpring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.5),
		plainMeter:  termenv.EnvColorProfile() == termenv.Ascii,
	}
}

func (m Model) Init() tea.Cmd {
	return m.awaitView
}

// awaitView blocks on the controller's best-effort view channel; Update re-issues it each
// time a frame arrives so the model keeps consuming the channel without polling.
func (m Model) awaitView() tea.Msg {
	v, ok := <-m.synth.View()
	if !ok {
		return nil
	}
	return viewMsg(v)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		m.voiceCount = msg.VoiceCount
		m.filterCutoff = msg.Filter.Cutoff
		m.filterQ = msg.Filter.QFactor
		target := math.Abs(msg.DrySample)
		m.meterPos, m.meterVel = m.meterSpring.Update(m.meterPos, m.meterVel, target)
		return m, m.awaitView

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.toggleArp()
		return m, nil
	case " ":
		m.synth.Enqueue(control.TapTempoCmd{})
		return m, nil
	case "[":
		m.synth.Enqueue(control.ShiftPitchCmd{N: -1})
		return m, nil
	case "]":
		m.synth.Enqueue(control.ShiftPitchCmd{N: 1})
		return m, nil
	case "{":
		m.synth.Enqueue(control.ShiftKeyboardCmd{N: -1})
		return m, nil
	case "}":
		m.synth.Enqueue(control.ShiftKeyboardCmd{N: 1})
		return m, nil
	case "o":
		m.synth.Enqueue(control.LoopToggleRecordingCmd{Index: 0})
		return m, nil
	case "p":
		m.synth.Enqueue(control.LoopTogglePlaybackCmd{Index: 0})
		return m, nil
	}

	if offset, ok := keymap[key]; ok {
		// Terminals don't report key-up, so a key held down is modeled as a toggle:
		// press to sound the note, press again to release it.
		if held, ok := m.activeNotes[key]; ok {
			delete(m.activeNotes, key)
			m.synth.NoteOff(control.Id{Pitch: held.pitch, Discriminator: key})
			return m, nil
		}
		base := theory.NewPitch(m.baseKey, 4)
		pitch := theory.PitchFromIndex(base.Index() + offset)
		m.activeNotes[key] = noteDisplay{pitch: pitch}
		m.synth.NoteOn(pitch, 1.0, control.Id{Pitch: pitch, Discriminator: key})
	}
	return m, nil
}

// toggleArp swaps a fixed two-octave up-down triad phrase in or out via the top-level
// SetPatch command; the chord and direction are not selectable from key bindings here.
func (m *Model) toggleArp() {
	m.arpOn = !m.arpOn
	if !m.arpOn {
		m.synth.Enqueue(control.SetPatchCmd{Patch: control.ArpeggiatorPatch{Specs: nil}})
		return
	}
	phrase := arp.BuildPhrase(arp.Specs{
		Chord: arp.Triad, Direction: arp.UpDown,
		OctaveMin: 0, OctaveMax: 1, Duration: theory.Eighth,
	})
	m.synth.Enqueue(control.SetPatchCmd{Patch: control.ArpeggiatorPatch{
		Specs: &control.ArpSpecs{Phrase: phrase, Key: m.baseKey},
	}})
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Synth — manual performance") + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
		return b.String()
	}

	b.WriteString(subtitleStyle.Render("Key: ") + m.baseKey.String() + "\n")
	arpStatus := "off"
	if m.arpOn {
		arpStatus = "on (triad, up-down)"
	}
	b.WriteString(subtitleStyle.Render("Arpeggiator: ") + statusStyle.Render(arpStatus) + "\n")
	b.WriteString(fmt.Sprintf("%s%.0f Hz  %s%.1f  %s%d\n",
		subtitleStyle.Render("Cutoff: "), m.filterCutoff,
		subtitleStyle.Render("Q: "), m.filterQ,
		subtitleStyle.Render("Voices: "), m.voiceCount))

	b.WriteString("\n" + subtitleStyle.Render("Held: "))
	if len(m.activeNotes) == 0 {
		b.WriteString("(none)")
	} else {
		names := make([]string, 0, len(m.activeNotes))
		for _, n := range m.activeNotes {
			names = append(names, n.pitch.Class.String())
		}
		b.WriteString(noteStyle.Render(strings.Join(names, " ")))
	}
	b.WriteString("\n\n" + m.renderMeter() + "\n")

	b.WriteString("\n" + helpStyle.Render(
		"zsxdcvgbhnjm,2w3er5t6y7ui: play  tab: arp  space: tap tempo  []: pitch  {}: keyboard  o/p: loop  q: quit"))
	return b.String()
}

const meterWidth = 30

// renderMeter draws the spring-smoothed level as a bar of blocks, using a go-colorful
// gradient from green to red across the bar when the terminal profile supports color, and
// falling back to a plain ASCII bar otherwise.
func (m Model) renderMeter() string {
	filled := int(math.Min(1, math.Max(0, m.meterPos)) * meterWidth)
	if m.plainMeter {
		return subtitleStyle.Render("level: ") + "[" + strings.Repeat("#", filled) + strings.Repeat("-", meterWidth-filled) + "]"
	}

	low, _ := colorful.Hex("#00FF00")
	high, _ := colorful.Hex("#FF0000")
	var bar strings.Builder
	for i := 0; i < meterWidth; i++ {
		t := float64(i) / float64(meterWidth-1)
		c := low.BlendLuv(high, t)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		if i < filled {
			bar.WriteString(style.Render("█"))
		} else {
			bar.WriteString(subtitleStyle.Render("·"))
		}
	}
	return subtitleStyle.Render("level: ") + bar.String()
}
