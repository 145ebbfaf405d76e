package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	assistant "github.com/koscakluka/calchat/core"
	"github.com/koscakluka/calchat/core/exchange"
	"github.com/koscakluka/calchat/core/playback"
	"github.com/muesli/reflow/wordwrap"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	voicedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	recordingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type exchangeDoneMsg struct {
	reply *exchange.AssistantReply
	err   error
}

type playbackDoneMsg struct {
	savedTo string
	err     error
}

type model struct {
	assistant *assistant.Assistant
	player    *playback.Player

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	busy      bool
	recording bool
	status    string
	statusErr bool
}

func newModel(a *assistant.Assistant, player *playback.Player) model {
	input := textinput.New()
	input.Placeholder = "Ask about your calendar..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	return model{
		assistant: a,
		player:    player,
		input:     input,
		spinner:   spin,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submitText()

		case "ctrl+r":
			return m.toggleRecording()

		case "ctrl+p":
			return m.playReply()
		}

	case exchangeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(describeError(msg.err), true)
		} else if msg.reply.Audio != nil {
			m.setStatus("reply received, ctrl+p to play audio", false)
		} else {
			m.setStatus("", false)
		}
		m.refreshConversation()
		return m, nil

	case playbackDoneMsg:
		if msg.err != nil {
			m.setStatus(describeError(msg.err), true)
		} else if msg.savedTo != "" {
			m.setStatus("reply audio saved to "+msg.savedTo, false)
		} else {
			m.setStatus("reply audio played", false)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy && !m.recording {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	footerHeight := 3
	if !m.ready {
		m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(msg.Width-2),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refreshConversation()
	return m, nil
}

func (m model) submitText() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.busy || m.recording {
		return m, nil
	}

	m.input.Reset()
	m.busy = true
	m.setStatus("waiting for the assistant", false)

	a := m.assistant
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := a.SubmitText(context.Background(), text)
		return exchangeDoneMsg{reply: reply, err: err}
	})
}

func (m model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	a := m.assistant
	if m.recording {
		m.recording = false
		m.busy = true
		m.setStatus("sending recording", false)
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			reply, err := a.StopRecordingAndSubmit(context.Background())
			return exchangeDoneMsg{reply: reply, err: err}
		})
	}

	if err := a.StartRecording(context.Background()); err != nil {
		m.setStatus(describeError(err), true)
		return m, nil
	}
	m.recording = true
	m.setStatus("", false)
	return m, m.spinner.Tick
}

func (m model) playReply() (tea.Model, tea.Cmd) {
	handle := m.assistant.ReplyAudio()
	if handle == nil || handle.Released() {
		m.setStatus("no reply audio to play", true)
		return m, nil
	}

	player := m.player
	return m, func() tea.Msg {
		if player != nil {
			if err := player.Play(context.Background(), handle); err == nil {
				return playbackDoneMsg{}
			}
		}

		// The sink cannot render this container, keep the clip on disk
		// instead.
		path := fmt.Sprintf("reply-%d%s", time.Now().Unix(), audioExtension(handle.MimeType()))
		if err := handle.WriteFile(path); err != nil {
			return playbackDoneMsg{err: err}
		}
		return playbackDoneMsg{savedTo: path}
	}
}

func (m *model) setStatus(text string, isError bool) {
	m.status = text
	m.statusErr = isError
	if isError && text != "" {
		slog.Warn("interaction failed", "status", text)
	}
}

func (m *model) refreshConversation() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, entry := range m.assistant.Conversation() {
		switch entry.Role {
		case assistant.RoleUser:
			if entry.Voiced {
				b.WriteString(userStyle.Render("you") + " " + voicedStyle.Render("(voice query)"))
			} else {
				b.WriteString(userStyle.Render("you") + "\n")
				b.WriteString(wordwrap.String(entry.Markdown, m.viewport.Width-2))
			}
			b.WriteString("\n\n")

		case assistant.RoleAssistant:
			b.WriteString(titleStyle.Render("assistant") + "\n")
			b.WriteString(m.renderMarkdown(entry.Markdown))
			b.WriteString("\n")
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *model) renderMarkdown(markdown string) string {
	if m.renderer == nil {
		return wordwrap.String(markdown, m.viewport.Width-2)
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return wordwrap.String(markdown, m.viewport.Width-2)
	}
	return rendered
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render("calchat") + statusStyle.Render("  calendar assistant")

	var status string
	switch {
	case m.recording:
		status = m.spinner.View() + recordingStyle.Render("recording, ctrl+r to stop and send")
	case m.busy:
		status = m.spinner.View() + statusStyle.Render(m.status)
	case m.statusErr && m.status != "":
		status = errorStyle.Render(m.status)
	case m.status != "":
		status = statusStyle.Render(m.status)
	}

	help := helpStyle.Render("enter send · ctrl+r record · ctrl+p play reply · ctrl+c quit")

	return fmt.Sprintf("%s\n\n%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		status,
		m.input.View(),
		help,
	)
}

// describeError keeps backend failures readable in the status line.
func describeError(err error) string {
	var backendErr *exchange.BackendError
	if errors.As(err, &backendErr) {
		return fmt.Sprintf("backend error (%d): %s", backendErr.StatusCode, backendErr.Message)
	}

	var networkErr *exchange.NetworkError
	if errors.As(err, &networkErr) {
		return "network error: " + networkErr.Err.Error()
	}

	return err.Error()
}

func audioExtension(mimeType string) string {
	switch mimeType {
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	}
	return ".bin"
}
