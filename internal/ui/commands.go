package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/spoiler/internal/transmission"
)

// commandResultMsg reports the outcome of a daemon command. Results are
// logged and shown in the status line; the next refresh shows the effect.
type commandResultMsg struct {
	op     string
	target string
	err    error
}

// runCommand wraps fn in a tea.Cmd bound to the application context. The
// gateway call happens off the UI loop.
func (m Model) runCommand(op, target string, fn func(ctx context.Context, gw transmission.Gateway) error) tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return commandResultMsg{op: op, target: target, err: fn(ctx, gw)}
	}
}

func (m Model) applyCmd(op string, job transmission.Torrent, action transmission.Action) tea.Cmd {
	id := job.ID
	return m.runCommand(op, job.Name, func(ctx context.Context, gw transmission.Gateway) error {
		return gw.Apply(ctx, action, id)
	})
}

func (m Model) renameCmd(id int64, from, to string) tea.Cmd {
	return m.runCommand("rename", fmt.Sprintf("%s → %s", from, to), func(ctx context.Context, gw transmission.Gateway) error {
		return gw.Rename(ctx, id, from, to)
	})
}

func (m Model) addCmd(path, name string, paused bool) tea.Cmd {
	op := "add"
	if paused {
		op = "add paused"
	}
	return m.runCommand(op, name, func(ctx context.Context, gw transmission.Gateway) error {
		return gw.Add(ctx, path, paused)
	})
}

func (m Model) removeCmd(id int64, name string, deleteData bool) tea.Cmd {
	op := "remove"
	if deleteData {
		op = "remove with data"
	}
	return m.runCommand(op, name, func(ctx context.Context, gw transmission.Gateway) error {
		return gw.Remove(ctx, id, deleteData)
	})
}

func (m Model) priorityCmd(job transmission.Torrent, fileIndex int, name string, priority transmission.Priority) tea.Cmd {
	id := job.ID
	return m.runCommand("priority "+priority.String(), name, func(ctx context.Context, gw transmission.Gateway) error {
		return gw.SetFilePriority(ctx, id, fileIndex, priority)
	})
}

func (m *Model) handleCommandResult(msg commandResultMsg) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("op", msg.op).Str("target", msg.target).Msg("command failed")
		m.setStatus(fmt.Sprintf("%s %s failed: %v", titleFirst(msg.op), msg.target, msg.err), true)
		return
	}
	log.Info().Str("op", msg.op).Str("target", msg.target).Msg("command sent")
	m.setStatus(fmt.Sprintf("%s: %s", titleFirst(msg.op), msg.target), false)
}

// titleFirst upper-cases the first ASCII letter of s.
func titleFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
