// Package ui renders the table in the terminal and feeds key presses
// back into the engine. The engine pushes snapshots in as messages; the
// model never reaches into engine internals.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holdemtable/pkg/poker"
	"holdemtable/pkg/storage"
)

// StateMsg carries a fresh table snapshot into the model.
type StateMsg poker.TableState

// HandCompleteMsg carries the result of a finished hand.
type HandCompleteMsg poker.HandResult

// Model contains all the state for the table UI.
type Model struct {
	table *poker.Table

	st         poker.TableState
	lastResult *poker.HandResult
	stats      storage.Stats

	// amountInput collects typed digits for the next raise.
	amountInput string
	message     string
}

// NewModel creates the UI model bound to a table.
func NewModel(table *poker.Table) Model {
	return Model{
		table: table,
		st:    table.GetState(),
		stats: table.GetStats(),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.table.StartHand()
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = poker.TableState(msg)
		return m, nil

	case HandCompleteMsg:
		r := poker.HandResult(msg)
		m.lastResult = &r
		m.stats = m.table.GetStats()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Digits build the raise-to amount.
	if len(key) == 1 && key >= "0" && key <= "9" {
		m.amountInput += key
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "backspace":
		if len(m.amountInput) > 0 {
			m.amountInput = m.amountInput[:len(m.amountInput)-1]
		}
		return m, nil

	case "n":
		m.lastResult = nil
		m.message = ""
		if res := m.table.StartHand(); !res.Applied {
			m.message = res.Reason
		}
		return m, nil

	case "f":
		return m.act(poker.ActionFold, 0)
	case "k":
		return m.act(poker.ActionCheck, 0)
	case "c":
		return m.act(poker.ActionCall, 0)
	case "r":
		amount := m.st.MinRaiseTo
		if m.amountInput != "" {
			if v, err := strconv.ParseInt(m.amountInput, 10, 64); err == nil {
				amount = v
			}
		}
		m.amountInput = ""
		return m.act(poker.ActionRaise, amount)
	case "a":
		if len(m.st.Players) > 0 {
			p := m.st.Players[0]
			return m.act(poker.ActionRaise, p.Chips+p.Bet)
		}
	}
	return m, nil
}

func (m Model) act(kind poker.ActionKind, amount int64) (tea.Model, tea.Cmd) {
	m.message = ""
	if res := m.table.PerformAction(0, kind, amount); !res.Applied {
		m.message = res.Reason
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Hold'em · hand %d · %s",
		m.st.HandNumber, m.st.Phase)))
	b.WriteString("\n")

	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderPlayers())
	b.WriteString("\n")

	if m.lastResult != nil {
		b.WriteString(m.renderResult())
	} else if m.humanToAct() {
		b.WriteString(m.renderActionBar())
	}

	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"session: %d hands, %d won, net %+d",
		m.stats.HandsPlayed, m.stats.HandsWon, m.stats.TotalProfit)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"f fold · k check · c call · <digits>r raise to · a all-in · n next hand · q quit"))
	return b.String()
}

func (m Model) humanToAct() bool {
	return m.st.HandActive && m.st.Current == 0
}

func (m Model) renderBoard() string {
	var cards []string
	for _, c := range m.st.Community {
		cards = append(cards, renderCard(c))
	}
	for i := len(cards); i < 5; i++ {
		cards = append(cards, hiddenCardStyle.Render("  "))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Center, cards...)
	pot := potStyle.Render(fmt.Sprintf("POT %d", m.st.Pot))
	return lipgloss.JoinHorizontal(lipgloss.Center, board, pot)
}

func (m Model) renderPlayers() string {
	boxes := make([]string, 0, len(m.st.Players))
	for _, p := range m.st.Players {
		boxes = append(boxes, m.renderPlayer(p))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderPlayer(p poker.PlayerState) string {
	var lines []string

	name := p.Name
	if p.Seat == m.st.Dealer {
		name += " Ⓓ"
	}
	lines = append(lines, name)
	lines = append(lines, fmt.Sprintf("chips %d", p.Chips))

	switch {
	case p.Folded:
		lines = append(lines, "folded")
	case p.AllIn:
		lines = append(lines, fmt.Sprintf("ALL-IN %d", p.Bet))
	case p.Bet > 0:
		lines = append(lines, fmt.Sprintf("bet %d", p.Bet))
	default:
		lines = append(lines, " ")
	}

	lines = append(lines, m.renderHole(p))
	if p.HasResult {
		lines = append(lines, p.Result.Rank.String())
	}

	content := strings.Join(lines, "\n")
	switch {
	case p.Folded || p.SittingOut:
		return foldedPlayerStyle.Render(content)
	case p.Seat == m.st.Current:
		return currentPlayerStyle.Render(content)
	default:
		return playerBoxStyle.Render(content)
	}
}

// renderHole shows hole cards for the human always, and for opponents
// only once the hand reaches showdown.
func (m Model) renderHole(p poker.PlayerState) string {
	if len(p.Hand) == 0 {
		return ""
	}
	reveal := p.IsHuman || m.st.Phase == poker.PhaseShowdown
	if !reveal || p.Folded {
		return lipgloss.JoinHorizontal(lipgloss.Center,
			hiddenCardStyle.Render("?"), hiddenCardStyle.Render("?"))
	}
	parts := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		parts[i] = renderCard(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderActionBar() string {
	var parts []string
	for _, k := range m.st.Legal {
		switch k {
		case poker.ActionFold:
			parts = append(parts, "[f]old")
		case poker.ActionCheck:
			parts = append(parts, "chec[k]")
		case poker.ActionCall:
			parts = append(parts, fmt.Sprintf("[c]all %d", m.st.CallAmount))
		case poker.ActionRaise:
			label := fmt.Sprintf("[r]aise to %d", m.st.MinRaiseTo)
			if m.amountInput != "" {
				label = fmt.Sprintf("[r]aise to %s_", m.amountInput)
			}
			parts = append(parts, label)
		}
	}
	return actionBarStyle.Render("your move: "+strings.Join(parts, "  ")) + "\n"
}

func (m Model) renderResult() string {
	r := m.lastResult
	var b strings.Builder

	if len(r.Ranked) == 0 {
		b.WriteString(fmt.Sprintf("everyone folded, seat %d takes %d", r.Winners[0], r.Pot))
	} else {
		names := make([]string, 0, len(r.Winners))
		for _, seat := range r.Winners {
			names = append(names, m.st.Players[seat].Name)
		}
		b.WriteString(fmt.Sprintf("%s wins %d with %s",
			strings.Join(names, ", "), r.Pot, r.Ranked[0].Hand.Rank))
	}
	b.WriteString(fmt.Sprintf(" · your net %+d · [n] next hand", r.Profit))
	return resultStyle.Render(b.String()) + "\n"
}

func renderCard(c poker.Card) string {
	s := c.String()
	if c.GetSuit() == poker.Hearts || c.GetSuit() == poker.Diamonds {
		return redCardStyle.Render(s)
	}
	return cardStyle.Render(s)
}
