package nes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// The debugger is a small bubbletea TUI that single-steps a raw program on
// a RAMBus: a hex view of the first 64 bytes of the zero page, the top 64
// bytes of the stack page and the five 16-byte rows starting at the
// program counter's row, a status-flag panel, and a dump of the next
// decoded instruction.

type debugModel struct {
	cpu    *CPU
	prevPC uint16
}

// renderPage renders a 16-byte row of memory. The byte at the current PC
// is bracketed.
func (m debugModel) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.cpu.Bus.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m debugModel) status() string {
	var flags string
	for _, flag := range []Status{
		Negative,
		Overflow,
		Unused,
		Break,
		Decimal,
		InterruptDisable,
		Zero,
		Carry,
	} {
		if m.cpu.P&flag > 0 {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
 S: %02x
N V _ B D I Z C
`,
		m.cpu.PC,
		m.prevPC,
		m.cpu.A,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.S,
	) + flags
}

func (m debugModel) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}

	offsets := []uint16{
		0x0000, 0x0010, 0x0020, 0x0030,
		0x01C0, 0x01D0, 0x01E0, 0x01F0,
	}
	base := m.cpu.PC &^ 0x000F
	for i := uint16(0); i < 5; i++ {
		offsets = append(offsets, base+16*i)
	}

	for _, off := range offsets {
		rows = append(rows, m.renderPage(off))
	}
	return strings.Join(rows, "\n")
}

func (m debugModel) Init() tea.Cmd {
	return nil
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if m.cpu.Halted {
				return m, tea.Quit
			}
			m.prevPC = m.cpu.PC
			m.cpu.Step()
		}
	}
	return m, nil
}

func (m debugModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(Instructions[m.cpu.Bus.Read(m.cpu.PC)]),
	)
}

// Debug loads the program at 0x0600, resets, and starts an interactive
// stepping TUI. Space or j executes one instruction, q quits. The bus
// must accept writes to the load region and the vector page; a RAMBus
// does.
func (c *CPU) Debug(program []byte) error {
	c.Load(program)
	c.Reset()

	_, err := tea.NewProgram(debugModel{cpu: c}).Run()
	return err
}
