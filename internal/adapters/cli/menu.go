// Package cli implements the interactive menu and display layer. It
// formats engine state for the terminal and performs no game-rule
// computation of its own.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	service "committed/internal/app"
	"committed/pkg/logger"
)

// inventoryViewSize caps how many recent items the inventory view shows.
const inventoryViewSize = 10

// Menu drives the interactive session.
type Menu struct {
	svc *service.Service
	in  io.Reader
	out io.Writer
	log logger.Logger
}

// Option applies a configuration option to the Menu.
type Option func(*Menu)

// WithInput sets the input stream, e.g. for tests.
func WithInput(r io.Reader) Option {
	return func(m *Menu) {
		if r != nil {
			m.in = r
		}
	}
}

// WithOutput sets the output stream, e.g. for tests.
func WithOutput(w io.Writer) Option {
	return func(m *Menu) {
		if w != nil {
			m.out = w
		}
	}
}

// WithLogger sets a custom logger for the menu.
func WithLogger(l logger.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.log = l
		}
	}
}

// New constructs a Menu around the given service.
func New(svc *service.Service, opts ...Option) *Menu {
	m := &Menu{
		svc: svc,
		in:  os.Stdin,
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Get()
	}
	return m
}

// Run shows the banner and loops on the main menu until the player exits
// or the context is cancelled. State is saved on exit and after every
// sync.
func (m *Menu) Run(ctx context.Context) error {
	m.printBanner()

	scanner := bufio.NewScanner(m.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		fmt.Fprint(m.out, "\nEnter your choice: ")
		if !scanner.Scan() {
			// Input closed; save and leave.
			m.saveAndFarewell(ctx)
			return scanner.Err()
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			m.printCharacter()
		case "2":
			m.printCurrentMob()
		case "3":
			m.printStats()
		case "4":
			m.printInventory()
		case "5":
			if m.svc.Offline() {
				m.printInvalidChoice()
				continue
			}
			m.runSync(ctx)
		case "0":
			m.saveAndFarewell(ctx)
			return nil
		default:
			m.printInvalidChoice()
		}
	}
}

func (m *Menu) runSync(ctx context.Context) {
	fmt.Fprintln(m.out, "\n🔄 Syncing activity...")

	report, err := m.svc.Sync(ctx)
	if err != nil {
		fmt.Fprintln(m.out, "   Sync unavailable right now.")
		m.log.Warn(ctx, "sync failed", logger.Error(err))
		return
	}

	m.printReport(report)
	if err := m.svc.SaveState(ctx); err != nil {
		fmt.Fprintln(m.out, "   ⚠️  Progress could not be saved; will retry on exit.")
	}
}

func (m *Menu) saveAndFarewell(ctx context.Context) {
	if err := m.svc.SaveState(ctx); err != nil {
		fmt.Fprintln(m.out, "\n⚠️  Saving failed; recent progress may be lost.")
	}
	fmt.Fprintln(m.out, "\n👋 Thanks for playing! Your progress has been saved.")
	fmt.Fprintln(m.out, "   Keep committing to grow stronger! ⚔️")
}

func (m *Menu) printBanner() {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(m.out, line)
	fmt.Fprintln(m.out, "  ⚔️  COMMITTED: The GitLab Dungeon Crawler  ⚔️")
	fmt.Fprintln(m.out, line)
}

func (m *Menu) printMenu() {
	line := strings.Repeat("─", 60)
	fmt.Fprintln(m.out, "\n"+line)
	fmt.Fprintln(m.out, "MAIN MENU:")
	fmt.Fprintln(m.out, "  1. View Character")
	fmt.Fprintln(m.out, "  2. View Current Enemy")
	fmt.Fprintln(m.out, "  3. View Statistics")
	fmt.Fprintln(m.out, "  4. View Inventory")
	if !m.svc.Offline() {
		fmt.Fprintln(m.out, "  5. Sync Activity")
	}
	fmt.Fprintln(m.out, "  0. Save and Exit")
	fmt.Fprintln(m.out, line)
}

func (m *Menu) printInvalidChoice() {
	fmt.Fprintln(m.out, "\n❌ Invalid choice. Please try again.")
}
