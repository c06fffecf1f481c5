package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nsf/termbox-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hadydotai/raydium-curve/internal/quote"
)

type exploreMode uint8

const (
	modeViewing exploreMode = iota
	modePrompt
)

const viewingHint = "c=change intent, q=quit"

// explorer is a termbox screen that re-quotes intents typed at its prompt. The key
// handling is kept apart from drawing so it can run without a terminal.
type explorer struct {
	builder       *quote.TableBuilder
	logger        *zap.Logger
	mode          exploreMode
	promptBuffer  []rune
	history       []string
	historyCursor int
	tableLines    []string
	currentIntent string
	statusMessage string
}

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [<verb> <amount> <symbol>]",
		Short: "Interactively quote intents against the configured pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex := newExplorer(a.tableBuilder(), a.logger)
			if len(args) > 0 {
				ex.submit(strings.Join(args, " "))
			} else {
				ex.openPrompt()
			}
			return ex.Run()
		},
	}
}

func newExplorer(builder *quote.TableBuilder, logger *zap.Logger) *explorer {
	return &explorer{builder: builder, logger: logger}
}

func (ex *explorer) Run() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	for {
		ex.draw()
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventError:
			return ev.Err
		case termbox.EventKey:
			if ex.handleKey(ev) {
				return nil
			}
		}
	}
}

// submit quotes intentLine and swaps the table on success. A failed intent keeps
// the previous table so the user can compare against it.
func (ex *explorer) submit(intentLine string) {
	ex.history = append(ex.history, intentLine)
	ex.historyCursor = len(ex.history)
	out, intent, err := ex.builder.Build(intentLine)
	ex.mode = modeViewing
	if err != nil {
		ex.logger.Debug("intent rejected", zap.String("intent", intentLine), zap.Error(err))
		ex.statusMessage = fmt.Sprintf("%q: %v", intentLine, err)
		return
	}
	ex.tableLines = splitLines(out)
	ex.currentIntent = intentLine
	ex.statusMessage = viewingHint
	if intent == nil {
		ex.statusMessage = "intent could not be quoted, " + viewingHint
	}
}

func (ex *explorer) openPrompt() {
	ex.mode = modePrompt
	ex.promptBuffer = ex.promptBuffer[:0]
	ex.historyCursor = len(ex.history)
	ex.statusMessage = "Enter an intent, e.g. sell 1.5 SOL, and press Enter."
}

// handleKey applies ev and reports whether the explorer should exit.
func (ex *explorer) handleKey(ev termbox.Event) bool {
	if ev.Key == termbox.KeyCtrlC {
		return true
	}
	switch ex.mode {
	case modeViewing:
		switch ev.Ch {
		case 'q', 'Q':
			return true
		case 'c', 'C':
			ex.openPrompt()
		}
		return ev.Key == termbox.KeyEsc
	case modePrompt:
		switch ev.Key {
		case termbox.KeyEnter:
			intent := strings.TrimSpace(string(ex.promptBuffer))
			if intent == "" {
				ex.statusMessage = "Intent cannot be empty."
				return false
			}
			ex.promptBuffer = ex.promptBuffer[:0]
			ex.submit(intent)
		case termbox.KeyEsc:
			ex.mode = modeViewing
			ex.promptBuffer = ex.promptBuffer[:0]
			ex.statusMessage = viewingHint
		case termbox.KeyBackspace, termbox.KeyBackspace2:
			if len(ex.promptBuffer) > 0 {
				ex.promptBuffer = ex.promptBuffer[:len(ex.promptBuffer)-1]
			}
		case termbox.KeyArrowUp:
			if ex.historyCursor > 0 {
				ex.historyCursor--
				ex.promptBuffer = []rune(ex.history[ex.historyCursor])
			}
		case termbox.KeyArrowDown:
			if ex.historyCursor < len(ex.history)-1 {
				ex.historyCursor++
				ex.promptBuffer = []rune(ex.history[ex.historyCursor])
			} else {
				ex.historyCursor = len(ex.history)
				ex.promptBuffer = ex.promptBuffer[:0]
			}
		case termbox.KeySpace:
			ex.promptBuffer = append(ex.promptBuffer, ' ')
		default:
			if ev.Ch != 0 {
				ex.promptBuffer = append(ex.promptBuffer, ev.Ch)
			}
		}
	}
	return false
}

func (ex *explorer) draw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	width, height := termbox.Size()
	tableArea := max(height-2, 0)
	linesToShow := min(len(ex.tableLines), tableArea)
	startRow := tableArea - linesToShow
	for i := 0; i < linesToShow; i++ {
		drawText(0, startRow+i, width, ex.tableLines[i])
	}
	if height >= 2 {
		drawText(0, height-2, width, ex.statusMessage)
	}
	if height >= 1 {
		prompt := ex.promptLine()
		drawText(0, height-1, width, prompt)
		if ex.mode == modePrompt {
			if col := utf8.RuneCountInString(prompt); col < width {
				termbox.SetCursor(col, height-1)
			}
		} else {
			termbox.HideCursor()
		}
	}
	termbox.Flush()
}

func drawText(x, y, width int, text string) {
	if y < 0 {
		return
	}
	col := 0
	for _, ch := range text {
		if col >= width {
			break
		}
		termbox.SetCell(x+col, y, ch, termbox.ColorDefault, termbox.ColorDefault)
		col++
	}
}

func (ex *explorer) promptLine() string {
	if ex.mode == modePrompt {
		return "> " + string(ex.promptBuffer)
	}
	if ex.currentIntent != "" {
		return fmt.Sprintf("> current intent: %s", ex.currentIntent)
	}
	return "> press c to enter an intent"
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
