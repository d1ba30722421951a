// Package assistant implements the line-oriented command loop of the bot.
//
// Each command is a handler over the explicitly passed address book that
// returns one display string. Every handler error is turned into a single
// "Input error: ..." line, so malformed input never stops the loop.
package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// handler runs one command against the book.
type handler func(ctx context.Context, a *Assistant, args []string) (string, error)

// Assistant owns the address book for the lifetime of the command loop.
type Assistant struct {
	Book     *addressbook.AddressBook
	Clock    addressbook.Clock
	Messages *Messages

	// Reminder is the ISO8601 alarm trigger used by export-calendar. Empty disables alarms.
	Reminder string

	handlers map[string]handler
}

// New wires the command table around book.
func New(book *addressbook.AddressBook, msgs *Messages) *Assistant {
	return &Assistant{
		Book:     book,
		Clock:    addressbook.RealClock{},
		Messages: msgs,
		handlers: map[string]handler{
			config.CmdHello:          handleHello,
			config.CmdAdd:            handleAdd,
			config.CmdChange:         handleChange,
			config.CmdPhone:          handlePhone,
			config.CmdAll:            handleAll,
			config.CmdAddBirthday:    handleAddBirthday,
			config.CmdShowBirthday:   handleShowBirthday,
			config.CmdBirthdays:      handleBirthdays,
			config.CmdDelete:         handleDelete,
			config.CmdRemovePhone:    handleRemovePhone,
			config.CmdImport:         handleImport,
			config.CmdExportCalendar: handleExportCalendar,
			config.CmdHelp:           handleHelp,
		},
	}
}

// IsExit reports whether command ends the loop.
func IsExit(command string) bool {
	switch command {
	case config.CmdClose, config.CmdExit, config.CmdQuit:
		return true
	}
	return false
}

// Execute runs one already parsed command and returns its display string.
// Exit commands are not handled here; see Run.
func (a *Assistant) Execute(ctx context.Context, command string, args []string) string {
	h, ok := a.handlers[command]
	if !ok {
		return a.msg(config.TKeyInvalidCommand, nil)
	}

	reply, err := a.call(ctx, h, args)
	if err != nil {
		slog.Debug(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyCommand, command,
			config.LogKeyError, err,
		)
		return a.msg(config.TKeyInputError, map[string]any{"Message": err.Error()})
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, command,
		config.LogKeyArgs, len(args),
	)
	return reply
}

// Handle parses and runs a raw input line. The boolean is true when the
// line asks to leave the loop; the reply is then the farewell message.
func (a *Assistant) Handle(ctx context.Context, line string) (string, bool) {
	command, args := ParseInput(line)
	if command == "" {
		return "", false
	}
	if IsExit(command) {
		return a.msg(config.TKeyGoodbye, nil), true
	}
	return a.Execute(ctx, command, args), false
}

// Run reads commands from in and writes replies to out until an exit
// command, the end of input or the cancellation of ctx.
// It does not persist the book; the caller saves it once Run returns.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)

	// Only this goroutine touches in; the book stays on the caller's goroutine.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
		}
	}()

	fmt.Fprintln(out, a.msg(config.TKeyWelcome, nil))

	for {
		fmt.Fprint(out, a.msg(config.TKeyPrompt, nil))

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompAssistant)
			fmt.Fprintln(out)
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-readErr:
					return fmt.Errorf("%s: %w", config.ErrReadInput, err)
				default:
					fmt.Fprintln(out, a.msg(config.TKeyGoodbye, nil))
					return nil
				}
			}

			reply, exit := a.Handle(ctx, line)
			if reply != "" {
				fmt.Fprintln(out, reply)
			}
			if exit {
				return nil
			}
		}
	}
}

// call runs h, turning a panic into an error so one bad command cannot end the loop.
func (a *Assistant) call(ctx context.Context, h handler, args []string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(config.ErrHandlerPanic,
				config.LogKeyComponent, config.CompAssistant,
				config.LogKeyValue, r,
				config.LogKeyStack, string(debug.Stack()),
			)
			reply, err = "", fmt.Errorf("%s: %v", config.ErrHandlerPanic, r)
		}
	}()
	return h(ctx, a, args)
}

func (a *Assistant) msg(key string, data map[string]any) string {
	return a.Messages.Get(key, data)
}
