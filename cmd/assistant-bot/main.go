package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/assistant-bot/internal/assistant"
	"github.com/tartampluch/assistant-bot/internal/config"
	"github.com/tartampluch/assistant-bot/internal/storage"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

// options holds the command-line flags.
type options struct {
	bookPath     string
	lang         string
	settingsPath string
	reminder     string
	debug        bool
}

// runMain manages the application lifecycle and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// -------------------------------------------------------------------------
	// 2. CLI & Logging
	// -------------------------------------------------------------------------
	opts := &options{}
	var logCloser io.Closer
	root := newRootCmd(opts)
	root.PersistentPreRun = func(*cobra.Command, []string) {
		logCloser = setupLogging(opts.debug)
		logStartupInfo()
	}
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close() // Best effort close
		}
	}()

	// -------------------------------------------------------------------------
	// 3. Application Logic
	// -------------------------------------------------------------------------
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// newRootCmd builds the cobra command and binds its flags to opts.
func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShort,
		Long:          config.CmdLong,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), storage.Open(s.BookPath), s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf(config.MsgVersionOutput,
		config.AppName, config.Version, config.Commit, config.Date))

	f := cmd.Flags()
	f.StringVar(&opts.bookPath, config.FlagBook, "", config.FlagDescBook)
	f.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	f.StringVar(&opts.settingsPath, config.FlagConfig, "", config.FlagDescConfig)
	f.StringVar(&opts.reminder, config.FlagReminder, "", config.FlagDescReminder)
	f.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	return cmd
}

// resolveSettings loads the settings file and applies the flags set on the command line.
func resolveSettings(cmd *cobra.Command, opts *options) (*config.Settings, error) {
	path := opts.settingsPath
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(config.FlagBook) {
		s.BookPath = opts.bookPath
	}
	if flags.Changed(config.FlagLang) {
		s.Language = opts.lang
	}
	if flags.Changed(config.FlagReminder) {
		s.Calendar.Reminder = opts.reminder
	}

	if !config.IsSupportedLanguage(s.Language) {
		slog.Warn(config.MsgLangFallback,
			config.LogKeyComponent, config.CompSettings,
			config.LogKeyLang, s.Language,
		)
		s.Language = config.DefaultLanguage
	}
	return s, nil
}

// run loads the book, serves the command loop and saves the book on the way out.
func run(ctx context.Context, store storage.Store, s *config.Settings, in io.Reader, out io.Writer) error {
	book, err := store.Load(ctx)
	if err != nil {
		return err
	}

	bot := assistant.New(book, assistant.NewMessages(s.Language))
	bot.Reminder = s.Calendar.Reminder
	loopErr := bot.Run(ctx, in, out)

	// The loop may end on SIGINT; the snapshot is written regardless.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.SaveTimeout)
	defer cancel()
	return errors.Join(loopErr, store.Save(saveCtx, book))
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Stdout belongs to the command loop, so logs go to a file and, in debug mode, to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
