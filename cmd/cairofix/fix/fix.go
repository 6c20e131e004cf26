// Package fixcmder provides the fix command, which asks Cairo Coder to fix
// a Cairo contract and prints the answer.
package fixcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cairofix/pkg/cairocoder"
	"github.com/papercomputeco/cairofix/pkg/cliui"
	"github.com/papercomputeco/cairofix/pkg/config"
	"github.com/papercomputeco/cairofix/pkg/credentials"
	"github.com/papercomputeco/cairofix/pkg/logger"
	"github.com/papercomputeco/cairofix/pkg/prompt"
)

const fixLongDesc string = `Ask Cairo Coder to fix a Cairo contract.

Sends a single chat completion request whose only user message is the
instruction followed by the contract source, then prints the content of the
first choice to stdout. Logs and progress go to stderr.

Without a contract file the embedded AnimalNFT contract is sent. Use "-" to
read the contract from stdin.

The API key is read from CAIRO_CODER_API_KEY, or from credentials.toml
(see "cairofix auth"). Settings resolve as flag > CAIROFIX_* env >
config.toml > defaults.

Examples:
  cairofix fix
  cairofix fix src/lib.cairo
  cat src/lib.cairo | cairofix fix -
  cairofix fix src/lib.cairo -i "explain this contract" --render auto`

const fixShortDesc string = "Ask Cairo Coder to fix a Cairo contract"

type fixCommander struct {
	configDir string
	debug     bool
	jsonLogs  bool
	logFile   string

	flags struct {
		endpoint    string
		authHeader  string
		timeout     string
		instruction string
		render      string
	}

	contractPath string
	settings     *config.Settings

	logger *slog.Logger
}

var fixFlagKeys = []string{
	config.FlagEndpoint,
	config.FlagAuthHeader,
	config.FlagTimeout,
	config.FlagInstruction,
	config.FlagRender,
}

// NewFixCmd creates the fix command.
func NewFixCmd() *cobra.Command {
	cmder := &fixCommander{}

	cmd := &cobra.Command{
		Use:   "fix [contract-file]",
		Short: fixShortDesc,
		Long:  fixLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cmder.prepare(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cmder.run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	config.AddStringFlag(cmd, config.FixFlags, config.FlagEndpoint, &cmder.flags.endpoint)
	config.AddStringFlag(cmd, config.FixFlags, config.FlagAuthHeader, &cmder.flags.authHeader)
	config.AddStringFlag(cmd, config.FixFlags, config.FlagTimeout, &cmder.flags.timeout)
	config.AddStringFlag(cmd, config.FixFlags, config.FlagInstruction, &cmder.flags.instruction)
	config.AddStringFlag(cmd, config.FixFlags, config.FlagRender, &cmder.flags.render)

	return cmd
}

// Adopt makes parent run the fix command by default. parent gets its own
// copy of the fix flags.
func Adopt(parent *cobra.Command) {
	fix := NewFixCmd()

	parent.Args = fix.Args
	parent.PreRunE = fix.PreRunE
	parent.RunE = fix.RunE
	parent.Flags().AddFlagSet(fix.Flags())
}

func (c *fixCommander) prepare(cmd *cobra.Command, args []string) error {
	c.configDir, _ = cmd.Flags().GetString("config-dir")
	c.debug, _ = cmd.Flags().GetBool("debug")
	c.jsonLogs, _ = cmd.Flags().GetBool("json-logs")
	c.logFile, _ = cmd.Flags().GetString("log-file")

	if len(args) > 0 {
		c.contractPath = args[0]
	}

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.BindRegisteredFlags(v, cmd, config.FixFlags, fixFlagKeys)

	c.settings, err = config.ResolveSettings(v)
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}

	return nil
}

func (c *fixCommander) run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	var closeLog func() error
	var err error
	c.logger, closeLog, err = c.newLogger(stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	mgr, err := credentials.NewReader(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	apiKey, source, err := mgr.ResolveKey(credentials.CairoCoder)
	if err != nil {
		return err
	}
	c.logger.Debug("resolved api key", "source", string(source))

	text, err := c.buildPrompt(stdin)
	if err != nil {
		return err
	}

	client := cairocoder.New(
		cairocoder.WithEndpoint(c.settings.Endpoint),
		cairocoder.WithAPIKey(apiKey),
		cairocoder.WithAuthHeader(c.settings.AuthHeader),
		cairocoder.WithTimeout(c.settings.Timeout),
		cairocoder.WithLogger(c.logger),
	)

	var content string
	call := func() error {
		var callErr error
		content, callErr = client.Complete(ctx, text)
		return callErr
	}

	if c.showProgress(stderr) {
		err = cliui.Step(stderr, "Asking Cairo Coder", call)
	} else {
		err = call()
	}
	if err != nil {
		if errors.Is(err, cairocoder.ErrUnauthorized) {
			return fmt.Errorf("%w (check %s)", err, credentials.EnvVarForProvider(credentials.CairoCoder))
		}
		return err
	}

	return c.write(stdout, content)
}

func (c *fixCommander) buildPrompt(stdin io.Reader) (string, error) {
	source := prompt.DefaultContract
	if c.contractPath != "" {
		var err error
		source, err = prompt.Load(c.contractPath, stdin)
		if err != nil {
			return "", err
		}
	}

	text := prompt.Build(c.settings.Instruction, source)
	c.logger.Debug("built prompt",
		"contract", c.contractPathOrDefault(),
		"bytes", len(text),
	)

	return text, nil
}

func (c *fixCommander) contractPathOrDefault() string {
	if c.contractPath == "" {
		return "<embedded AnimalNFT>"
	}
	return c.contractPath
}

// write prints content followed by a newline, or its markdown rendering
// when rendering is enabled.
func (c *fixCommander) write(stdout io.Writer, content string) error {
	if c.shouldRender(stdout) {
		rendered, err := cliui.RenderMarkdown(content)
		if err == nil {
			_, err = fmt.Fprint(stdout, rendered)
			return err
		}
		c.logger.Warn("rendering markdown failed, printing raw content", "error", err)
	}

	_, err := fmt.Fprintln(stdout, content)
	return err
}

func (c *fixCommander) shouldRender(stdout io.Writer) bool {
	switch c.settings.Render {
	case config.RenderAlways:
		return true
	case config.RenderAuto:
		return cliui.IsTerminal(stdout)
	default:
		return false
	}
}

func (c *fixCommander) showProgress(stderr io.Writer) bool {
	return !c.jsonLogs && !c.debug && cliui.IsTerminal(stderr)
}

// newLogger builds the stderr logger, fanned out to a JSON log file when
// --log-file is set. The returned func closes the file.
func (c *fixCommander) newLogger(stderr io.Writer) (*slog.Logger, func() error, error) {
	l := logger.New(
		logger.WithWriter(stderr),
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithJSON(c.jsonLogs),
		logger.WithPrefix("cairofix"),
	)

	if c.logFile == "" {
		return l, func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	fl := logger.New(
		logger.WithWriter(f),
		logger.WithJSON(true),
		logger.WithDebug(true),
	)

	return logger.Multi(l, fl), f.Close, nil
}
