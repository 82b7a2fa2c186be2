package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/integrationhub/ideaportal/internal/idea/repository"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Backend string // overrides STORE_BACKEND when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for ideactl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ideactl",
		Short: "ideactl - operate the idea portal store",
		Long:  "Inspect and change the idea portal's ideas and employees using the same store configuration as the server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// stdout carries command output only
			logger.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				logger.Init("debug")
			} else {
				logger.Init("warn")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "store backend (file|memory|redis|mongo|object), defaults to STORE_BACKEND")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewVoteCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewEmployeesCommand(opts))

	return cmd
}

// openService loads configuration, applies flag overrides and opens the
// configured store. The returned close function is never nil.
func (o *RootOptions) openService(ctx context.Context) (*service.Service, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, func() {}, WrapExitError(ExitCommandError, "load config", err)
	}
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, func() {}, WrapExitError(ExitCommandError, "open store", err)
	}
	logger.Debugf("using %s store", cfg.Store.Backend)
	svc := service.New(store,
		service.WithSerializedWrites(cfg.Store.SerializeWrites),
		service.WithPageSizes(cfg.Store.DefaultPageSize, cfg.Store.MaxPageSize),
	)
	return svc, closeStore, nil
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Read()
	if o.Backend != "" {
		cfg.Store.Backend = strings.ToLower(o.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *RootOptions) formatter(w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: w}
}

// Execute runs ideactl with args and returns the process exit code. Errors
// are reported on stdout in the selected format.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		format := "text"
		if f := cmd.PersistentFlags().Lookup("format"); f != nil && slices.Contains(ValidFormats, f.Value.String()) {
			format = f.Value.String()
		}
		(&OutputFormatter{Format: format, Writer: stdout}).Error(err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
