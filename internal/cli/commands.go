package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Page  string
	Limit string
	Query string
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas, most upvoted first",
		Example: `  ideactl list --query export --limit 5
  ideactl list --page 2 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			p, err := svc.ParseList(opts.Page, opts.Limit, opts.Query)
			if err != nil {
				return failure(err)
			}
			page, err := svc.List(cmd.Context(), p)
			if err != nil {
				return failure(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(page, func(w io.Writer) {
				if page.Degraded {
					fmt.Fprintln(w, "warning: ideas document unreadable, showing nothing")
				}
				writeIdeaTable(w, page.Items)
				fmt.Fprintf(w, "page %d of %d (%d matching)\n", page.CurrentPage, page.TotalPages, page.TotalMatching)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Page, "page", "", "1-based page number (default 1)")
	cmd.Flags().StringVar(&opts.Limit, "limit", "", "page size (default DEFAULT_PAGE_SIZE)")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "case-insensitive text to search in summary and description")

	return cmd
}

func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show an idea and its submitter",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			got, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return failure(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(got, func(w io.Writer) {
				writeIdea(w, got.Idea, got.Employee)
			})
		},
	}
}

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Draft idea.Draft
}

func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Submit a new idea",
		Example:       `  ideactl create --summary "Dark mode" --description "Add a dark theme" --employee e1 --priority high`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := svc.Create(cmd.Context(), opts.Draft)
			if err != nil {
				return failure(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(created, func(w io.Writer) {
				fmt.Fprintf(w, "created idea %s\n", created.ID)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Draft.Summary, "summary", "", "one-line summary")
	cmd.Flags().StringVar(&opts.Draft.Description, "description", "", "full description")
	cmd.Flags().StringVar(&opts.Draft.EmployeeID, "employee", "", "submitting employee id")
	cmd.Flags().StringVar(&opts.Draft.Priority, "priority", "", "High, Medium or Low (default Low)")

	return cmd
}

func NewVoteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "vote <id> upvote|downvote",
		Short:         "Up- or downvote an idea",
		Args:          cobra.ExactArgs(2),
		ValidArgs:     []string{string(idea.Upvote), string(idea.Downvote)},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			voted, err := svc.Vote(cmd.Context(), args[0], idea.VoteType(args[1]))
			if err != nil {
				return failure(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(voted, func(w io.Writer) {
				fmt.Fprintf(w, "%s now +%d / -%d\n", voted.ID, voted.Upvotes, voted.Downvotes)
			})
		},
	}
}

func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Permanently delete an idea",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return failure(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(map[string]bool{"success": true}, func(w io.Writer) {
				fmt.Fprintf(w, "deleted idea %s\n", args[0])
			})
		},
	}
}

func NewEmployeesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "employees [id]",
		Short:         "List employees, or show one",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := opts.formatter(cmd.OutOrStdout())
			if len(args) == 1 {
				e, err := svc.Employee(cmd.Context(), args[0])
				if err != nil {
					return failure(err)
				}
				return out.Success(e, func(w io.Writer) { writeEmployeeTable(w, []idea.Employee{*e}) })
			}
			es, err := svc.Employees(cmd.Context())
			if err != nil {
				return failure(err)
			}
			return out.Success(es, func(w io.Writer) {
				writeEmployeeTable(w, es)
				fmt.Fprintf(w, "%d employees\n", len(es))
			})
		},
	}
}

// failure maps service errors to exit errors. Not-found and invalid-input
// errors already read well on their own.
func failure(err error) error {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidInput) {
		return WrapExitError(ExitFailure, "", err)
	}
	return WrapExitError(ExitFailure, "store error, please try again", err)
}
