package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/logging"
)

type appOpener func(ctx context.Context) (*app, error)

type appRunFunc func(cmd *cobra.Command, a *app, args []string) error

type runWrapper func(run appRunFunc) func(*cobra.Command, []string) error

// newRootCmd builds the command tree. Every command that touches the store
// opens the app through open and closes it when the command finishes.
func newRootCmd(open appOpener, out io.Writer) *cobra.Command {
	withApp := func(run appRunFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			logger := logging.WithFields(a.logger, map[string]interface{}{"command": cmd.CommandPath()})
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return run(cmd, a, args)
		}
	}

	showRun := withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		return a.renderer.Render(cmd.Context(), out)
	})

	root := &cobra.Command{
		Use:           "newsdesk",
		Short:         "newsdesk - news articles and their comments",
		Long:          `newsdesk stores news articles and reader comments in SQLite or PostgreSQL and prints them as plain text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          showRun,
	}
	root.SetOut(out)

	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every news article followed by its comments",
		Args:  cobra.NoArgs,
		RunE:  showRun,
	})

	root.AddCommand(newNewsCmd(withApp, out), newCommentCmd(withApp, out))

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(out, "newsdesk %s\n", getVersion())
		},
	})

	return root
}

func newNewsCmd(withApp runWrapper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "List, add and delete news articles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List news articles",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			news, err := a.news.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range news {
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\n", n.ID, n.CreatedAt.Format(entity.DateLayout), n.Title)
			}
			return nil
		}),
	})

	var title, body string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a news article",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			id, err := a.news.Add(cmd.Context(), title, body)
			if err != nil {
				return describe(err)
			}
			_, _ = fmt.Fprintf(out, "created news %d\n", id)
			return nil
		}),
	}
	add.Flags().StringVar(&title, "title", "", "article title (required)")
	add.Flags().StringVar(&body, "body", "", "article body (required)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a news article and all of its comments",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := a.news.Delete(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			_, _ = fmt.Fprintf(out, "deleted %d news\n", n)
			return nil
		}),
	})

	return cmd
}

func newCommentCmd(withApp runWrapper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "List, add and delete comments",
	}

	var listNewsID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List comments, optionally for one news article",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var (
				comments []*entity.Comment
				err      error
			)
			if cmd.Flags().Changed("news-id") {
				comments, err = a.comments.ListForNews(cmd.Context(), listNewsID)
			} else {
				comments, err = a.comments.List(cmd.Context())
			}
			if err != nil {
				return describe(err)
			}
			for _, c := range comments {
				_, _ = fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", c.ID, c.NewsID, c.CreatedAt.Format(entity.DateLayout), c.Body)
			}
			return nil
		}),
	}
	list.Flags().Int64Var(&listNewsID, "news-id", 0, "only comments of this news article")
	cmd.AddCommand(list)

	var (
		body      string
		addNewsID int64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a comment to a news article",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			id, err := a.comments.Add(cmd.Context(), body, addNewsID)
			if err != nil {
				return describe(err)
			}
			_, _ = fmt.Fprintf(out, "created comment %d\n", id)
			return nil
		}),
	}
	add.Flags().StringVar(&body, "body", "", "comment text (required)")
	add.Flags().Int64Var(&addNewsID, "news-id", 0, "news article to comment on (required)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := a.comments.Delete(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			_, _ = fmt.Fprintf(out, "deleted %d comment\n", n)
			return nil
		}),
	})

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// describe reduces a validation failure to its field message.
func describe(err error) error {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("%s %s", ve.Field, ve.Message)
	}
	return err
}
