package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bookshelf/internal/app"
	"bookshelf/internal/paginate"
	"bookshelf/internal/route"
	"bookshelf/pkg/domain"
)

func newBooksCommand(envFn func() *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List and edit your books",
	}
	cmd.AddCommand(
		newBooksListCommand(envFn),
		newBooksGetCommand(envFn),
		newBooksAddCommand(envFn),
		newBooksUpdateCommand(envFn),
		newBooksDeleteCommand(envFn),
	)
	return cmd
}

func newBooksListCommand(envFn func() *env) *cobra.Command {
	var page, width, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFn()
			shelf, err := e.app.Home(cmd.Context())
			if err != nil {
				return report(cmd, err, "Failed to fetch books")
			}
			if !cmd.Flags().Changed("width") {
				width = e.cfg.ViewportWidth
			}
			var view paginate.Page[domain.Book]
			if size > 0 {
				view = shelf.PageSized(size, page)
			} else {
				view = shelf.Page(width, page)
			}
			printBooks(cmd, view.Items)
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d (%d books)\n", view.Page, view.PageCount, shelf.Len())
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&width, "width", 0, "viewport width used to pick the page size")
	cmd.Flags().IntVar(&size, "page-size", 0, "explicit page size (overrides --width)")
	return cmd
}

func newBooksGetCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			if err := e.app.Require(route.PathHome); err != nil {
				return report(cmd, err, "Failed to fetch book")
			}
			book, err := e.app.Shelf().Get(cmd.Context(), args[0])
			if err != nil {
				return report(cmd, err, "Failed to fetch book")
			}
			printBooks(cmd, []domain.Book{book})
			return nil
		},
	}
}

func newBooksAddCommand(envFn func() *env) *cobra.Command {
	var in domain.BookInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFn()
			if err := e.app.Require(route.PathHome); err != nil {
				return report(cmd, err, "Failed to add book")
			}
			book, msg, err := e.app.Shelf().Add(cmd.Context(), in)
			if err != nil {
				return report(cmd, err, "Failed to add book")
			}
			if msg == "" {
				msg = "Book added successfully"
			}
			notify(cmd, app.Success(msg))
			printBooks(cmd, []domain.Book{book})
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "book title")
	cmd.Flags().StringVar(&in.Author, "author", "", "book author")
	return cmd
}

func newBooksUpdateCommand(envFn func() *env) *cobra.Command {
	var in domain.BookInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a book's name and author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			if err := e.app.Require(route.PathHome); err != nil {
				return report(cmd, err, "Failed to update book")
			}
			book, err := e.app.Shelf().Update(cmd.Context(), args[0], in)
			if err != nil {
				return report(cmd, err, "Failed to update book")
			}
			notify(cmd, app.Success("Book updated successfully"))
			printBooks(cmd, []domain.Book{book})
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "book title")
	cmd.Flags().StringVar(&in.Author, "author", "", "book author")
	return cmd
}

func newBooksDeleteCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			if err := e.app.Require(route.PathHome); err != nil {
				return report(cmd, err, "Failed to delete book")
			}
			if err := e.app.Shelf().DeleteMany(cmd.Context(), args); err != nil {
				return report(cmd, err, "Failed to delete book")
			}
			notify(cmd, app.Success(fmt.Sprintf("Deleted %d book(s)", len(args))))
			return nil
		},
	}
}

func printBooks(cmd *cobra.Command, books []domain.Book) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTHOR")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, b.Author)
	}
	_ = w.Flush()
}
