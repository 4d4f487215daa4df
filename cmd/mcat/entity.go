package main

import (
	"fmt"

	"github.com/franz/music-catalog/internal/store"
	"github.com/spf13/cobra"
)

// entity describes the CRUD subcommands of one record type
type entity[T any] struct {
	name   string
	plural string
	repo   func(*store.Store) *store.Repository[T]
	view   view[T]
	// flags registers the record's fields on add and update
	flags func(*cobra.Command)
	// build reads a record from the flags registered by flags
	build func(*cobra.Command) *T
}

func newEntityCmd[T any](e entity[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.name,
		Short: fmt.Sprintf("Manage %s", e.plural),
	}
	cmd.AddCommand(
		e.addCmd(),
		e.getCmd(),
		e.listCmd(),
		e.updateCmd(),
		e.deleteCmd(),
		e.searchCmd(),
	)
	return cmd
}

func (e entity[T]) addCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a new %s", e.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := e.build(cmd)
			return withStore(func(db *store.Store) error {
				repo := e.repo(db)
				if err := repo.Create(rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d\n", e.name, *repo.Table().ID(rec))
				return nil
			})
		},
	}
	e.flags(c)
	return c
}

func (e entity[T]) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", e.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(db *store.Store) error {
				rec, err := e.repo(db).GetByID(recID)
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), e.view, []T{*rec})
			})
		},
	}
}

func (e entity[T]) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %s", e.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(db *store.Store) error {
				recs, err := e.repo(db).GetAll()
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), e.view, recs)
			})
		},
	}
}

func (e entity[T]) updateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Overwrite a %s", e.name),
		Long: fmt.Sprintf(`Overwrite every field of a %s.

Optional fields whose flag is not given are cleared.`, e.name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recID, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec := e.build(cmd)
			return withStore(func(db *store.Store) error {
				repo := e.repo(db)
				*repo.Table().ID(rec) = recID
				if err := repo.Update(rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d\n", e.name, recID)
				return nil
			})
		},
	}
	e.flags(c)
	return c
}

func (e entity[T]) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", e.name),
		Long: fmt.Sprintf(`Delete a %s.

Association rows that reference it are kept; "mcat doctor" reports them.`, e.name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(db *store.Store) error {
				if err := e.repo(db).Delete(recID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", e.name, recID)
				return nil
			})
		},
	}
}

func (e entity[T]) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <fragment>",
		Short: fmt.Sprintf("Find %s by name", e.plural),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(db *store.Store) error {
				recs, err := e.repo(db).SearchByName(args[0])
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), e.view, recs)
			})
		},
	}
}
