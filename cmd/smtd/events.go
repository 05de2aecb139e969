package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/show-me-the-data/internal/cli"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, show and delete events",
		Long:  `Browse the events stored by the event service.`,
	}

	cmd.AddCommand(eventsListCmd())
	cmd.AddCommand(eventsShowCmd())
	cmd.AddCommand(eventsDeleteCmd())

	return cmd
}

func eventsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a category, newest first",
	}
	category := addCategoryFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := category(cfg)
		if err != nil {
			return err
		}

		client, err := newStoreClient(cfg)
		if err != nil {
			return err
		}

		events, err := client.ListEvents(cmd.Context(), mode)
		if err != nil {
			return serviceError(cfg, "list events", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s 이벤트 (%d)", mode.Label(), len(events))))
		if len(events) == 0 {
			fmt.Fprintln(out, cli.FormatInfo("등록된 이벤트가 없습니다."))
			return nil
		}
		return cli.WriteEventTable(out, events, localTime())
	}

	return cmd
}

func eventsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newStoreClient(cfg)
			if err != nil {
				return err
			}

			ev, err := client.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return serviceError(cfg, "get event "+args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderEventDetail(ev, localTime()))
			return nil
		},
	}
}

func eventsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newStoreClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !force {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, confirmErr := cli.Confirm(cmd.Context(), reader, out, fmt.Sprintf("Delete event %s?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Deletion cancelled."))
					return nil
				}
			}

			if err := client.DeleteEvent(cmd.Context(), id); err != nil {
				return serviceError(cfg, "delete event "+id, err)
			}

			// Deletion is best-effort on the service side, so check the result.
			msg, _ := deletionStatus(cmd.Context(), client, id)
			fmt.Fprintln(out, msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
