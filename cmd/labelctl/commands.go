package main

import (
	"github.com/spf13/cobra"

	"github.com/ghuser/bomlabel/services/label/application/handlers"
)

func newExplodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explode <itemCode>",
		Short: "Print the raw materials consumed by one unit of an item.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.labelService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			root, explosion, err := svc.Explode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), handlers.NewIngredientsResponse(root, explosion))
		},
	}
}

func newLabelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "label <itemCode>",
		Short: "Print the nutrition, allergen and ingredient label of an item.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.labelService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			label, err := svc.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), handlers.NewLabelResponse(label))
		},
	}
}
