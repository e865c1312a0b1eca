package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/workspace"
)

var (
	wsDescription string
	wsNotes       string
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage workspaces (named collections of datasets)",
}

var workspaceInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := workspace.Init(workspacesRoot(), args[0], wsDescription)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created workspace %q at %s\n", ws.Name, ws.Dir())
		return nil
	},
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := workspace.List(workspacesRoot())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No workspaces yet. Create one with 'chartloom workspace init <name>'.")
			return nil
		}
		for _, name := range names {
			ws, err := workspace.Open(workspacesRoot(), name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: skipping %s: %v\n", name, err)
				continue
			}
			fmt.Printf("  %-20s %d dataset(s)  %s\n", ws.Name, len(ws.Datasets), ws.Description)
		}
		return nil
	},
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <workspace> <file>",
	Short: "Copy a dataset file into a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := workspace.Open(workspacesRoot(), args[0])
		if err != nil {
			return err
		}
		// Load first so we only register datasets we can actually parse.
		t, err := loadTable(args[1], 0, "", "", 0)
		if err != nil {
			return err
		}
		ds, err := ws.AddDataset(args[1], t.NumRows(), t.NumCols(), wsNotes)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added %s (%d rows, %d columns) as %s\n", ds.Name, ds.Rows, ds.Cols, ds.ID)
		return nil
	},
}

var workspaceDescribeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show a workspace and its datasets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := workspace.Open(workspacesRoot(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Workspace: %s\n", ws.Name)
		if ws.Description != "" {
			fmt.Printf("Description: %s\n", ws.Description)
		}
		fmt.Printf("Created: %s\nUpdated: %s\n", ws.CreatedAt.Format("2006-01-02 15:04"), ws.UpdatedAt.Format("2006-01-02 15:04"))
		if len(ws.Datasets) == 0 {
			fmt.Println("No datasets. Add one with 'chartloom workspace add'.")
			return nil
		}
		fmt.Println("Datasets:")
		for _, ds := range ws.Sorted() {
			fmt.Printf("  %s  %-24s %d rows x %d cols  added %s\n",
				ds.ID, ds.Name, ds.Rows, ds.Cols, ds.AddedAt.Format("2006-01-02"))
			if ds.Notes != "" {
				fmt.Printf("      %s\n", ds.Notes)
			}
		}
		return nil
	},
}

func init() {
	workspaceInitCmd.Flags().StringVar(&wsDescription, "description", "", "workspace description")
	workspaceAddCmd.Flags().StringVar(&wsNotes, "notes", "", "notes to attach to the dataset")
	workspaceCmd.AddCommand(workspaceInitCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceAddCmd)
	workspaceCmd.AddCommand(workspaceDescribeCmd)
	rootCmd.AddCommand(workspaceCmd)
}
