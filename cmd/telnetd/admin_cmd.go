package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/relaypoint/telnetd/internal/app"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin users",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.Boot(cfgFile, !adminVerbose)
	},
}

var adminVerbose bool

func init() {
	adminCmd.PersistentFlags().BoolVarP(&adminVerbose, "verbose", "v", false, "enable verbose logging")
	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminInfoCmd)
	adminCmd.AddCommand(adminPassCmd)
	adminCmd.AddCommand(adminRemoveCmd)
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new admin user",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			username string
			password string
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Description("Enter the desired username").
					Value(&username).
					Validate(func(str string) error {
						if len(str) < 3 {
							return fmt.Errorf("username must be at least 3 characters")
						}
						if _, err := app.Store.FindAdminUserByUsername(str); err == nil {
							return fmt.Errorf("username already taken")
						}
						return nil
					}),
				huh.NewInput().
					Title("Password").
					Description("Enter a strong password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(func(str string) error {
						if len(str) < 6 {
							return fmt.Errorf("password must be at least 6 characters")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			log.Fatal(err)
		}

		if err := app.Store.CreateAdminUser(username, password); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}

		fmt.Printf("Admin user '%s' created successfully!\n", username)
	},
}

var adminInfoCmd = &cobra.Command{
	Use:   "info [username]",
	Short: "Display information about an admin user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		user, err := app.Store.FindAdminUserByUsername(username)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%d\n", user.ID)
		fmt.Fprintf(w, "Username:\t%s\n", user.Username)
		fmt.Fprintf(w, "Created At:\t%s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
		w.Flush()
	},
}

var adminPassCmd = &cobra.Command{
	Use:   "password [username] [new_password]",
	Short: "Set an admin user's password",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		newPass := args[1]

		if err := app.Store.UpdateAdminPassword(username, newPass); err != nil {
			log.Fatalf("Error updating password: %v", err)
		}
		fmt.Printf("Password updated for admin user '%s'.\n", username)
	},
}

var adminRemoveCmd = &cobra.Command{
	Use:   "remove [username]",
	Short: "Permanently remove an admin user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		if err := app.Store.RemoveAdminUser(username); err != nil {
			log.Fatalf("Error removing admin user: %v", err)
		}
		fmt.Printf("Admin user '%s' removed.\n", username)
	},
}
