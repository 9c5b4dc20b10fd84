package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmunix/medley/internal/config"
	"github.com/vmunix/medley/internal/userdata"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long: `Manage accounts in the userdata database.

These commands open the database file named in the server config
directly, so they work whether or not the daemon is running.`,
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersAdd,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  runUsersList,
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <username>",
	Short: "Delete a user and their data",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersRm,
}

var usersPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersPasswd,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.PersistentFlags().String("config", "", "Path to config file (searched for when empty)")
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRmCmd)
	usersCmd.AddCommand(usersPasswdCmd)
}

func openUserdata(cmd *cobra.Command) (*userdata.Store, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = discovered
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return userdata.Open(cfg.Userdata.Database)
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	store, err := openUserdata(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm:  ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	user, err := store.CreateUser(args[0], password)
	if err != nil {
		if errors.Is(err, userdata.ErrUserExists) {
			return fmt.Errorf("user %q already exists", args[0])
		}
		return err
	}

	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	store, err := openUserdata(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	users, err := store.ListUsers()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(users)
		return nil
	}

	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}
	for _, u := range users {
		fmt.Printf("  %-20s created %s\n", u.Username, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runUsersRm(cmd *cobra.Command, args []string) error {
	store, err := openUserdata(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteUser(args[0]); err != nil {
		if errors.Is(err, userdata.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", args[0])
		}
		return err
	}

	fmt.Printf("Deleted user %q\n", args[0])
	return nil
}

func runUsersPasswd(cmd *cobra.Command, args []string) error {
	store, err := openUserdata(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	password, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm:      ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	if err := store.SetPassword(args[0], password); err != nil {
		if errors.Is(err, userdata.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", args[0])
		}
		return err
	}

	fmt.Printf("Password updated for %q\n", args[0])
	return nil
}
