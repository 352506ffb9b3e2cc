package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/auth"
	"github.com/ecoskun/newsdeck/internal/config"
	"github.com/ecoskun/newsdeck/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		username := ""
		if len(args) == 1 {
			username = args[0]
		} else {
			username, err = promptLine("username: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("password: ")
		if err != nil {
			return err
		}

		store, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer store.Close()

		client := api.New(cfg.ServerURL, cfg.Timeout(), store)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()

		result := auth.Login(ctx, client, store, username, password)
		if !result.Success {
			return errors.New(result.Error)
		}
		fmt.Printf("Logged in as %s.\n", username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the extraction service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		username, err := promptLine("username: ")
		if err != nil {
			return err
		}
		email, err := promptLine("email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("password: ")
		if err != nil {
			return err
		}

		client := api.New(cfg.ServerURL, cfg.Timeout(), nil)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()

		result := auth.Register(ctx, client, username, email, password)
		if !result.Success {
			return errors.New(result.Error)
		}
		fmt.Printf("Account %s created. Run `newsdeck login` to sign in.\n", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer store.Close()

		if err := auth.Logout(store); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the cached signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer store.Close()

		if !auth.IsAuthenticated(store) {
			fmt.Println("Not logged in.")
			return nil
		}
		user, err := store.CurrentUser()
		if err != nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		return nil
	},
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal and falls
// back to a plain line read when it is not (pipes, scripts).
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
