package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringP("email", "e", "", "Staff email address")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session token",
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if strings.TrimSpace(email) == "" {
		return errors.New("--email is required")
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	resp, err := a.client.Auth.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.client.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		identity := a.client.Session().Identity()
		fmt.Printf("%s\t%s\t%s\n", identity.ID, identity.Email, identity.Role)
		return nil
	},
}
