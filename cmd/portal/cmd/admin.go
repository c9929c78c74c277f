package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func AdminCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator accounts",
	}

	cmd.AddCommand(adminLoginCmd(s))
	cmd.AddCommand(adminPasswdCmd(s))
	cmd.AddCommand(adminCreateCmd(s))
	return cmd
}

func adminLoginCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "login LOGIN",
		Short: "Check an administrator password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			if !s.app.AuthService.Authenticate(args[0], password) {
				return errors.New("invalid login or password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func adminPasswdCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd LOGIN",
		Short: "Change an administrator password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := readPassword(cmd, "Current password: ")
			if err != nil {
				return err
			}
			next, err := readNewPassword(cmd)
			if err != nil {
				return err
			}
			err = s.app.AuthService.ChangePassword(args[0], current, next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		},
	}
}

func adminCreateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "create LOGIN",
		Short: "Add an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readNewPassword(cmd)
			if err != nil {
				return err
			}
			err = s.app.AuthService.CreateAdmin(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "admin created")
			return nil
		},
	}
}

func readNewPassword(cmd *cobra.Command) (string, error) {
	password, err := readPassword(cmd, "New password: ")
	if err != nil {
		return "", err
	}
	confirm, err := readPassword(cmd, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

// readPassword prompts without echo on a terminal and reads a plain line otherwise
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := stdin(cmd).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var stdinReaders = map[io.Reader]*bufio.Reader{}

// stdin keeps one buffered reader per input so consecutive prompts share it
func stdin(cmd *cobra.Command) *bufio.Reader {
	in := cmd.InOrStdin()
	r, ok := stdinReaders[in]
	if !ok {
		r = bufio.NewReader(in)
		stdinReaders[in] = r
	}
	return r
}
