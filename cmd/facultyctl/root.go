package main

import (
	"fmt"
	"net/http"
	"os"

	"faculty_directory_go/config"
	"faculty_directory_go/panel"
	"faculty_directory_go/services/i18n"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	APIURL string
	Lang   string
}

func newRootCmd() *cobra.Command {
	cfg := config.LoadClient()
	opts := &rootOptions{APIURL: cfg.APIURL, Lang: cfg.Lang}

	cmd := &cobra.Command{
		Use:           "facultyctl",
		Short:         "Browse and edit the faculty directory from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return i18n.Load()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", opts.APIURL, "faculty directory server (FACULTY_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", opts.Lang, "message language: en or es (FACULTY_LANG)")

	cmd.AddCommand(newDepartmentsCmd(opts))
	cmd.AddCommand(newShellCmd(opts))
	return cmd
}

func (o *rootOptions) client() *panel.HTTPClient {
	return panel.NewHTTPClient(o.APIURL, http.DefaultClient)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
