package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"faculty_directory_go/panel"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  departments          list departments
  select <id>          load a department
  add                  add a faculty member (prompts for each field)
  toggle <index>       lock or unlock the member at index
  form                 show or hide the add form
  help                 this text
  quit                 leave`

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive faculty panel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := opts.client()
			screen := panel.NewScreen(cmd.OutOrStdout(), opts.Lang)
			controller := panel.New(api, screen, panel.WithLang(opts.Lang))
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), api, controller)
		},
	}
}

// runShell reads one command per line until quit or EOF. Command failures
// are already shown by the panel and never end the session.
func runShell(ctx context.Context, in io.Reader, out io.Writer, api panel.API, controller *panel.Controller) error {
	scanner := bufio.NewScanner(in)
	names := map[string]string{}

	prompt := func() bool {
		fmt.Fprint(out, "> ")
		return scanner.Scan()
	}

	for prompt() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "departments":
			departments, err := api.ListDepartments(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			for _, d := range departments {
				names[d.ID] = d.Name
				fmt.Fprintf(out, "%s\t%s\n", d.ID, d.Name)
			}
		case "select":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: select <id>")
				continue
			}
			id := strings.Join(fields[1:], " ")
			name, ok := names[id]
			if !ok {
				name = id
			}
			_ = controller.SelectDepartment(ctx, id, name)
		case "add":
			form, ok := readForm(scanner, out)
			if !ok {
				return scanner.Err()
			}
			_ = controller.AddFaculty(ctx, form)
		case "toggle":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: toggle <index>")
				continue
			}
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintln(out, "usage: toggle <index>")
				continue
			}
			if err := controller.ToggleStatus(ctx, index); err == nil && controller.Snapshot().Department == nil {
				fmt.Fprintln(out, "select a department first")
			}
		case "form":
			controller.ToggleAddFacultyForm(nil)
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", fields[0])
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// readForm prompts for each add-form field in order
func readForm(scanner *bufio.Scanner, out io.Writer) (panel.FormFields, bool) {
	var form panel.FormFields
	targets := []struct {
		label string
		dst   *string
	}{
		{panel.FieldName, &form.Name},
		{panel.FieldInitials, &form.Initials},
		{panel.FieldDesignation, &form.Designation},
		{panel.FieldPhone, &form.Phone},
		{panel.FieldEmail, &form.Email},
	}

	for _, t := range targets {
		fmt.Fprintf(out, "  %s: ", t.label)
		if !scanner.Scan() {
			return form, false
		}
		*t.dst = scanner.Text()
	}
	form.Initials = panel.NormalizeInitialsInput(form.Initials)
	return form, true
}
