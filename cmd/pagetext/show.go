package main

import (
	"fmt"

	"github.com/fwojciec/pagetext"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecord(deps.Ctx, c.Name)
	if err != nil {
		return err
	}

	if c.Text {
		if h := rec.Heading(); h != "" {
			fmt.Fprintf(deps.Stdout, "# %s\n\n", h)
		}
		fmt.Fprintln(deps.Stdout, rec.Content())
		return nil
	}

	data, err := pagetext.MarshalRecord(rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\n", data)
	return nil
}
