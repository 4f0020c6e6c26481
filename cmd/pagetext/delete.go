package main

import (
	"fmt"

	"github.com/fwojciec/pagetext"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return pagetext.Errorf(pagetext.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Index.DeleteRecord(deps.Ctx, c.Name); err != nil {
		if pagetext.ErrorCode(err) == pagetext.ENOTFOUND {
			return pagetext.Errorf(pagetext.ENOTFOUND, "record %q not found. Use 'pagetext list' to see stored records.", c.Name)
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %q\n", c.Name)
	return nil
}
