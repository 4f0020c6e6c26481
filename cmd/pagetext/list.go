package main

import (
	"fmt"
	"time"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	infos, err := deps.Index.FindRecordInfos(deps.Ctx, c.Limit, c.Offset)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'pagetext extract --db' to store some.")
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			info.Name, info.ContentHash, info.UpdatedAt.Format(time.RFC3339), info.URL)
	}
	return nil
}
