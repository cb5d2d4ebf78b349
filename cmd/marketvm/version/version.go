// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keypom/fydp-secondary-market/consts"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// NewCommand implements "marketvm version" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Prints out the version",
		RunE:  versionFunc,
	}
	return cmd
}

func versionFunc(*cobra.Command, []string) error {
	fmt.Printf("%s@%s\n", consts.Name, consts.Version)
	return nil
}
