// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/ulimit"
	"github.com/ava-labs/avalanchego/vms/rpcchainvm"
	"github.com/spf13/cobra"

	"github.com/keypom/fydp-secondary-market/cmd/marketvm/version"

	mvm "github.com/keypom/fydp-secondary-market/vm"
)

var rootCmd = &cobra.Command{
	Use:        "marketvm",
	Short:      "MarketVM agent",
	SuggestFor: []string{"marketvm"},
	RunE:       runFunc,
}

func init() {
	cobra.EnablePrefixMatching = true
}

func init() {
	rootCmd.AddCommand(
		version.NewCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "marketvm failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runFunc(*cobra.Command, []string) error {
	if err := ulimit.Set(ulimit.DefaultFDLimit, logging.NoLog{}); err != nil {
		return fmt.Errorf("%w: failed to set fd limit correctly", err)
	}

	v, err := mvm.New()
	if err != nil {
		return err
	}

	return rpcchainvm.Serve(context.TODO(), v)
}
