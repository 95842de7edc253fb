package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/netconf-go/getkit/backend/memstore"
	"github.com/netconf-go/getkit/cmd/getctl/logger"
	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/get"
	"github.com/netconf-go/getkit/pkg/types"
	"github.com/netconf-go/getkit/schema"
	"github.com/netconf-go/getkit/source/monitoring"
	"github.com/netconf-go/getkit/source/notifications"
	"github.com/netconf-go/getkit/source/yanglibrary"
)

var (
	getRecordFile   string
	getSelectors    []string
	getConfigOnly   bool
	getDatastore    string
	getWithDefaults string
	getJSONOut      bool
	getShowDefaults bool
	getWithSources  bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getRecordFile, "data", "", "JSON record fixture file (required)")
	cmd.Flags().StringArrayVar(&getSelectors, "selector", nil,
		"Subtree selector path (repeatable; default: every module)")
	cmd.Flags().BoolVar(&getConfigOnly, "config-only", false,
		"Configuration-only view (a <get-config> instead of a <get>)")
	cmd.Flags().StringVar(&getDatastore, "datastore", "running",
		"Datastore to read: running, startup, or candidate")
	cmd.Flags().StringVar(&getWithDefaults, "with-defaults", "",
		"RFC 6243 mode: report-all, report-all-tagged, trim, or explicit")
	cmd.Flags().BoolVar(&getJSONOut, "json", false, "Output JSON instead of tree text")
	cmd.Flags().BoolVar(&getShowDefaults, "show-defaults", false,
		"Mark default-flagged nodes in tree text output")
	cmd.Flags().BoolVar(&getWithSources, "with-sources", true,
		"Serve yang-library, monitoring, and notification selectors locally")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Materialize a composite tree from the record fixture",
		Long: `The get command runs one retrieval operation against the fixture store.

Example:
  getctl get --schema example.json --data records.json
  getctl get --schema example.json --data records.json --selector "/example:system/ntp"
  getctl get --schema example.json --data records.json --config-only --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context())
		},
	}
}

func runGet(ctx context.Context) error {
	logger.Init(logger.Options{Enabled: verbose, Level: slog.LevelDebug})

	idx, err := loadIndex()
	if err != nil {
		return err
	}
	ds, err := types.ParseDatastore(getDatastore)
	if err != nil {
		return err
	}
	wd, err := types.ParseWithDefaults(getWithDefaults)
	if err != nil {
		return err
	}
	if getRecordFile == "" {
		return fmt.Errorf("--data is required")
	}

	store := memstore.New()
	n, err := store.LoadFile(ds, getRecordFile)
	if err != nil {
		return err
	}
	logger.L.Debug("fixture loaded", "records", n, "datastore", ds.String())

	sess, err := get.NewSession(idx, store, get.Options{
		Datastore:    ds,
		WithDefaults: wd,
		Logger:       logger.L,
	})
	if err != nil {
		return err
	}
	if getWithSources {
		if err := registerSources(sess, idx); err != nil {
			return err
		}
	}

	mode := types.ViewFull
	if getConfigOnly {
		mode = types.ViewConfigOnly
	}
	res, err := sess.Materialize(ctx, getSelectors, mode)
	if err != nil {
		return err
	}

	if getJSONOut {
		fmt.Println(res.Tree.ExportJSON())
		return nil
	}
	return res.Tree.Print(os.Stdout, data.PrintOptions{ShowDefaults: getShowDefaults})
}

// registerSources wires the three fixed virtual sources into the session.
// The monitoring collector is fresh per invocation, so its counters only
// reflect this process.
func registerSources(sess *get.Session, idx *schema.Index) error {
	yl, err := yanglibrary.New(idx)
	if err != nil {
		return err
	}
	sess.RegisterSource(yl)

	mon, err := monitoring.New(idx, monitoring.NewCollector())
	if err != nil {
		return err
	}
	sess.RegisterSource(mon)

	ntf, err := notifications.New(idx)
	if err != nil {
		return err
	}
	sess.RegisterSource(ntf)
	return nil
}
