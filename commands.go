package main

import (
	"fmt"
	"strings"

	pooltop "github.com/jondoveston/pooltop/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	pngWidth  = 1024
	pngHeight = 400
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh in the background, serving metrics and exporting charts",
	Long: `watch runs the refresh loop without the dashboard. Pool and wallet figures
are exposed as Prometheus metrics when --metrics-listen is set, and the charts
are written as PNG files after every cycle when --export-dir is set.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run one refresh and write the charts as PNG and JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var loginCmd = &cobra.Command{
	Use:   "login ADDRESS",
	Short: "Store the wallet address to track",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored wallet address",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var thresholdCmd = &cobra.Command{
	Use:   "threshold AMOUNT",
	Short: "Set the payout threshold of the tracked wallet in XMR",
	Args:  cobra.ExactArgs(1),
	RunE:  runThreshold,
}

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Configure email notifications of the tracked wallet",
	Args:  cobra.NoArgs,
	RunE:  runEmail,
}

func init() {
	watchCmd.Flags().String("metrics-listen", "", "address to serve /metrics on, e.g. :9110")
	watchCmd.Flags().String("export-dir", "", "directory to write charts to after every cycle")
	if err := viper.BindPFlag("metrics_listen", watchCmd.Flags().Lookup("metrics-listen")); err != nil {
		panic(err)
	}

	exportCmd.Flags().String("out", ".", "output directory")

	emailCmd.Flags().Bool("enable", true, "enable notifications")
	emailCmd.Flags().String("from", "", "sender address")
	emailCmd.Flags().String("to", "", "recipient address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := newApp(log)
	if err != nil {
		return err
	}
	exportDir, _ := cmd.Flags().GetString("export-dir")

	ctx, cancel := signalContext()
	defer cancel()

	followStoredAddress(a)
	exporter := &pooltop.Exporter{Dir: exportDir, Renderer: pooltop.PNGRenderer{Width: pngWidth, Height: pngHeight}}

	g, ctx := errgroup.WithContext(ctx)
	if listen := viper.GetString("metrics_listen"); listen != "" {
		g.Go(func() error {
			return a.metrics.Serve(ctx, listen, log)
		})
	}
	g.Go(func() error {
		a.refresher.Run(ctx, viper.GetDuration("refresh_interval"), func(error) {
			if exportDir == "" {
				return
			}
			paths, err := exporter.Export(a.state.Snapshot())
			if err != nil {
				log.Warn("chart export failed", zap.Error(err))
				return
			}
			log.Debug("charts exported", zap.Strings("files", paths))
		})
		return nil
	})
	return g.Wait()
}

func runExport(cmd *cobra.Command, args []string) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := newApp(log)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	ctx, cancel := signalContext()
	defer cancel()

	if err := a.refresher.Cycle(ctx); err != nil {
		log.Warn("refresh incomplete, exporting what was loaded", zap.Error(err))
	}
	paths, err := pooltop.ExportCharts(out, a.state.Snapshot(), pooltop.PNGRenderer{Width: pngWidth, Height: pngHeight})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func addressStore() (*pooltop.AddressStore, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return pooltop.NewAddressStore(path)
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := addressStore()
	if err != nil {
		return err
	}
	addr, err := store.Save(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("tracking %s\n", addr)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := addressStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

// trackedAddress returns the address from flags, env or the stored config
func trackedAddress() (string, error) {
	addr := strings.TrimSpace(viper.GetString("address"))
	if addr == "" {
		return "", pooltop.ErrNoAddress
	}
	return pooltop.ValidateAddress(addr)
}

func runThreshold(cmd *cobra.Command, args []string) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	addr, err := trackedAddress()
	if err != nil {
		return err
	}
	a, err := newApp(log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	minPayout, err := a.refresher.MinPayout(ctx)
	if err != nil {
		return fmt.Errorf("load pool config: %w", err)
	}
	amount, err := pooltop.ValidateThreshold(args[0], minPayout)
	if err != nil {
		return fmt.Errorf("%w: minimum payout is %g XMR", err, minPayout)
	}
	msg, err := a.client.UpdateThreshold(ctx, addr, amount.String())
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runEmail(cmd *cobra.Command, args []string) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	addr, err := trackedAddress()
	if err != nil {
		return err
	}
	a, err := newApp(log)
	if err != nil {
		return err
	}
	enable, _ := cmd.Flags().GetBool("enable")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	ctx, cancel := signalContext()
	defer cancel()

	msg, err := a.client.SubscribeEmail(ctx, addr, enable, from, to)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
