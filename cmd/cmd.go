package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"cosmossdk.io/math"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/provlabs/bilateral-escrow/api"
	"github.com/provlabs/bilateral-escrow/api/handlers"
	versioncmd "github.com/provlabs/bilateral-escrow/cmd/version"
	"github.com/provlabs/bilateral-escrow/config"
	"github.com/provlabs/bilateral-escrow/host"
	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
	utils "github.com/provlabs/bilateral-escrow/utils/viper"
)

var RootCmd = &cobra.Command{
	Use:   "bilateral-escrow",
	Short: "Bilateral escrow exchange host",
	Long:  `Standalone host for the bilateral escrow exchange contract: holds asks and bids in custody and settles admin-matched pairs atomically.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no arguments are provided, print usage information
		if len(args) == 0 {
			if err := cmd.Usage(); err != nil {
				log.Fatalf("Error printing usage: %v", err)
			}
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the escrow host",
	Long:  `Initialize the escrow host by generating a config file with default values.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Config{}
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Fatalf("failed to unmarshal config: %v", err)
		}

		if _, err := os.Stat(cfg.HomeDir); os.IsNotExist(err) {
			if err := os.MkdirAll(cfg.HomeDir, 0o755); err != nil {
				log.Fatalf("failed to create home directory: %v", err)
			}
		}

		if err := viper.WriteConfigAs(config.CfgFile); err != nil {
			log.Fatalf("failed to write config file: %v", err)
		}

		fmt.Printf("Config file created: %s\n", config.CfgFile)
		fmt.Println()
		fmt.Println("Edit the config file to set the correct values for your environment.")
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the escrow host",
	Long:  `Start the escrow host: open the store, instantiate the contract if needed, and serve the contract API.`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}

		cfg := config.Config{}
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Fatalf("failed to unmarshal config: %v", err)
		}

		logger, err := buildLogger(cfg.LogLevel)
		if err != nil {
			log.Fatalf("failed to build logger: %v", err)
		}

		// Ensure all logs are written
		defer logger.Sync() // nolint: errcheck

		db, err := store.OpenBoltDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer db.Close() // nolint: errcheck

		h := host.New(db, cfg.Contract.Address, logger)

		if err := ensureInstantiated(h, cfg.Contract); err != nil {
			log.Fatalf("failed to instantiate contract: %v", err)
		}

		server := api.NewServer(handlers.NewContractHandler(h), cfg.ListenAddress, logger)
		if err := server.Start(); err != nil {
			log.Fatalf("api server stopped: %v", err)
		}
	},
}

// ensureInstantiated instantiates the contract on a fresh store and leaves an
// existing instance alone.
func ensureInstantiated(h *host.Host, cfg config.ContractConfig) error {
	_, err := h.Query(types.QueryMsg{GetContractInfo: &types.GetContractInfo{}})
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return err
	}

	askFee, err := parseFee(cfg.AskFee)
	if err != nil {
		return fmt.Errorf("invalid ask_fee: %w", err)
	}
	bidFee, err := parseFee(cfg.BidFee)
	if err != nil {
		return fmt.Errorf("invalid bid_fee: %w", err)
	}

	_, err = h.Instantiate(cfg.AdminAddress, types.InstantiateMsg{
		BindName:     cfg.BindName,
		ContractName: cfg.ContractName,
		AskFee:       askFee,
		BidFee:       bidFee,
	})
	return err
}

func parseFee(s string) (*math.Int, error) {
	if s == "" {
		return nil, nil
	}
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return nil, fmt.Errorf("not a valid integer amount: %q", s)
	}
	return &amount, nil
}

func buildLogger(logLevel string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(logLevel); err != nil {
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	))

	return logger, nil
}

var setFeeCmd = &cobra.Command{
	Use:   "set-fee [ask|bid] [amount]",
	Short: "Set a creation fee in the config",
	Long:  `Update the configured ask or bid creation fee. An empty amount clears the fee. Takes effect on the next fresh instantiation; a running instance changes fees through the update_fees execute route.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		feeType := args[0]
		if feeType != "ask" && feeType != "bid" {
			log.Fatalf("fee type must be ask or bid, got %q", feeType)
		}
		if _, err := parseFee(args[1]); err != nil {
			log.Fatalf("invalid fee amount: %v", err)
		}

		home, err := homedir.Dir()
		if err != nil {
			log.Fatalf("failed to get home directory: %v", err)
		}

		config.CfgFile = home + "/.bilateral-escrow/config.yaml"

		viper.SetConfigFile(config.CfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read config: %v", err)
		}

		if err := utils.UpdateViperConfig("contract."+feeType+"_fee", args[1], viper.ConfigFileUsed()); err != nil {
			log.Fatalf("failed to update config: %v", err)
		}

		fmt.Printf("%s fee set to %q in %s\n", feeType, args[1], viper.ConfigFileUsed())
	},
}

func init() {
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(startCmd)
	RootCmd.AddCommand(setFeeCmd)

	RootCmd.AddCommand(versioncmd.Cmd())

	cobra.OnInitialize(config.InitConfig)

	RootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file")
}
