package config

import (
	"log"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var CfgFile string

type Config struct {
	HomeDir       string `mapstructure:"home_dir"`
	DBPath        string `mapstructure:"db_path"`
	ListenAddress string `mapstructure:"listen_address"`
	LogLevel      string `mapstructure:"log_level"`

	Contract ContractConfig `mapstructure:"contract"`
}

// ContractConfig carries the instantiation parameters used when the daemon
// starts against a fresh store. Fees are decimal integer amounts in the fee
// denom; an empty string means no fee is charged.
type ContractConfig struct {
	Address      string `mapstructure:"address"`
	AdminAddress string `mapstructure:"admin_address"`
	BindName     string `mapstructure:"bind_name"`
	ContractName string `mapstructure:"contract_name"`
	AskFee       string `mapstructure:"ask_fee"`
	BidFee       string `mapstructure:"bid_fee"`
}

const (
	defaultListenAddress = "localhost:8090"
	defaultLogLevel      = "info"
	defaultDBFile        = "escrow.db"

	defaultContractAddress = "escrow_contract"
	defaultAdminAddress    = "escrow_admin"
	defaultBindName        = "bilateralex.sc"
	defaultContractName    = "Bilateral Exchange"
)

func InitConfig() {
	// Find home directory.
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	defaultHomeDir := home + "/.bilateral-escrow"

	viper.SetDefault("home_dir", defaultHomeDir)
	viper.SetDefault("db_path", defaultHomeDir+"/"+defaultDBFile)
	viper.SetDefault("listen_address", defaultListenAddress)
	viper.SetDefault("log_level", defaultLogLevel)

	viper.SetDefault("contract.address", defaultContractAddress)
	viper.SetDefault("contract.admin_address", defaultAdminAddress)
	viper.SetDefault("contract.bind_name", defaultBindName)
	viper.SetDefault("contract.contract_name", defaultContractName)
	viper.SetDefault("contract.ask_fee", "")
	viper.SetDefault("contract.bid_fee", "")

	viper.SetConfigType("yaml")
	if CfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(CfgFile)
	} else {
		CfgFile = defaultHomeDir + "/config.yaml"
		viper.AddConfigPath(defaultHomeDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}
}
