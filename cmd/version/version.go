package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provlabs/bilateral-escrow/version"
)

func Cmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of bilateral-escrow",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.BuildVersion)
		},
	}
	return versionCmd
}
