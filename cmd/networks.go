package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/visualsign/networks"
)

func newNetworksCmd() *cobra.Command {
	var testnets bool
	c := &cobra.Command{
		Use:   "networks",
		Short: "Show all of the supported networks",
		Long: `Show the networks visualsign knows by name. Any other chain can still be
given by its numeric id. Add networks with --networks-dir.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			u := terminalUI(cmd.OutOrStdout())
			u.Table(
				[]string{"Chain ID", "Name", "Display name", "Native token", "Aliases"},
				networkRows(networks.GetSupportedNetworks(), testnets),
			)
		},
	}
	c.Flags().BoolVar(&testnets, "testnets", false, "Include testnets")
	return c
}

func networkRows(all []networks.Network, testnets bool) [][]string {
	rows := [][]string{}
	for _, n := range all {
		if n.IsTestnet() && !testnets {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatUint(n.GetChainID(), 10),
			n.GetName(),
			n.GetDisplayName(),
			n.GetNativeTokenSymbol(),
			strings.Join(n.GetAlternativeNames(), ", "),
		})
	}
	return rows
}
