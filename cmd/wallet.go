package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// walletCmd groups wallet link commands.
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage linked wallets",
}

var walletLinkCmd = &cobra.Command{
	Use:   "link [user] [address]",
	Short: "Link a wallet address to a user, replacing any previous link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		if d.wallets == nil {
			return fmt.Errorf("database connection required to link wallets")
		}

		link, err := d.wallets.Link(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		d.logger.Info("Wallet linked", zap.String("user", link.UserID), zap.String("address", link.Address))
		return nil
	},
}

var walletShowCmd = &cobra.Command{
	Use:   "show [user]",
	Short: "Show the wallet linked to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		if d.wallets == nil {
			return fmt.Errorf("database connection required to read wallets")
		}

		address, ok, err := d.wallets.GetLinkedWallet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No wallet linked.")
			return nil
		}
		fmt.Println(address)
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletLinkCmd, walletShowCmd)
	RootCmd.AddCommand(walletCmd)
}
