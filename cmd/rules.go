package cmd

import (
	"errors"
	"fmt"
	"strconv"

	corerules "lunar-assistant/core/rules"
	"lunar-assistant/feature/rules"

	"github.com/spf13/cobra"
)

var ruleInput corerules.RuleInput
var ruleQuantity float64

// rulesCmd groups the rule administration commands.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage a community's ownership rules",
}

var rulesAddCmd = &cobra.Command{
	Use:   "add [guild]",
	Short: "Add a rule granting a role to holders of an NFT",
	Long: `Adds a rule to the community. The bot's own role must sit above the
granted role in the community's role hierarchy.

Examples:
  lunar rules add 42 --nft terra1abc --role Holder
  lunar rules add 42 --nft terra1abc --role Whale --quantity 5
  lunar rules add 42 --nft terra1abc --role Rare --token-ids '["1","2"]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := rulesService()
		if err != nil {
			return err
		}

		input := ruleInput
		if cmd.Flags().Changed("quantity") {
			input.Quantity = &ruleQuantity
		}

		index, _, err := svc.AddRule(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		fmt.Printf("Rule added successfully! (rule %d)\n", index)
		return nil
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list [guild]",
	Short: "List the community's rules with their numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := rulesService()
		if err != nil {
			return err
		}

		summaries, err := svc.ListRules(cmd.Context(), args[0])
		if errors.Is(err, corerules.ErrNoRules) {
			fmt.Println("You haven't created any rules yet. Please add a rule and try again")
			return nil
		}
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Println(s.String())
		}
		return nil
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove [guild] [index]",
	Short: "Remove the rule with the given number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("please specify a rule number and try again: %w", err)
		}

		svc, err := rulesService()
		if err != nil {
			return err
		}

		removed, err := svc.RemoveRule(cmd.Context(), args[0], index)
		if err != nil {
			return err
		}
		fmt.Printf("Rule removed successfully! (%s)\n", removed.RoleName)
		return nil
	},
}

func rulesService() (*rules.Service, error) {
	d, err := bootstrap()
	if err != nil {
		return nil, err
	}
	return rules.NewService(d.configs, d.platform, d.logger), nil
}

func init() {
	rulesAddCmd.Flags().StringVar(&ruleInput.NFTAddress, "nft", "", "NFT contract address")
	rulesAddCmd.Flags().StringVar(&ruleInput.RoleName, "role", "", "Role granted to holders")
	rulesAddCmd.Flags().Float64Var(&ruleQuantity, "quantity", 1, "Number of matching tokens required")
	rulesAddCmd.Flags().StringVar(&ruleInput.TokenIDs, "token-ids", "", "JSON array of eligible token ids")
	_ = rulesAddCmd.MarkFlagRequired("nft")
	_ = rulesAddCmd.MarkFlagRequired("role")

	rulesCmd.AddCommand(rulesAddCmd, rulesListCmd, rulesRemoveCmd)
	RootCmd.AddCommand(rulesCmd)
}
