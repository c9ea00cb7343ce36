package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	to    string
	value float64
	fee   float64
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a token transfer",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := connect()
		if err != nil {
			log.Fatal(err)
		}
		defer c.Close()

		submit := map[string]any{
			"action": "submit-transaction",
			"to":     to,
			"amount": value,
			"fee":    fee,
		}
		if err := c.WriteJSON(submit); err != nil {
			log.Fatal(err)
		}

		for {
			var msg message
			if err := c.ReadJSON(&msg); err != nil {
				log.Fatal(err)
			}

			switch msg.Name {
			case "new-transaction":
				fmt.Printf("transaction accepted: %s\n", msg.Data)
				return
			case "transaction-error":
				log.Fatalf("transaction rejected: %s", ackMessage(msg.Data))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Nickname of the recipient.")
	sendCmd.Flags().Float64VarP(&value, "value", "v", 0, "Amount to send.")
	sendCmd.Flags().Float64VarP(&fee, "fee", "f", 0, "Fee offered to the miner.")
}
