package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// mineCmd represents the mine command. The engine only accepts the mine
// when this client's nickname holds the current mining turn.
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the next block",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := connect()
		if err != nil {
			log.Fatal(err)
		}
		defer c.Close()

		if err := c.WriteJSON(map[string]any{"action": "mine-block"}); err != nil {
			log.Fatal(err)
		}

		for {
			var msg message
			if err := c.ReadJSON(&msg); err != nil {
				log.Fatal(err)
			}

			switch msg.Name {
			case "block-mined":
				fmt.Printf("block mined: %s\n", msg.Data)
				return
			case "mining-error":
				log.Fatalf("mine rejected: %s", ackMessage(msg.Data))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
