package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// watchCmd represents the watch command. It stays connected and prints
// every broadcast the engine produces. With the miner role this is how a
// participant waits for its turn.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stay connected and print every event",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := connect()
		if err != nil {
			log.Fatal(err)
		}
		defer c.Close()

		fmt.Printf("joined as %s [%s], watching events\n", nickname, role)

		for {
			var msg message
			if err := c.ReadJSON(&msg); err != nil {
				log.Fatal(err)
			}

			fmt.Printf("%s: %s\n", msg.Name, msg.Data)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
