// Package cmd contains the participant client commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var (
	url      string
	nickname string
	role     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "ws://localhost:8080/v1/events", "Websocket url of the engine.")
	rootCmd.PersistentFlags().StringVarP(&nickname, "nickname", "n", "", "Nickname to join with.")
	rootCmd.PersistentFlags().StringVarP(&role, "role", "r", "user", "Role to join with: user or miner.")
}

var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "Participant client for the classroom chain engine",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// message is the envelope every outbound engine message carries.
type message struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// connect dials the engine and joins the simulation with the configured
// nickname and role. The returned connection is ready for commands.
func connect() (*websocket.Conn, error) {
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing engine: %w", err)
	}

	join := map[string]any{
		"action":   "join",
		"nickname": nickname,
		"role":     role,
	}
	if err := c.WriteJSON(join); err != nil {
		c.Close()
		return nil, fmt.Errorf("sending join: %w", err)
	}

	for {
		var msg message
		if err := c.ReadJSON(&msg); err != nil {
			c.Close()
			return nil, fmt.Errorf("waiting for join ack: %w", err)
		}

		switch msg.Name {
		case "join-success":
			return c, nil
		case "join-error":
			c.Close()
			return nil, fmt.Errorf("join rejected: %s", ackMessage(msg.Data))
		}
	}
}

// ackMessage extracts the human readable message from an error payload.
func ackMessage(data json.RawMessage) string {
	var ack struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &ack); err != nil {
		return string(data)
	}
	return ack.Message
}
