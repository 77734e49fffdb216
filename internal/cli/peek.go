package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oddhouse/hearth/internal/client"
	"github.com/spf13/cobra"
)

// Peek commands poke a running server over HTTP. They are small read/write
// tools for whoever keeps the house.

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Show the house's current pulse",
	RunE:  runPulse,
}

func runPulse(cmd *cobra.Command, args []string) error {
	data, err := client.New().Get("/api/pulse")
	if err != nil {
		return err
	}

	var resp struct {
		TotalVisits int64            `json:"totalVisits"`
		ActiveRooms map[string]int64 `json:"activeRooms"`
		SeedCount   int              `json:"seedCount"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decode pulse: %w", err)
	}

	fmt.Printf("visits: %d  seeds: %d  active rooms: %d\n",
		resp.TotalVisits, resp.SeedCount, len(resp.ActiveRooms))

	rooms := make([]string, 0, len(resp.ActiveRooms))
	for room := range resp.ActiveRooms {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	for _, room := range rooms {
		idle := time.Since(time.UnixMilli(resp.ActiveRooms[room])).Round(time.Second)
		fmt.Printf("  %s (idle %s)\n", room, idle)
	}
	return nil
}

var echoesCmd = &cobra.Command{
	Use:   "echoes",
	Short: "Listen to the well",
	RunE:  runEchoes,
}

func runEchoes(cmd *cobra.Command, args []string) error {
	data, err := client.New().Get("/api/well/echoes")
	if err != nil {
		return err
	}

	var resp struct {
		Echoes []struct {
			Text string `json:"text"`
			Age  int64  `json:"age"`
		} `json:"echoes"`
		TotalEchoes int `json:"totalEchoes"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decode echoes: %w", err)
	}

	for _, e := range resp.Echoes {
		fmt.Printf("%s  (%ds ago)\n", e.Text, e.Age)
	}
	fmt.Printf("%d echoes in the well\n", resp.TotalEchoes)
	return nil
}

var plantCmd = &cobra.Command{
	Use:   "plant [text]",
	Short: "Leave something growing in the garden",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlant,
}

func runPlant(cmd *cobra.Command, args []string) error {
	body, err := json.Marshal(map[string]string{"text": strings.Join(args, " ")})
	if err != nil {
		return err
	}

	data, err := client.New().Post("/api/garden/plants", body)
	if err != nil {
		return err
	}

	var resp struct {
		TotalPlants int `json:"totalPlants"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	fmt.Printf("planted (%d growing)\n", resp.TotalPlants)
	return nil
}
