package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player data commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerUpdateCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	var userID string
	var public bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch player data for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				userID = cfg.UserID
			}
			if userID == "" {
				return fmt.Errorf("--user-id is required")
			}

			req := map[string]string{"user_id": userID}
			if !public && cfg.Token != "" {
				req["auth_token"] = cfg.Token
			}
			var result PlayerDataResult

			if err := client.Post("/player_data", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Account id (env: RPAUTH_USER_ID)")
	cmd.Flags().BoolVar(&public, "public", false, "Perform an unauthenticated public read")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var userID, city string
	var level, money int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update player data fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				userID = cfg.UserID
			}
			if userID == "" {
				return fmt.Errorf("--user-id is required")
			}
			if cfg.Token == "" {
				return fmt.Errorf("a session token is required (login first)")
			}

			updates := map[string]any{}
			if cmd.Flags().Changed("level") {
				updates["level"] = level
			}
			if cmd.Flags().Changed("money") {
				updates["money"] = money
			}
			if cmd.Flags().Changed("city") {
				updates["city"] = city
			}
			if len(updates) == 0 {
				return fmt.Errorf("nothing to update: pass --level, --money or --city")
			}

			req := map[string]any{
				"user_id":    userID,
				"auth_token": cfg.Token,
				"updates":    updates,
			}
			var result UpdateResult

			if err := client.Post("/update_player", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Account id (env: RPAUTH_USER_ID)")
	cmd.Flags().IntVar(&level, "level", 0, "New level")
	cmd.Flags().IntVar(&money, "money", 0, "New money balance")
	cmd.Flags().StringVar(&city, "city", "", "New city")

	return cmd
}
