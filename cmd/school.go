// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/accounts"
)

var (
	schoolEmail    string
	schoolPassword string
)

var schoolCmd = &cobra.Command{
	Use:   "school",
	Short: "Administer a school through a running server",
}

var registerSchoolCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a new school and print its join code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(endpoint, token)

		session, err := client.RegisterSchool(cmd.Context(), &accounts.SchoolRegistration{
			Name:     args[0],
			Email:    schoolEmail,
			Password: schoolPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to register school: %w", err)
		}

		fmt.Printf("School registered: %s (ID: %s)\n", session.School.Name, session.School.ID)
		fmt.Printf("Join code: %s\n", session.School.JoinCode)
		fmt.Printf("Token: %s\n", session.Token)
		return nil
	},
}

var loginSchoolCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a school administrator and print a token",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(endpoint, "")

		session, err := client.Login(cmd.Context(), &accounts.Credentials{
			Email:    schoolEmail,
			Password: schoolPassword,
			Role:     types.KindSchool,
		})
		if err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}

		fmt.Println(session.Token)
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show house standings for the token's school",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(endpoint, token)

		entries, err := client.Leaderboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch leaderboard: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "HOUSE\tPOINTS\tMEMBERS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%d\n", e.Cohort, e.TotalPoints, e.MemberCount)
		}
		w.Flush()
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the admin dashboard counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(endpoint, token)

		stats, err := client.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STUDENTS\tCLUBS\tITEMS\tCONFESSIONS_TODAY")
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", stats.TotalStudents, stats.ActiveClubs, stats.TotalItems, stats.ConfessionsToday)
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schoolCmd)
	schoolCmd.AddCommand(registerSchoolCmd)
	schoolCmd.AddCommand(loginSchoolCmd)
	schoolCmd.AddCommand(leaderboardCmd)
	schoolCmd.AddCommand(statsCmd)

	for _, c := range []*cobra.Command{registerSchoolCmd, loginSchoolCmd} {
		c.Flags().StringVar(&schoolEmail, "email", "", "Administrator email")
		c.Flags().StringVar(&schoolPassword, "password", "", "Administrator password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
}
