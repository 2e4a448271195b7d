/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/humaidq/labwave/sheets"
)

var CmdAuth = &cli.Command{
	Name:  "auth",
	Usage: "Authorize Google Sheets access and store the OAuth token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "client-id",
			Sources: cli.EnvVars("GOOGLE_CLIENT_ID"),
			Usage:   "Google OAuth client ID",
		},
		&cli.StringFlag{
			Name:    "client-secret",
			Sources: cli.EnvVars("GOOGLE_CLIENT_SECRET"),
			Usage:   "Google OAuth client secret",
		},
		&cli.StringFlag{
			Name:    "token-file",
			Value:   "token.json",
			Sources: cli.EnvVars("LABWAVE_TOKEN_FILE"),
			Usage:   "path of the stored Google OAuth token",
		},
	},
	Action: auth,
}

func auth(ctx context.Context, cmd *cli.Command) error {
	clientID := cmd.String("client-id")
	if clientID == "" {
		return errClientIDRequired
	}

	clientSecret := cmd.String("client-secret")
	if clientSecret == "" {
		return errClientSecretRequired
	}

	config := sheets.OAuthConfig(clientID, clientSecret)
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Open this link in your browser and approve access:\n\n%s\n\n", authURL)
	fmt.Print("Paste the authorization code here: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read authorization code: %w", err)
		}

		return errAuthCodeEmpty
	}

	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return errAuthCodeEmpty
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	tokenFile := cmd.String("token-file")
	if err := sheets.SaveToken(tokenFile, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("Token saved to %s\n", tokenFile)

	return nil
}
