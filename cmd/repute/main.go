// Command repute manages Repute DAO contract deployed to Neo network.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "repute"
	app.Usage = "Repute DAO contract management tool"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "Path to the YAML configuration file",
			EnvVar: "REPUTE_CONFIG",
		},
		cli.StringFlag{
			Name:   "rpc, r",
			Usage:  "Network address of the Neo RPC server (overrides config)",
			EnvVar: "REPUTE_RPC",
		},
		cli.StringFlag{
			Name:   "wallet, w",
			Usage:  "Path to the NEP-6 wallet (overrides config)",
			EnvVar: "REPUTE_WALLET",
		},
		cli.StringFlag{
			Name:  "account, a",
			Usage: "Address of the wallet account to sign transactions with (overrides config)",
		},
		cli.StringFlag{
			Name:   "contract",
			Usage:  "Address of the Repute contract (overrides config)",
			EnvVar: "REPUTE_CONTRACT",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "Enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		deployCommand(),
		{
			Name:      "init",
			Usage:     "Initialize the program with the signing account as admin",
			ArgsUsage: "<token> [cooldown-seconds]",
			Action:    initProgram,
		},
		{
			Name:      "configure-role",
			Usage:     "Create or overwrite the role",
			ArgsUsage: "<index> <name> <threshold>",
			Action:    configureRole,
		},
		{
			Name:      "set-cooldown",
			Usage:     "Change the cooldown period between repeated votes",
			ArgsUsage: "<seconds>",
			Action:    setCooldown,
		},
		{
			Name:      "set-admin",
			Usage:     "Hand admin capability over, new admin must be in the same wallet",
			ArgsUsage: "<new-admin>",
			Action:    setAdmin,
		},
		{
			Name:      "upvote",
			Usage:     "Upvote the target on behalf of the signing account",
			ArgsUsage: "<target>...",
			Action:    voteAction(true),
		},
		{
			Name:      "downvote",
			Usage:     "Downvote the target on behalf of the signing account",
			ArgsUsage: "<target>...",
			Action:    voteAction(false),
		},
		{
			Name:      "reset",
			Usage:     "Reset the target's score to zero",
			ArgsUsage: "<target>",
			Action:    resetScore,
		},
		{
			Name:   "reset-all",
			Usage:  "Reset all scores to zero",
			Action: resetAllScores,
		},
		{
			Name:      "score",
			Usage:     "Print the user's score and role",
			ArgsUsage: "<user>",
			Action:    printScore,
		},
		{
			Name:      "role",
			Usage:     "Print the role by index",
			ArgsUsage: "<index>",
			Action:    printRole,
		},
		{
			Name:   "roles",
			Usage:  "Print all configured roles",
			Action: printRoles,
		},
		{
			Name:   "state",
			Usage:  "Print the program state",
			Action: printState,
		},
		keyCommand(),
		{
			Name:   "dump",
			Usage:  "Print all storage records of the contract",
			Action: dumpStorage,
		},
	}

	return app
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
