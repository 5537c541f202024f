package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/waw666waw666/reminder/cmd/common"
	sharedcommon "github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/remind"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// currentBuildArgs is reported by the daemon's system.getVersion.
var currentBuildArgs BuildArgs

var (
	configDir string
	storeKind string

	globalFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config-dir",
			Usage:       "directory holding tasks, logs and the pid file",
			EnvVar:      remind.ConfigDirEnv,
			Destination: &configDir,
		},
		cli.StringFlag{
			Name:        "store",
			Usage:       "task store backend: json or sqlite",
			Value:       sharedcommon.StoreKind(),
			EnvVar:      sharedcommon.StoreEnv,
			Destination: &storeKind,
		},
	}
)

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "reminder",
		HelpName:              "reminder",
		Usage:                 "A personal reminder scheduler.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "reminder <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Flags:                 globalFlags,
		Before:                applyGlobalFlags,
		Commands: []cli.Command{
			{
				Name:               "daemon",
				Usage:              "run the reminder scheduler in the foreground",
				Description:        DaemonDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             daemon,
				Flags:              daemonFlags,
			},
			{
				Name:               "add",
				Aliases:            []string{"a"},
				Usage:              "create a reminder",
				UsageText:          "add <title> <content> <interval minutes>",
				Description:        AddDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             add,
			},
			{
				Name:               "edit",
				Aliases:            []string{"e"},
				Usage:              "change a reminder",
				UsageText:          "edit [flags] <id>",
				Description:        EditDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             edit,
				Flags:              editFlags,
			},
			{
				Name:               "delete",
				Aliases:            []string{"rm"},
				Usage:              "remove a reminder",
				UsageText:          "delete <id>",
				Description:        DeleteDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             deleteTask,
			},
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "display configured reminders",
				Description:        ListDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             list,
			},
			{
				Name:               "test",
				Aliases:            []string{"t"},
				Usage:              "fire a reminder now",
				UsageText:          "test <id>",
				Description:        TestDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             testTask,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show when each reminder fires next",
				Description:        StatusDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             status,
				Flags:              statusFlags,
			},
			{
				Name:               "stop",
				Usage:              "stop the running daemon",
				Description:        StopDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             stopDaemon,
			},
			{
				Name:        "autostart",
				Usage:       "start the daemon at login",
				Description: AutostartDescription,
				Subcommands: []cli.Command{
					{
						Name:   "enable",
						Usage:  "register the daemon to start at login",
						Action: autostartEnable,
					},
					{
						Name:   "disable",
						Usage:  "remove the login entry",
						Action: autostartDisable,
					},
					{
						Name:   "status",
						Usage:  "report whether the login entry exists",
						Action: autostartStatus,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of reminder",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}

// applyGlobalFlags points the configuration directory at --config-dir.
func applyGlobalFlags(ctx *cli.Context) error {
	if configDir == "" {
		return nil
	}
	return remind.SetConfigDir(configDir)
}
