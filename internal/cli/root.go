// Package cli 实现 appealctl：管理后台的命令行版本。
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/config"
	"github.com/NabievDev/NewPeople-sub000/internal/dashboard"
	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	AssumeYes  bool
	LogLevel   string

	cfg    config.Config
	client *apiclient.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "appealctl",
		Short:        "Command line admin console for the citizen appeals API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  appealctl login admin
  appealctl categories list
  appealctl tags create Urgent --pool internal --color "#FF0000"
  appealctl statuses move 5 --to 0
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("APPEALCTL_CONFIG", ""), "Path to config file (defaults and APPEALS_* env vars otherwise)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.AssumeYes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newStatusesCmd(app))
	cmd.AddCommand(newAppealsCmd(app))
	cmd.AddCommand(newStatsCmd(app))

	return cmd
}

func (a *App) init() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.LogLevel != "" {
		level = a.LogLevel
	}
	// log.Init 遇到非法级别会 panic，这里先校验
	if _, err := zapcore.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: use debug, info, warn or error", level)
	}
	log.Init(level, "console", "")

	tokenPath, err := resolveTokenPath(cfg.Client.TokenPath)
	if err != nil {
		return err
	}
	session, err := apiclient.LoadSession(tokenPath)
	if err != nil {
		return err
	}
	a.client = apiclient.New(cfg.Client.BaseURL, cfg.Client.Timeout, session)
	return nil
}

// resolveTokenPath 把相对路径放到用户主目录下。
func resolveTokenPath(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve token path: %w", err)
	}
	return filepath.Join(home, p), nil
}

// dashboard 为单条命令构建控制台状态，确认框走命令的输入输出。
func (a *App) dashboard(cmd *cobra.Command) *dashboard.Dashboard {
	return dashboard.New(a.client, a.prompter(cmd))
}

func (a *App) prompter(cmd *cobra.Command) dashboard.Prompter {
	return newStdioPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), a.AssumeYes)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readLine 读取一行输入，去掉行尾换行。
func readLine(r io.Reader) string {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			break
		}
	}
	return strings.TrimRight(b.String(), "\r")
}
