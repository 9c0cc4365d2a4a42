package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"prereq-kit-sol/internal/config"
	"prereq-kit-sol/internal/svc"
	"prereq-kit-sol/internal/wallet"
	"prereq-kit-sol/pkg/logger"
)

const defaultConfigFile = "etc/prereq.yaml"

// cli 在所有子命令之间共享的状态
type cli struct {
	configFile string
	envFile    string
	cfg        config.Config

	// 测试中替换为基于 FakeLedger 的上下文
	newServiceContext func(c config.Config) (*svc.ServiceContext, error)
}

func newRootCmd() *cobra.Command {
	return (&cli{newServiceContext: svc.NewServiceContext}).rootCmd()
}

func (app *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prereq",
		Short:         "Solana devnet prerequisite toolkit",
		Long:          "Generate and convert keypairs, request airdrops, transfer or sweep SOL, and enroll with the prereq program.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}
	root.PersistentFlags().StringVarP(&app.configFile, "config", "f", defaultConfigFile, "the config file")
	root.PersistentFlags().StringVar(&app.envFile, "env", ".env", "dotenv file loaded before the config")

	root.AddCommand(
		app.keygenCmd(),
		app.base58ToWalletCmd(),
		app.walletToBase58Cmd(),
		app.signCmd(),
		app.airdropCmd(),
		app.balanceCmd(),
		app.transferCmd(),
		app.sweepCmd(),
		app.enrollCmd(),
		app.receiptCmd(),
		app.configCmd(),
	)
	return root
}

// setup 依次加载 .env、配置文件并初始化日志
func (app *cli) setup() error {
	if app.envFile != "" {
		if err := godotenv.Load(app.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", app.envFile, err)
		}
	}

	c, err := config.Load(app.configFile)
	if err != nil {
		return err
	}
	app.cfg = c

	return logger.Init(c.LogConf.ToLogOption())
}

func (app *cli) service() (*svc.ServiceContext, error) {
	return app.newServiceContext(app.cfg)
}

func loadWallet(path string) (*wallet.Keypair, error) {
	kp, err := wallet.LoadKeypairFile(path)
	if err != nil {
		return nil, fmt.Errorf("load wallet %s: %w", path, err)
	}
	return kp, nil
}

// readLine 读取一行输入，去掉首尾空白
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
