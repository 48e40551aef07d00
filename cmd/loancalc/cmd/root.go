package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "loancalc",
	Short: "Калькулятор графика погашения кредита",
	Long: `loancalc рассчитывает аннуитетный график погашения кредита
с досрочными доплатами и итоговые показатели покупки участка.

Команды:
  schedule - график по сумме, ставке и сроку
  quote    - расчет по форме покупки (цена, взнос, налоги, сборы)
  serve    - HTTP сервер инструментов с метриками Prometheus`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

var appConfig *config.Config

// Execute запускает корневую команду
func Execute() error {
	return rootCmd.Execute()
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Ошибка: %s: %v\n", msg, err)
}

func calcOptions() calculations.Options {
	return calculations.Options{Epsilon: calculations.DefaultEpsilon, CapMultiple: appConfig.CapMultiple()}
}
