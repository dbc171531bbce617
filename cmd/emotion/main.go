// emotion 在终端里运行与网页按钮相同的分析流程
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"emotion-detector-go/internal/analyze"
)

var (
	rootCmd = &cobra.Command{
		Use:   "emotion",
		Short: "Command line client for the emotion detector server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return nil
		},
		SilenceUsage: true,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze [text]",
		Short: "Send text to /emotionDetector and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return runAnalyze(cmd, viper.GetString("server"), text)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:5000", "base URL of the emotion detector server")
	if err := viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("emotion")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, server, text string) error {
	base, err := url.Parse(server)
	if err != nil {
		return errors.Wrapf(err, "invalid server url %q", server)
	}

	doc := analyze.NewTerminalDocument(map[string]string{analyze.DefaultInputID: text}, cmd.OutOrStdout())

	var req *analyze.HTTPRequest
	h := analyze.NewHandler(doc, func() analyze.Request {
		req = analyze.NewHTTPRequest(http.DefaultClient, base)
		return req
	})
	h.Run()

	return req.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
