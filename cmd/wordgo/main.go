package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/darkclainer/wordgo/pkg/querier"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
	codeLookupFailed
)

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type Config struct {
	ZapConfig   string
	LogLevel    string
	Random      bool
	Interactive bool
	JSON        bool
	Words       []string `mapstructure:"-"`

	Remote querier.RemoteConfig
	Cached querier.CachedConfig
}

// ZapConf returns zap config from ZapConfig json or development config
// with LogLevel applied.
func (c *Config) ZapConf() (*zap.Config, error) {
	if c.ZapConfig == "" {
		defaultConf := zap.NewDevelopmentConfig()
		level, err := zap.ParseAtomicLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}
		defaultConf.Level = level
		return &defaultConf, nil
	}
	var zapConf zap.Config
	if err := json.Unmarshal([]byte(c.ZapConfig), &zapConf); err != nil {
		return nil, err
	}
	return &zapConf, nil
}

// Query builds lookup query from flags and positional arguments.
func (c *Config) Query() querier.Query {
	if c.Random {
		return querier.Random()
	}
	return querier.Literal(strings.Join(c.Words, " "))
}

func (c *Config) validate() error {
	modes := 0
	for _, on := range []bool{c.Random, c.Interactive, len(c.Words) > 0} {
		if on {
			modes++
		}
	}
	switch {
	case modes == 0:
		return errors.New("specify a word, --random or --interactive")
	case modes > 1:
		return errors.New("word, --random and --interactive are mutually exclusive")
	}
	return nil
}

func getConfig(args []string) (*Config, *zap.Config, error) {
	flags := pflag.NewFlagSet("wordgo", pflag.ContinueOnError)
	flags.StringP("config", "c", "config.yaml", "path to local config")
	flags.BoolP("random", "r", false, "look up a random word (word of the day)")
	flags.BoolP("interactive", "i", false, "read words from stdin, one per line")
	flags.Bool("json", false, "print result as json")
	flags.Duration("timeout", 10*time.Second, "timeout of every request to API")
	flags.Int("retries", 0, "how many times failed request is repeated")
	flags.Bool("cache", false, "cache definitions and synonyms in memory")
	flags.String("loglevel", "warn", "log level when no zap config is given")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wordgo [options] [word...]\n\nOptions:\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	// these flags exist only under their sections, top-level keys stay unbound
	nested := map[string]string{
		"timeout": "remote.timeout",
		"retries": "remote.retries",
		"cache":   "cached.enabled",
	}
	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		key, ok := nested[flag.Name]
		if !ok {
			key = flag.Name
		}
		if err := v.BindPFlag(key, flag); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, nil, bindErr
	}
	v.SetEnvPrefix("WORDGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"zapconfig",
		"remote.apikey",
		"remote.host",
		"remote.protocol",
		"remote.retrydelay",
		"remote.maxworkers",
		"cached.ttl",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, nil, err
		}
	}
	v.SetDefault("remote.retrydelay", "500ms")

	configPath := v.GetString("config")
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		if flags.Changed("config") {
			return nil, nil, fmt.Errorf("can not read config %s: %w", configPath, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("error while unmarshaling config: %w", err)
	}
	conf.Words = flags.Args()
	if err := conf.validate(); err != nil {
		return nil, nil, err
	}
	zapConf, err := conf.ZapConf()
	if err != nil {
		return nil, nil, err
	}
	return &conf, zapConf, nil
}

func main() {
	conf, zapConf, err := getConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		exitf(codeErrorArgs, "Failure while parsing arguments: %s\n", err)
	}
	logger, err := zapConf.Build()
	if err != nil {
		exitf(codeErrorArgs, "Failure while instantiating logger: %s\n", err)
	}

	app, err := New(logger, conf)
	if err != nil {
		_ = logger.Sync()
		exitf(codeInternalError, "Can not initialize: %s\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := app.Run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err := app.Close(context.Background()); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	_ = logger.Sync()
	os.Exit(code)
}
