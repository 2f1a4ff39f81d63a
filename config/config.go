package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ratel-online/landlord/consts"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Rounds  int            `mapstructure:"rounds"`
	Delay   time.Duration  `mapstructure:"delay"`
	Fast    bool           `mapstructure:"fast"`
	Seed    int64          `mapstructure:"seed"`
	Ws      WsConfig       `mapstructure:"ws"`
	LLM     LLMConfig      `mapstructure:"llm"`
	Players []PlayerConfig `mapstructure:"players"`
}

type WsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LLMConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// PlayerConfig describes one seat. Provider is rule, naive or llm, empty picks llm when an api key is set.
type PlayerConfig struct {
	Name     string `mapstructure:"name"`
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

const (
	ProviderRule  = "rule"
	ProviderNaive = "naive"
	ProviderLLM   = "llm"
)

var DefaultNames = []string{"烈焰哥🔥", "冰山姐❄️", "戏精弟🎭"}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"rounds": "rounds",
	"delay":  "delay",
	"fast":   "fast",
	"seed":   "seed",
	"ws":     "ws.addr",
}

// Flags declares the command line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "yaml config file")
	flags.Int("rounds", 1, "rounds to play")
	flags.Duration("delay", consts.RenderDelay, "pause between rendered events")
	flags.Bool("fast", false, "render without pauses")
	flags.Int64("seed", 0, "shuffle seed, 0 picks one from the clock")
	flags.String("ws", "", "live view websocket address, empty disables it")
	return flags
}

// Load layers defaults, the yaml file, LANDLORD_* environment variables and flags, in that order.
// Seat credentials also come from AI_PLAYER{n}_API_KEY, AI_PLAYER{n}_BASE_URL and AI_PLAYER{n}_MODEL.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("rounds", 1)
	v.SetDefault("delay", consts.RenderDelay)
	v.SetDefault("fast", false)
	v.SetDefault("seed", 0)
	v.SetDefault("ws.addr", "")
	v.SetDefault("llm.timeout", consts.LLMTimeout)

	v.SetEnvPrefix("LANDLORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applySeats()
	if cfg.Fast {
		cfg.Delay = 0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applySeats() {
	for len(c.Players) < consts.Seats {
		c.Players = append(c.Players, PlayerConfig{})
	}
	for i := range c.Players {
		seat := &c.Players[i]
		if seat.Name == "" && i < len(DefaultNames) {
			seat.Name = DefaultNames[i]
		}
		prefix := fmt.Sprintf("AI_PLAYER%d_", i+1)
		if value, ok := os.LookupEnv(prefix + "API_KEY"); ok {
			seat.APIKey = value
		}
		if value, ok := os.LookupEnv(prefix + "BASE_URL"); ok {
			seat.BaseURL = value
		}
		if value, ok := os.LookupEnv(prefix + "MODEL"); ok {
			seat.Model = value
		}
		if seat.BaseURL == "" {
			seat.BaseURL = consts.DefaultLLMBaseURL
		}
		if seat.Model == "" {
			seat.Model = consts.DefaultLLMModel
		}
		if seat.Provider == "" {
			seat.Provider = ProviderRule
			if seat.APIKey != "" {
				seat.Provider = ProviderLLM
			}
		}
	}
}

func (c *Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w rounds must be positive, got %d", consts.ErrorsConfigInvalid, c.Rounds)
	}
	if c.Delay < 0 || c.LLM.Timeout <= 0 {
		return fmt.Errorf("%w delay and llm timeout must not be negative", consts.ErrorsConfigInvalid)
	}
	if len(c.Players) != consts.Seats {
		return fmt.Errorf("%w expected %d players, got %d", consts.ErrorsConfigInvalid, consts.Seats, len(c.Players))
	}
	for i, seat := range c.Players {
		switch seat.Provider {
		case ProviderRule, ProviderNaive, ProviderLLM:
		default:
			return fmt.Errorf("%w player %d provider '%s'", consts.ErrorsConfigInvalid, i+1, seat.Provider)
		}
	}
	return nil
}
