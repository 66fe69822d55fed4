package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths      PathsConfig      `mapstructure:"paths"`
	Runtime    RuntimeConfig    `mapstructure:"runtime"`
	Server     ServerConfig     `mapstructure:"server"`
	Morphology MorphologyConfig `mapstructure:"morphology"`
	LogLevel   string           `mapstructure:"log_level"`
}

type PathsConfig struct {
	KernelLibrary string `mapstructure:"kernel_library"`
}

type RuntimeConfig struct {
	Workers int `mapstructure:"workers"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_secs"`
	MaxImageBytes   int    `mapstructure:"max_image_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout_secs"`
}

type MorphologyConfig struct {
	ChannelMask      string  `mapstructure:"channel_mask"`
	Bias             float64 `mapstructure:"bias"`
	Compose          string  `mapstructure:"compose"`
	ShowKernel       bool    `mapstructure:"show_kernel"`
	ShowKernelDigits int     `mapstructure:"show_kernel_digits"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			KernelLibrary: "",
		},
		Runtime: RuntimeConfig{
			Workers: 2,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: 30,
			MaxImageBytes:   16 << 20,
			RequestTimeout:  60,
		},
		Morphology: MorphologyConfig{
			ChannelMask:      "all",
			Bias:             0,
			Compose:          "none",
			ShowKernel:       false,
			ShowKernelDigits: 6,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-kernel-library", defaults.Paths.KernelLibrary, "Optional path to a file of named kernel-string definitions")
	fs.Int("workers", defaults.Runtime.Workers, "Parallel goroutines for one primitive sweep (1 = sequential)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain timeout in seconds")
	fs.Int("max-image-bytes", defaults.Server.MaxImageBytes, "Maximum POST /v1/apply image size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request apply timeout in seconds")
	fs.String("channel-mask", defaults.Morphology.ChannelMask, "Channel mask: comma-separated subset of red,green,blue,opacity,auxiliary,sync or 'all'")
	fs.Float64("bias", defaults.Morphology.Bias, "Convolution bias added to every channel result")
	fs.String("compose", defaults.Morphology.Compose, "Multi-kernel fold operator: none|union|intersect")
	fs.Bool("show-kernel", defaults.Morphology.ShowKernel, "Print the showkernel diagnostic dump before applying")
	fs.Int("show-kernel-digits", defaults.Morphology.ShowKernelDigits, "Decimal precision for the showkernel dump")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("MORPHOLOGY")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("morphology")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.kernel_library", c.Paths.KernelLibrary)
	v.SetDefault("runtime.workers", c.Runtime.Workers)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.shutdown_timeout_secs", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_image_bytes", c.Server.MaxImageBytes)
	v.SetDefault("server.request_timeout_secs", c.Server.RequestTimeout)
	v.SetDefault("morphology.channel_mask", c.Morphology.ChannelMask)
	v.SetDefault("morphology.bias", c.Morphology.Bias)
	v.SetDefault("morphology.compose", c.Morphology.Compose)
	v.SetDefault("morphology.show_kernel", c.Morphology.ShowKernel)
	v.SetDefault("morphology.show_kernel_digits", c.Morphology.ShowKernelDigits)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.kernel_library", "paths-kernel-library")
	v.RegisterAlias("runtime.workers", "workers")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.shutdown_timeout_secs", "shutdown-timeout")
	v.RegisterAlias("server.max_image_bytes", "max-image-bytes")
	v.RegisterAlias("server.request_timeout_secs", "request-timeout")
	v.RegisterAlias("morphology.channel_mask", "channel-mask")
	v.RegisterAlias("morphology.bias", "bias")
	v.RegisterAlias("morphology.compose", "compose")
	v.RegisterAlias("morphology.show_kernel", "show-kernel")
	v.RegisterAlias("morphology.show_kernel_digits", "show-kernel-digits")
	v.RegisterAlias("log_level", "log-level")
}
