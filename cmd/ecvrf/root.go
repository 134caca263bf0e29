package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/athanorlabs/go-ecvrf/types"
)

const envPrefix = "ECVRF"

var (
	errNoSecretKey = errors.New("secret key is required (--secret-key or ECVRF_SECRET_KEY)")
	errNoPublicKey = errors.New("public key is required (--public-key or ECVRF_PUBLIC_KEY)")
	errNoProof     = errors.New("proof is required (--proof)")
	errNoPartsFile = errors.New("participant file is required (--participants)")
)

// app holds state shared by every subcommand of one root command.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:   viper.New(),
		log: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "ecvrf",
		Short: "ECVRF-EDWARDS25519-SHA512-Elligator2 tool",
		Long: `ecvrf generates keys, produces and checks VRF proofs, and runs
verifiable sortition draws over a participant list.

Every flag may also be set through the environment (ECVRF_SECRET_KEY,
ECVRF_LOG_LEVEL, ...) or a config file passed with --config.`,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
		SilenceUsage: true,
	}

	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.PersistentFlags().String("config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.newKeygenCmd(),
		a.newPubkeyCmd(),
		a.newProveCmd(),
		a.newVerifyCmd(),
		a.newHashCmd(),
		a.newSortitionCmd(),
		a.newSelfcheckCmd(),
	)

	return root
}

// initConfig binds the running command's flags, the environment and the
// optional config file into viper, then builds the logger.
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed reading config file %s: %w", cfgFile, err)
		}
	}

	logger, err := newLogger(a.v.GetString("log-level"))
	if err != nil {
		return err
	}

	a.log = logger
	a.log.Debug("configuration loaded", zap.String("config", a.v.ConfigFileUsed()))
	return nil
}

// normalizeFlagName accepts underscores in flag names so that config keys and
// flags can be spelled the same way.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (a *app) secretKey() (types.SecretKey, error) {
	s := a.v.GetString("secret-key")
	if s == "" {
		return types.SecretKey{}, errNoSecretKey
	}

	var sk types.SecretKey
	if err := sk.UnmarshalText([]byte(s)); err != nil {
		return types.SecretKey{}, fmt.Errorf("invalid secret key: %w", err)
	}

	return sk, nil
}

func (a *app) publicKey() (types.PublicKey, error) {
	s := a.v.GetString("public-key")
	if s == "" {
		return types.PublicKey{}, errNoPublicKey
	}

	var pk types.PublicKey
	if err := pk.UnmarshalText([]byte(s)); err != nil {
		return types.PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}

	return pk, nil
}

// proof returns the raw proof bytes. The length is checked by the VRF itself
// so that a short proof is reported as an invalid proof.
func (a *app) proof() ([]byte, error) {
	s := a.v.GetString("proof")
	if s == "" {
		return nil, errNoProof
	}

	pi, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid proof: %w", err)
	}

	return pi, nil
}

// alpha returns the VRF input from --alpha-hex if set, otherwise the raw
// bytes of --alpha.
func (a *app) alpha() ([]byte, error) {
	if h := a.v.GetString("alpha-hex"); h != "" {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("invalid alpha: %w", err)
		}
		return b, nil
	}

	return []byte(a.v.GetString("alpha")), nil
}

func addAlphaFlags(cmd *cobra.Command) {
	cmd.Flags().String("alpha", "", "VRF input as a string")
	cmd.Flags().String("alpha-hex", "", "VRF input as hex, overrides --alpha")
}
