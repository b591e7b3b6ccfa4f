package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config stores global configuration
type Config struct {
	// Is development mode on
	IsDevelopment bool

	// Logging level
	LogLevel string

	Currency Currency
	Arweave  Arweave
	Ethereum Ethereum
	Bundlr   Bundlr
	Fund     Fund
	Uploader Uploader
}

func setDefaults() {
	viper.SetDefault("IsDevelopment", "false")
	viper.SetDefault("LogLevel", "INFO")

	setCurrencyDefaults()
	setArweaveDefaults()
	setEthereumDefaults()
	setBundlrDefaults()
	setFundDefaults()
	setUploaderDefaults()
}

func Default() (config *Config) {
	config, _ = Load("")
	return
}

// Visits every field and registers upper snake case ENV name for it.
// Works with embedded structs.
func BindEnv(path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		key := strings.Join(path, ".")
		env := strcase.ToScreamingSnake(strings.Join(path, "_"))
		_ = viper.BindEnv(key, env)
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, field.Name)
		BindEnv(newPath, val.Field(i))
	}
}

func defaultDecoderConfig(output interface{}) *mapstructure.DecoderConfig {
	c := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}
	return c
}

// Load configuration from file and env
func Load(filename string) (config *Config, err error) {
	viper.SetConfigType("json")

	setDefaults()

	BindEnv([]string{}, reflect.ValueOf(Config{}))

	// Empty filename means we use default values
	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = viper.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = viper.Unmarshal(&config, viper.DecoderConfigOption(func(c *mapstructure.DecoderConfig) {
		*c = *defaultDecoderConfig(config)
	}))
	if err != nil {
		return nil, err
	}

	return
}
