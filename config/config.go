// config/config.go
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Prathmesh-K/SmartGlassesPi/services/camera"
	"github.com/Prathmesh-K/SmartGlassesPi/services/controller"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
	"github.com/Prathmesh-K/SmartGlassesPi/services/pipeline"
	"github.com/Prathmesh-K/SmartGlassesPi/services/provision"
	"github.com/Prathmesh-K/SmartGlassesPi/services/tts"
)

type Config struct {
	Log      LogConfig
	Gpio     GpioConfig
	Camera   CameraConfig
	OCR      OCRConfig      `mapstructure:"ocr"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Pipeline PipelineConfig
	Serial   SerialConfig
	Uplink   UplinkConfig
	Journal  JournalConfig
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GpioConfig struct {
	WakePin        int    `mapstructure:"wake_pin"`
	SignalPin      int    `mapstructure:"signal_pin"`
	BootConfigPath string `mapstructure:"boot_config_path"`
	PinctrlCommand string `mapstructure:"pinctrl_command"`
}

type CameraConfig struct {
	CapturesDir string `mapstructure:"captures_dir"`
	Command     string `mapstructure:"command"`
}

type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
}

type TTSConfig struct {
	ModelPath    string `mapstructure:"model_path"`
	ConfigPath   string `mapstructure:"config_path"`
	PiperCommand string `mapstructure:"piper_command"`
}

type PipelineConfig struct {
	FallbackText string `mapstructure:"fallback_text"`
}

type SerialConfig struct {
	Port string `mapstructure:"port"`
}

type UplinkConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type JournalConfig struct {
	// Path of the SQLite capture journal; empty disables journaling.
	Path string `mapstructure:"path"`
}

// Load reads smartglasses.yaml (working dir or /etc/smartglasses), then .env,
// then environment overrides (SMARTGLASSES_GPIO_WAKE_PIN and friends). A
// missing config file is fine; every setting has a default.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("smartglasses")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/smartglasses")
	v.SetEnvPrefix("SMARTGLASSES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "INFO")

	v.SetDefault("gpio.wake_pin", provision.DefaultWakePin)
	v.SetDefault("gpio.signal_pin", provision.DefaultSignalPin)
	v.SetDefault("gpio.boot_config_path", provision.DefaultBootConfigPath)
	v.SetDefault("gpio.pinctrl_command", hal.DefaultPinctrlCommand)

	v.SetDefault("camera.captures_dir", camera.DefaultCapturesDir)
	v.SetDefault("camera.command", camera.DefaultCaptureCommand)

	v.SetDefault("ocr.languages", []string{"eng"})

	v.SetDefault("tts.model_path", "voices/en_US-amy-low.onnx")
	v.SetDefault("tts.config_path", "")
	v.SetDefault("tts.piper_command", tts.DefaultPiperCommand)

	v.SetDefault("pipeline.fallback_text", pipeline.DefaultFallbackText)

	v.SetDefault("serial.port", controller.DefaultSerialPort)

	v.SetDefault("uplink.endpoint", "")
	v.SetDefault("journal.path", "")
}
