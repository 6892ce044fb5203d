package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/CameraRick/onAir-fanControl/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Telemetry  TelemetryConfig  `json:"telemetry"`
	Curve      CurveConfig      `json:"curve"`
	Limits     LimitsConfig     `json:"limits"`
	Hysteresis HysteresisConfig `json:"hysteresis"`
	Controller ControllerConfig `json:"controller"`
	Mqtt       MqttConfig       `json:"mqtt"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	History    HistoryConfig    `json:"history"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("onair-fancontrol")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/onair-fancontrol/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("telemetry.snapshotPath", "/host/disks.ini")
	viper.SetDefault("telemetry.probeTimeout", 3*time.Second)
	viper.SetDefault("telemetry.smartctlBinary", "smartctl")
	viper.SetDefault("telemetry.devices", []string{})

	viper.SetDefault("curve.mode", CurveModeLinear)

	viper.SetDefault("limits.minDuty", 25)
	viper.SetDefault("limits.maxDuty", 100)
	viper.SetDefault("limits.biasLimit", 25)
	viper.SetDefault("limits.spinDown.enabled", false)
	viper.SetDefault("limits.spinDown.value", "0")

	viper.SetDefault("hysteresis.risingMargin", 0.0)
	viper.SetDefault("hysteresis.fallingMargin", 3.0)

	viper.SetDefault("controller.pollInterval", 15*time.Second)
	viper.SetDefault("controller.publishInterval", 10*time.Second)
	viper.SetDefault("controller.rampStep", 10)

	viper.SetDefault("mqtt.broker", "tcp://127.0.0.1:1883")
	viper.SetDefault("mqtt.clientId", "onair-fancontrol")
	viper.SetDefault("mqtt.topics.liveDuty", "unraid/hdds/target_pwm")
	viper.SetDefault("mqtt.topics.targetDuty", "unraid/hdds/raw_target_pwm")
	viper.SetDefault("mqtt.topics.minDuty", "unraid/hdds/min_pwm")
	viper.SetDefault("mqtt.topics.maxDuty", "unraid/hdds/max_pwm")
	viper.SetDefault("mqtt.topics.maxTemp", "unraid/hdds/max_temp")
	viper.SetDefault("mqtt.topics.tempSource", "unraid/hdds/temp_source")
	viper.SetDefault("mqtt.topics.tempDevice", "unraid/hdds/temp_device")
	viper.SetDefault("mqtt.topics.spinningDisks", "unraid/hdds/spinning_disks")
	viper.SetDefault("mqtt.topics.standbyPrefix", "unraid/hdds/standby")
	viper.SetDefault("mqtt.topics.updatedAt", "unraid/hdds/updated_at")
	viper.SetDefault("mqtt.topics.biasLimit", "unraid/hdds/bias_limit")
	viper.SetDefault("mqtt.topics.bias", "unraid/hdds/bias")
	viper.SetDefault("mqtt.topics.status", "unraid/hdds/status")
	viper.SetDefault("mqtt.topics.biasSet", "unraid/hdds/bias/set")
	viper.SetDefault("mqtt.topics.biasReset", "unraid/hdds/bias/reset")

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8088)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dbPath", "/etc/onair-fancontrol/history.db")
	viper.SetDefault("history.sampleInterval", 30*time.Second)
	viper.SetDefault("history.maxSamples", 60)
}

// DetectConfigFile returns the path of the config file viper would use,
// reading it in the process.
func DetectConfigFile() string {
	err := readInConfig()
	if err != nil {
		ui.Fatal("Error reading config file, %v", err)
	}
	return GetFilePath()
}

func readInConfig() error {
	return viper.ReadInConfig()
}

// GetFilePath this is only populated _after_ readInConfig()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

// LoadConfig unmarshals the read configuration into CurrentConfig.
func LoadConfig() {
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			spinDownValueHookFunc(),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}

	if len(CurrentConfig.Telemetry.Devices) == 0 {
		detected, err := detectRotationalDevices("/sys/block")
		if err == nil {
			CurrentConfig.Telemetry.Devices = detected
		}
	}
}

// detectRotationalDevices lists block devices whose sysfs queue marks them
// as rotational, as a fallback when no devices are configured.
func detectRotationalDevices(sysBlock string) ([]string, error) {
	entries, err := os.ReadDir(sysBlock)
	if err != nil {
		return nil, err
	}

	var devices []string
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(sysBlock, entry.Name(), "queue", "rotational"))
		if err != nil {
			continue
		}
		if len(data) > 0 && data[0] == '1' {
			devices = append(devices, entry.Name())
		}
	}
	return devices, nil
}
