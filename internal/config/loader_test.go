package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/fightcard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr(), convey.ShouldEqual, ":5000")
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://www.ufc.com")
				convey.So(cfg.RequestDelayMS, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When PORT is set", func() {
			_ = os.Setenv("PORT", "8081")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should drive the listen address", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr(), convey.ShouldEqual, ":8081")
			})
		})

		convey.Convey("When PORT is not a number", func() {
			_ = os.Setenv("PORT", "http")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with prefixed environment variables", func() {
			_ = os.Setenv("FIGHTCARD_BASE_URL", "http://localhost:9999/")
			_ = os.Setenv("FIGHTCARD_REQUEST_DELAY_MS", "0")
			_ = os.Setenv("FIGHTCARD_LOG_LEVEL", "debug")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:9999")
				convey.So(cfg.RequestDelayMS, convey.ShouldEqual, 0)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
port: 7000
base_url: "http://fixture.test"
events_path: "/schedule"
request_timeout_ms: 5000
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FIGHTCARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 7000)
				convey.So(cfg.LandingURL(), convey.ShouldEqual, "http://fixture.test/schedule")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.EventPath, convey.ShouldEqual, "/event/")
			})
		})

		convey.Convey("When file, prefixed env and PORT are all set", func() {
			tmpFile := createTempConfigFile(`
port: 7000
request_delay_ms: 250
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FIGHTCARD_CONFIG", tmpFile)
			_ = os.Setenv("FIGHTCARD_PORT", "7100")
			_ = os.Setenv("FIGHTCARD_REQUEST_DELAY_MS", "500")
			_ = os.Setenv("PORT", "7200")

			cfg, err := config.Load(ctx)

			convey.Convey("Then PORT wins, then prefixed env, then file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 7200)
				convey.So(cfg.RequestDelayMS, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FIGHTCARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FIGHTCARD_CONFIG", "/non/existent/file.yaml")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the resulting config is invalid", func() {
			_ = os.Setenv("FIGHTCARD_BASE_URL", "not a url")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.
func clearConfigEnvVars() {
	for _, envVar := range []string{
		"PORT",
		"FIGHTCARD_CONFIG",
		"FIGHTCARD_PORT",
		"FIGHTCARD_BASE_URL",
		"FIGHTCARD_LOG_LEVEL",
		"FIGHTCARD_REQUEST_DELAY_MS",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fightcard-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
