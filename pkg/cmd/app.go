/*
 * Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/NVIDIA/mgpus/internal/pkg/appconfig"
	dumper "github.com/NVIDIA/mgpus/internal/pkg/debug"
	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
	"github.com/NVIDIA/mgpus/internal/pkg/exec"
	"github.com/NVIDIA/mgpus/internal/pkg/hostname"
	"github.com/NVIDIA/mgpus/internal/pkg/logging"
	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
	"github.com/NVIDIA/mgpus/internal/pkg/nvmlprovider"
	osinterface "github.com/NVIDIA/mgpus/internal/pkg/os"
	"github.com/NVIDIA/mgpus/internal/pkg/procresolver"
	"github.com/NVIDIA/mgpus/internal/pkg/render"
	"github.com/NVIDIA/mgpus/internal/pkg/smiprovider"
)

const (
	CLIBackend         = "backend"
	CLINvidiaSMIPath   = "nvidia-smi-path"
	CLIGPUDevices      = "devices"
	CLIFormat          = "format"
	CLINoColor         = "no-color"
	CLINoHostname      = "no-hostname"
	CLIDebugMode       = "debug"
	CLILogFormat       = "log-format"
	CLIDumpDirectory   = "dump-dir"
	CLIDumpCompression = "dump-compress"
)

const (
	dumpPrefix = "mgpus"
	dumpSuffix = "reports"

	deviceUsage = `Specify which GPUs are reported.
	Possible values: all or id1[,id2-id3...]. For example:
		all = report every GPU on the node (default)
		0,1 = report GPUs 0 and 1
		0,2-4 = report GPUs 0, 2, 3, and 4.
	Any index listed must exist on the node.`
)

var backends = []string{nvmlprovider.Backend, smiprovider.Backend}

var (
	newProvider = newDeviceProvider
	newResolver = func() procresolver.Resolver {
		return procresolver.NewResolver(procresolver.NewProcessTable())
	}
	getHostname = hostname.GetHostname
)

func NewApp(buildVersion ...string) *cli.App {
	c := cli.NewApp()
	c.Name = "mgpus"
	c.Usage = "Shows GPU memory usage and the processes holding it"
	if len(buildVersion) == 0 {
		buildVersion = append(buildVersion, "")
	}
	c.Version = buildVersion[0]

	c.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    CLIBackend,
			Aliases: []string{"b"},
			Value:   nvmlprovider.Backend,
			Usage:   fmt.Sprintf("GPU query backend. Possible values: %s", strings.Join(backends, ", ")),
			EnvVars: []string{"MGPUS_BACKEND"},
		},
		&cli.StringFlag{
			Name:    CLINvidiaSMIPath,
			Value:   "",
			Usage:   "Path to the nvidia-smi binary used by the nvidia-smi backend. Looked up in PATH when empty.",
			EnvVars: []string{"MGPUS_NVIDIA_SMI_PATH"},
		},
		&cli.StringFlag{
			Name:    CLIGPUDevices,
			Aliases: []string{"d"},
			Value:   appconfig.AllDevices,
			Usage:   deviceUsage,
			EnvVars: []string{"MGPUS_DEVICES"},
		},
		&cli.StringFlag{
			Name:    CLIFormat,
			Aliases: []string{"o"},
			Value:   string(render.FormatTable),
			Usage:   fmt.Sprintf("Output format. Possible values: %s", strings.Join(render.FormatNames(), ", ")),
			EnvVars: []string{"MGPUS_FORMAT"},
		},
		&cli.BoolFlag{
			Name:    CLINoColor,
			Value:   false,
			Usage:   "Disable colors in the table output.",
			EnvVars: []string{"MGPUS_NO_COLOR"},
		},
		&cli.BoolFlag{
			Name:    CLINoHostname,
			Aliases: []string{"n"},
			Value:   false,
			Usage:   "Omit the hostname information from the json and prometheus output.",
			EnvVars: []string{"MGPUS_NO_HOSTNAME"},
		},
		&cli.BoolFlag{
			Name:    CLIDebugMode,
			Value:   false,
			Usage:   "Enable debug output",
			EnvVars: []string{"MGPUS_DEBUG"},
		},
		&cli.StringFlag{
			Name:    CLILogFormat,
			Value:   logging.FormatText,
			Usage:   fmt.Sprintf("Log format written to stderr. Possible values: %s, %s", logging.FormatText, logging.FormatJSON),
			EnvVars: []string{"MGPUS_LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:    CLIDumpDirectory,
			Value:   "",
			Usage:   "Also write the collected reports as JSON into this directory.",
			EnvVars: []string{"MGPUS_DUMP_DIR"},
		},
		&cli.BoolFlag{
			Name:    CLIDumpCompression,
			Value:   false,
			Usage:   "Gzip the files written to the dump directory.",
			EnvVars: []string{"MGPUS_DUMP_COMPRESS"},
		},
	}

	c.Action = func(c *cli.Context) error {
		return action(c)
	}

	return c
}

func action(c *cli.Context) (err error) {
	// The purpose of this function is to capture any panic that may occur
	// during collection and return an error.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Encountered a failure.", slog.String("stacktrace", string(debug.Stack())))
			err = fmt.Errorf("encountered a failure; err: %v", r)
		}
	}()
	return startMGPUS(c)
}

func startMGPUS(c *cli.Context) error {
	config, err := contextToConfig(c)
	if err != nil {
		return err
	}

	if err := setupLogging(c.App.ErrWriter, config); err != nil {
		return err
	}

	provider, err := newProvider(config)
	if err != nil {
		return err
	}
	defer provider.Cleanup()

	slog.Debug("GPU backend initialized", slog.String("backend", provider.Backend()))

	reports, err := memreport.Collect(provider, newResolver(), config.GPUDevices)
	if err != nil {
		return err
	}

	dumpReports(config, reports)

	// Render into a buffer so a failing renderer leaves stdout untouched.
	var buf bytes.Buffer
	if err := render.Render(&buf, reports, renderOptions(config)); err != nil {
		return err
	}
	_, err = buf.WriteTo(c.App.Writer)
	return err
}

func newDeviceProvider(config *appconfig.Config) (deviceinfo.Provider, error) {
	switch config.Backend {
	case nvmlprovider.Backend:
		if err := nvmlprovider.Initialize(); err != nil {
			return nil, err
		}
		return nvmlprovider.Client(), nil
	case smiprovider.Backend:
		return smiprovider.New(config.SMIPath, exec.RealExec{}, osinterface.RealOS{})
	default:
		return nil, fmt.Errorf("unexpected backend: %s", config.Backend)
	}
}

func renderOptions(config *appconfig.Config) render.Options {
	opts := render.Options{
		Format:  render.Format(config.Format),
		NoColor: config.NoColor,
	}

	if config.NoHostname || (opts.Format != render.FormatJSON && opts.Format != render.FormatPrometheus) {
		return opts
	}

	name, err := getHostname()
	if err != nil {
		slog.Warn("Failed to read hostname", slog.String("error", err.Error()))
		return opts
	}
	opts.Hostname = name
	return opts
}

func dumpReports(config *appconfig.Config, reports []memreport.DeviceReport) {
	path, err := dumper.NewFileDumper(config.Dump).DumpToFile(reports, dumpPrefix, dumpSuffix)
	if err != nil {
		slog.Warn("Failed to dump reports", slog.String("error", err.Error()))
		return
	}
	if path != "" {
		slog.Info("Reports written", slog.String("file", path))
	}
}

func setupLogging(w io.Writer, config *appconfig.Config) error {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if config.Debug {
		opts.Level = slog.LevelDebug
	}

	if err := logging.SetupGlobalLogger(w, config.LogFormat, opts); err != nil {
		return err
	}

	enableDebugLogging(config)
	return nil
}

func enableDebugLogging(config *appconfig.Config) {
	if config.Debug {
		slog.Debug("Debug output is enabled")
	}

	slog.Debug("Command line", slog.String("args", strings.Join(os.Args, " ")))
	slog.Debug("Loaded configuration", slog.String("config", fmt.Sprintf("%+v", config)))
}

func contextToConfig(c *cli.Context) (*appconfig.Config, error) {
	backend := strings.ToLower(c.String(CLIBackend))
	if !slices.Contains(backends, backend) {
		return nil, fmt.Errorf("invalid %s parameter value: %s", CLIBackend, c.String(CLIBackend))
	}

	format, err := render.ParseFormat(c.String(CLIFormat))
	if err != nil {
		return nil, err
	}

	logFormat := strings.ToLower(c.String(CLILogFormat))
	if logFormat != logging.FormatText && logFormat != logging.FormatJSON {
		return nil, fmt.Errorf("invalid %s parameter value: %s", CLILogFormat, c.String(CLILogFormat))
	}

	gpuDevices, err := appconfig.ParseDevices(c.String(CLIGPUDevices))
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter value: %w", CLIGPUDevices, err)
	}

	return &appconfig.Config{
		Backend:    backend,
		SMIPath:    c.String(CLINvidiaSMIPath),
		Format:     string(format),
		NoColor:    c.Bool(CLINoColor),
		NoHostname: c.Bool(CLINoHostname),
		GPUDevices: gpuDevices,
		Debug:      c.Bool(CLIDebugMode),
		LogFormat:  logFormat,
		Dump: appconfig.DumpConfig{
			Enabled:     c.String(CLIDumpDirectory) != "",
			Directory:   c.String(CLIDumpDirectory),
			Compression: c.Bool(CLIDumpCompression),
		},
	}, nil
}
