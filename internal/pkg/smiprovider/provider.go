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

package smiprovider

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	osexec "os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
	"github.com/NVIDIA/mgpus/internal/pkg/exec"
	osinterface "github.com/NVIDIA/mgpus/internal/pkg/os"
)

const (
	// Backend is the name reported by the nvidia-smi provider.
	Backend = "nvidia-smi"

	binaryName  = "nvidia-smi"
	bytesPerMiB = uint64(1024 * 1024)

	queryGPUs        = "--query-gpu=index,uuid,name,memory.total"
	queryComputeApps = "--query-compute-apps=gpu_uuid,pid,used_gpu_memory"
	csvFormat        = "--format=csv,noheader,nounits"
)

var fallbackPaths = []string{"/usr/bin/nvidia-smi", "/usr/local/bin/nvidia-smi"}

var errNoResults = errors.New("nvidia-smi no results")

type gpuRow struct {
	device     deviceinfo.Device
	totalBytes uint64
	hasTotal   bool
}

// smiProvider implements deviceinfo.Provider on top of the nvidia-smi CSV queries.
// The compute process list is read once per provider and shared by all devices.
type smiProvider struct {
	exec       exec.Exec
	binaryPath string

	gpus      map[int]gpuRow
	claims    map[string][]deviceinfo.ProcessInfo
	claimsErr error
}

// New locates the nvidia-smi binary. An empty binaryPath searches $PATH and then the
// usual install locations.
func New(binaryPath string, e exec.Exec, o osinterface.OS) (deviceinfo.Provider, error) {
	path, err := findBinary(binaryPath, e, o)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deviceinfo.ErrSubsystemUnavailable, err)
	}

	slog.Debug("Using nvidia-smi binary", "path", path)

	return &smiProvider{exec: e, binaryPath: path}, nil
}

func findBinary(binaryPath string, e exec.Exec, o osinterface.OS) (string, error) {
	if binaryPath != "" {
		if _, err := o.Stat(binaryPath); err != nil {
			return "", fmt.Errorf("nvidia-smi not found at %q: %w", binaryPath, err)
		}
		return binaryPath, nil
	}

	if path, err := e.LookPath(binaryName); err == nil {
		return path, nil
	}

	for _, candidate := range fallbackPaths {
		if _, err := o.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s not found in PATH or %s", binaryName, strings.Join(fallbackPaths, ", "))
}

func (p *smiProvider) Backend() string {
	return Backend
}

func (p *smiProvider) ListDevices() ([]deviceinfo.Device, error) {
	p.gpus = map[int]gpuRow{}

	out, err := p.run(queryGPUs, csvFormat)
	if err != nil {
		if errors.Is(err, errNoResults) {
			return []deviceinfo.Device{}, nil
		}
		return nil, fmt.Errorf("%w: %v", deviceinfo.ErrSubsystemUnavailable, err)
	}

	for _, cols := range readCSVLines(out) {
		if len(cols) < 4 {
			slog.Debug("Skipping malformed nvidia-smi GPU row", "columns", cols)
			continue
		}

		index, err := strconv.Atoi(cols[0])
		if err != nil {
			slog.Debug("Skipping nvidia-smi GPU row with invalid index", "index", cols[0])
			continue
		}

		row := gpuRow{
			device: deviceinfo.Device{
				Index: index,
				UUID:  cols[1],
				// GPU names may contain the separator; everything between uuid and
				// memory.total belongs to the name.
				Name: strings.Join(cols[2:len(cols)-1], ", "),
			},
		}
		if totalMiB, err := strconv.ParseUint(cols[len(cols)-1], 10, 64); err == nil {
			row.totalBytes = totalMiB * bytesPerMiB
			row.hasTotal = true
		}

		p.gpus[index] = row
	}

	devices := make([]deviceinfo.Device, 0, len(p.gpus))
	for _, row := range p.gpus {
		devices = append(devices, row.device)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Index < devices[j].Index
	})

	return devices, nil
}

func (p *smiProvider) DeviceTotalMemory(device deviceinfo.Device) (uint64, error) {
	row, ok := p.gpus[device.Index]
	if !ok {
		return 0, deviceinfo.NewDeviceQueryError(device.Index, "get memory info", errors.New("device not reported by nvidia-smi"))
	}
	if !row.hasTotal {
		return 0, deviceinfo.NewDeviceQueryError(device.Index, "get memory info", errors.New("memory.total not available"))
	}

	return row.totalBytes, nil
}

func (p *smiProvider) RunningClaims(device deviceinfo.Device) ([]deviceinfo.ProcessInfo, error) {
	if p.claims == nil && p.claimsErr == nil {
		p.claims, p.claimsErr = p.queryComputeApps()
	}
	if p.claimsErr != nil {
		return nil, deviceinfo.NewDeviceQueryError(device.Index, "get compute running processes", p.claimsErr)
	}
	if device.UUID == "" {
		return nil, deviceinfo.NewDeviceQueryError(device.Index, "get compute running processes", errors.New("device has no UUID"))
	}

	claims := make([]deviceinfo.ProcessInfo, 0, len(p.claims[device.UUID]))
	claims = append(claims, p.claims[device.UUID]...)

	return claims, nil
}

func (p *smiProvider) queryComputeApps() (map[string][]deviceinfo.ProcessInfo, error) {
	claims := map[string][]deviceinfo.ProcessInfo{}

	out, err := p.run(queryComputeApps, csvFormat)
	if err != nil {
		// nvidia-smi exits non-zero on some versions when nothing is running.
		if errors.Is(err, errNoResults) {
			return claims, nil
		}
		return nil, err
	}

	for _, cols := range readCSVLines(out) {
		if len(cols) < 3 {
			continue
		}

		pid, err := strconv.ParseUint(cols[1], 10, 32)
		if err != nil {
			slog.Debug("Skipping nvidia-smi process row with invalid pid", "pid", cols[1])
			continue
		}

		usedMiB, err := strconv.ParseUint(cols[2], 10, 64)
		if err != nil {
			slog.Debug("Used memory is not available for process", "pid", pid, "value", cols[2])
			usedMiB = 0
		}

		claims[cols[0]] = append(claims[cols[0]], deviceinfo.ProcessInfo{
			PID:             uint32(pid),
			UsedMemoryBytes: usedMiB * bytesPerMiB,
		})
	}

	return claims, nil
}

func (p *smiProvider) Cleanup() {}

func (p *smiProvider) run(args ...string) ([]byte, error) {
	out, err := p.exec.Command(p.binaryPath, args...).Output()
	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if isNoResults(stderr) {
				return nil, errNoResults
			}
			return nil, fmt.Errorf("nvidia-smi failed: %w: %s", err, stderr)
		}
		return nil, fmt.Errorf("nvidia-smi failed: %w", err)
	}

	if isNoResults(string(out)) {
		return nil, errNoResults
	}

	return out, nil
}

func isNoResults(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "no running processes") || strings.Contains(s, "no devices were found")
}

func readCSVLines(b []byte) [][]string {
	scanner := bufio.NewScanner(bytes.NewReader(b))
	out := [][]string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		out = append(out, cols)
	}
	return out
}
