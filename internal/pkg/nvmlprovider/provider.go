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

package nvmlprovider

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
)

var nvmlInterface deviceinfo.Provider

// Initialize sets up the Singleton NVML interface. It returns an error wrapping
// deviceinfo.ErrSubsystemUnavailable when the library can not be initialized.
func Initialize() error {
	provider, err := newNVMLProvider(newLibrary())
	if err != nil {
		return err
	}

	nvmlInterface = provider
	return nil
}

// reset clears the current NVML interface instance.
func reset() {
	nvmlInterface = nil
}

// Client retrieves the current NVML interface instance.
func Client() deviceinfo.Provider {
	return nvmlInterface
}

// SetClient sets the current NVML interface instance to the provided one.
func SetClient(n deviceinfo.Provider) {
	nvmlInterface = n
}

// nvmlProvider implements deviceinfo.Provider
type nvmlProvider struct {
	lib         nvml.Interface
	initialized bool
}

func newNVMLProvider(lib nvml.Interface) (*nvmlProvider, error) {
	// Check if a NVML client already exists and return it if so.
	if existing, ok := Client().(*nvmlProvider); ok && existing.initialized {
		slog.Debug("NVML already initialized.")
		return existing, nil
	}

	slog.Debug("Attempting to initialize NVML library.")
	ret := lib.Init()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("%w: cannot init NVML library; err: %s", deviceinfo.ErrSubsystemUnavailable, ret.Error())
	}

	return &nvmlProvider{lib: lib, initialized: true}, nil
}

func (n *nvmlProvider) preCheck() error {
	if !n.initialized {
		return fmt.Errorf("%w: NVML library not initialized", deviceinfo.ErrSubsystemUnavailable)
	}

	return nil
}

func (n *nvmlProvider) Backend() string {
	return Backend
}

// ListDevices returns every device NVML reports. A device whose handle can not be
// obtained is still listed so that the per-device queries report the failure.
func (n *nvmlProvider) ListDevices() ([]deviceinfo.Device, error) {
	if err := n.preCheck(); err != nil {
		return nil, err
	}

	count, ret := n.lib.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("%w: cannot get device count; err: %s", deviceinfo.ErrSubsystemUnavailable, ret.Error())
	}

	devices := make([]deviceinfo.Device, 0, count)
	for i := 0; i < count; i++ {
		device := deviceinfo.Device{Index: i}

		handle, ret := n.lib.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			slog.Debug("Failed to get device handle", "gpu", i, "error", ret.Error())
			devices = append(devices, device)
			continue
		}

		if name, ret := handle.GetName(); ret == nvml.SUCCESS {
			device.Name = name
		}
		if uuid, ret := handle.GetUUID(); ret == nvml.SUCCESS {
			device.UUID = uuid
		}

		devices = append(devices, device)
	}

	return devices, nil
}

func (n *nvmlProvider) deviceHandle(device deviceinfo.Device) (nvml.Device, error) {
	handle, ret := n.lib.DeviceGetHandleByIndex(device.Index)
	if ret != nvml.SUCCESS {
		return nil, deviceinfo.NewDeviceQueryError(device.Index, "get device handle", ret)
	}

	return handle, nil
}

// DeviceTotalMemory returns the framebuffer size of the device in bytes.
func (n *nvmlProvider) DeviceTotalMemory(device deviceinfo.Device) (uint64, error) {
	if err := n.preCheck(); err != nil {
		return 0, err
	}

	handle, err := n.deviceHandle(device)
	if err != nil {
		return 0, err
	}

	memory, ret := handle.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return 0, deviceinfo.NewDeviceQueryError(device.Index, "get memory info", ret)
	}

	return memory.Total, nil
}

// RunningClaims returns the compute processes on the device in NVML order.
func (n *nvmlProvider) RunningClaims(device deviceinfo.Device) ([]deviceinfo.ProcessInfo, error) {
	if err := n.preCheck(); err != nil {
		return nil, err
	}

	handle, err := n.deviceHandle(device)
	if err != nil {
		return nil, err
	}

	processes, ret := handle.GetComputeRunningProcesses()
	if ret != nvml.SUCCESS {
		return nil, deviceinfo.NewDeviceQueryError(device.Index, "get compute running processes", ret)
	}

	claims := make([]deviceinfo.ProcessInfo, 0, len(processes))
	for _, process := range processes {
		used := process.UsedGpuMemory
		if used == valueNotAvailable {
			slog.Debug("Used memory is not available for process", "gpu", device.Index, "pid", process.Pid)
			used = 0
		}

		claims = append(claims, deviceinfo.ProcessInfo{
			PID:             process.Pid,
			UsedMemoryBytes: used,
		})
	}

	return claims, nil
}

// Cleanup shuts NVML down. It is safe to call more than once.
func (n *nvmlProvider) Cleanup() {
	if err := n.preCheck(); err != nil {
		return
	}

	if ret := n.lib.Shutdown(); ret != nvml.SUCCESS {
		slog.Warn("Failed to shutdown NVML library", "error", ret.Error())
	}

	n.initialized = false
	reset()
}
