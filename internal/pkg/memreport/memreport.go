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

package memreport

import (
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
	"github.com/NVIDIA/mgpus/internal/pkg/procresolver"
)

// Aggregate builds the report of a device from the claims reported for it.
func Aggregate(
	device deviceinfo.Device, total uint64, claims []deviceinfo.ProcessInfo, resolver procresolver.Resolver,
) DeviceReport {
	report := DeviceReport{
		Device:           device,
		TotalMemoryBytes: total,
		Claims:           make([]ProcessMemoryClaim, 0, len(claims)),
	}

	for _, claim := range claims {
		name, err := resolver.Resolve(claim.PID)
		if err != nil {
			slog.Warn("Failed to resolve process name",
				slog.Int("gpu", device.Index),
				slog.Any("pid", claim.PID),
				slog.String("error", err.Error()),
			)
		}
		if name == "" {
			name = procresolver.UnknownProcess
		}

		report.Claims = append(report.Claims, ProcessMemoryClaim{
			PID:             claim.PID,
			UsedMemoryBytes: claim.UsedMemoryBytes,
			DisplayName:     name,
		})
	}

	return report
}

// Collect queries every selected device and returns their reports ordered by
// device index. A nil selection means all devices. Devices that fail to answer
// are skipped.
func Collect(
	provider deviceinfo.Provider, resolver procresolver.Resolver, selection *bitset.BitSet,
) ([]DeviceReport, error) {
	devices, err := provider.ListDevices()
	if err != nil {
		return nil, err
	}

	devices, err = selectDevices(devices, selection)
	if err != nil {
		return nil, err
	}

	slog.Debug("Collecting GPU memory usage",
		slog.String("backend", provider.Backend()),
		slog.Int("devices", len(devices)),
	)

	reports := make([]DeviceReport, 0, len(devices))
	for _, device := range devices {
		total, err := provider.DeviceTotalMemory(device)
		if err != nil {
			slog.Warn("Skipping GPU", slog.Int("gpu", device.Index), slog.String("error", err.Error()))
			continue
		}

		claims, err := provider.RunningClaims(device)
		if err != nil {
			slog.Warn("Skipping GPU", slog.Int("gpu", device.Index), slog.String("error", err.Error()))
			continue
		}

		reports = append(reports, Aggregate(device, total, claims, resolver))
	}

	return reports, nil
}

func selectDevices(devices []deviceinfo.Device, selection *bitset.BitSet) ([]deviceinfo.Device, error) {
	if selection == nil {
		return devices, nil
	}

	known := bitset.New(uint(len(devices)))
	selected := make([]deviceinfo.Device, 0, len(devices))
	for _, device := range devices {
		known.Set(uint(device.Index))
		if selection.Test(uint(device.Index)) {
			selected = append(selected, device)
		}
	}

	if missing := selection.Difference(known); missing.Any() {
		first, _ := missing.NextSet(0)
		return nil, fmt.Errorf("GPU %d is not present; found %d GPU(s)", first, len(devices))
	}

	return selected, nil
}
