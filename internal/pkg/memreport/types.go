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

	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
)

const bytesPerGiB = 1024 * 1024 * 1024

// ProcessMemoryClaim is a process holding compute memory on one device.
type ProcessMemoryClaim struct {
	PID             uint32 `json:"pid"`
	UsedMemoryBytes uint64 `json:"used_memory_bytes"`
	DisplayName     string `json:"name"`
}

// DeviceReport is the memory usage snapshot of a single device.
type DeviceReport struct {
	Device           deviceinfo.Device    `json:"device"`
	TotalMemoryBytes uint64               `json:"total_memory_bytes"`
	Claims           []ProcessMemoryClaim `json:"processes"`
}

// UsedMemoryBytes is the sum of the memory held by the device's processes.
func (r DeviceReport) UsedMemoryBytes() uint64 {
	var used uint64
	for _, claim := range r.Claims {
		used += claim.UsedMemoryBytes
	}
	return used
}

// BytesToGiB converts a byte count to GiB without rounding.
func BytesToGiB(b uint64) float64 {
	return float64(b) / bytesPerGiB
}

// FormatGiB renders a byte count as GiB with two decimals.
func FormatGiB(b uint64) string {
	return fmt.Sprintf("%.2f", BytesToGiB(b))
}
