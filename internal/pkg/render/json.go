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

package render

import (
	"encoding/json"
	"io"

	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
)

type jsonDocument struct {
	Hostname string       `json:"hostname,omitempty"`
	Devices  []jsonDevice `json:"devices"`
}

type jsonDevice struct {
	Index            int           `json:"index"`
	Name             string        `json:"name,omitempty"`
	UUID             string        `json:"uuid,omitempty"`
	TotalMemoryBytes uint64        `json:"total_memory_bytes"`
	UsedMemoryBytes  uint64        `json:"used_memory_bytes"`
	TotalMemoryGiB   float64       `json:"total_memory_gib"`
	UsedMemoryGiB    float64       `json:"used_memory_gib"`
	Processes        []jsonProcess `json:"processes"`
}

type jsonProcess struct {
	PID             uint32  `json:"pid"`
	Name            string  `json:"name"`
	UsedMemoryBytes uint64  `json:"used_memory_bytes"`
	UsedMemoryGiB   float64 `json:"used_memory_gib"`
}

func renderJSON(w io.Writer, reports []memreport.DeviceReport, opts Options) error {
	doc := jsonDocument{
		Hostname: opts.Hostname,
		Devices:  make([]jsonDevice, 0, len(reports)),
	}

	for _, report := range reports {
		device := jsonDevice{
			Index:            report.Device.Index,
			Name:             report.Device.Name,
			UUID:             report.Device.UUID,
			TotalMemoryBytes: report.TotalMemoryBytes,
			UsedMemoryBytes:  report.UsedMemoryBytes(),
			TotalMemoryGiB:   memreport.BytesToGiB(report.TotalMemoryBytes),
			UsedMemoryGiB:    memreport.BytesToGiB(report.UsedMemoryBytes()),
			Processes:        make([]jsonProcess, 0, len(report.Claims)),
		}
		for _, claim := range report.Claims {
			device.Processes = append(device.Processes, jsonProcess{
				PID:             claim.PID,
				Name:            claim.DisplayName,
				UsedMemoryBytes: claim.UsedMemoryBytes,
				UsedMemoryGiB:   memreport.BytesToGiB(claim.UsedMemoryBytes),
			})
		}
		doc.Devices = append(doc.Devices, device)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
