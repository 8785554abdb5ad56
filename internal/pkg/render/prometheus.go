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
	"io"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
)

/*
* The goal here is to get to the following format:
* ```
* # HELP mgpus_device_memory_total_bytes HELP_MSG
* # TYPE mgpus_device_memory_total_bytes gauge
* mgpus_device_memory_total_bytes{gpu="0",UUID="GPU-...",modelName="...",Hostname="..."} VALUE
* ...
* mgpus_process_memory_used_bytes{gpu="0",UUID="GPU-...",modelName="...",pid="111",process="python train.py"} VALUE
* ```
 */

const (
	metricDeviceTotal   = "mgpus_device_memory_total_bytes"
	metricDeviceUsed    = "mgpus_device_memory_used_bytes"
	metricProcessMemory = "mgpus_process_memory_used_bytes"
)

func newGaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}

func gauge(labels []*dto.LabelPair, value uint64) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(float64(value))},
	}
}

func deviceLabels(report memreport.DeviceReport, hostname string) []*dto.LabelPair {
	labels := []*dto.LabelPair{
		labelPair("gpu", strconv.Itoa(report.Device.Index)),
		labelPair("UUID", report.Device.UUID),
		labelPair("modelName", report.Device.Name),
	}
	if hostname != "" {
		labels = append(labels, labelPair("Hostname", hostname))
	}
	return labels
}

func renderPrometheus(w io.Writer, reports []memreport.DeviceReport, opts Options) error {
	total := newGaugeFamily(metricDeviceTotal, "Total memory of the GPU in bytes.")
	used := newGaugeFamily(metricDeviceUsed, "Memory held by compute processes on the GPU in bytes.")
	processes := newGaugeFamily(metricProcessMemory, "Memory held by a compute process on the GPU in bytes.")

	for _, report := range reports {
		total.Metric = append(total.Metric, gauge(deviceLabels(report, opts.Hostname), report.TotalMemoryBytes))
		used.Metric = append(used.Metric, gauge(deviceLabels(report, opts.Hostname), report.UsedMemoryBytes()))

		for _, claim := range report.Claims {
			labels := append(deviceLabels(report, opts.Hostname),
				labelPair("pid", strconv.FormatUint(uint64(claim.PID), 10)),
				labelPair("process", claim.DisplayName),
			)
			processes.Metric = append(processes.Metric, gauge(labels, claim.UsedMemoryBytes))
		}
	}

	for _, family := range []*dto.MetricFamily{total, used, processes} {
		// expfmt refuses families without samples.
		if len(family.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
