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
	"fmt"
	"io"
	"strings"

	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
)

type Format string

const (
	FormatTable      Format = "table"
	FormatPlain      Format = "plain"
	FormatJSON       Format = "json"
	FormatPrometheus Format = "prometheus"
)

var formats = []Format{FormatTable, FormatPlain, FormatJSON, FormatPrometheus}

// ParseFormat validates a user supplied output format.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q; expected one of: %s", s, strings.Join(FormatNames(), ", "))
}

func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

type Options struct {
	Format Format
	// NoColor disables ANSI styling of the table format.
	NoColor bool
	// Hostname is attached to the json and prometheus formats when not empty.
	Hostname string
}

// Render writes the reports to w in the requested format.
func Render(w io.Writer, reports []memreport.DeviceReport, opts Options) error {
	switch opts.Format {
	case FormatTable, "":
		return renderTable(w, reports, opts)
	case FormatPlain:
		return renderPlain(w, reports)
	case FormatJSON:
		return renderJSON(w, reports, opts)
	case FormatPrometheus:
		return renderPrometheus(w, reports, opts)
	default:
		return fmt.Errorf("unexpected format: %s", opts.Format)
	}
}

// DeviceLabel returns the display label of a device, e.g. "GPU 0".
func DeviceLabel(report memreport.DeviceReport) string {
	return fmt.Sprintf("GPU %d", report.Device.Index)
}

// MemoryUsage returns "<used> / <total> GB".
func MemoryUsage(report memreport.DeviceReport) string {
	return fmt.Sprintf("%s / %s GB",
		memreport.FormatGiB(report.UsedMemoryBytes()),
		memreport.FormatGiB(report.TotalMemoryBytes),
	)
}

// ProcessLine returns "<name> (PID <pid>), <used> GB".
func ProcessLine(claim memreport.ProcessMemoryClaim) string {
	return fmt.Sprintf("%s (PID %d), %s GB", claim.DisplayName, claim.PID, memreport.FormatGiB(claim.UsedMemoryBytes))
}
