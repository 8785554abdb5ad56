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

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
)

var tableHeader = []string{"GPU", "Memory Usage (Used/Total)", "Processes"}

type tableStyle struct {
	header    *color.Color
	gpu       *color.Color
	memory    *color.Color
	processes *color.Color
}

func newTableStyle(noColor bool) tableStyle {
	style := tableStyle{
		header:    color.New(color.Bold, color.FgMagenta),
		gpu:       color.New(color.FgCyan),
		memory:    color.New(color.FgGreen),
		processes: color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{style.header, style.gpu, style.memory, style.processes} {
			c.DisableColor()
		}
	}
	return style
}

func renderTable(w io.Writer, reports []memreport.DeviceReport, opts Options) error {
	style := newTableStyle(opts.NoColor)

	table := tablewriter.NewWriter(w)
	// Headers carry escape sequences which must not be upper cased.
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	header := make([]string, 0, len(tableHeader))
	for _, h := range tableHeader {
		header = append(header, style.header.Sprint(h))
	}
	table.SetHeader(header)

	for _, report := range reports {
		table.Append([]string{
			style.gpu.Sprint(DeviceLabel(report)),
			style.memory.Sprint(MemoryUsage(report)),
			"",
		})
		for _, claim := range report.Claims {
			table.Append([]string{"", "", style.processes.Sprint(ProcessLine(claim))})
		}
	}

	table.Render()
	return nil
}
