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
	"sync"
	"text/template"

	"github.com/NVIDIA/mgpus/internal/pkg/memreport"
)

/*
* The plain format prints one line per device followed by its processes:
* ```
* GPU 0: 3.75 / 24.00 GB
*   python train.py (PID 111), 2.50 GB
* ```
 */

var plainFormat = `
{{- range $report := . -}}
{{ deviceLabel $report }}: {{ memoryUsage $report }}
{{ range $claim := $report.Claims -}}
{{ "  " }}{{ processLine $claim }}
{{ end -}}
{{- end -}}`

var getPlainTemplate = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("plainFormat").Funcs(template.FuncMap{
		"deviceLabel": DeviceLabel,
		"memoryUsage": MemoryUsage,
		"processLine": ProcessLine,
	}).Parse(plainFormat))
})

func renderPlain(w io.Writer, reports []memreport.DeviceReport) error {
	return getPlainTemplate().Execute(w, reports)
}
