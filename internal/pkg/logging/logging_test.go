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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "text",
			format: FormatText,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "level=INFO msg=hello gpu=0")
			},
		},
		{
			name:   "default",
			format: "",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "msg=hello")
			},
		},
		{
			name:   "json",
			format: "JSON",
			check: func(t *testing.T, out string) {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &entry))
				assert.Equal(t, "hello", entry["msg"])
				assert.Equal(t, float64(0), entry["gpu"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler, err := NewHandler(&buf, tt.format, nil)
			require.NoError(t, err)

			slog.New(handler).Info("hello", slog.Int("gpu", 0))
			tt.check(t, buf.String())
		})
	}
}

func TestNewHandlerRejectsUnknownFormat(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, "xml", nil)
	assert.EqualError(t, err, `unsupported log format "xml"; expected text or json`)
}

func TestSetupGlobalLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupGlobalLogger(&buf, FormatJSON, &slog.HandlerOptions{Level: slog.LevelDebug}))

	slog.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
}
